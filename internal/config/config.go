// Package config loads service configuration from an optional YAML file with
// environment variable overrides. Secrets are only ever read from the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultReadTimeoutSeconds is the default HTTP read timeout in seconds.
	DefaultReadTimeoutSeconds = 10
	// DefaultWriteTimeoutSeconds is the default HTTP write timeout in seconds.
	DefaultWriteTimeoutSeconds = 30
	// DefaultUpstreamTimeoutSeconds is the default timeout for calls to the
	// config store and the verification provider.
	DefaultUpstreamTimeoutSeconds = 5
)

// Config is the top-level service configuration.
type Config struct {
	Debug       bool              `yaml:"debug"` // Application debug mode (controls log level)
	Server      ServerConfig      `yaml:"server"`
	ConfigStore ConfigStoreConfig `yaml:"config_store"`
	Blob        BlobConfig        `yaml:"blob"`
	Captcha     CaptchaConfig     `yaml:"captcha"`
	Contact     ContactConfig     `yaml:"contact"`
	Snapshot    SnapshotConfig    `yaml:"snapshot"`
	Secrets     SecretsConfig     `yaml:"-"` // environment only, never from file
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address      string        `yaml:"address"`       // e.g. ":8090"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // Default: 30s
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// ConfigStoreConfig holds the remote content store connection settings.
// The service itself only needs the read credential; the write credential is
// consumed by the sync tooling and left empty for the API process.
type ConfigStoreConfig struct {
	Address       string        `yaml:"address"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	WriteUsername string        `yaml:"-"`
	WritePassword string        `yaml:"-"`
	DB            int           `yaml:"db"`
	Timeout       time.Duration `yaml:"timeout"` // Per-read timeout, default 5s
}

// Configured reports whether a remote store connection is available.
// An unconfigured store is not an error: content falls back to local tiers.
func (c ConfigStoreConfig) Configured() bool {
	return c.Address != ""
}

// BlobConfig holds the object storage settings.
type BlobConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	// PublicURL is the base URL media objects are served from. Delete
	// requests are only honored for URLs under this base.
	PublicURL string `yaml:"public_url"`
}

// Configured reports whether object storage is usable.
func (c BlobConfig) Configured() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// CaptchaConfig holds the human-verification provider settings.
type CaptchaConfig struct {
	// VerifyURL is the provider's token verification endpoint.
	VerifyURL string `yaml:"verify_url"`
	// SiteKey is the public site key handed to the frontend widget.
	SiteKey string `yaml:"site_key"`
	// SecretKey is the server-side verification secret (environment only).
	SecretKey string        `yaml:"-"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ContactConfig holds the encoded fragments of the protected contact email.
// Both values are base64; they are never stored joined or in plaintext.
type ContactConfig struct {
	EmailUserB64   string `yaml:"-"`
	EmailDomainB64 string `yaml:"-"`
}

// SnapshotConfig locates the bundled local content documents.
type SnapshotConfig struct {
	Dir string `yaml:"dir"` // Default: ./content
}

// SecretsConfig holds the shared secrets protecting operator endpoints.
// An empty secret disables (fails closed) the corresponding endpoint.
type SecretsConfig struct {
	Upload       string
	Revalidation string
}

// DefaultVerifyURL is the verification endpoint used when none is configured.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Validate checks the server configuration and applies defaults.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		c.Address = ":8090"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeoutSeconds * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeoutSeconds * time.Second
	}
	return nil
}

// Validate checks the configuration for combinations that cannot work.
// Missing optional backends (config store, blob storage) are allowed; the
// relevant subsystems degrade or fail closed at their own boundaries.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation: %w", err)
	}
	if c.Blob.Configured() && c.Blob.PublicURL == "" {
		return errors.New("blob.public_url is required when blob storage is configured")
	}
	if c.ConfigStore.Timeout <= 0 {
		c.ConfigStore.Timeout = DefaultUpstreamTimeoutSeconds * time.Second
	}
	if c.Captcha.Timeout <= 0 {
		c.Captcha.Timeout = DefaultUpstreamTimeoutSeconds * time.Second
	}
	if c.Captcha.VerifyURL == "" {
		c.Captcha.VerifyURL = DefaultVerifyURL
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = "content"
	}
	return nil
}

// overrideWithEnvVars overrides configuration with environment variables.
func overrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		cfg.Server.CORSOrigins = origins
	}

	if v := os.Getenv("CONFIG_STORE_ADDRESS"); v != "" {
		cfg.ConfigStore.Address = v
	}
	if v := os.Getenv("CONFIG_STORE_USERNAME"); v != "" {
		cfg.ConfigStore.Username = v
	}
	if v := os.Getenv("CONFIG_STORE_PASSWORD"); v != "" {
		cfg.ConfigStore.Password = v
	}
	if v := os.Getenv("CONFIG_STORE_WRITE_USERNAME"); v != "" {
		cfg.ConfigStore.WriteUsername = v
	}
	if v := os.Getenv("CONFIG_STORE_WRITE_PASSWORD"); v != "" {
		cfg.ConfigStore.WritePassword = v
	}
	if v := os.Getenv("CONFIG_STORE_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.ConfigStore.DB = db
		}
	}

	if v := os.Getenv("BLOB_ENDPOINT"); v != "" {
		cfg.Blob.Endpoint = v
	}
	if v := os.Getenv("BLOB_BUCKET"); v != "" {
		cfg.Blob.Bucket = v
	}
	if v := os.Getenv("BLOB_PUBLIC_URL"); v != "" {
		cfg.Blob.PublicURL = v
	}
	if v := os.Getenv("BLOB_USE_SSL"); v != "" {
		cfg.Blob.UseSSL = parseBool(v)
	}
	cfg.Blob.AccessKey = os.Getenv("BLOB_ACCESS_KEY")
	cfg.Blob.SecretKey = os.Getenv("BLOB_SECRET_KEY")

	if v := os.Getenv("RECAPTCHA_VERIFY_URL"); v != "" {
		cfg.Captcha.VerifyURL = v
	}
	if v := os.Getenv("RECAPTCHA_SITE_KEY"); v != "" {
		cfg.Captcha.SiteKey = v
	}
	cfg.Captcha.SecretKey = os.Getenv("RECAPTCHA_SECRET_KEY")

	cfg.Contact.EmailUserB64 = os.Getenv("EMAIL_USER_B64")
	cfg.Contact.EmailDomainB64 = os.Getenv("EMAIL_DOMAIN_B64")

	cfg.Secrets.Upload = os.Getenv("UPLOAD_SECRET")
	cfg.Secrets.Revalidation = os.Getenv("REVALIDATION_SECRET")

	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		cfg.Snapshot.Dir = v
	}
}

// Load reads configuration from the given YAML file (optional), applies
// environment overrides, and validates the result. An empty path or a missing
// file means environment-only configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err):
			// Fall through to env-only configuration.
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// parseBool parses a string value as a boolean.
// Returns true for "true", "1", "yes" (case-insensitive), false otherwise.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
