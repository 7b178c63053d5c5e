// Package app assembles the portfolio service from its configuration:
// backends are optional and the assembly degrades rather than fails when one
// is absent.
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/jaq-h/portfolio-service/internal/api"
	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/cache"
	"github.com/jaq-h/portfolio-service/internal/captcha"
	"github.com/jaq-h/portfolio-service/internal/config"
	"github.com/jaq-h/portfolio-service/internal/configstore"
	"github.com/jaq-h/portfolio-service/internal/content"
	"github.com/jaq-h/portfolio-service/internal/httpserver"
	"github.com/jaq-h/portfolio-service/internal/logger"
	"github.com/jaq-h/portfolio-service/internal/metrics"
	"github.com/jaq-h/portfolio-service/internal/snapshot"
)

// App holds the assembled service and its closable backends.
type App struct {
	Server *httpserver.Server

	cfg         *config.Config
	log         logger.Logger
	redisClient *redis.Client
}

// New builds the service. The config store and object storage are optional:
// when unconfigured the content chain serves lower tiers and the operator
// endpoints report their absence.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var store *configstore.Store
	var renderCache *cache.RenderCache

	if cfg.ConfigStore.Configured() {
		client, err := configstore.NewClient(configstore.Config{
			Address:  cfg.ConfigStore.Address,
			Username: cfg.ConfigStore.Username,
			Password: cfg.ConfigStore.Password,
			DB:       cfg.ConfigStore.DB,
		})
		if err != nil {
			// The store is tier one of three; start without it.
			log.Warn("config store unavailable, serving local content",
				logger.String("address", cfg.ConfigStore.Address),
				logger.Error(err),
			)
		} else {
			a.redisClient = client
			store = configstore.New(client, cfg.ConfigStore.Timeout)
			renderCache = cache.New(client, cache.DefaultTTL)
			log.Info("config store connected",
				logger.String("address", cfg.ConfigStore.Address),
			)
		}
	} else {
		log.Info("config store not configured, serving local content")
	}

	var getter content.DocumentGetter
	if store != nil {
		getter = store
	}
	providers := []content.Provider{
		content.NewRemoteProvider(getter),
		snapshot.New(cfg.Snapshot.Dir),
		content.NewDefaultsProvider(),
	}
	resolver := content.NewResolver(log, providers...).
		WithFallbackRecorder(m.RecordFallback)

	verifier := captcha.NewVerifier(
		cfg.Captcha.VerifyURL,
		cfg.Captcha.SecretKey,
		cfg.Captcha.Timeout,
		log,
	)
	email := captcha.NewEmailSource(cfg.Contact.EmailUserB64, cfg.Contact.EmailDomainB64)

	var blobClient *blob.Client
	if cfg.Blob.Configured() {
		var err error
		blobClient, err = blob.NewClient(blob.Config{
			Endpoint:  cfg.Blob.Endpoint,
			AccessKey: cfg.Blob.AccessKey,
			SecretKey: cfg.Blob.SecretKey,
			Bucket:    cfg.Blob.Bucket,
			UseSSL:    cfg.Blob.UseSSL,
			PublicURL: cfg.Blob.PublicURL,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create blob client: %w", err)
		}
	} else {
		log.Info("object storage not configured, upload endpoints disabled")
	}

	router := api.NewRouter(resolver, renderCache, verifier, email, blobClient, store, cfg, log, m)
	a.Server = router.NewServer()
	return a, nil
}

// Close releases the app's backend connections.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("error closing config store connection", logger.Error(err))
		}
	}
}
