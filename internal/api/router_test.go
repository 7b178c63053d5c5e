package api

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/cache"
	"github.com/jaq-h/portfolio-service/internal/captcha"
	"github.com/jaq-h/portfolio-service/internal/config"
	"github.com/jaq-h/portfolio-service/internal/content"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// routerOption mutates the Router under test before routes are registered.
type routerOption func(*Router)

func withRenderCache(t *testing.T) routerOption {
	return func(r *Router) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		r.renderCache = cache.New(client, time.Minute)
	}
}

// withUnreachableRenderCache wires a render cache whose backend is already
// gone, so every invalidation errors.
func withUnreachableRenderCache(t *testing.T) routerOption {
	return func(r *Router) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		mr.Close()
		r.renderCache = cache.New(client, time.Minute)
	}
}

func withSecrets(upload, revalidation string) routerOption {
	return func(r *Router) {
		r.cfg.Secrets.Upload = upload
		r.cfg.Secrets.Revalidation = revalidation
	}
}

func withVerifier(verifyURL, secret string) routerOption {
	return func(r *Router) {
		r.verifier = captcha.NewVerifier(verifyURL, secret, time.Second, logger.NewNop())
	}
}

func withEmail(userB64, domainB64 string) routerOption {
	return func(r *Router) {
		r.email = captcha.NewEmailSource(userB64, domainB64)
	}
}

func withBlobClient(t *testing.T, publicURL string) routerOption {
	return func(r *Router) {
		client, err := blob.NewClient(blob.Config{
			Endpoint:  "localhost:1", // never dialed by the paths under test
			AccessKey: "test",
			SecretKey: "test",
			Bucket:    "media",
			PublicURL: publicURL,
		})
		require.NoError(t, err)
		r.blobClient = client
	}
}

// testRouter assembles a Router with defaults-only content resolution and no
// optional backends, then applies the options.
func testRouter(t *testing.T, opts ...routerOption) (*Router, *gin.Engine) {
	t.Helper()

	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())

	resolver := content.NewResolver(logger.NewNop(), content.NewDefaultsProvider())
	verifier := captcha.NewVerifier("http://unused.invalid", "", time.Second, logger.NewNop())
	email := captcha.NewEmailSource("", "")

	r := NewRouter(resolver, nil, verifier, email, nil, nil, cfg, logger.NewNop(), nil)
	for _, opt := range opts {
		opt(r)
	}

	engine := gin.New()
	r.setupRoutes(engine)
	return r, engine
}
