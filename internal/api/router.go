// Package api implements the HTTP surface of the portfolio service: content
// resolution, the captcha-gated contact reveal, media uploads, and cache
// revalidation.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/cache"
	"github.com/jaq-h/portfolio-service/internal/captcha"
	"github.com/jaq-h/portfolio-service/internal/config"
	"github.com/jaq-h/portfolio-service/internal/configstore"
	"github.com/jaq-h/portfolio-service/internal/content"
	"github.com/jaq-h/portfolio-service/internal/httpserver"
	"github.com/jaq-h/portfolio-service/internal/logger"
	"github.com/jaq-h/portfolio-service/internal/metrics"
)

const (
	serviceName        = "portfolio"
	serviceVersion     = "1.0.0"
	healthCheckTimeout = 2 * time.Second
)

// Router holds the API dependencies.
// Optional backends (store, blobClient, renderCache) may be nil; the
// corresponding endpoints degrade or fail closed.
type Router struct {
	resolver    *content.Resolver
	renderCache *cache.RenderCache
	verifier    *captcha.Verifier
	email       *captcha.EmailSource
	blobClient  *blob.Client
	store       *configstore.Store
	cfg         *config.Config
	log         logger.Logger
	metrics     *metrics.Metrics
}

// NewRouter creates a new API router.
func NewRouter(
	resolver *content.Resolver,
	renderCache *cache.RenderCache,
	verifier *captcha.Verifier,
	email *captcha.EmailSource,
	blobClient *blob.Client,
	store *configstore.Store,
	cfg *config.Config,
	log logger.Logger,
	m *metrics.Metrics,
) *Router {
	return &Router{
		resolver:    resolver,
		renderCache: renderCache,
		verifier:    verifier,
		email:       email,
		blobClient:  blobClient,
		store:       store,
		cfg:         cfg,
		log:         log,
		metrics:     m,
	}
}

// NewServer creates the HTTP server with health checks and all API routes.
func (r *Router) NewServer() *httpserver.Server {
	serverCfg := &httpserver.Config{
		Address:        r.cfg.Server.Address,
		Debug:          r.cfg.Debug,
		ReadTimeout:    r.cfg.Server.ReadTimeout,
		WriteTimeout:   r.cfg.Server.WriteTimeout,
		CORSOrigins:    r.cfg.Server.CORSOrigins,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}

	checks := map[string]httpserver.HealthChecker{
		"config_store":   httpserver.DependencyHealthChecker("config store", r.storePing()),
		"object_storage": httpserver.DependencyHealthChecker("object storage", r.blobPing()),
	}

	return httpserver.New(serverCfg, r.log, checks, r.setupRoutes)
}

func (r *Router) storePing() func() error {
	if r.store == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return r.store.Ping(ctx)
	}
}

func (r *Router) blobPing() func() error {
	if r.blobClient == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return r.blobClient.Ping(ctx)
	}
}

// setupRoutes configures the service routes (health routes are registered by
// the server shell).
func (r *Router) setupRoutes(router *gin.Engine) {
	if r.metrics != nil {
		router.Use(r.metrics.Middleware())
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("/content", r.getContent)
	api.GET("/content/:key", r.getContentKey)

	api.POST("/verify-captcha", r.verifyCaptcha)

	api.POST("/revalidate", bearerAuth(r.cfg.Secrets.Revalidation), r.revalidate)
	api.GET("/revalidate", r.revalidateWebhook)

	api.GET("/upload", r.uploadProbe)
	api.POST("/upload", bearerAuth(r.cfg.Secrets.Upload), r.upload)
	api.DELETE("/upload", bearerAuth(r.cfg.Secrets.Upload), r.deleteUpload)
}
