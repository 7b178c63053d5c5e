package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaq-h/portfolio-service/internal/content"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// contentTag groups every cached content render so one tag invalidation
// clears them all.
const contentTag = "content"

// pagePath maps a content key to the site path whose render consumes it.
// Menu and icons feed the shared layout.
func pagePath(key content.Key) string {
	switch key {
	case content.KeyAbout:
		return "/about"
	case content.KeyProjects:
		return "/projects"
	case content.KeyContact:
		return "/contact"
	default:
		return "/"
	}
}

// getContent serves the full resolved bundle for one render pass.
// Resolution never fails: every key degrades through its tier chain, so this
// endpoint always returns 200 with some document per key.
func (r *Router) getContent(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := r.cacheGet(ctx, "/"); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	bundle := r.resolver.ResolveAll(ctx).Publish()
	payload, err := bundle.MarshalJSON()
	if err != nil {
		// Only reachable through a wiring bug; the resolver always produces
		// a publishable bundle.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble content"})
		return
	}

	r.cachePut(ctx, "/", payload, contentTag)
	c.Data(http.StatusOK, "application/json", payload)
}

// getContentKey serves a single resolved document. The cached render is
// tagged with the page path that consumes it, so path revalidation clears it.
func (r *Router) getContentKey(c *gin.Context) {
	key, err := content.ParseKey(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	cachePath := "/api/content/" + string(key)

	if payload, ok := r.cacheGet(ctx, cachePath); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	raw := r.resolver.Resolve(ctx, key)
	r.cachePut(ctx, cachePath, raw, contentTag, pagePath(key))
	c.Data(http.StatusOK, "application/json", raw)
}

// cacheGet reads a cached render. A nil cache or a cache failure is a miss:
// content must keep serving without the cache backend.
func (r *Router) cacheGet(ctx context.Context, path string) ([]byte, bool) {
	if r.renderCache == nil {
		return nil, false
	}
	payload, ok, err := r.renderCache.Get(ctx, path)
	if err != nil {
		r.log.Warn("render cache read failed",
			logger.String("path", path),
			logger.Error(err),
		)
		return nil, false
	}
	return payload, ok
}

// cachePut stores a rendered payload; failures are logged and ignored.
func (r *Router) cachePut(ctx context.Context, path string, payload []byte, tags ...string) {
	if r.renderCache == nil {
		return
	}
	if err := r.renderCache.Put(ctx, path, payload, tags...); err != nil {
		r.log.Warn("render cache write failed",
			logger.String("path", path),
			logger.Error(err),
		)
	}
}
