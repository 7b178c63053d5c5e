package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaq-h/portfolio-service/internal/cache"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// revalidateRequest is the POST /api/revalidate body.
type revalidateRequest struct {
	Paths []string `json:"paths"`
	Tags  []string `json:"tags"`
	All   bool     `json:"all"`
}

// revalidateResponse reports exactly what was invalidated.
type revalidateResponse struct {
	Paths []string `json:"paths"`
	Tags  []string `json:"tags"`
}

// revalidate handles POST /api/revalidate. Authentication is enforced by the
// bearer middleware; an unconfigured secret fails closed there.
func (r *Router) revalidate(c *gin.Context) {
	var req revalidateRequest
	// An empty or malformed body means "revalidate the layout", like a bare
	// webhook ping.
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	revalidated := revalidateResponse{Paths: []string{}, Tags: []string{}}

	var err error
	if req.All {
		revalidated.Paths, err = r.invalidatePaths(c, cache.KnownPaths)
		if err != nil {
			r.revalidationFailed(c, err)
			return
		}
	} else {
		var paths []string
		for _, path := range req.Paths {
			if strings.HasPrefix(path, "/") {
				paths = append(paths, path)
			}
		}
		revalidated.Paths, err = r.invalidatePaths(c, paths)
		if err != nil {
			r.revalidationFailed(c, err)
			return
		}

		if len(req.Tags) > 0 && r.renderCache != nil {
			tags, err := r.renderCache.InvalidateTags(ctx, req.Tags)
			if err != nil {
				r.revalidationFailed(c, err)
				return
			}
			revalidated.Tags = tags
		} else {
			revalidated.Tags = append(revalidated.Tags, req.Tags...)
		}
	}

	// Nothing specified: refresh the layout, which feeds every page.
	if len(revalidated.Paths) == 0 && len(revalidated.Tags) == 0 {
		revalidated.Paths, err = r.invalidatePaths(c, cache.KnownPaths)
		if err != nil {
			r.revalidationFailed(c, err)
			return
		}
	}

	if r.metrics != nil {
		r.metrics.RevalidationsTotal.Inc()
	}
	r.log.Info("cache revalidated",
		logger.Strings("paths", revalidated.Paths),
		logger.Strings("tags", revalidated.Tags),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"revalidated": revalidated,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// invalidatePaths drops the renders for paths, both as direct cache keys and
// as tags (single-document renders are tagged with their page path). With no
// cache backend configured every render is computed fresh, so the request
// trivially succeeds. A cache failure is returned: partial invalidation must
// never be reported as success.
func (r *Router) invalidatePaths(c *gin.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return []string{}, nil
	}
	if r.renderCache == nil {
		return paths, nil
	}

	ctx := c.Request.Context()
	invalidated, err := r.renderCache.InvalidatePaths(ctx, paths)
	if err != nil {
		return invalidated, err
	}
	if _, err := r.renderCache.InvalidateTags(ctx, paths); err != nil {
		return invalidated, err
	}
	return invalidated, nil
}

// revalidationFailed reports a cache invalidation error as a structured 500.
func (r *Router) revalidationFailed(c *gin.Context, err error) {
	r.log.Error("cache invalidation failed", logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Revalidation failed", "details": err.Error(),
	})
}

// revalidateWebhook handles GET /api/revalidate?secret=&path=, the
// query-parameter variant for webhook-style invocation.
func (r *Router) revalidateWebhook(c *gin.Context) {
	if r.cfg.Secrets.Revalidation == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Revalidation endpoint not configured"})
		return
	}
	if c.Query("secret") != r.cfg.Secrets.Revalidation {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret"})
		return
	}

	path := c.Query("path")
	var invalidated []string
	var err error
	if path != "" {
		invalidated, err = r.invalidatePaths(c, []string{path})
	} else {
		invalidated, err = r.invalidatePaths(c, cache.KnownPaths)
	}
	if err != nil {
		r.revalidationFailed(c, err)
		return
	}

	if r.metrics != nil {
		r.metrics.RevalidationsTotal.Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"revalidated": revalidateResponse{Paths: invalidated, Tags: []string{}},
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
