package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaq-h/portfolio-service/internal/captcha"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// verifyRequest is the contact-reveal request body.
type verifyRequest struct {
	Token string `json:"token"`
}

// verifyCaptcha handles POST /api/verify-captcha: verify the proof-of-humanity
// token with the provider, then release the obfuscated contact email.
// Verification is never silently degraded; an identity check has no fallback
// tier.
func (r *Router) verifyCaptcha(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.recordVerification("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := r.verifier.Verify(c.Request.Context(), req.Token)
	switch {
	case err == nil:
		// fall through to reveal
	case errors.Is(err, captcha.ErrMissingToken):
		r.recordVerification("missing_token")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No captcha token provided"})
		return
	case errors.Is(err, captcha.ErrNotConfigured):
		r.recordVerification("unconfigured")
		r.log.Error("captcha secret not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server configuration error"})
		return
	default:
		var verr *captcha.VerificationError
		if errors.As(err, &verr) {
			r.recordVerification("rejected")
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Captcha verification failed",
				"details": verr.Codes,
			})
			return
		}
		r.recordVerification("provider_error")
		r.log.Error("captcha provider call failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	data, err := r.email.Reveal()
	if err != nil {
		r.recordVerification("unconfigured")
		r.log.Error("contact email not revealable", logger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server configuration error"})
		return
	}

	r.recordVerification("success")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UnixMilli(),
	})
}

func (r *Router) recordVerification(outcome string) {
	if r.metrics != nil {
		r.metrics.RecordVerification(outcome)
	}
}
