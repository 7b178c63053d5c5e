// Package captcha implements the human-verification gateway: server-side
// token verification against the third-party provider, and assembly of the
// protected contact address once verification succeeds.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jaq-h/portfolio-service/internal/httpclient"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// Typed failures distinguishing client faults from operator faults at the API
// boundary.
var (
	// ErrMissingToken means the request carried no token (client fault).
	ErrMissingToken = errors.New("captcha: no token provided")
	// ErrNotConfigured means the verification secret is absent from the
	// environment (operator fault, surfaced as service-unavailable).
	ErrNotConfigured = errors.New("captcha: verification secret not configured")
)

// VerificationError is a provider-rejected token. Codes carries the
// provider's machine-readable error codes for diagnostics.
type VerificationError struct {
	Codes []string
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if len(e.Codes) == 0 {
		return "captcha: verification failed"
	}
	return "captcha: verification failed: " + strings.Join(e.Codes, ", ")
}

// providerResponse is the provider's verification response. Score is only
// present for score-based challenge variants.
type providerResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verifier submits tokens to the verification provider.
type Verifier struct {
	verifyURL string
	secret    string
	client    *http.Client
	log       logger.Logger
}

// NewVerifier creates a verifier. An empty secret is allowed at construction;
// Verify reports ErrNotConfigured per call so the endpoint fails closed.
func NewVerifier(verifyURL, secret string, timeout time.Duration, log logger.Logger) *Verifier {
	return &Verifier{
		verifyURL: verifyURL,
		secret:    secret,
		client:    httpclient.New(timeout),
		log:       log,
	}
}

// Verify checks a client-supplied token with the provider. It returns nil on
// success, ErrMissingToken/ErrNotConfigured for boundary faults, a
// *VerificationError when the provider rejects the token, and a wrapped
// transport error otherwise. Tokens are single-use on the provider side:
// callers must request a fresh token after any failure.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if v.secret == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("verification request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read verification response: %w", err)
	}

	var result providerResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode verification response: %w", err)
	}

	fields := []logger.Field{logger.Bool("success", result.Success)}
	if result.Score != nil {
		fields = append(fields, logger.Float64("score", *result.Score))
	}
	if len(result.ErrorCodes) > 0 {
		fields = append(fields, logger.Strings("error_codes", result.ErrorCodes))
	}
	v.log.Info("captcha verification completed", fields...)

	if !result.Success {
		return &VerificationError{Codes: result.ErrorCodes}
	}
	return nil
}
