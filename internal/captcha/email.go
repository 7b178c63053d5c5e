package captcha

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// EmailSource assembles the protected contact address from two independently
// stored base64 fragments. The address is never held as a plaintext constant.
type EmailSource struct {
	userB64   string
	domainB64 string
}

// ErrEmailNotConfigured means one or both fragments are absent.
var ErrEmailNotConfigured = errors.New("captcha: email fragments not configured")

// NewEmailSource creates an email source from encoded fragments.
func NewEmailSource(userB64, domainB64 string) *EmailSource {
	return &EmailSource{userB64: userB64, domainB64: domainB64}
}

// Reveal decodes the fragments, joins them into the address, and returns the
// result base64-encoded. The encoding is a reversible scraping deterrent for
// the response body, not a security boundary.
func (s *EmailSource) Reveal() (string, error) {
	if s.userB64 == "" || s.domainB64 == "" {
		return "", ErrEmailNotConfigured
	}

	user, err := base64.StdEncoding.DecodeString(s.userB64)
	if err != nil {
		return "", fmt.Errorf("decode email user fragment: %w", err)
	}
	domain, err := base64.StdEncoding.DecodeString(s.domainB64)
	if err != nil {
		return "", fmt.Errorf("decode email domain fragment: %w", err)
	}

	email := string(user) + "@" + string(domain)
	return base64.StdEncoding.EncodeToString([]byte(email)), nil
}
