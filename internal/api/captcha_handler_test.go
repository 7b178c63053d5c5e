package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verificationProvider fakes the provider's siteverify endpoint.
func verificationProvider(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
}

func postVerify(engine http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/verify-captcha", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestVerifyCaptchaSuccessRevealsEmail(t *testing.T) {
	srv := verificationProvider(t, `{"success": true, "score": 0.9}`)
	defer srv.Close()

	user := base64.StdEncoding.EncodeToString([]byte("alice"))
	domain := base64.StdEncoding.EncodeToString([]byte("example.com"))
	_, engine := testRouter(t,
		withVerifier(srv.URL, "server-secret"),
		withEmail(user, domain),
	)

	w := postVerify(engine, `{"token": "client-token"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		Data      string `json:"data"`
		Timestamp int64  `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Timestamp)

	decoded, err := base64.StdEncoding.DecodeString(resp.Data)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", string(decoded))
}

func TestVerifyCaptchaMissingToken(t *testing.T) {
	_, engine := testRouter(t, withVerifier("http://unused.invalid", "server-secret"))

	w := postVerify(engine, `{"token": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No captcha token provided")
}

func TestVerifyCaptchaUnconfiguredSecret(t *testing.T) {
	// No provider secret: fail closed, never reveal.
	_, engine := testRouter(t)

	w := postVerify(engine, `{"token": "client-token"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Server configuration error")
}

func TestVerifyCaptchaRejectedToken(t *testing.T) {
	srv := verificationProvider(t, `{"success": false, "error-codes": ["invalid-input-response"]}`)
	defer srv.Close()

	_, engine := testRouter(t, withVerifier(srv.URL, "server-secret"))

	w := postVerify(engine, `{"token": "stale-token"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"invalid-input-response"}, resp.Details)
}

func TestVerifyCaptchaProviderDown(t *testing.T) {
	srv := verificationProvider(t, `{}`)
	srv.Close()

	_, engine := testRouter(t, withVerifier(srv.URL, "server-secret"))

	w := postVerify(engine, `{"token": "client-token"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVerifyCaptchaEmailUnconfigured(t *testing.T) {
	// Verification passes but the fragments are absent: operator fault.
	srv := verificationProvider(t, `{"success": true}`)
	defer srv.Close()

	_, engine := testRouter(t, withVerifier(srv.URL, "server-secret"))

	w := postVerify(engine, `{"token": "client-token"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestVerifyCaptchaMalformedBody(t *testing.T) {
	_, engine := testRouter(t, withVerifier("http://unused.invalid", "server-secret"))

	w := postVerify(engine, `{"token":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
