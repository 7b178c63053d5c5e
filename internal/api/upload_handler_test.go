package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartUpload builds a multipart body with one file part plus form fields.
func multipartUpload(t *testing.T, filename string, size int, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("a"), size))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postUpload(engine http.Handler, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestUploadUnconfiguredSecretFailsClosed(t *testing.T) {
	_, engine := testRouter(t, withBlobClient(t, "https://media.example.com"))

	body, contentType := multipartUpload(t, "photo.png", 10, nil)
	w := postUpload(engine, "anything", body, contentType)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUploadBadToken(t *testing.T) {
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	body, contentType := multipartUpload(t, "photo.png", 10, nil)
	w := postUpload(engine, "wrong", body, contentType)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadNoStorageBackend(t *testing.T) {
	_, engine := testRouter(t, withSecrets("upload-secret", ""))

	body, contentType := multipartUpload(t, "photo.png", 10, nil)
	w := postUpload(engine, "upload-secret", body, contentType)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUploadNoFile(t *testing.T) {
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	body, contentType := multipartUpload(t, "", 0, map[string]string{"type": "image"})
	w := postUpload(engine, "upload-secret", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file provided")
}

func TestUploadTooLargeRejectedBeforeStorage(t *testing.T) {
	// The fake blob endpoint is unreachable: reaching storage would turn this
	// 400 into a transport failure, so the status also proves the size check
	// runs first.
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	body, contentType := multipartUpload(t, "huge.png", 15<<20, nil)
	w := postUpload(engine, "upload-secret", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File too large")
}

func TestUploadIconRequiresName(t *testing.T) {
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	body, contentType := multipartUpload(t, "react.svg", 10, map[string]string{"type": "icon"})
	w := postUpload(engine, "upload-secret", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Icon name is required")
}

func TestUploadUnknownType(t *testing.T) {
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	body, contentType := multipartUpload(t, "data.bin", 10, map[string]string{"type": "archive"})
	w := postUpload(engine, "upload-secret", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown upload type")
}

func TestDeleteUploadRequiresURL(t *testing.T) {
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	req := httptest.NewRequest(http.MethodDelete, "/api/upload", nil)
	req.Header.Set("Authorization", "Bearer upload-secret")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "URL parameter is required")
}

func TestDeleteUploadRejectsForeignURL(t *testing.T) {
	_, engine := testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/upload?url=https://evil.example.com/images/photo.png", nil)
	req.Header.Set("Authorization", "Bearer upload-secret")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid blob URL")
}

func TestUploadProbe(t *testing.T) {
	// The probe is informational and unauthenticated.
	_, engine := testRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/upload", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"configured":false`)

	_, engine = testRouter(t,
		withSecrets("upload-secret", ""),
		withBlobClient(t, "https://media.example.com"),
	)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/upload", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"configured":true`)
}
