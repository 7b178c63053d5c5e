package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader records puts and returns a deterministic URL.
type fakeUploader struct {
	puts []fakePut
}

type fakePut struct {
	path        string
	size        int64
	contentType string
	body        string
}

func (f *fakeUploader) Put(_ context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	body, _ := io.ReadAll(r)
	f.puts = append(f.puts, fakePut{path: path, size: size, contentType: contentType, body: string(body)})
	return "https://media.example.com/" + path, nil
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"clip.webp", "image/webp"},
		{"logo.svg", "image/svg+xml"},
		{"shot.avif", "image/avif"},
		{"resume.pdf", "application/pdf"},
		{"mystery", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentTypeFor(tt.filename), tt.filename)
	}
}

func TestUploadFileAppendsSuffix(t *testing.T) {
	up := &fakeUploader{}
	body := strings.NewReader("data")

	result, err := UploadFile(context.Background(), up, body, 4, "photo.png", UploadOptions{Folder: "images"})
	require.NoError(t, err)

	require.Len(t, up.puts, 1)
	put := up.puts[0]
	assert.Regexp(t, `^images/photo-[0-9a-f-]{8}\.png$`, put.path)
	assert.Equal(t, "image/png", put.contentType)
	assert.Equal(t, int64(4), put.size)

	assert.Equal(t, "photo.png", result.OriginalName)
	assert.Equal(t, put.path, result.Path)
	assert.Equal(t, "https://media.example.com/"+put.path, result.URL)
}

func TestUploadFileExplicitFilenameNoSuffix(t *testing.T) {
	up := &fakeUploader{}

	result, err := UploadFile(context.Background(), up, strings.NewReader("data"), 4, "photo.png",
		UploadOptions{Folder: "images", Filename: "hero.png"})
	require.NoError(t, err)
	assert.Equal(t, "images/hero.png", result.Path)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	up := &fakeUploader{}

	_, err := UploadImage(context.Background(), up, strings.NewReader("data"), 4, "resume.pdf", "", UploadOptions{})
	require.Error(t, err)
	assert.Empty(t, up.puts, "rejected uploads must not reach storage")
}

func TestUploadImageDefaultFolder(t *testing.T) {
	up := &fakeUploader{}

	result, err := UploadImage(context.Background(), up, strings.NewReader("data"), 4, "photo.webp", "", UploadOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Path, "images/"), result.Path)
	assert.Equal(t, "image/webp", result.ContentType)
}

func TestUploadIcon(t *testing.T) {
	tests := []struct {
		name     string
		variant  string
		icon     string
		wantPath string
	}{
		{"tech variant", "tech", "react", "icons/tech/react.svg"},
		{"ui variant", "ui", "mail", "icons/ui/mail.svg"},
		{"unknown variant defaults to tech", "brand", "github", "icons/tech/github.svg"},
		{"existing extension kept", "tech", "rust.svg", "icons/tech/rust.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUploader{}
			result, err := UploadIcon(context.Background(), up, strings.NewReader("<svg/>"), 6, tt.variant, tt.icon)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, result.Path)
			assert.Equal(t, "image/svg+xml", result.ContentType)
		})
	}
}

func TestUploadDocument(t *testing.T) {
	up := &fakeUploader{}

	result, err := UploadDocument(context.Background(), up, strings.NewReader("%PDF"), 4, "resume.pdf",
		UploadOptions{Filename: "resume.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "documents/resume.pdf", result.Path)
	assert.Equal(t, "application/pdf", result.ContentType)
}
