package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// UploadResult describes one completed upload.
type UploadResult struct {
	// OriginalName is the filename as supplied by the caller.
	OriginalName string `json:"originalName"`
	// Path is the object path within the bucket.
	Path string `json:"pathname"`
	// URL is the public URL of the object.
	URL string `json:"url"`
	// ContentType is the stored content type.
	ContentType string `json:"contentType"`
	// Size is the object size in bytes.
	Size int64 `json:"size"`
}

// Uploader is the put surface the upload helpers need. Satisfied by *Client;
// tests and dry runs substitute fakes.
type Uploader interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
}

// UploadOptions tune a single upload.
type UploadOptions struct {
	// Filename overrides the original name. When empty, the original name is
	// kept and a short random suffix is appended to avoid collisions.
	Filename string
	// Folder is the path prefix within the bucket.
	Folder string
	// ContentType overrides extension-based inference.
	ContentType string
}

// validImageTypes are the content types accepted for image uploads.
var validImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/avif":    true,
}

// ContentTypeFor infers a content type from a filename extension.
func ContentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(path.Ext(filename)); ct != "" {
		return ct
	}
	// mime does not know avif on all platforms
	if strings.EqualFold(path.Ext(filename), ".avif") {
		return "image/avif"
	}
	return "application/octet-stream"
}

// objectPath builds the destination path for an upload. Explicit filenames
// are used as-is; otherwise a short random suffix keeps re-uploads of the
// same name from clobbering each other.
func objectPath(folder, original, explicit string) string {
	name := explicit
	if name == "" {
		ext := path.Ext(original)
		base := strings.TrimSuffix(original, ext)
		name = fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
	}
	if folder == "" {
		return name
	}
	return strings.TrimSuffix(folder, "/") + "/" + name
}

// UploadFile uploads arbitrary bytes and returns the result record.
func UploadFile(ctx context.Context, up Uploader, r io.Reader, size int64, originalName string, opts UploadOptions) (*UploadResult, error) {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(originalName)
	}

	objPath := objectPath(opts.Folder, originalName, opts.Filename)
	url, err := up.Put(ctx, objPath, r, size, contentType)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		OriginalName: originalName,
		Path:         objPath,
		URL:          url,
		ContentType:  contentType,
		Size:         size,
	}, nil
}

// UploadImage uploads an image after validating its content type.
func UploadImage(ctx context.Context, up Uploader, r io.Reader, size int64, originalName, folder string, opts UploadOptions) (*UploadResult, error) {
	if folder == "" {
		folder = "images"
	}
	opts.Folder = folder

	contentType := opts.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(originalName)
	}
	if !validImageTypes[contentType] {
		return nil, fmt.Errorf("blob: invalid image type %q", contentType)
	}
	opts.ContentType = contentType

	return UploadFile(ctx, up, r, size, originalName, opts)
}

// UploadIcon uploads an SVG icon under icons/<variant>/<name>.svg.
// Icon names are stable identifiers, so no random suffix is applied.
func UploadIcon(ctx context.Context, up Uploader, r io.Reader, size int64, variant, name string) (*UploadResult, error) {
	if variant != "ui" {
		variant = "tech"
	}
	filename := name
	if !strings.HasSuffix(filename, ".svg") {
		filename += ".svg"
	}

	return UploadFile(ctx, up, r, size, filename, UploadOptions{
		Folder:      "icons/" + variant,
		Filename:    filename,
		ContentType: "image/svg+xml",
	})
}

// UploadDocument uploads a document (resume PDF etc.) under documents/.
func UploadDocument(ctx context.Context, up Uploader, r io.Reader, size int64, originalName string, opts UploadOptions) (*UploadResult, error) {
	opts.Folder = "documents"
	return UploadFile(ctx, up, r, size, originalName, opts)
}
