// Package blob wraps the S3-compatible object storage used for site media and
// documents. Objects are publicly readable and addressed through a configured
// public base URL.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base URL objects are served from, e.g.
	// "https://media.example.com". Deletes are only honored for URLs under it.
	PublicURL string
}

// ErrForeignURL is returned when a delete targets a URL outside the
// configured public base.
var ErrForeignURL = errors.New("blob: url does not belong to the storage domain")

// Client performs object storage operations.
type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

// NewClient creates an object storage client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("blob: endpoint and bucket are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob client: %w", err)
	}

	return &Client{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// PublicBaseURL returns the base URL objects are served from.
func (c *Client) PublicBaseURL() string { return c.publicURL }

// URLFor returns the public URL for an object path.
func (c *Client) URLFor(path string) string {
	return c.publicURL + "/" + strings.TrimPrefix(path, "/")
}

// PathFor converts a public URL back into an object path, validating that the
// URL actually belongs to the storage domain.
func (c *Client) PathFor(url string) (string, error) {
	prefix := c.publicURL + "/"
	if c.publicURL == "" || !strings.HasPrefix(url, prefix) {
		return "", ErrForeignURL
	}
	return strings.TrimPrefix(url, prefix), nil
}

// Put uploads an object and returns its public URL.
func (c *Client) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", path, err)
	}
	return c.URLFor(path), nil
}

// List returns the object paths under a prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	for obj := range c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, obj.Err)
		}
		paths = append(paths, obj.Key)
	}
	return paths, nil
}

// Delete removes the object behind a public URL.
func (c *Client) Delete(ctx context.Context, url string) error {
	path, err := c.PathFor(url)
	if err != nil {
		return err
	}
	if err := c.mc.RemoveObject(ctx, c.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ok, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", c.bucket)
	}
	return nil
}
