// Package sync implements the operator-invoked content tooling: uploading
// local media to object storage, patching the remote config store with the
// resulting URLs, and pushing local content documents.
package sync

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/configstore"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// Storage is the object storage surface the sync service needs.
// Satisfied by *blob.Client; tests substitute fakes.
type Storage interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// DocumentStore is the config store surface used for patching and pushing.
// Satisfied by *configstore.Store.
type DocumentStore interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	SetDocuments(ctx context.Context, items []configstore.Item) error
	IsNotFound(err error) bool
}

// Supported media extensions.
var (
	imageExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true,
		".gif": true, ".webp": true, ".avif": true,
	}
	iconExtensions = map[string]bool{".svg": true}
)

// MediaOptions controls one media sync run.
type MediaOptions struct {
	// SourceDir is the local root holding images/ and icons/.
	SourceDir string
	// Images syncs the images/ tree.
	Images bool
	// Icons syncs the icons/ tree.
	Icons bool
	// ResumePath optionally uploads one local document to documents/.
	ResumePath string
	// DryRun enumerates and logs planned uploads without any network write.
	DryRun bool
	// Force re-uploads files already present remotely.
	Force bool
}

// Service runs sync operations.
type Service struct {
	storage Storage
	store   DocumentStore
	log     logger.Logger
}

// New creates a sync service. store may be nil when config patching and
// content pushing are not needed.
func New(storage Storage, store DocumentStore, log logger.Logger) *Service {
	return &Service{storage: storage, store: store, log: log}
}

// SyncMedia enumerates local media, uploads what is missing remotely, and
// returns the upload records. In dry-run mode it performs the enumeration and
// logging only.
func (s *Service) SyncMedia(ctx context.Context, opts MediaOptions) ([]blob.UploadResult, error) {
	var plan []plannedUpload

	if opts.Images {
		uploads, err := planDir(filepath.Join(opts.SourceDir, "images"), "images", imageExtensions)
		if err != nil {
			return nil, err
		}
		plan = append(plan, uploads...)
	}
	if opts.Icons {
		uploads, err := planDir(filepath.Join(opts.SourceDir, "icons"), "icons", iconExtensions)
		if err != nil {
			return nil, err
		}
		plan = append(plan, uploads...)
	}
	if opts.ResumePath != "" {
		plan = append(plan, plannedUpload{
			localPath:  opts.ResumePath,
			objectPath: "documents/" + filepath.Base(opts.ResumePath),
		})
	}

	if !opts.Force && !opts.DryRun {
		var err error
		plan, err = s.filterExisting(ctx, plan)
		if err != nil {
			return nil, err
		}
	}

	results := make([]blob.UploadResult, 0, len(plan))
	for _, upload := range plan {
		if opts.DryRun {
			s.log.Info("dry run: would upload",
				logger.String("local", upload.localPath),
				logger.String("remote", upload.objectPath),
			)
			continue
		}

		result, err := s.uploadOne(ctx, upload)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
		s.log.Info("uploaded",
			logger.String("local", upload.localPath),
			logger.String("url", result.URL),
			logger.Int64("size", result.Size),
		)
	}

	return results, nil
}

type plannedUpload struct {
	localPath  string
	objectPath string
}

// planDir walks a local tree and plans uploads for files with the allowed
// extensions, preserving relative paths under the remote prefix.
func planDir(dir, prefix string, extensions map[string]bool) ([]plannedUpload, error) {
	var plan []plannedUpload

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		plan = append(plan, plannedUpload{
			localPath:  path,
			objectPath: prefix + "/" + filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}
	return plan, nil
}

// filterExisting drops planned uploads whose object path is already present.
func (s *Service) filterExisting(ctx context.Context, plan []plannedUpload) ([]plannedUpload, error) {
	if len(plan) == 0 {
		return plan, nil
	}

	existing := make(map[string]bool)
	for _, prefix := range []string{"images/", "icons/", "documents/"} {
		paths, err := s.storage.List(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("list existing objects: %w", err)
		}
		for _, path := range paths {
			existing[path] = true
		}
	}

	kept := plan[:0]
	for _, upload := range plan {
		if existing[upload.objectPath] {
			s.log.Debug("skipping existing object",
				logger.String("remote", upload.objectPath),
			)
			continue
		}
		kept = append(kept, upload)
	}
	return kept, nil
}

func (s *Service) uploadOne(ctx context.Context, upload plannedUpload) (*blob.UploadResult, error) {
	f, err := os.Open(upload.localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", upload.localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", upload.localPath, err)
	}

	contentType := blob.ContentTypeFor(upload.localPath)
	url, err := s.storage.Put(ctx, upload.objectPath, f, info.Size(), contentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", upload.localPath, err)
	}

	return &blob.UploadResult{
		OriginalName: filepath.Base(upload.localPath),
		Path:         upload.objectPath,
		URL:          url,
		ContentType:  contentType,
		Size:         info.Size(),
	}, nil
}
