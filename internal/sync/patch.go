package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/configstore"
	"github.com/jaq-h/portfolio-service/internal/content"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// patchableKeys are the content documents that carry media references.
var patchableKeys = []content.Key{content.KeyProjects, content.KeyMenu}

// PatchConfig rewrites media references in the remote content documents to
// point at freshly uploaded objects, matched by basename. Documents that fail
// to patch are reported; successfully patched documents are still written.
func (s *Service) PatchConfig(ctx context.Context, uploads []blob.UploadResult) error {
	if s.store == nil {
		return fmt.Errorf("config store not configured")
	}
	if len(uploads) == 0 {
		return nil
	}

	urlsByBasename := make(map[string]string, len(uploads))
	for _, upload := range uploads {
		urlsByBasename[path.Base(upload.Path)] = upload.URL
	}

	var items []configstore.Item
	var failed []string

	for _, key := range patchableKeys {
		raw, err := s.store.GetDocument(ctx, string(key))
		if err != nil {
			if s.store.IsNotFound(err) {
				s.log.Debug("no remote document to patch", logger.String("key", string(key)))
				continue
			}
			failed = append(failed, string(key))
			s.log.Error("failed to read document for patching",
				logger.String("key", string(key)),
				logger.Error(err),
			)
			continue
		}

		patched, count, err := patchDocument(raw, urlsByBasename)
		if err != nil {
			failed = append(failed, string(key))
			s.log.Error("failed to patch document",
				logger.String("key", string(key)),
				logger.Error(err),
			)
			continue
		}
		if count == 0 {
			s.log.Debug("no media references to update", logger.String("key", string(key)))
			continue
		}

		s.log.Info("patched media references",
			logger.String("key", string(key)),
			logger.Int("updated", count),
		)
		items = append(items, configstore.Item{
			Op:    configstore.OpUpsert,
			Key:   string(key),
			Value: patched,
		})
	}

	if len(items) > 0 {
		if err := s.store.SetDocuments(ctx, items); err != nil {
			return fmt.Errorf("write patched documents: %w", err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to patch documents: %s", strings.Join(failed, ", "))
	}
	return nil
}

// patchDocument walks the document's JSON tree and replaces string values
// whose basename matches an uploaded object. Returns the re-encoded document
// and the number of replacements made.
func patchDocument(raw []byte, urlsByBasename map[string]string) ([]byte, int, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("decode document: %w", err)
	}

	count := 0
	doc = patchValue(doc, urlsByBasename, &count)
	if count == 0 {
		return raw, 0, nil
	}

	patched, err := json.Marshal(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("encode patched document: %w", err)
	}
	return patched, count, nil
}

func patchValue(v any, urlsByBasename map[string]string, count *int) any {
	switch value := v.(type) {
	case string:
		if looksLikeMediaRef(value) {
			if url, ok := urlsByBasename[path.Base(value)]; ok && url != value {
				*count++
				return url
			}
		}
		return value
	case map[string]any:
		for k, child := range value {
			value[k] = patchValue(child, urlsByBasename, count)
		}
		return value
	case []any:
		for i, child := range value {
			value[i] = patchValue(child, urlsByBasename, count)
		}
		return value
	default:
		return v
	}
}

// looksLikeMediaRef filters plain prose out of the replacement candidates so
// a project description mentioning "logo.png" is not rewritten.
func looksLikeMediaRef(s string) bool {
	if s == "" || strings.ContainsAny(s, " \n\t") {
		return false
	}
	switch strings.ToLower(path.Ext(s)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".avif", ".svg", ".pdf":
		return true
	}
	return false
}
