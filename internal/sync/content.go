package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaq-h/portfolio-service/internal/configstore"
	"github.com/jaq-h/portfolio-service/internal/content"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// PushContent reads local content documents from dir and writes them to the
// remote store as a single batch. keys limits the push; empty means all
// known content keys. Missing local files are skipped with a warning so a
// partial content directory can still be pushed.
func (s *Service) PushContent(ctx context.Context, dir string, keys []content.Key) error {
	if s.store == nil {
		return fmt.Errorf("config store not configured")
	}
	if len(keys) == 0 {
		keys = content.Keys()
	}

	var items []configstore.Item
	for _, key := range keys {
		path := filepath.Join(dir, key.SnapshotFilename())

		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				s.log.Warn("no local document, skipping",
					logger.String("key", string(key)),
					logger.String("path", path),
				)
				continue
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("%s: not valid JSON", path)
		}

		items = append(items, configstore.Item{
			Op:    configstore.OpUpsert,
			Key:   string(key),
			Value: raw,
		})
	}

	if len(items) == 0 {
		return fmt.Errorf("no local documents found in %s", dir)
	}

	if err := s.store.SetDocuments(ctx, items); err != nil {
		return fmt.Errorf("push content: %w", err)
	}
	s.log.Info("pushed content documents", logger.Int("count", len(items)))
	return nil
}
