// Package snapshot serves the bundled local content documents, the middle
// tier of the content fallback chain.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaq-h/portfolio-service/internal/content"
)

// Provider reads content documents from JSON files shipped alongside the
// binary. A missing or malformed file is a miss, never a hard failure.
type Provider struct {
	dir string
}

// New creates a snapshot provider rooted at dir.
func New(dir string) *Provider {
	return &Provider{dir: dir}
}

// Name identifies the snapshot tier.
func (p *Provider) Name() string { return content.TierSnapshot }

// TryResolve reads the snapshot file for key. Icons have no snapshot file,
// so icon lookups always miss and the empty default set applies.
func (p *Provider) TryResolve(_ context.Context, key content.Key) (json.RawMessage, bool, error) {
	if key == content.KeyIcons {
		return nil, false, nil
	}

	path := filepath.Join(p.dir, key.SnapshotFilename())
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if !json.Valid(raw) {
		return nil, false, fmt.Errorf("snapshot %s is not valid JSON", path)
	}
	return raw, true, nil
}
