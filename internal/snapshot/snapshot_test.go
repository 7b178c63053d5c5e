package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaq-h/portfolio-service/internal/content"
)

func writeSnapshot(t *testing.T, dir string, key content.Key, body string) {
	t.Helper()
	path := filepath.Join(dir, key.SnapshotFilename())
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestTryResolveReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, content.KeyMenu, `{"profile":{"name":"Snapshot"}}`)

	raw, ok, err := New(dir).TryResolve(context.Background(), content.KeyMenu)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"profile":{"name":"Snapshot"}}`, string(raw))
}

func TestTryResolveMissingFileIsMiss(t *testing.T) {
	_, ok, err := New(t.TempDir()).TryResolve(context.Background(), content.KeyMenu)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTryResolveInvalidJSONIsError(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, content.KeyAbout, `{"pageHeader":`)

	_, ok, err := New(dir).TryResolve(context.Background(), content.KeyAbout)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestTryResolveIconsAlwaysMiss(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, content.KeyIcons, `{"icons":[]}`)

	_, ok, err := New(dir).TryResolve(context.Background(), content.KeyIcons)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBundledSnapshotsDecodeCleanly(t *testing.T) {
	// The documents shipped in the repository must decode into their types.
	p := New(filepath.Join("..", "..", "content"))
	for _, key := range []content.Key{
		content.KeyMenu, content.KeyProjects, content.KeyAbout, content.KeyContact,
	} {
		raw, ok, err := p.TryResolve(context.Background(), key)
		require.NoError(t, err, "key %s", key)
		assert.True(t, ok, "key %s", key)
		assert.NotEmpty(t, raw, "key %s", key)
	}
}
