package sync

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaq-h/portfolio-service/internal/logger"
)

// recordingLogger captures info messages so tests can assert log output.
type recordingLogger struct {
	logger.Logger
	infos []string
}

func (l *recordingLogger) Info(msg string, _ ...logger.Field) {
	l.infos = append(l.infos, msg)
}

// fakeStorage records puts and serves a scripted listing.
type fakeStorage struct {
	existing []string
	puts     []string
}

func (f *fakeStorage) Put(_ context.Context, path string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.puts = append(f.puts, path)
	return "https://media.example.com/" + path, nil
}

func (f *fakeStorage) List(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for _, path := range f.existing {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			out = append(out, path)
		}
	}
	return out, nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}

func mediaTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "images", "photo.png"))
	writeFile(t, filepath.Join(dir, "images", "projects", "shot.webp"))
	writeFile(t, filepath.Join(dir, "images", "notes.txt")) // not media
	writeFile(t, filepath.Join(dir, "icons", "tech", "react.svg"))
	return dir
}

func TestSyncMediaUploadsTree(t *testing.T) {
	storage := &fakeStorage{}
	svc := New(storage, nil, logger.NewNop())

	results, err := svc.SyncMedia(context.Background(), MediaOptions{
		SourceDir: mediaTree(t),
		Images:    true,
		Icons:     true,
	})
	require.NoError(t, err)

	var paths []string
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	assert.ElementsMatch(t, []string{
		"images/photo.png",
		"images/projects/shot.webp",
		"icons/tech/react.svg",
	}, paths)
	assert.ElementsMatch(t, paths, storage.puts)
}

func TestSyncMediaDryRunWritesNothing(t *testing.T) {
	storage := &fakeStorage{}
	log := &recordingLogger{Logger: logger.NewNop()}
	svc := New(storage, nil, log)

	results, err := svc.SyncMedia(context.Background(), MediaOptions{
		SourceDir: mediaTree(t),
		Images:    true,
		Icons:     true,
		DryRun:    true,
	})
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Empty(t, storage.puts, "dry run must not touch storage")

	// One planned-upload line per media file in the tree.
	var planned int
	for _, msg := range log.infos {
		if msg == "dry run: would upload" {
			planned++
		}
	}
	assert.Equal(t, 3, planned)
}

func TestSyncMediaSkipsExisting(t *testing.T) {
	storage := &fakeStorage{existing: []string{"images/photo.png"}}
	svc := New(storage, nil, logger.NewNop())

	results, err := svc.SyncMedia(context.Background(), MediaOptions{
		SourceDir: mediaTree(t),
		Images:    true,
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "images/projects/shot.webp", results[0].Path)
}

func TestSyncMediaForceReuploads(t *testing.T) {
	storage := &fakeStorage{existing: []string{"images/photo.png"}}
	svc := New(storage, nil, logger.NewNop())

	results, err := svc.SyncMedia(context.Background(), MediaOptions{
		SourceDir: mediaTree(t),
		Images:    true,
		Force:     true,
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSyncMediaMissingTreeIsEmpty(t *testing.T) {
	storage := &fakeStorage{}
	svc := New(storage, nil, logger.NewNop())

	results, err := svc.SyncMedia(context.Background(), MediaOptions{
		SourceDir: t.TempDir(),
		Images:    true,
		Icons:     true,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSyncMediaResume(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.pdf")
	writeFile(t, resume)

	storage := &fakeStorage{}
	svc := New(storage, nil, logger.NewNop())

	results, err := svc.SyncMedia(context.Background(), MediaOptions{
		SourceDir:  dir,
		ResumePath: resume,
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "documents/resume.pdf", results[0].Path)
	assert.Equal(t, "application/pdf", results[0].ContentType)
}
