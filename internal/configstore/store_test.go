package configstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Second), mr
}

func TestGetDocument(t *testing.T) {
	store, mr := testStore(t)
	mr.Set("content:menu", `{"profile":{"name":"Jacques"}}`)

	raw, err := store.GetDocument(context.Background(), "menu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"profile":{"name":"Jacques"}}`, string(raw))
}

func TestGetDocumentNotFound(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.GetDocument(context.Background(), "menu")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, store.IsNotFound(err))
}

func TestSetDocumentsBatch(t *testing.T) {
	store, mr := testStore(t)
	mr.Set("content:about", `{"old":true}`)

	err := store.SetDocuments(context.Background(), []Item{
		{Op: OpUpsert, Key: "menu", Value: []byte(`{"v":1}`)},
		{Op: OpUpsert, Key: "projects", Value: []byte(`{"v":2}`)},
		{Op: OpDelete, Key: "about"},
	})
	require.NoError(t, err)

	menu, err := mr.Get("content:menu")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, menu)

	assert.False(t, mr.Exists("content:about"))
}

func TestSetDocumentsLastWriteWins(t *testing.T) {
	store, mr := testStore(t)

	err := store.SetDocuments(context.Background(), []Item{
		{Op: OpUpsert, Key: "menu", Value: []byte(`{"v":1}`)},
		{Op: OpUpsert, Key: "menu", Value: []byte(`{"v":2}`)},
	})
	require.NoError(t, err)

	menu, err := mr.Get("content:menu")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, menu)
}

func TestSetDocumentsRejectsEmptyUpsert(t *testing.T) {
	store, _ := testStore(t)

	err := store.SetDocuments(context.Background(), []Item{
		{Op: OpUpsert, Key: "menu"},
	})
	assert.Error(t, err)
}

func TestSetDocumentsRejectsUnknownOp(t *testing.T) {
	store, _ := testStore(t)

	err := store.SetDocuments(context.Background(), []Item{
		{Op: "merge", Key: "menu", Value: []byte(`{}`)},
	})
	assert.Error(t, err)
}

func TestSetDocumentsEmptyBatchIsNoop(t *testing.T) {
	store, _ := testStore(t)
	assert.NoError(t, store.SetDocuments(context.Background(), nil))
}

func TestListKeys(t *testing.T) {
	store, mr := testStore(t)
	mr.Set("content:menu", `{}`)
	mr.Set("content:projects", `{}`)
	mr.Set("render:/", "unrelated")

	keys, err := store.ListKeys(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"menu", "projects"}, keys)
}
