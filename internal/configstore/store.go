package configstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces content documents inside the store.
const keyPrefix = "content:"

// ErrNotFound is returned when a key has no document.
var ErrNotFound = errors.New("config store: document not found")

// Operation names accepted by the batch upsert path.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// Item is one entry of a batch write: an operation, a document key, and the
// raw document value (ignored for deletes).
type Item struct {
	Op    string `json:"operation"`
	Key   string `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// Store reads and writes content documents. Reads are bounded by the
// configured timeout; callers may tighten it further through their context.
type Store struct {
	client  *redis.Client
	timeout time.Duration
}

// New creates a store around an established client.
func New(client *redis.Client, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{client: client, timeout: timeout}
}

// Ping verifies store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// GetDocument returns the raw document stored for key, or ErrNotFound.
func (s *Store) GetDocument(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %q: %w", key, err)
	}
	return raw, nil
}

// IsNotFound reports whether err is a document miss rather than a read failure.
func (s *Store) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// SetDocuments applies a batch of upserts/deletes in one pipeline.
// Last write wins; content edits are infrequent enough that no further
// coordination is needed.
func (s *Store) SetDocuments(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, item := range items {
		switch item.Op {
		case OpUpsert:
			if len(item.Value) == 0 {
				return fmt.Errorf("upsert %q: empty value", item.Key)
			}
			pipe.Set(ctx, keyPrefix+item.Key, item.Value, 0)
		case OpDelete:
			pipe.Del(ctx, keyPrefix+item.Key)
		default:
			return fmt.Errorf("unknown operation %q for key %q", item.Op, item.Key)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("batch write: %w", err)
	}
	return nil
}

// ListKeys returns the document keys currently present in the store.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(keyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}
