// Package configstore implements the remote content store over Redis.
// The API process connects with a read-capable credential; the batch upsert
// write path is only exercised by the sync tooling, which holds a separate
// write credential.
package configstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the store connection configuration.
type Config struct {
	Address  string
	Username string
	Password string
	DB       int
}

// ErrEmptyAddress is returned when the store address is not configured.
var ErrEmptyAddress = errors.New("config store address is required")

// connectionTimeout is the timeout for verifying the store connection.
const connectionTimeout = 5 * time.Second

// NewClient creates a Redis client for the store and verifies the connection.
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("config store ping failed: %w", err)
	}

	return client, nil
}
