// Package redis implements a progress tracker backed by a Redis set.
package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-pipes/internal/progress"
)

const defaultPrefix = "pipes:progress:"

// Tracker stores cleared stage IDs in a single Redis set per player.
type Tracker struct {
	client *backend.Client
	prefix string
	player string
	ttl    time.Duration
}

type Option func(*Tracker)

// WithTTL sets the expiration for the cleared set. It is refreshed on every clear.
func WithTTL(ttl time.Duration) Option {
	return func(t *Tracker) {
		t.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(t *Tracker) {
		t.prefix = prefix
	}
}

// WithPlayer scopes progress to a player, e.g. an SSH user name.
func WithPlayer(player string) Option {
	return func(t *Tracker) {
		t.player = player
	}
}

// New creates a tracker with its own client.
func New(address, password string, db int, opts ...Option) *Tracker {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a tracker from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Tracker {
	t := &Tracker{
		client: client,
		prefix: defaultPrefix,
		player: "local",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// ForPlayer returns a tracker sharing the client but scoped to another player.
func (t *Tracker) ForPlayer(player string) *Tracker {
	cp := *t
	cp.player = player
	return &cp
}

func (t *Tracker) key() string {
	return t.prefix + t.player + ":cleared"
}

// Ping checks the connection.
func (t *Tracker) Ping(ctx context.Context) error {
	if err := t.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("progress: redis ping: %w", err)
	}
	return nil
}

// RecordCleared adds the stage to the cleared set.
func (t *Tracker) RecordCleared(ctx context.Context, stageID string) error {
	pipe := t.client.Pipeline()
	pipe.SAdd(ctx, t.key(), stageID)
	if t.ttl > 0 {
		pipe.Expire(ctx, t.key(), t.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("progress: failed to record clear: %w", err)
	}
	return nil
}

// IsCleared reports whether the stage is in the cleared set.
func (t *Tracker) IsCleared(ctx context.Context, stageID string) (bool, error) {
	ok, err := t.client.SIsMember(ctx, t.key(), stageID).Result()
	if err != nil {
		return false, fmt.Errorf("progress: failed to query clear: %w", err)
	}
	return ok, nil
}

// Cleared returns all cleared stage IDs, sorted.
func (t *Tracker) Cleared(ctx context.Context) ([]string, error) {
	ids, err := t.client.SMembers(ctx, t.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("progress: failed to list clears: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Reset forgets every clear for this player.
func (t *Tracker) Reset(ctx context.Context) error {
	if err := t.client.Del(ctx, t.key()).Err(); err != nil {
		return fmt.Errorf("progress: failed to reset: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (t *Tracker) Close() error {
	return t.client.Close()
}

var (
	_ progress.Tracker  = (*Tracker)(nil)
	_ progress.Lister   = (*Tracker)(nil)
	_ progress.Resetter = (*Tracker)(nil)
)
