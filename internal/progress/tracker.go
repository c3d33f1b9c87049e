// Package progress defines where cleared stages are remembered.
// Trackers are passed explicitly to play sessions; nothing reads global state.
package progress

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Tracker records which stages a player has cleared.
type Tracker interface {
	RecordCleared(ctx context.Context, stageID string) error
	IsCleared(ctx context.Context, stageID string) (bool, error)
}

// Lister is implemented by trackers that can enumerate cleared stages.
type Lister interface {
	Cleared(ctx context.Context) ([]string, error)
}

// Resetter is implemented by trackers that can forget a player's progress.
type Resetter interface {
	Reset(ctx context.Context) error
}

// ErrResetUnsupported is returned by Reset for trackers without a Reset method.
var ErrResetUnsupported = errors.New("progress: tracker cannot be reset")

// Reset forgets every clear held by t.
func Reset(ctx context.Context, t Tracker) error {
	r, ok := t.(Resetter)
	if !ok {
		return ErrResetUnsupported
	}
	return r.Reset(ctx)
}

// ClearSet returns the cleared stages as a set. Trackers that cannot list
// are queried one stage at a time.
func ClearSet(ctx context.Context, t Tracker, stageIDs []string) (map[string]bool, error) {
	set := make(map[string]bool)

	if l, ok := t.(Lister); ok {
		ids, err := l.Cleared(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			set[id] = true
		}
		return set, nil
	}

	for _, id := range stageIDs {
		ok, err := t.IsCleared(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			set[id] = true
		}
	}
	return set, nil
}

// Memory is an in-process tracker. The zero value is not usable; use NewMemory.
type Memory struct {
	mu      sync.RWMutex
	cleared map[string]struct{}
}

// NewMemory creates an empty in-memory tracker.
func NewMemory() *Memory {
	return &Memory{cleared: make(map[string]struct{})}
}

// RecordCleared marks a stage as cleared. Recording twice is a no-op.
func (m *Memory) RecordCleared(_ context.Context, stageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared[stageID] = struct{}{}
	return nil
}

// IsCleared reports whether the stage has been cleared.
func (m *Memory) IsCleared(_ context.Context, stageID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cleared[stageID]
	return ok, nil
}

// Cleared returns every cleared stage ID, sorted.
func (m *Memory) Cleared(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.cleared))
	for id := range m.cleared {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Reset forgets every clear.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.cleared)
	return nil
}

var (
	_ Tracker  = (*Memory)(nil)
	_ Lister   = (*Memory)(nil)
	_ Resetter = (*Memory)(nil)
)
