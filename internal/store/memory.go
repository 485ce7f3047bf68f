// internal/store/memory.go
//
// Store interface for saved sessions plus its in-memory implementation.
// The CLI keeps sessions in the in-memory store when the database is
// ":memory:"; nothing outlives the process in that case anyway.
//
// Characteristics:
//   - Records are keyed by ID in a map and copied on the way in and out.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("session not found")

// Record is a saved session.
type Record struct {
	ID        string        `json:"id"`
	Profile   string        `json:"profile"` // empty for guests
	Snapshot  game.Snapshot `json:"snapshot"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ListOptions filters List results.
type ListOptions struct {
	Profile       string // exact match; empty lists guest records only unless AllProfiles is set
	AllProfiles   bool
	ResumableOnly bool
	Limit         int // 0 means no limit
}

func (o ListOptions) match(r Record) bool {
	if !o.AllProfiles && r.Profile != o.Profile {
		return false
	}
	if o.ResumableOnly && !r.Snapshot.Resumable() {
		return false
	}
	return true
}

// Store defines the persistence interface for sessions.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Store interface {
	// Save inserts or replaces a record. CreatedAt is kept from the first save.
	Save(ctx context.Context, r Record) error

	// Get retrieves a record by ID or returns ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// Delete removes a record. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns matching records, most recently updated first.
	List(ctx context.Context, opts ListOptions) ([]Record, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards records
	records map[string]Record // keyed by Record.ID
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]Record), now: time.Now}
}

// Save adds or updates the record in the map.
func (m *memory) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("save session: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()
	if old, ok := m.records[r.ID]; ok {
		r.CreatedAt = old.CreatedAt
	} else if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	m.records[r.ID] = cloneRecord(r)
	return nil
}

// Get looks up a record by ID.
func (m *memory) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[id]; ok {
		return cloneRecord(r), nil
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes a record by ID.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.records, id)
	return nil
}

// List filters and sorts the records.
func (m *memory) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if opts.match(r) {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// cloneRecord copies the slices inside a snapshot so callers cannot mutate
// stored state. Combinations are immutable and can be shared.
func cloneRecord(r Record) Record {
	r.Snapshot.Entries = append([]game.Entry(nil), r.Snapshot.Entries...)
	r.Snapshot.Redo = append([]game.Entry(nil), r.Snapshot.Redo...)
	if r.Snapshot.Secret != nil {
		s := *r.Snapshot.Secret
		r.Snapshot.Secret = &s
	}
	return r
}

// NewID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func NewID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
