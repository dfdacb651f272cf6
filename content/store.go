// Package content holds the agency's UI copy overrides: a flat mapping
// from content-slot key to replacement string. The store is process-wide
// with a single mutation entry point; every write is immediately flushed
// to the persister so a restart never loses the last edit.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// SchemaVersion is embedded in the persisted envelope so future layouts
// can be migrated. The original payload had no version field at all.
const SchemaVersion = 1

// StateKey is the persisted key for the override mapping.
const StateKey = "lmt_app_content"

// Persister is the storage boundary. Writes are last-write-wins whole
// snapshots; there are no merge semantics.
type Persister interface {
	SaveState(ctx context.Context, key string, value []byte) error
	LoadState(ctx context.Context, key string) ([]byte, error)
}

type envelope struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// Store is the process-wide override map. Values are accepted as-is:
// arbitrary strings and URLs, never validated, never expiring.
type Store struct {
	mu        sync.RWMutex
	slots     map[string]string
	persister Persister
}

func NewStore(persister Persister) *Store {
	return &Store{
		slots:     make(map[string]string),
		persister: persister,
	}
}

// Load hydrates the store from persisted state. A missing or empty
// payload starts the store empty; that is the first-run case.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.persister.LoadState(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("loading content overrides: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	var env envelope
	err = json.Unmarshal(raw, &env)
	if err != nil || (env.Version == 0 && env.Slots == nil) {
		// Pre-versioned payloads were a bare map; accept them once and
		// rewrite in the new envelope on the next Set.
		var legacy map[string]string
		if legacyErr := json.Unmarshal(raw, &legacy); legacyErr != nil {
			return fmt.Errorf("parsing content overrides: %w", legacyErr)
		}
		env.Slots = legacy
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if env.Slots != nil {
		s.slots = env.Slots
	}
	log.Info().Int("slots", len(s.slots)).Msg("content overrides loaded")
	return nil
}

// Set is the single mutation entry point. The in-memory map and the
// persisted snapshot are updated together; if the flush fails the
// in-memory write is rolled back so memory and storage never diverge.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.slots[key]
	s.slots[key] = value

	if err := s.flushLocked(ctx); err != nil {
		if had {
			s.slots[key] = prev
		} else {
			delete(s.slots, key)
		}
		return fmt.Errorf("flushing content override %q: %w", key, err)
	}
	return nil
}

// Get returns the override for key, or fallback when no override exists.
func (s *Store) Get(key, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.slots[key]; ok {
		return v
	}
	return fallback
}

// All returns a copy of the mapping for the admin panel.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.slots))
	for k, v := range s.slots {
		out[k] = v
	}
	return out
}

func (s *Store) flushLocked(ctx context.Context) error {
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Slots: s.slots})
	if err != nil {
		return err
	}
	return s.persister.SaveState(ctx, StateKey, raw)
}
