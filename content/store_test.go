package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersister struct {
	states map[string][]byte
	fail   bool
	saves  int
}

func newFakePersister() *fakePersister {
	return &fakePersister{states: make(map[string][]byte)}
}

func (p *fakePersister) SaveState(ctx context.Context, key string, value []byte) error {
	if p.fail {
		return errors.New("storage unavailable")
	}
	p.saves++
	p.states[key] = append([]byte(nil), value...)
	return nil
}

func (p *fakePersister) LoadState(ctx context.Context, key string) ([]byte, error) {
	return p.states[key], nil
}

func TestSetPersistsAndReloads(t *testing.T) {
	p := newFakePersister()
	s := NewStore(p)

	require.NoError(t, s.Set(context.Background(), "menu_leads", "Pipeline"))
	assert.Equal(t, 1, p.saves, "every write flushes immediately")

	// A fresh store over the same persister sees the override.
	s2 := NewStore(p)
	require.NoError(t, s2.Load(context.Background()))
	assert.Equal(t, "Pipeline", s2.Get("menu_leads", "Leads"))
}

func TestGetFallback(t *testing.T) {
	s := NewStore(newFakePersister())
	assert.Equal(t, "Leads", s.Get("menu_leads", "Leads"))
}

func TestSetRollsBackOnFlushFailure(t *testing.T) {
	p := newFakePersister()
	s := NewStore(p)
	require.NoError(t, s.Set(context.Background(), "menu_leads", "Pipeline"))

	p.fail = true
	err := s.Set(context.Background(), "menu_leads", "Broken")
	require.Error(t, err)
	// Memory never diverges from storage.
	assert.Equal(t, "Pipeline", s.Get("menu_leads", ""))

	err = s.Set(context.Background(), "brand_name", "LMT Luxe")
	require.Error(t, err)
	assert.Equal(t, "fallback", s.Get("brand_name", "fallback"))
}

func TestLoadEnvelopeIsVersioned(t *testing.T) {
	p := newFakePersister()
	s := NewStore(p)
	require.NoError(t, s.Set(context.Background(), "brand_name", "LMT"))

	var env envelope
	require.NoError(t, json.Unmarshal(p.states[StateKey], &env))
	assert.Equal(t, SchemaVersion, env.Version)
	assert.Equal(t, "LMT", env.Slots["brand_name"])
}

func TestLoadAcceptsLegacyBareMap(t *testing.T) {
	p := newFakePersister()
	p.states[StateKey] = []byte(`{"menu_leads":"Pipeline"}`)

	s := NewStore(p)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, "Pipeline", s.Get("menu_leads", ""))
}

func TestLoadEmptyStateStartsEmpty(t *testing.T) {
	s := NewStore(newFakePersister())
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.All())
}

func TestAllReturnsCopy(t *testing.T) {
	s := NewStore(newFakePersister())
	require.NoError(t, s.Set(context.Background(), "a", "1"))
	m := s.All()
	m["a"] = "tampered"
	assert.Equal(t, "1", s.Get("a", ""))
}
