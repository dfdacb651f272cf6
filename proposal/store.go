package proposal

import (
	"errors"
	"fmt"
	"sync"

	"lmt-crm/models"
)

var (
	// ErrDocumentNotFound is returned for unknown reference ids.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrOperationInFlight is returned when a long-running operation
	// (normalization, export) is already working on the document. The
	// caller should retry after the operation settles rather than race
	// it for the same image slot or output file.
	ErrOperationInFlight = errors.New("operation already in flight for this document")
)

// Store holds the in-session documents. Each document is exclusively
// owned by the editing session; all access goes through the store's
// lock so a mutation can never observe a half-applied peer mutation.
type Store struct {
	mu   sync.Mutex
	docs map[string]*models.DocumentModel
	busy map[string]string // referenceID -> operation name
}

func NewStore() *Store {
	return &Store{
		docs: make(map[string]*models.DocumentModel),
		busy: make(map[string]string),
	}
}

// Put registers a freshly built document under its reference id.
func (s *Store) Put(m *models.DocumentModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[m.ReferenceID] = m
}

// Get returns a deep copy of the document, safe to render or serialize
// without holding the store lock.
func (s *Store) Get(ref string) (*models.DocumentModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.docs[ref]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", ref, ErrDocumentNotFound)
	}
	return snapshot(m), nil
}

// Update applies fn to the live document under the store lock. If the
// document is busy with a long-running operation the update is refused;
// if fn returns an error the document is left exactly as it was.
func (s *Store) Update(ref string, fn func(*models.DocumentModel) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.docs[ref]
	if !ok {
		return fmt.Errorf("document %q: %w", ref, ErrDocumentNotFound)
	}
	if op, inFlight := s.busy[ref]; inFlight {
		return fmt.Errorf("%s: %w", op, ErrOperationInFlight)
	}
	work := snapshot(m)
	if err := fn(work); err != nil {
		return err
	}
	s.docs[ref] = work
	return nil
}

// Begin marks the document busy with the named operation. A second
// Begin before End fails fast instead of letting two operations race.
func (s *Store) Begin(ref, operation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[ref]; !ok {
		return fmt.Errorf("document %q: %w", ref, ErrDocumentNotFound)
	}
	if op, inFlight := s.busy[ref]; inFlight {
		return fmt.Errorf("%s: %w", op, ErrOperationInFlight)
	}
	s.busy[ref] = operation
	return nil
}

// End clears the busy mark. Safe to call after a failed operation;
// failures must always release the document.
func (s *Store) End(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, ref)
}

// FinishWith applies fn on behalf of the operation currently holding
// the busy slot, then releases it. Used by normalization to write the
// produced payload into the day entry it guarded.
func (s *Store) FinishWith(ref string, fn func(*models.DocumentModel) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer delete(s.busy, ref)
	m, ok := s.docs[ref]
	if !ok {
		return fmt.Errorf("document %q: %w", ref, ErrDocumentNotFound)
	}
	work := snapshot(m)
	if err := fn(work); err != nil {
		return err
	}
	s.docs[ref] = work
	return nil
}

// Delete removes the document from the session.
func (s *Store) Delete(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, ref)
	delete(s.busy, ref)
}

// snapshot deep-copies a document so callers never share day or tag
// slices with the stored instance.
func snapshot(m *models.DocumentModel) *models.DocumentModel {
	out := *m
	out.Days = cloneDays(m.Days)
	out.Inclusions = append([]string(nil), m.Inclusions...)
	out.Exclusions = append([]string(nil), m.Exclusions...)
	if m.Pricing != nil {
		p := *m.Pricing
		out.Pricing = &p
	}
	return &out
}
