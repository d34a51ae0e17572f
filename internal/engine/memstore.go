package engine

import (
	"slices"
	"sort"
	"sync"

	"github.com/celerix-dev/mergington-activities/pkg/schema"
)

// MemStore is the thread-safe activity registry.
// Records are fixed at construction; only participant lists change afterwards.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]*schema.Activity
}

// NewMemStore initializes a store from seed data.
// The seed is copied, so later changes to it do not leak into the store.
func NewMemStore(seed map[string]schema.Activity) *MemStore {
	data := make(map[string]*schema.Activity, len(seed))
	for name, a := range seed {
		rec := a.Clone()
		data[name] = &rec
	}
	return &MemStore{data: data}
}

// --- Interface Implementation ---

func (m *MemStore) List() (map[string]schema.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]schema.Activity, len(m.data))
	for name, a := range m.data {
		out[name] = a.Clone()
	}
	return out, nil
}

func (m *MemStore) Get(name string) (schema.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.data[name]
	if !ok {
		return schema.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

func (m *MemStore) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *MemStore) Signup(name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.data[name]
	if !ok {
		return ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}

	a.Participants = append(a.Participants, email)
	return nil
}

func (m *MemStore) Unregister(name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.data[name]
	if !ok {
		return ErrActivityNotFound
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return ErrNotSignedUp
	}

	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return nil
}
