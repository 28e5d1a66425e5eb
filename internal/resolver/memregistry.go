package resolver

import (
	"fmt"
	"sync"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// MemRegistry is an in-memory Registry: a monotonic ID counter plus two
// indices (by name, by ID), the in-process analogue of the "tags" table
// the persistence contract (spec §6) assumes a real store supplies.
type MemRegistry struct {
	mu     sync.RWMutex
	byName map[string]tagmodel.Tag
	byID   map[tagmodel.TagID]tagmodel.Tag
	nextID tagmodel.TagID
}

// NewMemRegistry creates an empty in-memory tag registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{
		byName: make(map[string]tagmodel.Tag),
		byID:   make(map[tagmodel.TagID]tagmodel.Tag),
	}
}

// ByName looks up a tag by its unique name.
func (m *MemRegistry) ByName(name string) (tagmodel.Tag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.byName[name]
	return t, ok
}

// ByID looks up a tag by its stable identifier.
func (m *MemRegistry) ByID(id tagmodel.TagID) (tagmodel.Tag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.byID[id]
	return t, ok
}

// Create registers a new tag with the given name. The unique-name
// constraint is enforced here, before the new tag is ever visible to the
// resolver's caller, per spec §6.
func (m *MemRegistry) Create(name string) (tagmodel.Tag, error) {
	if name == "" {
		return tagmodel.Tag{}, fmt.Errorf("tag name must not be empty")
	}
	if len(name) > tagmodel.MaxTagNameLength {
		return tagmodel.Tag{}, fmt.Errorf("tag name exceeds %d bytes", tagmodel.MaxTagNameLength)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byName[name]; ok {
		return existing, nil
	}
	m.nextID++
	t := tagmodel.Tag{ID: m.nextID, Name: name}
	m.byName[name] = t
	m.byID[t.ID] = t
	return t, nil
}

// Remove deletes a tag from the registry. It is the administrative
// removal path spec §3 describes as out of scope for the engine's public
// API, kept here only so tests and store implementations can exercise
// full tag lifecycle; it does not touch relations or memberships — the
// caller erases those through relation.Store.RemoveTag and
// membership.Store.DeleteTag.
func (m *MemRegistry) Remove(id tagmodel.TagID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byID[id]; ok {
		delete(m.byID, id)
		delete(m.byName, t.Name)
	}
}

// All returns every registered tag. Ordering is unspecified.
func (m *MemRegistry) All() []tagmodel.Tag {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]tagmodel.Tag, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, t)
	}
	return out
}
