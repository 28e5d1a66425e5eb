// Package tagset implements tag set lifecycle: lazy creation per host
// entity and the (kind, host-id) lookup the persistence contract (spec
// §6) requires to be unique.
package tagset

import (
	"fmt"
	"sync"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// MemRegistry is an in-memory, map-backed tag set registry.
type MemRegistry struct {
	mu     sync.RWMutex
	byHost map[tagmodel.HostKey]tagmodel.TagSetID
	byID   map[tagmodel.TagSetID]tagmodel.TagSet
	nextID tagmodel.TagSetID
}

// NewMemRegistry creates an empty in-memory tag set registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{
		byHost: make(map[tagmodel.HostKey]tagmodel.TagSetID),
		byID:   make(map[tagmodel.TagSetID]tagmodel.TagSet),
	}
}

// GetOrCreateTagSetFor returns the tag set bound to (kind, hostID),
// creating it on first use. kind and hostID must be non-empty.
func (r *MemRegistry) GetOrCreateTagSetFor(kind, hostID string) (tagmodel.TagSet, error) {
	if kind == "" || hostID == "" {
		return tagmodel.TagSet{}, fmt.Errorf("tagset: host kind and id must be non-empty")
	}
	key := tagmodel.HostKey{Kind: kind, ID: hostID}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byHost[key]; ok {
		return r.byID[id], nil
	}
	r.nextID++
	ts := tagmodel.TagSet{ID: r.nextID, Host: &key}
	r.byHost[key] = ts.ID
	r.byID[ts.ID] = ts
	return ts, nil
}

// LookupTagSetFor returns the tag set bound to (kind, hostID) without
// creating one, for use on the deletion path where creating a tag set
// just to delete it would be wasteful.
func (r *MemRegistry) LookupTagSetFor(kind, hostID string) (tagmodel.TagSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byHost[tagmodel.HostKey{Kind: kind, ID: hostID}]
	if !ok {
		return tagmodel.TagSet{}, false
	}
	return r.byID[id], true
}

// TagSet looks up a tag set by its numeric handle, regardless of whether
// it is host-bound.
func (r *MemRegistry) TagSet(id tagmodel.TagSetID) (tagmodel.TagSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts, ok := r.byID[id]
	return ts, ok
}

// CreateUnbound allocates a tag set with no host binding, for
// collaborators that manage their own attachment scheme.
func (r *MemRegistry) CreateUnbound() tagmodel.TagSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ts := tagmodel.TagSet{ID: r.nextID}
	r.byID[ts.ID] = ts
	return ts
}

// DeleteTagSet erases a tag set and, if host-bound, its host-key index
// entry. Idempotent: deleting an unknown or already-deleted id is a
// no-op (spec §5: cascading deletion "must be idempotent").
func (r *MemRegistry) DeleteTagSet(id tagmodel.TagSetID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts, ok := r.byID[id]
	if !ok {
		return
	}
	if ts.Host != nil {
		delete(r.byHost, *ts.Host)
	}
	delete(r.byID, id)
}
