package store

import (
	"context"
	"sync"

	"github.com/taggsonomy/tagengine/internal/membership"
	"github.com/taggsonomy/tagengine/internal/relation"
	"github.com/taggsonomy/tagengine/internal/resolver"
	"github.com/taggsonomy/tagengine/internal/tagset"
)

// MemBackend is the non-durable Backend: everything lives in process
// memory behind a single mutex. Useful for tests and for `tagctl --mem`.
type MemBackend struct {
	mu       sync.Mutex
	registry *resolver.MemRegistry
	rel      *relation.MemStore
	members  *membership.MemStore
	tagSets  *tagset.MemRegistry
}

// NewMemBackend creates an empty in-memory Backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{
		registry: resolver.NewMemRegistry(),
		rel:      relation.NewMemStore(),
		members:  membership.NewMemStore(),
		tagSets:  tagset.NewMemRegistry(),
	}
}

func (b *MemBackend) Registry() resolver.Registry   { return b.registry }
func (b *MemBackend) Relations() relation.Store     { return b.rel }
func (b *MemBackend) Memberships() membership.Store { return b.members }
func (b *MemBackend) TagSets() TagSetStore          { return b.tagSets }

func (b *MemBackend) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(ctx)
}

func (b *MemBackend) Close() error { return nil }
