// Package store defines the persistence interfaces the engine's
// Relation Store, Membership Store, tag registry, and tag set registry
// are built against, so cmd/tagctl can choose an in-memory or durable
// backend without the consistency engine knowing the difference.
package store

import (
	"context"

	"github.com/taggsonomy/tagengine/internal/membership"
	"github.com/taggsonomy/tagengine/internal/relation"
	"github.com/taggsonomy/tagengine/internal/resolver"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// Backend bundles the four persistence-backed collaborators the
// Consistency Engine depends on (spec.md §2), plus lifecycle control
// over the underlying connection.
type Backend interface {
	Registry() resolver.Registry
	Relations() relation.Store
	Memberships() membership.Store
	TagSets() TagSetStore

	// Transactor exposes the isolation primitive consistency.Engine
	// needs; a durable backend opens a real serializable transaction
	// here, an in-memory one just takes a mutex.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	Close() error
}

// TagSetStore is the persistence-facing half of tag set lifecycle,
// matching internal/tagset.MemRegistry's shape so a durable backend can
// satisfy consistency.TagSetRegistry the same way.
type TagSetStore interface {
	GetOrCreateTagSetFor(kind, hostID string) (tagmodel.TagSet, error)
	LookupTagSetFor(kind, hostID string) (tagmodel.TagSet, bool)
	TagSet(id tagmodel.TagSetID) (tagmodel.TagSet, bool)
	DeleteTagSet(id tagmodel.TagSetID)
}
