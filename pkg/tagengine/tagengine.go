// Package tagengine is the minimal public API for embedding the
// constrained tagging engine in another program. Most callers want
// Open (durable, SQLite-backed) or OpenMem (in-memory, for tests and
// short-lived tools); both return an *Engine exposing every operation
// spec.md §6 names.
package tagengine

import (
	"context"
	"fmt"

	"github.com/taggsonomy/tagengine/internal/consistency"
	"github.com/taggsonomy/tagengine/internal/reachability"
	"github.com/taggsonomy/tagengine/internal/resolver"
	"github.com/taggsonomy/tagengine/internal/store"
	"github.com/taggsonomy/tagengine/internal/store/sqlite"
	"github.com/taggsonomy/tagengine/internal/tagerrors"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
	"github.com/taggsonomy/tagengine/internal/tagtext"
)

// Core types re-exported for embedders.
type (
	Tag      = tagmodel.Tag
	TagID    = tagmodel.TagID
	TagSet   = tagmodel.TagSet
	TagSetID = tagmodel.TagSetID
	HostKey  = tagmodel.HostKey
	Ref      = tagmodel.Ref
)

// Ref constructors re-exported for embedders.
var (
	RefTag    = tagmodel.RefTag
	RefByName = tagmodel.RefByName
	RefByID   = tagmodel.RefByID
)

// Error sentinels re-exported for embedders using errors.Is.
var (
	ErrNoSuchTag                           = tagerrors.ErrNoSuchTag
	ErrSelfExclusion                       = tagerrors.ErrSelfExclusion
	ErrSimultaneousInclusionExclusion      = tagerrors.ErrSimultaneousInclusionExclusion
	ErrCircularInclusion                   = tagerrors.ErrCircularInclusion
	ErrCommonSubtagExclusion               = tagerrors.ErrCommonSubtagExclusion
	ErrMutualExclusion                     = tagerrors.ErrMutualExclusion
	ErrMutuallyExclusiveSupertags          = tagerrors.ErrMutuallyExclusiveSupertags
	ErrSupertagAdditionWouldRemoveExcluded = tagerrors.ErrSupertagAdditionWouldRemoveExcluded
)

// Engine bundles the Identity Resolver and Consistency Engine behind the
// programmatic surface spec.md §6 describes, backed by whichever
// store.Backend it was opened against.
type Engine struct {
	backend  store.Backend
	resolver *resolver.Resolver
	engine   *consistency.Engine
}

// Open opens a durable, SQLite-backed Engine at dbPath, creating the
// database and schema if necessary.
func Open(ctx context.Context, dbPath string) (*Engine, error) {
	backend, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("tagengine: open %s: %w", dbPath, err)
	}
	return wrap(backend), nil
}

// OpenMem opens a non-durable, in-memory Engine. Everything is lost when
// the process exits.
func OpenMem() *Engine {
	return wrap(store.NewMemBackend())
}

func wrap(backend store.Backend) *Engine {
	res := resolver.New(backend.Registry())
	reach := reachability.New(backend.Relations())
	eng := consistency.New(backend, res, backend.Relations(), reach, backend.Memberships(), backend.TagSets())
	return &Engine{backend: backend, resolver: res, engine: eng}
}

// Close releases the underlying store's resources.
func (e *Engine) Close() error { return e.backend.Close() }

// CreateTag creates (or returns, if already present) a tag by name.
func (e *Engine) CreateTag(name string) (Tag, error) {
	return e.resolver.Resolve(tagmodel.RefByName(name), true)
}

// Resolve normalizes ref to a Tag (spec.md §4.1).
func (e *Engine) Resolve(ref Ref, createIfMissing bool) (Tag, error) {
	return e.resolver.Resolve(ref, createIfMissing)
}

// Include adds sup INCLUDES sub (spec.md §4.5.1).
func (e *Engine) Include(ctx context.Context, sup, sub TagID, propagateToExistingSets bool) error {
	return e.engine.Include(ctx, sup, sub, propagateToExistingSets)
}

// Exclude adds a EXCLUDES b, symmetrically (spec.md §4.5.2).
func (e *Engine) Exclude(ctx context.Context, a, b TagID) error {
	return e.engine.Exclude(ctx, a, b)
}

// Unexclude removes a EXCLUDES b if present (spec.md §4.5.3).
func (e *Engine) Unexclude(ctx context.Context, a, b TagID) error {
	return e.engine.Unexclude(ctx, a, b)
}

// Uninclude removes sup INCLUDES sub if present (spec.md §4.5.3).
func (e *Engine) Uninclude(ctx context.Context, sup, sub TagID) error {
	return e.engine.Uninclude(ctx, sup, sub)
}

// Includes reports whether a transitively includes b.
func (e *Engine) Includes(a, b TagID) bool {
	return reachability.New(e.backend.Relations()).Includes(a, b)
}

// Excludes reports whether a and b directly exclude each other.
func (e *Engine) Excludes(a, b TagID) bool {
	for _, x := range e.backend.Relations().DirectExclusions(a) {
		if x == b {
			return true
		}
	}
	return false
}

// AllSubtags returns every tag a transitively includes.
func (e *Engine) AllSubtags(a TagID) map[TagID]struct{} {
	return reachability.New(e.backend.Relations()).AllSubtags(a)
}

// AllSupertags returns every tag that transitively includes a.
func (e *Engine) AllSupertags(a TagID) map[TagID]struct{} {
	return reachability.New(e.backend.Relations()).AllSupertags(a)
}

// DirectSupertags returns the one-hop supertags of a.
func (e *Engine) DirectSupertags(a TagID) []TagID {
	return e.backend.Relations().DirectSupertags(a)
}

// DirectSubtags returns the one-hop subtags of a.
func (e *Engine) DirectSubtags(a TagID) []TagID {
	return e.backend.Relations().DirectSubtags(a)
}

// TagSetAdd resolves refs and adds their union-with-supertag-closure to
// tagSet (spec.md §4.5.4).
func (e *Engine) TagSetAdd(ctx context.Context, tagSet TagSetID, refs []Ref, createNonexisting bool) error {
	return e.engine.TagSetAdd(ctx, tagSet, refs, createNonexisting)
}

// TagSetAddCommaList is the form-style entry point (spec.md §6): splits
// s on commas and bulk-adds the resulting names with
// create_nonexisting=true.
func (e *Engine) TagSetAddCommaList(ctx context.Context, tagSet TagSetID, s string) error {
	return e.engine.TagSetAdd(ctx, tagSet, tagtext.ParseCommaList(s), true)
}

// TagSetRemove resolves refs (without creating missing tags) and removes
// them from tagSet (spec.md §4.5.5).
func (e *Engine) TagSetRemove(ctx context.Context, tagSet TagSetID, refs []Ref) error {
	return e.engine.TagSetRemove(ctx, tagSet, refs)
}

// TagSetContains answers the membership predicate (spec.md §4.5.6).
func (e *Engine) TagSetContains(tagSet TagSetID, tag TagID) bool {
	return e.engine.TagSetContains(tagSet, tag)
}

// TagSetMembers returns every tag currently in tagSet.
func (e *Engine) TagSetMembers(tagSet TagSetID) []TagID {
	return e.engine.TagSetMembers(tagSet)
}

// TagSetSize returns the number of tags currently in tagSet.
func (e *Engine) TagSetSize(tagSet TagSetID) int {
	return e.engine.TagSetSize(tagSet)
}

// GetOrCreateTagSetFor returns the tag set bound to (kind, hostID),
// creating it lazily on first use (spec.md §6).
func (e *Engine) GetOrCreateTagSetFor(ctx context.Context, kind, hostID string) (TagSet, error) {
	return e.engine.GetOrCreateTagSetFor(ctx, kind, hostID)
}

// OnHostDeleted destroys the host's tag set, if any, atomically and
// idempotently (spec.md §5, §9).
func (e *Engine) OnHostDeleted(ctx context.Context, kind, hostID string) error {
	return e.engine.OnHostDeleted(ctx, kind, hostID)
}
