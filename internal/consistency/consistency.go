// Package consistency implements the Consistency Engine (spec §4.5): the
// only public write path over the tag universe. Every mutation primitive
// is a check-then-apply transaction — all reads happen before any write,
// and the first tripped precondition aborts the call with no side effect.
package consistency

import (
	"context"
	"fmt"

	"github.com/taggsonomy/tagengine/internal/membership"
	"github.com/taggsonomy/tagengine/internal/reachability"
	"github.com/taggsonomy/tagengine/internal/relation"
	"github.com/taggsonomy/tagengine/internal/resolver"
	"github.com/taggsonomy/tagengine/internal/tagerrors"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// Transactor runs fn under an isolation level strong enough that the
// check-then-apply reads and writes of a single mutation primitive
// observe a consistent snapshot (spec §5: "serializable isolation,
// because all invariant checks read state that concurrent writers could
// invalidate between check and apply"). A single-process, single-lock
// implementation is sufficient when the stores behind it are in-memory;
// a store-backed implementation should open a serializable transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TagSetRegistry is the tag-set half of the persistence contract (spec
// §6): lazy creation of a tag set for a host entity, and the deletion
// path invoked when a host entity is destroyed.
type TagSetRegistry interface {
	GetOrCreateTagSetFor(kind, hostID string) (tagmodel.TagSet, error)
	LookupTagSetFor(kind, hostID string) (tagmodel.TagSet, bool)
	TagSet(id tagmodel.TagSetID) (tagmodel.TagSet, bool)
	DeleteTagSet(id tagmodel.TagSetID)
}

// Engine is the Consistency Engine. It depends on the Resolver, the
// Relation Store, the Reachability Engine, and the Membership Store, per
// the dependency order in spec §2.
type Engine struct {
	tx       Transactor
	resolver *resolver.Resolver
	rel      relation.Store
	reach    *reachability.Engine
	members  membership.Store
	tagSets  TagSetRegistry
}

// New assembles a Consistency Engine from its four dependencies, a tag
// set registry, and a Transactor for isolation.
func New(tx Transactor, res *resolver.Resolver, rel relation.Store, reach *reachability.Engine, members membership.Store, tagSets TagSetRegistry) *Engine {
	return &Engine{tx: tx, resolver: res, rel: rel, reach: reach, members: members, tagSets: tagSets}
}

// excludes reports whether a and b directly exclude each other.
func (e *Engine) excludes(a, b tagmodel.TagID) bool {
	for _, x := range e.rel.DirectExclusions(a) {
		if x == b {
			return true
		}
	}
	return false
}

// supertagClosure returns {t} ∪ all_supertags(t).
func (e *Engine) supertagClosure(t tagmodel.TagID) map[tagmodel.TagID]struct{} {
	closure := e.reach.AllSupertags(t)
	closure[t] = struct{}{}
	return closure
}

// anyPairExcludes reports whether any two distinct members of set exclude
// each other.
func (e *Engine) anyPairExcludes(set map[tagmodel.TagID]struct{}) bool {
	ids := make([]tagmodel.TagID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if e.excludes(ids[i], ids[j]) {
				return true
			}
		}
	}
	return false
}

// Include adds sup INCLUDES sub (spec §4.5.1).
func (e *Engine) Include(ctx context.Context, sup, sub tagmodel.TagID, propagateToExistingSets bool) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if sup == sub {
			return nil
		}
		if e.excludes(sup, sub) {
			return fmt.Errorf("include %d -> %d: %w", sup, sub, tagerrors.ErrSimultaneousInclusionExclusion)
		}
		if e.reach.Includes(sub, sup) {
			return fmt.Errorf("include %d -> %d: %w", sup, sub, tagerrors.ErrCircularInclusion)
		}

		s := e.supertagClosure(sup)
		for t := range e.supertagClosure(sub) {
			s[t] = struct{}{}
		}
		if e.anyPairExcludes(s) {
			return fmt.Errorf("include %d -> %d: %w", sup, sub, tagerrors.ErrMutuallyExclusiveSupertags)
		}

		var affectedSets []tagmodel.TagSetID
		supWithSupertags := e.supertagClosure(sup)
		if propagateToExistingSets {
			excludedByNewSupertags := make(map[tagmodel.TagID]struct{})
			for t := range supWithSupertags {
				for _, x := range e.rel.DirectExclusions(t) {
					excludedByNewSupertags[x] = struct{}{}
				}
			}
			affectedSets = e.members.TagSetsContaining(sub)
			for _, ts := range affectedSets {
				for _, m := range e.members.Members(ts) {
					if _, excluded := excludedByNewSupertags[m]; excluded {
						return fmt.Errorf("include %d -> %d: %w", sup, sub, tagerrors.ErrSupertagAdditionWouldRemoveExcluded)
					}
				}
			}
			if err := e.checkDeeperPropagation(sub, supWithSupertags, map[tagmodel.TagID]struct{}{sub: {}}); err != nil {
				return fmt.Errorf("include %d -> %d: %w", sup, sub, err)
			}
		}

		e.rel.AddInclusionEdge(sup, sub)

		if propagateToExistingSets {
			for _, ts := range affectedSets {
				for t := range supWithSupertags {
					e.members.Insert(ts, t)
				}
			}
			e.propagateDeeper(sub, supWithSupertags, map[tagmodel.TagID]struct{}{sub: {}})
		}
		return nil
	})
}

// checkDeeperPropagation mirrors propagateDeeper's traversal but only
// checks the SupertagAdditionWouldRemoveExcluded precondition, without
// mutating anything. visited guards against revisiting a subtag reached
// via more than one path (diamonds).
func (e *Engine) checkDeeperPropagation(from tagmodel.TagID, supWithSupertags map[tagmodel.TagID]struct{}, visited map[tagmodel.TagID]struct{}) error {
	excludedByNewSupertags := make(map[tagmodel.TagID]struct{})
	for t := range supWithSupertags {
		for _, x := range e.rel.DirectExclusions(t) {
			excludedByNewSupertags[x] = struct{}{}
		}
	}
	for _, child := range e.rel.DirectSubtags(from) {
		if _, seen := visited[child]; seen {
			continue
		}
		visited[child] = struct{}{}
		for _, ts := range e.members.TagSetsContaining(child) {
			for _, m := range e.members.Members(ts) {
				if _, excluded := excludedByNewSupertags[m]; excluded {
					return tagerrors.ErrSupertagAdditionWouldRemoveExcluded
				}
			}
		}
		if err := e.checkDeeperPropagation(child, supWithSupertags, visited); err != nil {
			return err
		}
	}
	return nil
}

// propagateDeeper re-establishes the supertag-closure invariant in tag
// sets reached through sub's own subtags, recursively: when sup becomes
// a supertag of sub, it also becomes a supertag of every subtag of sub.
func (e *Engine) propagateDeeper(from tagmodel.TagID, supWithSupertags map[tagmodel.TagID]struct{}, visited map[tagmodel.TagID]struct{}) {
	for _, child := range e.rel.DirectSubtags(from) {
		if _, seen := visited[child]; seen {
			continue
		}
		visited[child] = struct{}{}
		for _, ts := range e.members.TagSetsContaining(child) {
			for t := range supWithSupertags {
				e.members.Insert(ts, t)
			}
		}
		e.propagateDeeper(child, supWithSupertags, visited)
	}
}

// Exclude adds a EXCLUDES b (spec §4.5.2).
func (e *Engine) Exclude(ctx context.Context, a, b tagmodel.TagID) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if a == b {
			return fmt.Errorf("exclude %d, %d: %w", a, b, tagerrors.ErrSelfExclusion)
		}
		if e.reach.Includes(a, b) || e.reach.Includes(b, a) {
			return fmt.Errorf("exclude %d, %d: %w", a, b, tagerrors.ErrSimultaneousInclusionExclusion)
		}
		subA := e.reach.AllSubtags(a)
		for c := range e.reach.AllSubtags(b) {
			if _, shared := subA[c]; shared {
				return fmt.Errorf("exclude %d, %d: %w", a, b, tagerrors.ErrCommonSubtagExclusion)
			}
		}
		for _, ts := range e.members.TagSetsContaining(a) {
			if e.members.Contains(ts, b) {
				return fmt.Errorf("exclude %d, %d: %w", a, b, tagerrors.ErrMutualExclusion)
			}
		}

		e.rel.AddExclusionEdge(a, b)
		return nil
	})
}

// Unexclude removes a EXCLUDES b if present (spec §4.5.3). No invariant
// can be broken by removal, so this always succeeds.
func (e *Engine) Unexclude(ctx context.Context, a, b tagmodel.TagID) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		e.rel.RemoveExclusionEdge(a, b)
		return nil
	})
}

// Uninclude removes sup INCLUDES sub if present (spec §4.5.3). No
// invariant can be broken by removal, so this always succeeds.
func (e *Engine) Uninclude(ctx context.Context, sup, sub tagmodel.TagID) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		e.rel.RemoveInclusionEdge(sup, sub)
		return nil
	})
}

// TagSetAdd resolves refs and adds the union-with-supertag-closure to
// tagSet, evicting any existing member excluded by an incoming tag
// (spec §4.5.4).
func (e *Engine) TagSetAdd(ctx context.Context, tagSet tagmodel.TagSetID, refs []tagmodel.Ref, createNonexisting bool) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if len(refs) == 0 {
			return nil
		}
		d, err := e.resolver.ResolveMany(refs, createNonexisting)
		if err != nil {
			return fmt.Errorf("tagset add: %w", err)
		}

		dSet := make(map[tagmodel.TagID]struct{}, len(d))
		for _, t := range d {
			dSet[t.ID] = struct{}{}
		}
		if e.anyPairExcludes(dSet) {
			return fmt.Errorf("tagset add: %w", tagerrors.ErrMutualExclusion)
		}

		u := make(map[tagmodel.TagID]struct{}, len(d))
		for id := range dSet {
			u[id] = struct{}{}
			for sup := range e.reach.AllSupertags(id) {
				u[sup] = struct{}{}
			}
		}
		if e.anyPairExcludes(u) {
			return fmt.Errorf("tagset add: %w", tagerrors.ErrMutuallyExclusiveSupertags)
		}

		excludedBy := make(map[tagmodel.TagID]struct{})
		for uTag := range u {
			for _, x := range e.rel.DirectExclusions(uTag) {
				excludedBy[x] = struct{}{}
			}
		}
		for _, m := range e.members.Members(tagSet) {
			if _, excluded := excludedBy[m]; excluded {
				e.members.Delete(tagSet, m)
			}
		}
		for t := range u {
			e.members.Insert(tagSet, t)
		}
		return nil
	})
}

// TagSetRemove resolves refs with createNonexisting=false and removes
// each resolved tag from tagSet, after resolving every reference so that
// a bad reference cannot cause partial removal (spec §4.5.5). Removing a
// supertag does not remove its subtags.
func (e *Engine) TagSetRemove(ctx context.Context, tagSet tagmodel.TagSetID, refs []tagmodel.Ref) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if len(refs) == 0 {
			return nil
		}
		tags, err := e.resolver.ResolveMany(refs, false)
		if err != nil {
			return fmt.Errorf("tagset remove: %w", err)
		}
		for _, t := range tags {
			e.members.Delete(tagSet, t.ID)
		}
		return nil
	})
}

// TagSetContains answers the membership predicate in O(1) expected time
// (spec §4.5.6).
func (e *Engine) TagSetContains(tagSet tagmodel.TagSetID, tag tagmodel.TagID) bool {
	return e.members.Contains(tagSet, tag)
}

// TagSetMembers returns every tag currently in tagSet.
func (e *Engine) TagSetMembers(tagSet tagmodel.TagSetID) []tagmodel.TagID {
	return e.members.Members(tagSet)
}

// TagSetSize returns the number of tags currently in tagSet.
func (e *Engine) TagSetSize(tagSet tagmodel.TagSetID) int {
	return e.members.Size(tagSet)
}

// GetOrCreateTagSetFor returns the tag set bound to (kind, hostID),
// creating it lazily on first use (spec §6).
func (e *Engine) GetOrCreateTagSetFor(ctx context.Context, kind, hostID string) (tagmodel.TagSet, error) {
	var ts tagmodel.TagSet
	err := e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		ts, err = e.tagSets.GetOrCreateTagSetFor(kind, hostID)
		return err
	})
	return ts, err
}

// OnHostDeleted destroys the host's tag set, if any, along with all its
// memberships, atomically and idempotently (spec §5, §9: "express as an
// explicit entry point the host runtime calls"). It touches no Tag or
// relation.
func (e *Engine) OnHostDeleted(ctx context.Context, kind, hostID string) error {
	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		ts, ok := e.tagSets.LookupTagSetFor(kind, hostID)
		if !ok {
			return nil
		}
		e.members.DeleteTagSet(ts.ID)
		e.tagSets.DeleteTagSet(ts.ID)
		return nil
	})
}
