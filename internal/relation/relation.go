// Package relation implements the Relation Store (spec §4.2): adjacency
// lists for the two binary relations over the tag universe, INCLUDES
// (directed) and EXCLUDES (symmetric). This layer performs no invariant
// checking — deduplication and symmetric storage are its only guarantees.
// Acyclicity, the common-subtag rule, and live-membership checks are the
// Consistency Engine's job.
package relation

import "github.com/taggsonomy/tagengine/internal/tagmodel"

// Store is the Relation Store contract. Implementations must dedup edges
// (adding the same edge twice is a no-op after the first) and must make
// EXCLUDES symmetric at the storage level: adding A EXCLUDES B makes both
// DirectExclusions(A) and DirectExclusions(B) reflect it without a second
// insert.
type Store interface {
	AddInclusionEdge(sup, sub tagmodel.TagID)
	RemoveInclusionEdge(sup, sub tagmodel.TagID)
	AddExclusionEdge(a, b tagmodel.TagID)
	RemoveExclusionEdge(a, b tagmodel.TagID)

	// DirectSubtags returns the tags t directly includes (one hop).
	DirectSubtags(t tagmodel.TagID) []tagmodel.TagID
	// DirectSupertags returns the tags that directly include t (one hop).
	DirectSupertags(t tagmodel.TagID) []tagmodel.TagID
	// DirectExclusions returns the tags t directly excludes.
	DirectExclusions(t tagmodel.TagID) []tagmodel.TagID

	// RemoveTag erases every edge incident to t, in either relation and
	// either direction. Used by administrative tag removal (spec §3:
	// "removal must also erase all incident relations").
	RemoveTag(t tagmodel.TagID)
}

// MemStore is an in-memory, map-backed Store.
type MemStore struct {
	// subtagsOf[A] is the set of B such that A INCLUDES B directly.
	subtagsOf map[tagmodel.TagID]map[tagmodel.TagID]struct{}
	// supertagsOf[B] is the set of A such that A INCLUDES B directly,
	// the reverse index kept in lockstep with subtagsOf.
	supertagsOf map[tagmodel.TagID]map[tagmodel.TagID]struct{}
	// exclusions[A] is the set of B such that A EXCLUDES B; maintained
	// symmetrically, so exclusions[A][B] implies exclusions[B][A].
	exclusions map[tagmodel.TagID]map[tagmodel.TagID]struct{}
}

// NewMemStore creates an empty in-memory relation store.
func NewMemStore() *MemStore {
	return &MemStore{
		subtagsOf:   make(map[tagmodel.TagID]map[tagmodel.TagID]struct{}),
		supertagsOf: make(map[tagmodel.TagID]map[tagmodel.TagID]struct{}),
		exclusions:  make(map[tagmodel.TagID]map[tagmodel.TagID]struct{}),
	}
}

func (s *MemStore) AddInclusionEdge(sup, sub tagmodel.TagID) {
	if sup == sub {
		return
	}
	addToSet(s.subtagsOf, sup, sub)
	addToSet(s.supertagsOf, sub, sup)
}

func (s *MemStore) RemoveInclusionEdge(sup, sub tagmodel.TagID) {
	removeFromSet(s.subtagsOf, sup, sub)
	removeFromSet(s.supertagsOf, sub, sup)
}

func (s *MemStore) AddExclusionEdge(a, b tagmodel.TagID) {
	if a == b {
		return
	}
	addToSet(s.exclusions, a, b)
	addToSet(s.exclusions, b, a)
}

func (s *MemStore) RemoveExclusionEdge(a, b tagmodel.TagID) {
	removeFromSet(s.exclusions, a, b)
	removeFromSet(s.exclusions, b, a)
}

func (s *MemStore) DirectSubtags(t tagmodel.TagID) []tagmodel.TagID {
	return setToSlice(s.subtagsOf[t])
}

func (s *MemStore) DirectSupertags(t tagmodel.TagID) []tagmodel.TagID {
	return setToSlice(s.supertagsOf[t])
}

func (s *MemStore) DirectExclusions(t tagmodel.TagID) []tagmodel.TagID {
	return setToSlice(s.exclusions[t])
}

func (s *MemStore) RemoveTag(t tagmodel.TagID) {
	for sub := range s.subtagsOf[t] {
		removeFromSet(s.supertagsOf, sub, t)
	}
	delete(s.subtagsOf, t)

	for sup := range s.supertagsOf[t] {
		removeFromSet(s.subtagsOf, sup, t)
	}
	delete(s.supertagsOf, t)

	for other := range s.exclusions[t] {
		removeFromSet(s.exclusions, other, t)
	}
	delete(s.exclusions, t)
}

func addToSet(index map[tagmodel.TagID]map[tagmodel.TagID]struct{}, key, member tagmodel.TagID) {
	set, ok := index[key]
	if !ok {
		set = make(map[tagmodel.TagID]struct{})
		index[key] = set
	}
	set[member] = struct{}{}
}

func removeFromSet(index map[tagmodel.TagID]map[tagmodel.TagID]struct{}, key, member tagmodel.TagID) {
	if set, ok := index[key]; ok {
		delete(set, member)
	}
}

func setToSlice(set map[tagmodel.TagID]struct{}) []tagmodel.TagID {
	out := make([]tagmodel.TagID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
