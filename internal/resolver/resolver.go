// Package resolver implements the Identity Resolver (spec §4.1): it
// normalizes heterogeneous tag references — handle, name, or numeric
// identifier — to canonical Tag identity. It depends on nothing but a
// Registry, the minimal tag-universe contract every other component is
// built on top of.
package resolver

import (
	"fmt"

	"github.com/taggsonomy/tagengine/internal/tagerrors"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// Registry is the tag universe the Resolver consults: lookup by name or
// ID, and creation of new tags by name. It is the collaborator that
// fulfills the "unique, monotonic integer identifiers... unique-name
// constraint" half of the persistence contract (spec §6).
type Registry interface {
	ByName(name string) (tagmodel.Tag, bool)
	ByID(id tagmodel.TagID) (tagmodel.Tag, bool)
	Create(name string) (tagmodel.Tag, error)
}

// Resolver normalizes Refs to Tags against a Registry.
type Resolver struct {
	reg Registry
}

// New creates a Resolver backed by reg.
func New(reg Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve normalizes a single reference to a Tag.
//
//   - a handle (already-resolved Tag) passes through unchanged.
//   - a name is looked up; if missing and createIfMissing is set, a new
//     tag is created and returned, otherwise ErrNoSuchTag.
//   - a numeric identifier is looked up; if missing, ErrNoSuchTag
//     unconditionally — identifiers are never namable for creation.
func (r *Resolver) Resolve(ref tagmodel.Ref, createIfMissing bool) (tagmodel.Tag, error) {
	switch ref.Kind {
	case tagmodel.RefHandle:
		return ref.Tag, nil
	case tagmodel.RefName:
		if ref.Name == "" {
			return tagmodel.Tag{}, tagerrors.ErrNoSuchTag
		}
		if tag, ok := r.reg.ByName(ref.Name); ok {
			return tag, nil
		}
		if !createIfMissing {
			return tagmodel.Tag{}, fmt.Errorf("resolve %q: %w", ref.Name, tagerrors.ErrNoSuchTag)
		}
		tag, err := r.reg.Create(ref.Name)
		if err != nil {
			return tagmodel.Tag{}, fmt.Errorf("create tag %q: %w", ref.Name, err)
		}
		return tag, nil
	case tagmodel.RefID:
		if tag, ok := r.reg.ByID(ref.ID); ok {
			return tag, nil
		}
		return tagmodel.Tag{}, fmt.Errorf("resolve id %d: %w", ref.ID, tagerrors.ErrNoSuchTag)
	default:
		return tagmodel.Tag{}, tagerrors.ErrNoSuchTag
	}
}

// ResolveMany resolves every ref in refs, returning the deduplicated set
// of tags. It fails at the first error encountered; the order in which
// refs are visited (and hence which invalid reference trips the error
// when more than one is invalid) is unspecified.
func (r *Resolver) ResolveMany(refs []tagmodel.Ref, createIfMissing bool) ([]tagmodel.Tag, error) {
	seen := make(map[tagmodel.TagID]struct{}, len(refs))
	out := make([]tagmodel.Tag, 0, len(refs))
	for _, ref := range refs {
		tag, err := r.Resolve(ref, createIfMissing)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}
