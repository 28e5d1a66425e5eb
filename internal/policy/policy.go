// Package policy loads declarative exclusion-group policy files: sets of
// tag names that are mutually exclusive with each other, applied
// pairwise through Tag.exclude. This is the bulk-authoring convenience
// the domain layer offers on top of the Consistency Engine's one-pair-
// at-a-time exclude primitive; it is not itself part of the core.
//
// Grounded on internal/labelmutex's MutexGroup shape, reimplemented
// against BurntSushi/toml instead of viper+YAML: this repo deliberately
// keeps its two configuration surfaces on two different formats, one per
// concern (see SPEC_FULL.md §1.3).
package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/taggsonomy/tagengine/internal/tagerrors"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// ExclusionGroup is a named set of tag names that pairwise exclude each
// other once applied.
type ExclusionGroup struct {
	Name string   `toml:"name"`
	Tags []string `toml:"tags"`
}

type document struct {
	Group []ExclusionGroup `toml:"group"`
}

// Load parses a TOML policy file of the form:
//
//	[[group]]
//	name = "language-runtime"
//	tags = ["Python", "Ruby", "Go"]
func Load(path string) ([]ExclusionGroup, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("policy: decode %s: %w", path, err)
	}
	for i := range doc.Group {
		doc.Group[i].Name = strings.TrimSpace(doc.Group[i].Name)
		if len(doc.Group[i].Tags) < 2 {
			return nil, fmt.Errorf("policy: group %q needs at least 2 tags, got %d", doc.Group[i].Name, len(doc.Group[i].Tags))
		}
	}
	return doc.Group, nil
}

// Resolver resolves a tag name to identity, the slice of the Identity
// Resolver this package depends on.
type Resolver interface {
	Resolve(ref tagmodel.Ref, createIfMissing bool) (tagmodel.Tag, error)
}

// Excluder applies one exclusion edge through the Consistency Engine.
type Excluder interface {
	Exclude(ctx context.Context, a, b tagmodel.TagID) error
}

// Apply resolves every tag named in groups (creating tags that don't yet
// exist) and excludes every pair within each group. A pair already
// excluded is accepted again without error. A pair the engine rejects
// (for example one already related by INCLUDES) surfaces that group's
// failure without aborting the remaining groups; the caller gets back
// every error keyed by group name.
func Apply(ctx context.Context, res Resolver, ex Excluder, groups []ExclusionGroup) map[string]error {
	failures := make(map[string]error)
	for _, g := range groups {
		tags := make([]tagmodel.Tag, 0, len(g.Tags))
		var resolveErr error
		for _, name := range g.Tags {
			t, err := res.Resolve(tagmodel.RefByName(name), true)
			if err != nil {
				resolveErr = fmt.Errorf("policy group %q: resolve %q: %w", g.Name, name, err)
				break
			}
			tags = append(tags, t)
		}
		if resolveErr != nil {
			failures[g.Name] = resolveErr
			continue
		}

		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				if err := ex.Exclude(ctx, tags[i].ID, tags[j].ID); err != nil {
					if tagerrors.Is(err, tagerrors.ErrSelfExclusion) {
						continue
					}
					failures[g.Name] = fmt.Errorf("policy group %q: exclude %s, %s: %w", g.Name, tags[i].Name, tags[j].Name, err)
				}
			}
		}
	}
	return failures
}
