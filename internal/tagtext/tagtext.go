// Package tagtext implements the form-style entry point's input
// normalization (spec §6): splitting a single comma-separated string of
// tag names into the bulk-add reference list collaborators (form
// handlers, CLI flags) pass to TagSet.add.
package tagtext

import (
	"strings"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// ParseCommaList splits s on commas, trims surrounding whitespace from
// each element, discards empty tokens, and returns the remaining names
// as name references ready for a bulk add(..., create_nonexisting=true).
func ParseCommaList(s string) []tagmodel.Ref {
	parts := strings.Split(s, ",")
	refs := make([]tagmodel.Ref, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		refs = append(refs, tagmodel.RefByName(name))
	}
	return refs
}
