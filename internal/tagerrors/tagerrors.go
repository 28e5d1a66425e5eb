// Package tagerrors defines the sentinel error taxonomy for the
// constrained tagging engine (spec §7). Every mutation primitive aborts
// on the first tripped precondition and returns one of these, wrapped
// with operation context via fmt.Errorf and %w so callers can still use
// errors.Is against the sentinel.
package tagerrors

import "errors"

var (
	// ErrNoSuchTag is returned when a reference could not be resolved to
	// an existing Tag.
	ErrNoSuchTag = errors.New("no such tag")

	// ErrSelfExclusion is returned when a tag is asked to exclude itself.
	ErrSelfExclusion = errors.New("a tag cannot exclude itself")

	// ErrSimultaneousInclusionExclusion is returned when an include or
	// exclude edge would contradict an existing edge of the other
	// relation between the same two tags.
	ErrSimultaneousInclusionExclusion = errors.New("tags cannot simultaneously include and exclude each other")

	// ErrCircularInclusion is returned when an include edge would create
	// a cycle in the INCLUDES relation.
	ErrCircularInclusion = errors.New("inclusion would create a cycle")

	// ErrCommonSubtagExclusion is returned when an exclude edge would be
	// placed between two tags that share a transitive subtag.
	ErrCommonSubtagExclusion = errors.New("tags with a common subtag cannot exclude each other")

	// ErrMutualExclusion is returned when an operation would place two
	// mutually excluding tags in the same tag set.
	ErrMutualExclusion = errors.New("mutually excluding tags cannot share a tag set")

	// ErrMutuallyExclusiveSupertags is returned when an operation would
	// require a tag set (directly, or via supertag propagation) to
	// contain two tags that exclude each other.
	ErrMutuallyExclusiveSupertags = errors.New("operation would require mutually exclusive supertags")

	// ErrSupertagAdditionWouldRemoveExcluded is returned when
	// include(..., propagate=true) would silently evict an existing tag
	// set member via exclusion.
	ErrSupertagAdditionWouldRemoveExcluded = errors.New("supertag propagation would silently remove an excluded member")
)

// Is reports whether err wraps target, a thin wrapper over errors.Is kept
// here so callers of this package don't need a separate "errors" import
// just to compare taxonomy sentinels.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
