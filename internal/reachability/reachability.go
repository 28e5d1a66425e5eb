// Package reachability implements the Reachability Engine (spec §4.3):
// transitive queries over the INCLUDES relation, computed on demand via
// iterative traversal with a visited set. No closure is materialized, and
// no cycle breaker is needed — INCLUDES is an invariant-enforced strict
// partial order — but diamonds are legal, so a visited set still avoids
// redundant work.
package reachability

import "github.com/taggsonomy/tagengine/internal/tagmodel"

// EdgeSource is the read-only slice of the Relation Store the
// Reachability Engine needs: one-hop subtag/supertag lookups.
type EdgeSource interface {
	DirectSubtags(t tagmodel.TagID) []tagmodel.TagID
	DirectSupertags(t tagmodel.TagID) []tagmodel.TagID
}

// Engine answers INCLUDES reachability queries against an EdgeSource.
type Engine struct {
	edges EdgeSource
}

// New creates a Reachability Engine over edges.
func New(edges EdgeSource) *Engine {
	return &Engine{edges: edges}
}

// Includes reports whether a transitively includes b (including the
// one-hop case). False when a == b.
func (e *Engine) Includes(a, b tagmodel.TagID) bool {
	if a == b {
		return false
	}
	return e.reachable(a, b, e.edges.DirectSubtags)
}

// reachable runs an iterative BFS from start looking for target, using
// step to expand the frontier in either direction.
func (e *Engine) reachable(start, target tagmodel.TagID, step func(tagmodel.TagID) []tagmodel.TagID) bool {
	visited := map[tagmodel.TagID]struct{}{start: {}}
	queue := []tagmodel.TagID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range step(cur) {
			if next == target {
				return true
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false
}

// closure runs an iterative BFS from start, collecting every reachable
// node (excluding start itself).
func (e *Engine) closure(start tagmodel.TagID, step func(tagmodel.TagID) []tagmodel.TagID) map[tagmodel.TagID]struct{} {
	visited := map[tagmodel.TagID]struct{}{start: {}}
	result := make(map[tagmodel.TagID]struct{})
	queue := []tagmodel.TagID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range step(cur) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			result[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return result
}

// AllSubtags returns every tag A transitively includes, excluding A.
func (e *Engine) AllSubtags(a tagmodel.TagID) map[tagmodel.TagID]struct{} {
	return e.closure(a, e.edges.DirectSubtags)
}

// AllSupertags returns every tag that transitively includes A, excluding A.
func (e *Engine) AllSupertags(a tagmodel.TagID) map[tagmodel.TagID]struct{} {
	return e.closure(a, e.edges.DirectSupertags)
}

// DirectSubtags returns only the one-hop subtags of a.
func (e *Engine) DirectSubtags(a tagmodel.TagID) []tagmodel.TagID {
	return e.edges.DirectSubtags(a)
}

// DirectSupertags returns only the one-hop supertags of a.
func (e *Engine) DirectSupertags(a tagmodel.TagID) []tagmodel.TagID {
	return e.edges.DirectSupertags(a)
}

// IndirectSubtags returns AllSubtags(a) minus DirectSubtags(a).
func (e *Engine) IndirectSubtags(a tagmodel.TagID) map[tagmodel.TagID]struct{} {
	all := e.AllSubtags(a)
	for _, direct := range e.edges.DirectSubtags(a) {
		delete(all, direct)
	}
	return all
}

// IndirectSupertags returns AllSupertags(a) minus DirectSupertags(a).
func (e *Engine) IndirectSupertags(a tagmodel.TagID) map[tagmodel.TagID]struct{} {
	all := e.AllSupertags(a)
	for _, direct := range e.edges.DirectSupertags(a) {
		delete(all, direct)
	}
	return all
}
