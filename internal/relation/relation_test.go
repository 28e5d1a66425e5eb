package relation_test

import (
	"testing"

	"github.com/taggsonomy/tagengine/internal/relation"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

func ids(s []tagmodel.TagID) map[tagmodel.TagID]bool {
	m := make(map[tagmodel.TagID]bool, len(s))
	for _, id := range s {
		m[id] = true
	}
	return m
}

func TestInclusionEdge_Dedup(t *testing.T) {
	s := relation.NewMemStore()
	s.AddInclusionEdge(1, 2)
	s.AddInclusionEdge(1, 2)
	got := s.DirectSubtags(1)
	if len(got) != 1 {
		t.Errorf("expected one edge after duplicate insert, got %v", got)
	}
}

func TestInclusionEdge_SelfIsNoOp(t *testing.T) {
	s := relation.NewMemStore()
	s.AddInclusionEdge(1, 1)
	if len(s.DirectSubtags(1)) != 0 {
		t.Errorf("self-inclusion should be a no-op")
	}
}

func TestExclusionEdge_Symmetric(t *testing.T) {
	s := relation.NewMemStore()
	s.AddExclusionEdge(1, 2)

	if !ids(s.DirectExclusions(1))[2] {
		t.Error("expected 1 to exclude 2")
	}
	if !ids(s.DirectExclusions(2))[1] {
		t.Error("expected symmetric storage: 2 should exclude 1 without a second insert")
	}
}

func TestExclusionEdge_Remove(t *testing.T) {
	s := relation.NewMemStore()
	s.AddExclusionEdge(1, 2)
	s.RemoveExclusionEdge(1, 2)

	if len(s.DirectExclusions(1)) != 0 || len(s.DirectExclusions(2)) != 0 {
		t.Error("expected both sides cleared after remove")
	}
}

func TestRemoveTag_ErasesAllIncidentEdges(t *testing.T) {
	s := relation.NewMemStore()
	s.AddInclusionEdge(1, 2) // 1 includes 2
	s.AddInclusionEdge(3, 1) // 3 includes 1
	s.AddExclusionEdge(1, 4)

	s.RemoveTag(1)

	if len(s.DirectSupertags(2)) != 0 {
		t.Error("expected 2 to have no supertags after 1 is removed")
	}
	if len(s.DirectSubtags(3)) != 0 {
		t.Error("expected 3 to have no subtags after 1 is removed")
	}
	if len(s.DirectExclusions(4)) != 0 {
		t.Error("expected 4 to have no exclusions after 1 is removed")
	}
}
