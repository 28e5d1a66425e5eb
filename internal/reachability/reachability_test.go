package reachability_test

import (
	"testing"

	"github.com/taggsonomy/tagengine/internal/reachability"
	"github.com/taggsonomy/tagengine/internal/relation"
)

// Django(3) includes Python(2), Python includes Programming(1).
func chainStore() *relation.MemStore {
	s := relation.NewMemStore()
	s.AddInclusionEdge(2, 1) // Python includes Programming
	s.AddInclusionEdge(3, 2) // Django includes Python
	return s
}

func TestIncludes_Transitive(t *testing.T) {
	e := reachability.New(chainStore())
	if !e.Includes(3, 1) {
		t.Error("expected Django to transitively include Programming")
	}
	if e.Includes(1, 3) {
		t.Error("did not expect the reverse to hold")
	}
	if e.Includes(1, 1) {
		t.Error("Includes(A, A) must be false")
	}
}

func TestAllSubtags_ExcludesSelf(t *testing.T) {
	e := reachability.New(chainStore())
	all := e.AllSubtags(3)
	if _, ok := all[3]; ok {
		t.Error("AllSubtags must not include the tag itself")
	}
	if _, ok := all[2]; !ok {
		t.Error("expected Python in AllSubtags(Django)")
	}
	if _, ok := all[1]; !ok {
		t.Error("expected Programming in AllSubtags(Django)")
	}
}

func TestAllSupertags_Symmetric(t *testing.T) {
	e := reachability.New(chainStore())
	all := e.AllSupertags(1)
	if _, ok := all[2]; !ok {
		t.Error("expected Python in AllSupertags(Programming)")
	}
	if _, ok := all[3]; !ok {
		t.Error("expected Django in AllSupertags(Programming)")
	}
}

func TestIndirectSubtags_ExcludesDirect(t *testing.T) {
	e := reachability.New(chainStore())
	indirect := e.IndirectSubtags(3)
	if _, ok := indirect[2]; ok {
		t.Error("Python is a direct subtag of Django, should not appear in indirect")
	}
	if _, ok := indirect[1]; !ok {
		t.Error("Programming is an indirect subtag of Django")
	}
}

func TestDiamond_VisitedOnce(t *testing.T) {
	// 4 includes 2 and 3, both of which include 1 (diamond).
	s := relation.NewMemStore()
	s.AddInclusionEdge(4, 2)
	s.AddInclusionEdge(4, 3)
	s.AddInclusionEdge(2, 1)
	s.AddInclusionEdge(3, 1)

	e := reachability.New(s)
	all := e.AllSubtags(4)
	if len(all) != 3 {
		t.Errorf("expected exactly 3 distinct subtags in a diamond, got %d: %v", len(all), all)
	}
	if !e.Includes(4, 1) {
		t.Error("expected 4 to transitively include 1 via either path")
	}
}
