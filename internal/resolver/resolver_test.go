package resolver_test

import (
	"errors"
	"testing"

	"github.com/taggsonomy/tagengine/internal/resolver"
	"github.com/taggsonomy/tagengine/internal/tagerrors"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

func TestResolve_Handle(t *testing.T) {
	reg := resolver.NewMemRegistry()
	r := resolver.New(reg)

	want := tagmodel.Tag{ID: 42, Name: "unregistered"}
	got, err := r.Resolve(tagmodel.RefTag(want), false)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolve_NameCreateIfMissing(t *testing.T) {
	reg := resolver.NewMemRegistry()
	r := resolver.New(reg)

	t1, err := r.Resolve(tagmodel.RefByName("Python"), true)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := r.Resolve(tagmodel.RefByName("Python"), true)
	if err != nil {
		t.Fatal(err)
	}
	if t1.ID != t2.ID {
		t.Errorf("resolving the same name twice should return the same tag, got %v and %v", t1, t2)
	}
}

func TestResolve_NameMissingNoCreate(t *testing.T) {
	reg := resolver.NewMemRegistry()
	r := resolver.New(reg)

	_, err := r.Resolve(tagmodel.RefByName("no-such-name"), false)
	if !errors.Is(err, tagerrors.ErrNoSuchTag) {
		t.Errorf("expected ErrNoSuchTag, got %v", err)
	}
}

func TestResolve_IDNeverCreates(t *testing.T) {
	reg := resolver.NewMemRegistry()
	r := resolver.New(reg)

	_, err := r.Resolve(tagmodel.RefByID(999), true)
	if !errors.Is(err, tagerrors.ErrNoSuchTag) {
		t.Errorf("expected ErrNoSuchTag for unresolvable id regardless of createIfMissing, got %v", err)
	}
}

func TestResolve_AllThreeKindsEquivalent(t *testing.T) {
	reg := resolver.NewMemRegistry()
	r := resolver.New(reg)

	byName, err := r.Resolve(tagmodel.RefByName("Django"), true)
	if err != nil {
		t.Fatal(err)
	}

	byID, err := r.Resolve(tagmodel.RefByID(byName.ID), false)
	if err != nil {
		t.Fatal(err)
	}
	byHandle, err := r.Resolve(tagmodel.RefTag(byName), false)
	if err != nil {
		t.Fatal(err)
	}

	if byName.ID != byID.ID || byID.ID != byHandle.ID {
		t.Errorf("resolution via name/id/handle should be equivalent: %v, %v, %v", byName, byID, byHandle)
	}
}

func TestResolveMany_DedupsAndFailsFast(t *testing.T) {
	reg := resolver.NewMemRegistry()
	r := resolver.New(reg)

	a, _ := r.Resolve(tagmodel.RefByName("A"), true)

	tags, err := r.ResolveMany([]tagmodel.Ref{
		tagmodel.RefByName("A"),
		tagmodel.RefTag(a),
		tagmodel.RefByID(a.ID),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 1 {
		t.Errorf("expected dedup to a single tag, got %d: %v", len(tags), tags)
	}

	_, err = r.ResolveMany([]tagmodel.Ref{
		tagmodel.RefByName("A"),
		tagmodel.RefByName("no-such-name"),
	}, false)
	if !errors.Is(err, tagerrors.ErrNoSuchTag) {
		t.Errorf("expected ErrNoSuchTag, got %v", err)
	}
}
