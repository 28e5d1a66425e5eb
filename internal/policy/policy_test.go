package policy_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taggsonomy/tagengine/internal/policy"
	"github.com/taggsonomy/tagengine/internal/tagmodel"
	"github.com/taggsonomy/tagengine/pkg/tagengine"
)

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mutex.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_ParsesGroups(t *testing.T) {
	path := writePolicy(t, `
[[group]]
name = "language-runtime"
tags = ["Python", "Ruby", "Go"]

[[group]]
name = "editor"
tags = ["Vim", "Emacs"]
`)
	groups, err := policy.Load(path)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "language-runtime", groups[0].Name)
	require.Equal(t, []string{"Python", "Ruby", "Go"}, groups[0].Tags)
	require.Equal(t, []string{"Vim", "Emacs"}, groups[1].Tags)
}

func TestLoad_RejectsSingleTagGroup(t *testing.T) {
	path := writePolicy(t, `
[[group]]
name = "lonely"
tags = ["Python"]
`)
	_, err := policy.Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := policy.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

// fakeResolver lets individual tests force a resolve failure for one name.
type fakeResolver struct {
	fail map[string]bool
	next tagmodel.TagID
	byID map[string]tagmodel.TagID
}

func newFakeResolver(fail ...string) *fakeResolver {
	f := make(map[string]bool, len(fail))
	for _, n := range fail {
		f[n] = true
	}
	return &fakeResolver{fail: f, byID: make(map[string]tagmodel.TagID)}
}

func (r *fakeResolver) Resolve(ref tagmodel.Ref, createIfMissing bool) (tagmodel.Tag, error) {
	if r.fail[ref.Name] {
		return tagmodel.Tag{}, context.DeadlineExceeded
	}
	if id, ok := r.byID[ref.Name]; ok {
		return tagmodel.Tag{ID: id, Name: ref.Name}, nil
	}
	r.next++
	r.byID[ref.Name] = r.next
	return tagmodel.Tag{ID: r.next, Name: ref.Name}, nil
}

type fakeExcluder struct {
	pairs [][2]tagmodel.TagID
}

func (e *fakeExcluder) Exclude(_ context.Context, a, b tagmodel.TagID) error {
	e.pairs = append(e.pairs, [2]tagmodel.TagID{a, b})
	return nil
}

func TestApply_ExcludesAllPairsWithinGroup(t *testing.T) {
	res := newFakeResolver()
	ex := &fakeExcluder{}
	groups := []policy.ExclusionGroup{{Name: "g", Tags: []string{"A", "B", "C"}}}

	failures := policy.Apply(context.Background(), res, ex, groups)
	require.Empty(t, failures)
	require.Len(t, ex.pairs, 3) // C(3,2)
}

func TestApply_ResolveFailureFailsGroupOnly(t *testing.T) {
	res := newFakeResolver("B")
	ex := &fakeExcluder{}
	groups := []policy.ExclusionGroup{
		{Name: "bad", Tags: []string{"A", "B"}},
		{Name: "good", Tags: []string{"X", "Y"}},
	}

	failures := policy.Apply(context.Background(), res, ex, groups)
	require.Contains(t, failures, "bad")
	require.NotContains(t, failures, "good")
	require.Len(t, ex.pairs, 1) // only the good group's pair
}

// Integration: run Apply against a real engine facade.
func TestApply_RealEngine_ExcludesPairwise(t *testing.T) {
	eng := tagengine.OpenMem()
	defer eng.Close()
	groups := []policy.ExclusionGroup{{Name: "runtimes", Tags: []string{"Python", "Ruby", "Go"}}}

	failures := policy.Apply(context.Background(), eng, eng, groups)
	require.Empty(t, failures)

	python, err := eng.Resolve(tagmodel.RefByName("Python"), false)
	require.NoError(t, err)
	ruby, err := eng.Resolve(tagmodel.RefByName("Ruby"), false)
	require.NoError(t, err)
	require.True(t, eng.Excludes(python.ID, ruby.ID))
}

func TestApply_RealEngine_SelfExclusionWithinGroupIsSkipped(t *testing.T) {
	eng := tagengine.OpenMem()
	defer eng.Close()
	// A group listing the same name twice resolves to the same tag,
	// producing a self-exclude pair that Apply must treat as non-fatal.
	groups := []policy.ExclusionGroup{{Name: "dup", Tags: []string{"Python", "Python", "Ruby"}}}

	failures := policy.Apply(context.Background(), eng, eng, groups)
	require.Empty(t, failures)
}
