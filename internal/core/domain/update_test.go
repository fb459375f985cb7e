package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/libref/internal/core/domain/mocks"
)

func TestUpdateLibrary_RewritesAndBinds(t *testing.T) {
	app, src := newTestNode("app", "../libOld")
	target, _ := newTestNode("libNew")

	ref, err := app.UpdateLibrary("../libOld", "../libNew", target)
	require.NoError(t, err)
	require.NotNil(t, ref)

	assert.Equal(t, "../libNew", ref.RelativePath())
	assert.Same(t, target, ref.Resolved())
	assert.Equal(t, "/ws/libNew", ref.Location())
	assert.Equal(t, []string{"libNew"}, names(app.FullDependencies()))
	require.Len(t, target.Parents(), 1)
	assert.Same(t, app, target.Parents()[0])

	// The declaration was rewritten and persisted.
	v, ok := src.Get("libraryRef1")
	require.True(t, ok)
	assert.Equal(t, "../libNew", v)
	assert.Equal(t, 1, src.saves)
}

func TestUpdateLibrary_SpellingDifferencesStillMatch(t *testing.T) {
	// The argument and the declaration disagree on trailing separators but
	// canonicalize to the same folder.
	app, src := newTestNode("app", "../libOld/")
	target, _ := newTestNode("libNew")

	ref, err := app.UpdateLibrary("../libOld", "../libNew", target)
	require.NoError(t, err)
	require.NotNil(t, ref)

	v, ok := src.Get("libraryRef1")
	require.True(t, ok)
	assert.Equal(t, "../libNew", v)
}

func TestUpdateLibrary_IgnoresResolvedRefs(t *testing.T) {
	// Two declarations of the same folder, one already resolved. Only the
	// unresolved one is eligible.
	app, _ := newTestNode("app", "../libX", "../libX")
	libX, _ := newTestNode("libX")
	target, _ := newTestNode("libY")

	bound := app.Resolve(libX)
	require.NotNil(t, bound)

	ref, err := app.UpdateLibrary("../libX", "../libY", target)
	require.NoError(t, err)
	require.NotNil(t, ref)

	refs := app.Refs()
	assert.Same(t, bound, refs[0])
	assert.Equal(t, "../libX", refs[0].RelativePath(), "resolved ref is untouched")
	assert.Same(t, libX, refs[0].Resolved())
	assert.Same(t, ref, refs[1])
	assert.Equal(t, "../libY", refs[1].RelativePath())
	assert.Same(t, target, refs[1].Resolved())
}

func TestUpdateLibrary_NoMatchIsNotAnError(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	target, _ := newTestNode("libNew")

	ref, err := app.UpdateLibrary("../elsewhere", "../libNew", target)
	assert.Nil(t, ref)
	assert.NoError(t, err)

	// A fully resolved node has no eligible refs at all.
	libA, _ := newTestNode("libA")
	require.NotNil(t, app.Resolve(libA))
	ref, err = app.UpdateLibrary("../libA", "../libNew", target)
	assert.Nil(t, ref)
	assert.NoError(t, err)
}

func TestUpdateLibrary_PersistFailureKeepsBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := map[string]string{"libraryRef1": "../libOld"}

	src := mocks.NewMockPropertySource(ctrl)
	src.EXPECT().Get(gomock.Any()).DoAndReturn(func(key string) (string, bool) {
		v, ok := store[key]
		return v, ok
	}).AnyTimes()
	src.EXPECT().Set("libraryRef1", "../libNew").Do(func(key, value string) {
		store[key] = value
	})
	src.EXPECT().Save().Return(assert.AnError)

	app := domain.NewNode(project{name: "app", loc: "/ws/app"}, src, cleanPaths{})
	target, _ := newTestNode("libNew")

	ref, err := app.UpdateLibrary("../libOld", "../libNew", target)
	require.NotNil(t, ref, "the in-memory rewrite stands")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save project properties")

	assert.Equal(t, "../libNew", ref.RelativePath())
	assert.Same(t, target, ref.Resolved())
	assert.Equal(t, []string{"libNew"}, names(app.FullDependencies()))
}

func TestUpdateLibrary_RoundTrip(t *testing.T) {
	app, src := newTestNode("app", "../libOld")
	target, _ := newTestNode("libNew")

	ref, err := app.UpdateLibrary("../libOld", "../libNew", target)
	require.NoError(t, err)
	require.NotNil(t, ref)

	// A fresh load from the same source sees the new declaration and
	// resolves it to the new target again.
	fresh := domain.NewNode(project{name: "app", loc: "/ws/app"}, src, cleanPaths{})
	refs := fresh.Refs()
	require.Len(t, refs, 1)
	assert.Equal(t, "../libNew", refs[0].RelativePath())

	bound := fresh.Resolve(target)
	require.NotNil(t, bound)
	assert.Equal(t, []string{"libNew"}, names(fresh.FullDependencies()))
}
