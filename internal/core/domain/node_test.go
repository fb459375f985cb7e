package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/libref/internal/core/domain"
)

func TestNewNode_LoadsDeclarationsInOrder(t *testing.T) {
	node, _ := newTestNode("app", "../libA", "../libB", "../libC")

	refs := node.Refs()
	require.Len(t, refs, 3)
	assert.Equal(t, "../libA", refs[0].RelativePath())
	assert.Equal(t, "../libB", refs[1].RelativePath())
	assert.Equal(t, "../libC", refs[2].RelativePath())

	for _, r := range refs {
		assert.Nil(t, r.Resolved())
		assert.Empty(t, r.Location())
	}
	assert.True(t, node.HasRefs())
	assert.True(t, node.MissingRefs())
}

func TestNewNode_GapTruncatesEnumeration(t *testing.T) {
	src := &memSource{vals: map[string]string{
		"libraryRef1": "../libA",
		// libraryRef2 is missing on purpose.
		"libraryRef3": "../libC",
	}}
	node := domain.NewNode(project{name: "app", loc: "/ws/app"}, src, cleanPaths{})

	refs := node.Refs()
	require.Len(t, refs, 1)
	assert.Equal(t, "../libA", refs[0].RelativePath())
}

func TestNewNode_NoDeclarations(t *testing.T) {
	node, _ := newTestNode("app")

	assert.Empty(t, node.Refs())
	assert.False(t, node.HasRefs())
	assert.False(t, node.MissingRefs())
	assert.NotNil(t, node.FullDependencies())
	assert.Empty(t, node.FullDependencies())
}

func TestResolve_BindsMatchingRef(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	lib, _ := newTestNode("libA")

	ref := app.Resolve(lib)
	require.NotNil(t, ref)
	assert.Same(t, lib, ref.Resolved())
	assert.Equal(t, "/ws/libA", ref.Location())
	assert.False(t, app.MissingRefs())

	parents := lib.Parents()
	require.Len(t, parents, 1)
	assert.Same(t, app, parents[0])

	deps := app.FullDependencies()
	require.Len(t, deps, 1)
	assert.Equal(t, "libA", deps[0].Name())
}

func TestResolve_NoMatchIsNotAnError(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	other, _ := newTestNode("unrelated")

	assert.Nil(t, app.Resolve(other))
	assert.True(t, app.MissingRefs())
	assert.Empty(t, other.Parents())
}

func TestResolve_SecondCallIsNoOp(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	lib, _ := newTestNode("libA")

	require.NotNil(t, app.Resolve(lib))
	assert.Nil(t, app.Resolve(lib))

	// The parent back-link must not be duplicated.
	assert.Len(t, lib.Parents(), 1)
}

func TestResolve_BindsAtMostOneRefPerCall(t *testing.T) {
	// Two declarations pointing at the same folder.
	app, _ := newTestNode("app", "../libA", "../libA/")
	lib, _ := newTestNode("libA")

	ref := app.Resolve(lib)
	require.NotNil(t, ref)

	refs := app.Refs()
	assert.Same(t, lib, refs[0].Resolved())
	assert.Nil(t, refs[1].Resolved())
}

func TestResolve_CanonicalizationFailureIsSwallowed(t *testing.T) {
	src := &memSource{vals: refProps("../libA", "../libB")}
	paths := failingPaths{fail: map[string]bool{"/ws/libA": true}}
	app := domain.NewNode(project{name: "app", loc: "/ws/app"}, src, paths)
	libA := domain.NewNode(project{name: "libA", loc: "/ws/libA"}, &memSource{vals: map[string]string{}}, paths)
	libB := domain.NewNode(project{name: "libB", loc: "/ws/libB"}, &memSource{vals: map[string]string{}}, paths)

	// The candidate's own location fails to canonicalize: no match, no error.
	assert.Nil(t, app.Resolve(libA))

	// A failing ref is skipped, later refs still match.
	ref := app.Resolve(libB)
	require.NotNil(t, ref)
	assert.Equal(t, "../libB", ref.RelativePath())
}

func TestClose_UnbindsAndNotifies(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	lib, _ := newTestNode("libA")

	ref := app.Resolve(lib)
	require.NotNil(t, ref)

	ref.Close()
	assert.Nil(t, ref.Resolved())
	assert.Empty(t, ref.Location())
	assert.Empty(t, lib.Parents())
	assert.Empty(t, app.FullDependencies())

	// Closing again is a safe no-op.
	ref.Close()
	assert.Empty(t, lib.Parents())
}

func TestDependsOn(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	lib, _ := newTestNode("libA")
	other, _ := newTestNode("libB")

	assert.False(t, app.DependsOn(lib), "unresolved declarations do not count")

	require.NotNil(t, app.Resolve(lib))
	assert.True(t, app.DependsOn(lib))
	assert.False(t, app.DependsOn(other))
	assert.False(t, app.DependsOn(nil))
}

func TestRefLookups(t *testing.T) {
	app, _ := newTestNode("app", "../libA", "../libB")
	libA, _ := newTestNode("libA")
	libB, _ := newTestNode("libB")

	require.NotNil(t, app.Resolve(libA))
	require.NotNil(t, app.Resolve(libB))

	ref := app.RefFor(libA.Project())
	require.NotNil(t, ref)
	assert.Equal(t, "../libA", ref.RelativePath())

	ref = app.RefNamed("libB")
	require.NotNil(t, ref)
	assert.Equal(t, "../libB", ref.RelativePath())

	assert.Nil(t, app.RefNamed("nope"))
}

func TestIsLibrary(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"maybe", false},
		{"", false},
	}
	for _, tc := range cases {
		src := &memSource{vals: map[string]string{"library": tc.value}}
		node := domain.NewNode(project{name: "lib", loc: "/ws/lib"}, src, cleanPaths{})
		assert.Equal(t, tc.want, node.IsLibrary(), "library=%q", tc.value)
	}

	node, _ := newTestNode("plain")
	assert.False(t, node.IsLibrary())
}

func TestTargetID(t *testing.T) {
	src := &memSource{vals: map[string]string{"target": "platform-34"}}
	node := domain.NewNode(project{name: "app", loc: "/ws/app"}, src, cleanPaths{})

	assert.Equal(t, "platform-34", node.TargetID(), "falls back to the declared property")

	node.SetTargetID("platform-35")
	assert.Equal(t, "platform-35", node.TargetID(), "explicit association wins")
}

func TestSettingsPassthrough(t *testing.T) {
	node, _ := newTestNode("app")
	assert.Nil(t, node.Settings())

	blob := map[string]string{"splitDensity": "true"}
	node.SetSettings(blob)
	assert.Equal(t, blob, node.Settings())
}

func TestNodeIdentity(t *testing.T) {
	a1 := domain.NewNode(project{name: "a", loc: "/ws/a"}, &memSource{vals: map[string]string{}}, cleanPaths{})
	a2 := domain.NewNode(project{name: "renamed", loc: "/ws/a"}, &memSource{vals: map[string]string{}}, cleanPaths{})
	b := domain.NewNode(project{name: "b", loc: "/ws/b"}, &memSource{vals: map[string]string{}}, cleanPaths{})

	assert.True(t, a1.Equal(a2), "identity follows the project location")
	assert.False(t, a1.Equal(b))
	assert.False(t, a1.Equal(nil))
	assert.Equal(t, a1.Hash(), a2.Hash())
	assert.NotEqual(t, a1.Hash(), b.Hash())
	assert.Equal(t, "a", a1.String())
}

func TestRefPredicates(t *testing.T) {
	app, _ := newTestNode("app", "../libA")
	other, _ := newTestNode("other", "../libA")
	lib, _ := newTestNode("libA")

	ref := app.Refs()[0]
	assert.True(t, ref.MatchesPath("../libA"))
	assert.True(t, ref.MatchesPath("../libA/"), "trailing separator is normalized away")
	assert.False(t, ref.MatchesPath("../libB"))

	assert.True(t, ref.MatchesRef(app.Refs()[0]))
	assert.False(t, ref.MatchesRef(other.Refs()[0]), "same path, different owner")
	assert.False(t, ref.MatchesRef(nil))

	assert.False(t, ref.MatchesProject(lib.Project()), "unresolved ref matches no project")
	require.NotNil(t, app.Resolve(lib))
	assert.True(t, ref.MatchesProject(lib.Project()))

	assert.Equal(t, app.Refs()[0].Hash(), other.Refs()[0].Hash())
}

func TestSaveProperties(t *testing.T) {
	node, src := newTestNode("app")
	require.NoError(t, node.SaveProperties())
	assert.Equal(t, 1, src.saves)

	src.saveErr = assert.AnError
	err := node.SaveProperties()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save project properties")
}
