package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/ckscan/domain"
)

func buildModel(t *testing.T, classes ...RawClass) *Model {
	t.Helper()
	m, err := Build(&RawModel{Classes: classes})
	require.NoError(t, err)
	return m
}

func TestHierarchyDepths(t *testing.T) {
	tests := []struct {
		name    string
		classes []RawClass
		depths  map[string]int
	}{
		{
			name: "single root",
			classes: []RawClass{
				{Name: "Entity"},
			},
			depths: map[string]int{"Entity": 0},
		},
		{
			name: "linear chain",
			classes: []RawClass{
				{Name: "Entity"},
				{Name: "User", Bases: []string{"Entity"}},
				{Name: "Admin", Bases: []string{"User"}},
				{Name: "SuperAdmin", Bases: []string{"Admin"}},
			},
			depths: map[string]int{
				"Entity":     0,
				"User":       1,
				"Admin":      2,
				"SuperAdmin": 3,
			},
		},
		{
			name: "multiple inheritance takes the deepest path",
			classes: []RawClass{
				{Name: "Base"},
				{Name: "Middle", Bases: []string{"Base"}},
				{Name: "Deep", Bases: []string{"Middle"}},
				{Name: "Mixed", Bases: []string{"Base", "Deep"}},
			},
			depths: map[string]int{
				"Base":   0,
				"Middle": 1,
				"Deep":   2,
				"Mixed":  3,
			},
		},
		{
			name: "external bases contribute no depth",
			classes: []RawClass{
				{Name: "Model", Bases: []string{"django.Model", "abc.ABC"}},
				{Name: "Profile", Bases: []string{"Model"}},
			},
			depths: map[string]int{
				"Model":   0,
				"Profile": 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(t, tt.classes...)
			for name, want := range tt.depths {
				got, err := m.Hierarchy().DepthOf(name)
				require.NoError(t, err, "DepthOf(%s)", name)
				assert.Equal(t, want, got, "DepthOf(%s)", name)
			}
		})
	}
}

func TestHierarchyRoots(t *testing.T) {
	m := buildModel(t,
		RawClass{Name: "Service"},
		RawClass{Name: "Entity"},
		RawClass{Name: "User", Bases: []string{"Entity"}},
		RawClass{Name: "Plugin", Bases: []string{"framework.Plugin"}},
	)

	// roots are cached at build time, in lexicographic order; a class whose
	// parents are all external counts as a root
	assert.Equal(t, []string{"Entity", "Plugin", "Service"}, m.Hierarchy().Roots())
}

func TestHierarchyChildren(t *testing.T) {
	m := buildModel(t,
		RawClass{Name: "Entity"},
		RawClass{Name: "Zone", Bases: []string{"Entity"}},
		RawClass{Name: "Account", Bases: []string{"Entity"}},
		RawClass{Name: "Archive", Bases: []string{"Account"}},
	)

	h := m.Hierarchy()
	assert.Equal(t, []string{"Account", "Zone"}, h.ChildrenOf("Entity"))
	assert.Equal(t, []string{"Archive"}, h.ChildrenOf("Account"))
	assert.Empty(t, h.ChildrenOf("Zone"))
}

func TestHierarchyCycle(t *testing.T) {
	// A <-> B form a cycle; Standalone and the chain below it are unrelated
	// and must stay fully analyzable
	m := buildModel(t,
		RawClass{Name: "A", Bases: []string{"B"}},
		RawClass{Name: "B", Bases: []string{"A"}},
		RawClass{Name: "C", Bases: []string{"B"}},
		RawClass{Name: "Standalone"},
		RawClass{Name: "Child", Bases: []string{"Standalone"}},
	)

	h := m.Hierarchy()

	for _, name := range []string{"A", "B", "C"} {
		assert.True(t, h.InCycle(name), "%s should be cyclic", name)
		_, err := h.DepthOf(name)
		require.Error(t, err, "DepthOf(%s)", name)
		var domainErr domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeCycle, domainErr.Code)
	}

	assert.False(t, h.InCycle("Standalone"))
	assert.False(t, h.InCycle("Child"))

	d, err := h.DepthOf("Child")
	require.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestHierarchySelfCycle(t *testing.T) {
	// a class declaring itself as a base is the smallest inheritance cycle
	m := buildModel(t,
		RawClass{Name: "Ouroboros", Bases: []string{"Ouroboros"}},
		RawClass{Name: "Plain"},
	)

	h := m.Hierarchy()
	assert.True(t, h.InCycle("Ouroboros"))

	_, err := h.DepthOf("Ouroboros")
	require.Error(t, err)
	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeCycle, domainErr.Code)

	d, err := h.DepthOf("Plain")
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestHierarchyLongCycle(t *testing.T) {
	m := buildModel(t,
		RawClass{Name: "P", Bases: []string{"R"}},
		RawClass{Name: "Q", Bases: []string{"P"}},
		RawClass{Name: "R", Bases: []string{"Q"}},
	)

	h := m.Hierarchy()
	for _, name := range []string{"P", "Q", "R"} {
		assert.True(t, h.InCycle(name), "%s should be cyclic", name)
	}
}

func TestHierarchyUnknownClass(t *testing.T) {
	m := buildModel(t, RawClass{Name: "Known"})

	_, err := m.Hierarchy().DepthOf("Unknown")
	require.Error(t, err)
	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeNotFound, domainErr.Code)
}
