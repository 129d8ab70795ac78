package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t14raptor/go-scopes/binding"
	"github.com/t14raptor/go-scopes/scope"
	"github.com/t14raptor/go-scopes/scopeinfo"
)

// newScript allocates a script context without registering it anywhere, so
// table tests control the table themselves.
func (r *realm) newScript(t *testing.T, info *scopeinfo.ScopeInfo) *scope.Context {
	t.Helper()
	return r.arena.NewScriptContext(r.native, info)
}

func TestExtendWithoutGrowth(t *testing.T) {
	r := newRealm(t)
	table := scope.NewScriptContextTable(4)
	table = table.Extend(r.newScript(t, declares(t, "a")))
	table = table.Extend(r.newScript(t, declares(t, "b")))
	require.Equal(t, 2, table.Used())

	third := r.newScript(t, declares(t, "c"))
	extended := table.Extend(third)

	assert.Same(t, table, extended)
	assert.Equal(t, 3, extended.Used())
	assert.Equal(t, 4, extended.Length())
	assert.Same(t, third, extended.At(2))
}

func TestExtendWithGrowth(t *testing.T) {
	r := newRealm(t)
	table := scope.NewScriptContextTable(4)
	scripts := make([]*scope.Context, 0, 5)
	for i := 0; i < 4; i++ {
		sc := r.newScript(t, declares(t, "x"))
		scripts = append(scripts, sc)
		table = table.Extend(sc)
	}
	require.Equal(t, 4, table.Used())
	require.Equal(t, 4, table.Length())

	fifth := r.newScript(t, declares(t, "y"))
	scripts = append(scripts, fifth)
	extended := table.Extend(fifth)

	assert.NotSame(t, table, extended)
	assert.GreaterOrEqual(t, extended.Length(), 8)
	assert.Equal(t, 5, extended.Used())
	for i, sc := range scripts {
		assert.Same(t, sc, extended.At(i))
	}

	// The pre-growth reference is stale but still a valid snapshot.
	assert.Equal(t, 4, table.Used())
	assert.Equal(t, 4, table.Length())
	for i := 0; i < 4; i++ {
		assert.Same(t, scripts[i], table.At(i))
	}
}

func TestTableLookupReturnsEarliestMatch(t *testing.T) {
	r := newRealm(t)

	b1 := scopeinfo.NewBuilder()
	b1.AddContextLocal("pad1", binding.ModeLet, binding.Initialized, binding.NotAssigned)
	xSlot1 := b1.AddContextLocal("x", binding.ModeLet, binding.Initialized, binding.NotAssigned)
	s1 := r.newScript(t, b1.Build())

	b2 := scopeinfo.NewBuilder()
	b2.AddContextLocal("pad1", binding.ModeLet, binding.Initialized, binding.NotAssigned)
	b2.AddContextLocal("pad2", binding.ModeLet, binding.Initialized, binding.NotAssigned)
	b2.AddContextLocal("pad3", binding.ModeLet, binding.Initialized, binding.NotAssigned)
	xSlot2 := b2.AddContextLocal("x", binding.ModeConst, binding.NeedsInitialization, binding.NotAssigned)
	s2 := r.newScript(t, b2.Build())
	require.NotEqual(t, xSlot1, xSlot2)

	table := scope.NewScriptContextTable(4)
	table = table.Extend(s1)
	table = table.Extend(s2)

	res, ok := table.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 0, res.ContextIndex)
	assert.Equal(t, xSlot1, res.SlotIndex)
	assert.Equal(t, binding.ModeLet, res.Mode)
	assert.Equal(t, binding.Initialized, res.Init)

	res, ok = table.Lookup("pad3")
	require.True(t, ok)
	assert.Equal(t, 1, res.ContextIndex)

	_, ok = table.Lookup("absent")
	assert.False(t, ok)
}

func TestTableLookupThreadsAssignmentFlag(t *testing.T) {
	r := newRealm(t)
	b := scopeinfo.NewBuilder()
	b.AddContextLocal("v", binding.ModeVar, binding.Initialized, binding.MaybeAssigned)
	table := scope.NewScriptContextTable(1).Extend(r.newScript(t, b.Build()))

	res, ok := table.Lookup("v")
	require.True(t, ok)
	assert.Equal(t, binding.MaybeAssigned, res.Assigned)
}

func TestTablePreconditions(t *testing.T) {
	r := newRealm(t)

	assert.Panics(t, func() { scope.NewScriptContextTable(0) })
	assert.Panics(t, func() { scope.NewScriptContextTable(-1) })
	assert.Panics(t, func() {
		scope.NewScriptContextTable(2).Extend(nil)
	})
	assert.Panics(t, func() {
		// Only script contexts belong in the table.
		scope.NewScriptContextTable(2).Extend(r.native)
	})
}
