package scope_test

import (
	"testing"

	"github.com/t14raptor/go-scopes/binding"
	"github.com/t14raptor/go-scopes/object"
	"github.com/t14raptor/go-scopes/scope"
	"github.com/t14raptor/go-scopes/scopeinfo"
)

// realm bundles the fixtures almost every test needs: an arena, the global
// root and its global object.
type realm struct {
	arena  *scope.Arena
	native *scope.Context
	global *object.Object
}

func newRealm(t *testing.T) *realm {
	t.Helper()
	arena := scope.NewArena()
	global := object.NewGlobal(nil)
	return &realm{arena: arena, native: arena.NewNativeContext(global), global: global}
}

// declares builds a descriptor with one context local per name, declared
// as let with no initialization checking.
func declares(t *testing.T, names ...string) *scopeinfo.ScopeInfo {
	t.Helper()
	b := scopeinfo.NewBuilder()
	for _, name := range names {
		b.AddContextLocal(name, binding.ModeLet, binding.Initialized, binding.NotAssigned)
	}
	return b.Build()
}

// addScript allocates a top-level script scope and appends it to the
// realm's script context table, adopting the returned table.
func (r *realm) addScript(t *testing.T, info *scopeinfo.ScopeInfo) *scope.Context {
	t.Helper()
	sc := r.arena.NewScriptContext(r.native, info)
	r.native.SetScriptContexts(r.native.ScriptContexts().Extend(sc))
	return sc
}

// funcContext allocates a function activation directly under the root.
func (r *realm) funcContext(t *testing.T, info *scopeinfo.ScopeInfo) *scope.Context {
	t.Helper()
	return r.arena.NewFunctionContext(r.native, &scope.Closure{Name: "f", ScopeInfo: info})
}
