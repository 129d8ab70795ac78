package scope

import (
	"fmt"

	"github.com/t14raptor/go-scopes/object"
	"github.com/t14raptor/go-scopes/scopeinfo"
)

const arenaStartLen = 16

// Arena is a bump allocator for context records. Records live as long as
// the arena does, so a previous back-reference or a captured chain link
// stays valid no matter which closure outlives the others. When a chunk
// fills up, a new chunk is allocated at 1.5x the previous size; records in
// older chunks are untouched.
type Arena struct {
	chunk []Context
	index int
}

// NewArena returns an empty context arena.
func NewArena() *Arena {
	return &Arena{chunk: make([]Context, arenaStartLen)}
}

func (a *Arena) new() *Context {
	c := &a.chunk[a.index]
	if a.index++; a.index == len(a.chunk) {
		a.resize()
	}
	return c
}

func (a *Arena) resize() {
	a.chunk = make([]Context, len(a.chunk)+len(a.chunk)>>1)
	a.index = 0
}

// NewNativeContext allocates the global root. It owns an empty script
// context table and carries the global object as its extension.
func (a *Arena) NewNativeContext(global *object.Object) *Context {
	c := a.new()
	*c = Context{
		kind:           KindNative,
		extension:      global,
		slots:          make([]object.Value, MinContextSlots),
		scriptContexts: NewScriptContextTable(initialTableLength),
	}
	return c
}

// NewScriptContext allocates a top-level script scope enclosed by the
// native context. The caller is responsible for appending it to the script
// context table.
func (a *Arena) NewScriptContext(previous *Context, info *scopeinfo.ScopeInfo) *Context {
	if previous == nil || previous.kind != KindNative {
		panic("scope: script context must be enclosed by the native context")
	}
	c := a.new()
	*c = Context{
		kind:      KindScript,
		previous:  previous,
		scopeInfo: info,
		slots:     make([]object.Value, info.SlotCount()),
	}
	return c
}

// NewModuleContext allocates a module scope.
func (a *Arena) NewModuleContext(previous *Context, closure *Closure, info *scopeinfo.ScopeInfo) *Context {
	c := a.new()
	*c = Context{
		kind:      KindModule,
		previous:  mustPrevious(previous, KindModule),
		closure:   closure,
		scopeInfo: info,
		slots:     make([]object.Value, info.SlotCount()),
	}
	return c
}

// NewFunctionContext allocates a function activation. Its descriptor is
// reached through the closure.
func (a *Arena) NewFunctionContext(previous *Context, closure *Closure) *Context {
	if closure == nil || closure.ScopeInfo == nil {
		panic("scope: function context needs an owning closure with scope info")
	}
	c := a.new()
	*c = Context{
		kind:     KindFunction,
		previous: mustPrevious(previous, KindFunction),
		closure:  closure,
		slots:    make([]object.Value, closure.ScopeInfo.SlotCount()),
	}
	return c
}

// NewBlockContext allocates a block scope.
func (a *Arena) NewBlockContext(previous *Context, closure *Closure, info *scopeinfo.ScopeInfo) *Context {
	c := a.new()
	*c = Context{
		kind:      KindBlock,
		previous:  mustPrevious(previous, KindBlock),
		closure:   closure,
		scopeInfo: info,
		slots:     make([]object.Value, info.SlotCount()),
	}
	return c
}

// NewWithContext allocates a with scope around the given subject.
func (a *Arena) NewWithContext(previous *Context, closure *Closure, subject object.Receiver) *Context {
	if subject == nil {
		panic("scope: with context needs a subject")
	}
	c := a.new()
	*c = Context{
		kind:      KindWith,
		previous:  mustPrevious(previous, KindWith),
		closure:   closure,
		extension: subject,
		slots:     make([]object.Value, MinContextSlots),
	}
	return c
}

// NewCatchContext allocates a catch scope binding thrown under name at the
// reserved thrown-object slot.
func (a *Arena) NewCatchContext(previous *Context, closure *Closure, name string, thrown object.Value) *Context {
	c := a.new()
	*c = Context{
		kind:      KindCatch,
		previous:  mustPrevious(previous, KindCatch),
		closure:   closure,
		catchName: name,
		slots:     make([]object.Value, MinContextSlots+1),
	}
	c.slots[ThrownObjectIndex] = thrown
	return c
}

func mustPrevious(previous *Context, kind Kind) *Context {
	if previous == nil {
		panic(fmt.Sprintf("scope: %v context without an enclosing context", kind))
	}
	return previous
}
