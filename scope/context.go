// Package scope implements the runtime scope chain: context records linked
// innermost to the global root, the growable table of top-level script
// scopes, and the lexical lookup walk that resolves a name to a fixed slot,
// a dynamically extensible binding object, or nothing.
package scope

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/t14raptor/go-scopes/object"
	"github.com/t14raptor/go-scopes/scopeinfo"
)

// MinContextSlots is the number of reserved slots at the start of every
// context record's slot array.
const MinContextSlots = scopeinfo.MinContextSlots

// ThrownObjectIndex is the fixed slot a catch context stores its single
// bound value in.
const ThrownObjectIndex = MinContextSlots

// Closure identifies the function whose activation created a context. The
// declaration-boundary walk uses it to detect a chain that strays across
// two different activations.
type Closure struct {
	Name      string
	ScopeInfo *scopeinfo.ScopeInfo
}

// EvalExtension is the sentinel wrapper a block context carries after a
// sloppy-mode direct eval declared into it. It bundles the block's static
// descriptor with the object holding the eval-introduced bindings.
type EvalExtension struct {
	ScopeInfo *scopeinfo.ScopeInfo
	Extension *object.Object
}

// Context is one link in the scope chain. Records are shared: every closure
// that captured a scope references the same record, and previous is a
// non-owning back-reference to the enclosing record.
type Context struct {
	kind     Kind
	previous *Context
	closure  *Closure

	// Static descriptor for script, module and plain block contexts.
	// Function contexts reach theirs through the closure; an eval-holding
	// block keeps it inside the extension wrapper.
	scopeInfo *scopeinfo.ScopeInfo

	// extension holds, depending on kind: the global object (native), a
	// context-extension object (function), an *EvalExtension (block), or
	// the with subject (with). Nil when the scope has no extension.
	extension any

	catchName string

	slots []object.Value

	// Native-context bookkeeping.
	scriptContexts *ScriptContextTable
	globalProxy    object.Receiver
	errorsThrown   int
	tracer         logrus.FieldLogger
}

// Kind returns the context's kind.
func (c *Context) Kind() Kind { return c.kind }

// Previous returns the enclosing context, or nil for the global root.
func (c *Context) Previous() *Context { return c.previous }

// Closure returns the activation identity the context belongs to.
func (c *Context) Closure() *Closure { return c.closure }

// IsNative reports whether the context is the global root.
func (c *Context) IsNative() bool { return c.kind == KindNative }

// IsScript reports whether the context is a top-level script scope.
func (c *Context) IsScript() bool { return c.kind == KindScript }

// IsModule reports whether the context is a module scope.
func (c *Context) IsModule() bool { return c.kind == KindModule }

// IsFunction reports whether the context is a function activation.
func (c *Context) IsFunction() bool { return c.kind == KindFunction }

// IsBlock reports whether the context is a block scope.
func (c *Context) IsBlock() bool { return c.kind == KindBlock }

// IsWith reports whether the context is a with scope.
func (c *Context) IsWith() bool { return c.kind == KindWith }

// IsCatch reports whether the context is a catch scope.
func (c *Context) IsCatch() bool { return c.kind == KindCatch }

// IsDeclarationScope reports whether the context owns the hoisted
// declarations of its region. Function, native and script contexts always
// do; a block does iff it carries the eval extension or its descriptor
// marks it a declaration scope.
func (c *Context) IsDeclarationScope() bool {
	switch c.kind {
	case KindFunction, KindNative, KindScript:
		return true
	case KindBlock:
		if _, ok := c.extension.(*EvalExtension); ok {
			return true
		}
		return c.ScopeInfoOf().IsDeclarationScope()
	}
	return false
}

// DeclarationContext walks outward from c to the nearest context that is a
// declaration scope. Every record visited must belong to the same
// activation as c; a chain spanning two closures is corrupted.
func (c *Context) DeclarationContext() *Context {
	cur := c
	for !cur.IsDeclarationScope() {
		cur = cur.previous
		if cur == nil || cur.closure != c.closure {
			panic(fmt.Sprintf("scope: declaration walk from %v context crossed activations", c.kind))
		}
	}
	return cur
}

// ScopeInfoOf returns the static descriptor of a script, module, function
// or block context.
func (c *Context) ScopeInfoOf() *scopeinfo.ScopeInfo {
	switch c.kind {
	case KindFunction:
		return c.closure.ScopeInfo
	case KindScript, KindModule:
		return c.scopeInfo
	case KindBlock:
		if ext, ok := c.extension.(*EvalExtension); ok {
			return ext.ScopeInfo
		}
		return c.scopeInfo
	}
	panic(fmt.Sprintf("scope: %v context has no scope info", c.kind))
}

// ExtensionObject resolves the context's extension to a plain object,
// unwrapping the eval sentinel on blocks. It returns nil when the context
// has no object extension. Valid on native, function and block contexts.
func (c *Context) ExtensionObject() *object.Object {
	switch c.kind {
	case KindNative, KindFunction:
		if c.extension == nil {
			return nil
		}
		obj, ok := c.extension.(*object.Object)
		if !ok {
			panic(fmt.Sprintf("scope: %v context carries a %T extension", c.kind, c.extension))
		}
		return obj
	case KindBlock:
		ext, ok := c.extension.(*EvalExtension)
		if !ok {
			return nil
		}
		return ext.Extension
	}
	panic(fmt.Sprintf("scope: %v context has no extension object", c.kind))
}

// ExtensionReceiver resolves the context's extension to a bindable
// receiver. A with context yields its subject unwrapped; native, function
// and block contexts yield their extension object. Nil when absent.
func (c *Context) ExtensionReceiver() object.Receiver {
	if c.kind == KindWith {
		return c.extension.(object.Receiver)
	}
	if obj := c.ExtensionObject(); obj != nil {
		return obj
	}
	return nil
}

// CatchName returns the single bound name of a catch context.
func (c *Context) CatchName() string {
	if c.kind != KindCatch {
		panic(fmt.Sprintf("scope: catch name of %v context", c.kind))
	}
	return c.catchName
}

// Slot reads a context slot.
func (c *Context) Slot(i int) object.Value {
	if i < 0 || i >= len(c.slots) {
		panic(fmt.Sprintf("scope: slot %d out of range on %v context with %d slots", i, c.kind, len(c.slots)))
	}
	return c.slots[i]
}

// SetSlot writes a context slot.
func (c *Context) SetSlot(i int, v object.Value) {
	if i < 0 || i >= len(c.slots) {
		panic(fmt.Sprintf("scope: slot %d out of range on %v context with %d slots", i, c.kind, len(c.slots)))
	}
	c.slots[i] = v
}

// SlotCount returns the size of the context's slot array.
func (c *Context) SlotCount() int { return len(c.slots) }

// NativeContext walks outward to the global root, or returns nil when the
// chain does not reach one (only valid during bootstrap).
func (c *Context) NativeContext() *Context {
	cur := c
	for cur != nil && cur.kind != KindNative {
		cur = cur.previous
	}
	return cur
}

// ScriptContext walks outward to the nearest top-level script context.
func (c *Context) ScriptContext() *Context {
	cur := c
	for cur.kind != KindScript {
		cur = cur.previous
		if cur == nil {
			panic("scope: chain has no script context")
		}
	}
	return cur
}

// GlobalObject returns the global object hanging off the chain's root.
func (c *Context) GlobalObject() *object.Object {
	native := c.NativeContext()
	if native == nil {
		panic("scope: chain does not reach a native context")
	}
	return native.extension.(*object.Object)
}

// GlobalProxy returns the global proxy registered on the chain's root.
func (c *Context) GlobalProxy() object.Receiver {
	return c.NativeContext().globalProxy
}

// SetGlobalProxy registers the global proxy on the chain's root.
func (c *Context) SetGlobalProxy(proxy object.Receiver) {
	c.NativeContext().globalProxy = proxy
}

// ScriptContexts returns the current table of top-level script scopes. The
// table is replaced wholesale on growth; callers holding an older reference
// observe a valid but stale snapshot.
func (c *Context) ScriptContexts() *ScriptContextTable {
	c.mustBeNative("script context table")
	return c.scriptContexts
}

// SetScriptContexts adopts the table returned by Extend.
func (c *Context) SetScriptContexts(table *ScriptContextTable) {
	c.mustBeNative("script context table")
	c.scriptContexts = table
}

// IncrementErrorsThrown bumps the per-realm thrown-error counter.
func (c *Context) IncrementErrorsThrown() {
	c.mustBeNative("errors-thrown counter")
	c.errorsThrown++
}

// ErrorsThrown returns the per-realm thrown-error counter.
func (c *Context) ErrorsThrown() int {
	c.mustBeNative("errors-thrown counter")
	return c.errorsThrown
}

// SetTracer installs a diagnostic logger for lookups on this chain. Pass
// nil to disable. Tracing never affects resolution.
func (c *Context) SetTracer(l logrus.FieldLogger) {
	c.mustBeNative("tracer")
	c.tracer = l
}

func (c *Context) mustBeNative(what string) {
	if c.kind != KindNative {
		panic(fmt.Sprintf("scope: %s on %v context", what, c.kind))
	}
}

func (c *Context) traceLogger() logrus.FieldLogger {
	if native := c.NativeContext(); native != nil {
		return native.tracer
	}
	return nil
}

// AttachExtension hangs a dynamic-binding object onto a function or block
// context after the fact (sloppy-mode direct eval declaring into it). A
// block wraps the object together with its descriptor so later unwrapping
// can tell the two apart.
func (c *Context) AttachExtension(ext *object.Object) {
	switch c.kind {
	case KindFunction:
		c.extension = ext
	case KindBlock:
		c.extension = &EvalExtension{ScopeInfo: c.scopeInfo, Extension: ext}
		c.scopeInfo = nil
	default:
		panic(fmt.Sprintf("scope: attaching extension to %v context", c.kind))
	}
}
