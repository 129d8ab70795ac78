package scope

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/t14raptor/go-scopes/binding"
	"github.com/t14raptor/go-scopes/object"
)

// Flags steer the lookup walk.
type Flags uint8

const (
	// FollowChains continues the walk into enclosing contexts.
	FollowChains Flags = 1 << iota
	// SkipWithContexts ignores with subjects along the way.
	SkipWithContexts
	// FollowPrototypes extends object probes to prototype chains.
	FollowPrototypes
	// StopAtDeclarationScope ends the walk at the nearest declaration
	// boundary instead of the global root.
	StopAtDeclarationScope
)

// NotFound is the slot index of a result whose binding is not slot-backed.
const NotFound = -1

// LookupResult locates a binding: a context plus slot index when the
// binding is slot-backed, a receiver when it lives as a property of a
// binding object. The zero result means the name resolved nowhere and the
// caller must defer to dynamic lookup.
type LookupResult struct {
	Context    *Context
	Object     object.Receiver
	Index      int
	Attributes binding.Attributes
	State      binding.State
}

// Found reports whether the lookup located a binding.
func (r LookupResult) Found() bool {
	return r.Context != nil || r.Object != nil
}

func notFound() LookupResult {
	return LookupResult{Index: NotFound, Attributes: binding.Absent, State: binding.StateMissing}
}

// Lookup resolves name against the scope chain starting at c.
//
// Each visited context is tried in three steps: the binding objects first
// (global object, with subject, context extension; on the root the script
// context table short-circuits ahead of the global object), then the
// context's own slots, then the walk either stops or moves to the
// enclosing context. A walk that ends without a hit returns a zero result
// and no error; the name is then dynamically resolved at execution time. A
// probe failure (a trap raising a language-level error) aborts the walk
// and is returned as the error.
func (c *Context) Lookup(name string, flags Flags) (LookupResult, error) {
	follow := flags&FollowChains != 0
	tr := c.traceLogger()
	if tr != nil {
		tr = tr.WithField("name", name)
		tr.Debug("lookup")
	}

	cur := c
	for {
		if tr != nil {
			tr.WithField("context", cur.kind.String()).Debug("looking in context")
		}

		// 1. Global objects, subjects of with, and extension objects.
		if cur.kind == KindNative ||
			(cur.kind == KindWith && flags&SkipWithContexts == 0) ||
			cur.kind == KindFunction || cur.kind == KindBlock {
			if recv := cur.ExtensionReceiver(); recv != nil {
				if cur.kind == KindNative {
					if r, ok := cur.scriptContexts.Lookup(name); ok {
						if tr != nil {
							tr.WithField("script", r.ContextIndex).Debug("found in script context")
						}
						attrs, state := binding.Classify(r.Mode, r.Init)
						return LookupResult{
							Context:    cur.scriptContexts.At(r.ContextIndex),
							Index:      r.SlotIndex,
							Attributes: attrs,
							State:      state,
						}, nil
					}
				}

				var attrs binding.Attributes
				var err error
				switch {
				case flags&FollowPrototypes == 0 || recv.IsContextExtension():
					// Context extension objects behave as if they had no
					// prototype, even when prototype following is on.
					attrs, err = recv.OwnPropertyAttributes(name)
				case cur.kind == KindWith:
					if name == "this" {
						// A with subject never binds "this".
						attrs = binding.Absent
					} else {
						attrs, err = unscopableLookup(recv, name)
					}
				default:
					attrs, err = recv.PropertyAttributes(name)
				}
				if err != nil {
					return notFound(), errors.Wrapf(err, "looking up %q", name)
				}
				if attrs != binding.Absent {
					if tr != nil {
						tr.Debug("found property in context object")
					}
					return LookupResult{Object: recv, Index: NotFound, Attributes: attrs}, nil
				}
			}
		}

		// 2. The context's own slots.
		switch cur.kind {
		case KindFunction, KindBlock, KindScript:
			info := cur.ScopeInfoOf()
			if slot, mode, init, _, ok := info.ContextSlotIndex(name); ok {
				if slot < MinContextSlots {
					panic(fmt.Sprintf("scope: descriptor slot %d inside the reserved range", slot))
				}
				if tr != nil {
					tr.WithField("slot", slot).Debug("found local in context slot")
				}
				attrs, state := binding.Classify(mode, init)
				return LookupResult{Context: cur, Index: slot, Attributes: attrs, State: state}, nil
			}

			// The slot holding the function's own name sits outside the
			// regular local search.
			if follow && cur.kind == KindFunction {
				if slot, mode, ok := info.FunctionSlotIndex(name); ok {
					if tr != nil {
						tr.WithField("slot", slot).Debug("found function name in context slot")
					}
					state := binding.ImmutableInitialized
					if mode == binding.ModeConst {
						state = binding.ImmutableInitializedHarmony
					}
					return LookupResult{Context: cur, Index: slot, Attributes: binding.ReadOnly, State: state}, nil
				}
			}

		case KindCatch:
			if name == cur.catchName {
				if tr != nil {
					tr.Debug("found in catch context")
				}
				return LookupResult{
					Context:    cur,
					Index:      ThrownObjectIndex,
					Attributes: binding.None,
					State:      binding.MutableInitialized,
				}, nil
			}
		}

		// 3. Continue with the enclosing context.
		if cur.kind == KindNative ||
			(flags&StopAtDeclarationScope != 0 && cur.IsDeclarationScope()) {
			follow = false
		}
		if !follow {
			break
		}
		if cur.previous == nil {
			panic(fmt.Sprintf("scope: chain past a %v context does not terminate at the global root", cur.kind))
		}
		cur = cur.previous
	}

	if tr != nil {
		tr.Debug("no property or slot found")
	}
	return notFound(), nil
}

// unscopableLookup probes a with subject for name, honoring the subject's
// unscopables collection: a present property is treated as absent when the
// collection lists its name with a truthy value. Trap failures from either
// the probe or the collection reads propagate.
func unscopableLookup(recv object.Receiver, name string) (binding.Attributes, error) {
	attrs, err := recv.PropertyAttributes(name)
	if err != nil || attrs == binding.Absent {
		return attrs, err
	}
	unscopables, err := recv.Get(object.SymbolKey(object.SymbolUnscopables))
	if err != nil {
		return binding.Absent, err
	}
	if !unscopables.IsObject() {
		return attrs, nil
	}
	excluded, err := unscopables.Object().Get(object.Name(name))
	if err != nil {
		return binding.Absent, err
	}
	if excluded.BooleanValue() {
		return binding.Absent, nil
	}
	return attrs, nil
}
