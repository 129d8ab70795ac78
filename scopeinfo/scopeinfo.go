// Package scopeinfo holds the static scope descriptors produced by scope
// analysis. A ScopeInfo is immutable once built: the runtime queries it for
// slot indices and declaration metadata but never mutates it.
package scopeinfo

import (
	"fmt"

	"github.com/t14raptor/go-scopes/binding"
)

// MinContextSlots is the number of reserved slots at the start of every
// context record. Slots assigned to context locals always come after them.
const MinContextSlots = 4

type local struct {
	name     string
	slot     int
	mode     binding.Mode
	init     binding.InitFlag
	assigned binding.MaybeAssignedFlag
}

// ScopeInfo is the serialized scope information for one function, block,
// script or module scope.
type ScopeInfo struct {
	locals []local

	functionName string
	functionSlot int
	functionMode binding.Mode

	declarationScope bool
}

// ContextSlotIndex looks up name among the scope's context locals. On a hit
// it returns the slot index together with the declared mode, initialization
// requirement and the pass-through assignment flag.
func (s *ScopeInfo) ContextSlotIndex(name string) (slot int, mode binding.Mode, init binding.InitFlag, assigned binding.MaybeAssignedFlag, ok bool) {
	for _, l := range s.locals {
		if l.name == name {
			return l.slot, l.mode, l.init, l.assigned, true
		}
	}
	return -1, 0, 0, 0, false
}

// FunctionSlotIndex checks the distinguished slot holding the function's own
// name, present on function scopes whose body can see that name. The binding
// there is always a const variant.
func (s *ScopeInfo) FunctionSlotIndex(name string) (slot int, mode binding.Mode, ok bool) {
	if s.functionName != "" && s.functionName == name {
		return s.functionSlot, s.functionMode, true
	}
	return -1, 0, false
}

// ContextLocalCount returns the number of context-allocated locals.
func (s *ScopeInfo) ContextLocalCount() int {
	return len(s.locals)
}

// SlotCount returns the total number of slots a context for this scope
// needs, reserved slots included.
func (s *ScopeInfo) SlotCount() int {
	n := MinContextSlots + len(s.locals)
	if s.functionName != "" {
		n++
	}
	return n
}

// IsDeclarationScope reports whether the scope owns the hoisted declarations
// of its region.
func (s *ScopeInfo) IsDeclarationScope() bool {
	return s.declarationScope
}

// Builder assembles a ScopeInfo. Slots are assigned in call order, starting
// at MinContextSlots.
type Builder struct {
	info ScopeInfo
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddContextLocal appends one context-allocated local and returns its slot.
func (b *Builder) AddContextLocal(name string, mode binding.Mode, init binding.InitFlag, assigned binding.MaybeAssignedFlag) int {
	slot := MinContextSlots + len(b.info.locals)
	b.info.locals = append(b.info.locals, local{
		name:     name,
		slot:     slot,
		mode:     mode,
		init:     init,
		assigned: assigned,
	})
	return slot
}

// SetFunctionName records the own-function-name binding. The mode must be a
// const variant; the slot is assigned past all context locals at Build time.
func (b *Builder) SetFunctionName(name string, mode binding.Mode) *Builder {
	if mode != binding.ModeConst && mode != binding.ModeConstLegacy {
		panic(fmt.Sprintf("scopeinfo: function name %q declared with mode %v", name, mode))
	}
	b.info.functionName = name
	b.info.functionMode = mode
	return b
}

// MarkDeclarationScope flags the scope as a declaration boundary.
func (b *Builder) MarkDeclarationScope() *Builder {
	b.info.declarationScope = true
	return b
}

// Build finalizes the descriptor. The Builder must not be reused.
func (b *Builder) Build() *ScopeInfo {
	if b.info.functionName != "" {
		b.info.functionSlot = MinContextSlots + len(b.info.locals)
	}
	return &b.info
}
