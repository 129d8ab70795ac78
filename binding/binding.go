// Package binding defines how a statically resolved variable is stored and
// accessed: its declaration mode, its property attributes at the binding
// location, and whether reads before initialization must be checked.
package binding

import (
	"fmt"
	"strconv"
)

// Mode is the declaration mode of a variable.
type Mode int

const (
	ModeVar Mode = iota
	ModeLet
	ModeConstLegacy
	ModeConst
	ModeImport

	// Dynamic modes are resolved at execution time and never occupy a
	// fixed context slot.
	ModeDynamic
	ModeDynamicGlobal
	ModeDynamicLocal
	ModeTemporary
)

var mode2string = [...]string{
	ModeVar:           "var",
	ModeLet:           "let",
	ModeConstLegacy:   "const (legacy)",
	ModeConst:         "const",
	ModeImport:        "import",
	ModeDynamic:       "dynamic",
	ModeDynamicGlobal: "dynamic global",
	ModeDynamicLocal:  "dynamic local",
	ModeTemporary:     "temporary",
}

// String returns the string corresponding to the mode.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(mode2string) {
		return mode2string[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// InitFlag records whether a binding must be initialized by its declaration
// before it may be read or written.
type InitFlag int

const (
	Initialized InitFlag = iota
	NeedsInitialization
)

// MaybeAssignedFlag records whether static analysis saw a potential
// assignment to the binding after its declaration. It is threaded through
// slot lookups as metadata only; nothing in resolution consumes it.
type MaybeAssignedFlag int

const (
	NotAssigned MaybeAssignedFlag = iota
	MaybeAssigned
)

// Attributes are the property attributes of a binding at its location.
type Attributes int

// None is the empty attribute set of an ordinary writable binding.
const None Attributes = 0

const (
	ReadOnly Attributes = 1 << iota
	DontEnum
	DontDelete
)

// Absent is the probe result for a name with no binding at the queried
// location. It is never a valid attribute set.
const Absent Attributes = -1

// State describes mutability plus initialization checking for a binding.
type State int

const (
	StateMissing State = iota
	MutableInitialized
	MutableChecked
	ImmutableInitialized
	ImmutableChecked
	ImmutableInitializedHarmony
	ImmutableCheckedHarmony
)

var state2string = [...]string{
	StateMissing:                "missing",
	MutableInitialized:          "mutable, initialized",
	MutableChecked:              "mutable, checked",
	ImmutableInitialized:        "immutable, initialized",
	ImmutableChecked:            "immutable, checked",
	ImmutableInitializedHarmony: "immutable, initialized (harmony)",
	ImmutableCheckedHarmony:     "immutable, checked (harmony)",
}

// String returns the string corresponding to the state.
func (s State) String() string {
	if s >= 0 && int(s) < len(state2string) {
		return state2string[s]
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Classify maps a declaration mode and initialization flag to the property
// attributes and binding state of a fixed context slot holding the binding.
//
// Only modes that static analysis materializes as slots are valid here.
// Import bindings go through the module resolver, and dynamic and temporary
// variables never receive fixed slots; any of those reaching Classify is a
// bug in the caller.
func Classify(mode Mode, init InitFlag) (Attributes, State) {
	switch mode {
	case ModeVar:
		return None, MutableInitialized
	case ModeLet:
		if init == NeedsInitialization {
			return None, MutableChecked
		}
		return None, MutableInitialized
	case ModeConstLegacy:
		if init == NeedsInitialization {
			return ReadOnly, ImmutableChecked
		}
		return ReadOnly, ImmutableInitialized
	case ModeConst:
		if init == NeedsInitialization {
			return ReadOnly, ImmutableCheckedHarmony
		}
		return ReadOnly, ImmutableInitializedHarmony
	default:
		panic(fmt.Sprintf("binding: mode %v cannot occupy a context slot", mode))
	}
}
