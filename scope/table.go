package scope

import (
	"fmt"

	"github.com/t14raptor/go-scopes/binding"
)

const (
	initialTableLength = 4

	// maxTableLength caps table growth well below any index overflow.
	maxTableLength = 1 << 26
)

// ScriptContextTable is the ordered collection of top-level script scopes
// hanging off a native context, in order of evaluation. The backing store
// is replaced wholesale on growth and never mutated in place, so a holder
// of a pre-growth reference keeps observing a valid snapshot.
type ScriptContextTable struct {
	entries []*Context
	used    int
}

// NewScriptContextTable returns an empty table with the given capacity.
func NewScriptContextTable(length int) *ScriptContextTable {
	if length <= 0 {
		panic(fmt.Sprintf("scope: script context table of length %d", length))
	}
	return &ScriptContextTable{entries: make([]*Context, length)}
}

// Used returns the number of appended script contexts.
func (t *ScriptContextTable) Used() int { return t.used }

// Length returns the table's current capacity.
func (t *ScriptContextTable) Length() int { return len(t.entries) }

// At returns the i-th appended script context.
func (t *ScriptContextTable) At(i int) *Context {
	if i < 0 || i >= t.used {
		panic(fmt.Sprintf("scope: script context %d of %d", i, t.used))
	}
	return t.entries[i]
}

// Extend appends one script context and returns the table holding it. A
// full table is not grown in place: a new backing store of twice the
// length is allocated and the entries copied, so the caller must adopt the
// returned reference; the one passed in may be stale. Bookkeeping that is
// out of bounds, or growth past the absolute ceiling, is a corrupted-realm
// condition and fatal.
func (t *ScriptContextTable) Extend(script *Context) *ScriptContextTable {
	used, length := t.used, len(t.entries)
	if used < 0 || length <= 0 || used > length {
		panic(fmt.Sprintf("scope: script context table bookkeeping used=%d length=%d", used, length))
	}
	if script == nil || script.kind != KindScript {
		panic("scope: extending script context table with a non-script context")
	}
	result := t
	if used == length {
		if length >= maxTableLength/2 {
			panic(fmt.Sprintf("scope: script context table at growth ceiling (length=%d)", length))
		}
		entries := make([]*Context, 2*length)
		copy(entries, t.entries)
		result = &ScriptContextTable{entries: entries, used: used}
	}
	result.entries[used] = script
	result.used = used + 1
	return result
}

// TableLookupResult is a script-table hit: which table entry, which slot
// within it, and the slot's declaration metadata. Assigned is carried
// through from the descriptor without affecting resolution.
type TableLookupResult struct {
	ContextIndex int
	SlotIndex    int
	Mode         binding.Mode
	Init         binding.InitFlag
	Assigned     binding.MaybeAssignedFlag
}

// Lookup scans the appended script contexts in evaluation order and
// returns the first one declaring name. Earlier scripts win: a binding
// captured from an earlier script keeps resolving to itself even after a
// later script redeclares the name.
func (t *ScriptContextTable) Lookup(name string) (TableLookupResult, bool) {
	for i := 0; i < t.used; i++ {
		info := t.entries[i].ScopeInfoOf()
		if slot, mode, init, assigned, ok := info.ContextSlotIndex(name); ok {
			return TableLookupResult{
				ContextIndex: i,
				SlotIndex:    slot,
				Mode:         mode,
				Init:         init,
				Assigned:     assigned,
			}, true
		}
	}
	return TableLookupResult{}, false
}
