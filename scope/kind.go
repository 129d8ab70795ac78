package scope

import "strconv"

// Kind is the set of context record kinds. Every operation in this package
// dispatches over this closed set.
type Kind int

const (
	KindNative Kind = iota
	KindScript
	KindModule
	KindFunction
	KindBlock
	KindWith
	KindCatch
)

var kind2string = [...]string{
	KindNative:   "native",
	KindScript:   "script",
	KindModule:   "module",
	KindFunction: "function",
	KindBlock:    "block",
	KindWith:     "with",
	KindCatch:    "catch",
}

// String returns the string corresponding to the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kind2string) {
		return kind2string[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}
