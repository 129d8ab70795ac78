// Package object is the property model the scope resolver probes against:
// objects with prototype chains, attribute-carrying properties, getter traps
// that may raise language-level errors, and symbol-keyed properties such as
// the well-known unscopables collection.
package object

import (
	"fmt"

	"github.com/t14raptor/go-scopes/binding"
)

// Symbol is a unique property key. Two symbols are equal only if they are
// the same pointer.
type Symbol struct {
	Description string
}

// SymbolUnscopables is the well-known symbol naming the collection of
// property names hidden from with-scope resolution.
var SymbolUnscopables = &Symbol{Description: "Symbol.unscopables"}

// PropertyKey is either a string name or a *Symbol.
type PropertyKey struct {
	name   string
	symbol *Symbol
}

// Name returns a string-named key.
func Name(s string) PropertyKey { return PropertyKey{name: s} }

// SymbolKey returns a symbol-named key.
func SymbolKey(s *Symbol) PropertyKey { return PropertyKey{symbol: s} }

func (k PropertyKey) String() string {
	if k.symbol != nil {
		return k.symbol.Description
	}
	return k.name
}

// Getter computes a property value on access. A non-nil error is a
// language-level throw and must propagate to the caller unchanged.
type Getter func() (Value, error)

type property struct {
	key        PropertyKey
	value      Value
	getter     Getter
	attributes binding.Attributes
}

// Class distinguishes the object flavors the resolver cares about.
type Class int

const (
	ClassOrdinary Class = iota

	// ClassContextExtension marks the extension object a function or
	// eval-holding block hangs dynamic declarations on. It behaves as if
	// it had no prototype.
	ClassContextExtension

	// ClassGlobal marks the global object attached to the native scope.
	ClassGlobal
)

// Object is a dynamically extensible property collection with an optional
// prototype.
type Object struct {
	class      Class
	prototype  *Object
	properties []property
}

// New returns an empty ordinary object with the given prototype.
func New(prototype *Object) *Object {
	return &Object{class: ClassOrdinary, prototype: prototype}
}

// NewContextExtension returns an empty context-extension object.
func NewContextExtension() *Object {
	return &Object{class: ClassContextExtension}
}

// NewGlobal returns an empty global object with the given prototype.
func NewGlobal(prototype *Object) *Object {
	return &Object{class: ClassGlobal, prototype: prototype}
}

// Class returns the object's class.
func (o *Object) Class() Class { return o.class }

// IsContextExtension reports whether the object is a context-extension
// object, which must be probed without following prototypes.
func (o *Object) IsContextExtension() bool { return o.class == ClassContextExtension }

// Prototype returns the object's prototype, possibly nil.
func (o *Object) Prototype() *Object { return o.prototype }

func (o *Object) find(key PropertyKey) *property {
	for i := range o.properties {
		if o.properties[i].key == key {
			return &o.properties[i]
		}
	}
	return nil
}

// Set defines or overwrites a plain data property with default attributes.
func (o *Object) Set(key PropertyKey, value Value) {
	o.DefineProperty(key, value, binding.None)
}

// DefineProperty defines or overwrites a data property.
func (o *Object) DefineProperty(key PropertyKey, value Value, attrs binding.Attributes) {
	if attrs == binding.Absent {
		panic(fmt.Sprintf("object: defining %q with absent attributes", key))
	}
	if p := o.find(key); p != nil {
		p.value, p.getter, p.attributes = value, nil, attrs
		return
	}
	o.properties = append(o.properties, property{key: key, value: value, attributes: attrs})
}

// DefineAccessor defines or overwrites an accessor property whose reads run
// through the getter trap.
func (o *Object) DefineAccessor(key PropertyKey, getter Getter, attrs binding.Attributes) {
	if p := o.find(key); p != nil {
		p.value, p.getter, p.attributes = Value{}, getter, attrs
		return
	}
	o.properties = append(o.properties, property{key: key, getter: getter, attributes: attrs})
}

// Get reads a property, walking the prototype chain and running getter
// traps. A missing property yields undefined; a trap error propagates.
func (o *Object) Get(key PropertyKey) (Value, error) {
	for cur := o; cur != nil; cur = cur.prototype {
		if p := cur.find(key); p != nil {
			if p.getter != nil {
				return p.getter()
			}
			return p.value, nil
		}
	}
	return Undefined(), nil
}

// OwnPropertyAttributes probes the object's own properties for name. It
// returns binding.Absent when the property does not exist. It never follows
// the prototype and never runs getter traps.
func (o *Object) OwnPropertyAttributes(name string) (binding.Attributes, error) {
	if p := o.find(Name(name)); p != nil {
		return p.attributes, nil
	}
	return binding.Absent, nil
}

// PropertyAttributes probes the object and its prototype chain for name.
// It returns binding.Absent when no object on the chain has the property.
func (o *Object) PropertyAttributes(name string) (binding.Attributes, error) {
	for cur := o; cur != nil; cur = cur.prototype {
		if p := cur.find(Name(name)); p != nil {
			return p.attributes, nil
		}
	}
	return binding.Absent, nil
}

// Receiver is the view of a bindable object the scope resolver needs. Every
// method can fail with a language-level error raised by a trap.
type Receiver interface {
	Get(key PropertyKey) (Value, error)
	OwnPropertyAttributes(name string) (binding.Attributes, error)
	PropertyAttributes(name string) (binding.Attributes, error)
	IsContextExtension() bool
}

var _ Receiver = (*Object)(nil)
