package object

import (
	"fmt"
	"math"
	"strconv"
)

type valueKind int

const (
	valueUndefined valueKind = iota
	valueNull
	valueBoolean
	valueNumber
	valueString
	valueObject
)

// Value is the representation of a language-level value as seen by the
// scope resolver: enough to carry property values, trap results and the
// unscopables blacklist.
type Value struct {
	value any
	kind  valueKind
}

var (
	undefinedValue = Value{kind: valueUndefined}
	nullValue      = Value{kind: valueNull}
	trueValue      = Value{kind: valueBoolean, value: true}
	falseValue     = Value{kind: valueBoolean, value: false}
)

// Undefined returns the undefined value.
func Undefined() Value { return undefinedValue }

// Null returns the null value.
func Null() Value { return nullValue }

// Boolean wraps a Go bool.
func Boolean(b bool) Value {
	if b {
		return trueValue
	}
	return falseValue
}

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: valueNumber, value: f} }

// String wraps a Go string.
func String(s string) Value { return Value{kind: valueString, value: s} }

// ObjectValue wraps an object.
func ObjectValue(o *Object) Value { return Value{kind: valueObject, value: o} }

// IsUndefined reports whether the value is undefined.
func (v Value) IsUndefined() bool { return v.kind == valueUndefined }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == valueNull }

// IsObject reports whether the value is an object.
func (v Value) IsObject() bool { return v.kind == valueObject }

// Object returns the wrapped object, or nil for non-object values.
func (v Value) Object() *Object {
	if v.kind == valueObject {
		return v.value.(*Object)
	}
	return nil
}

// BooleanValue coerces the value to a bool following ToBoolean: undefined,
// null, false, NaN, ±0 and "" are false, everything else true.
func (v Value) BooleanValue() bool {
	switch v.kind {
	case valueUndefined, valueNull:
		return false
	case valueBoolean:
		return v.value.(bool)
	case valueNumber:
		f := v.value.(float64)
		return f != 0 && !math.IsNaN(f)
	case valueString:
		return v.value.(string) != ""
	case valueObject:
		return true
	}
	panic(fmt.Sprintf("object: value of kind %d", v.kind))
}

func (v Value) String() string {
	switch v.kind {
	case valueUndefined:
		return "undefined"
	case valueNull:
		return "null"
	case valueBoolean:
		return strconv.FormatBool(v.value.(bool))
	case valueNumber:
		return strconv.FormatFloat(v.value.(float64), 'g', -1, 64)
	case valueString:
		return v.value.(string)
	case valueObject:
		return "[object]"
	}
	panic(fmt.Sprintf("object: value of kind %d", v.kind))
}
