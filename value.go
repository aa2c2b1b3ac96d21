// Package jsonpatch implements RFC 6902 (JSON Patch) and RFC 6901 (JSON
// Pointer) over an in-memory JSON value tree.
package jsonpatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is any JSON value: Null, Bool, Number, String, *Array or *Object.
// *Array and *Object are reference types so that two Values can be
// compared for node identity (used by GetPath), not just structural
// equality.
type Value interface {
	isValue()
}

// Null is the JSON null value.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, represented as a float64.
type Number float64

// String is a JSON string.
type String string

// Array is an ordered JSON array.
type Array struct {
	Items []Value
}

// Object is an ordered JSON object: keys are unique and insertion order is
// preserved so that diff output is deterministic.
type Object struct {
	keys []string
	vals map[string]Value
}

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Number) isValue()  {}
func (String) isValue()  {}
func (*Array) isValue()  {}
func (*Object) isValue() {}

// absentValue is the sentinel used at API boundaries to mean "no value
// supplied", distinct from JSON null. It is never a valid JSON value and
// must not be reachable as operation output.
type absentValue struct{}

func (absentValue) isValue() {}

// Absent is the distinguished "no value" sentinel (see spec §3, §9).
var Absent Value = absentValue{}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v Value) bool {
	_, ok := v.(absentValue)
	return ok
}

// NewObject returns an empty ordered Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Get returns the value stored under key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set inserts or overwrites key, appending it to the key order the first
// time it is seen.
func (o *Object) Set(key string, v Value) {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order. Callers must not
// mutate the returned slice.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	return len(o.keys)
}

// Canonicalizer is implemented by values that have a canonical form that
// should be substituted before structural comparison or diffing (the
// "toJSON hook" of spec §4.6/§9).
type Canonicalizer interface {
	Canonicalize() Value
}

func canonicalize(v Value) Value {
	if c, ok := v.(Canonicalizer); ok {
		return c.Canonicalize()
	}
	return v
}

// areEquals is the structural, type-strict equality used by the `test`
// operation and the diff engine. Two NaN numbers compare equal, matching
// the reference implementation's `a!==a && b!==b` rule.
func areEquals(a, b Value) bool {
	a = canonicalize(a)
	b = canonicalize(b)

	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return false
		}
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		return av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Array:
		bv, ok := b.(*Array)
		if !ok {
			return false
		}
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !areEquals(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok {
			return false
		}
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bval, ok := bv.Get(k)
			if !ok {
				return false
			}
			if !areEquals(av.vals[k], bval) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal reports whether a and b are structurally equal JSON values.
func Equal(a, b Value) bool {
	return areEquals(a, b)
}

// containsAbsent reports whether v contains the Absent sentinel anywhere
// in its tree; add/replace/test values must not.
func containsAbsent(v Value) bool {
	switch tv := v.(type) {
	case absentValue:
		return true
	case *Array:
		for _, item := range tv.Items {
			if containsAbsent(item) {
				return true
			}
		}
	case *Object:
		for _, k := range tv.keys {
			if containsAbsent(tv.vals[k]) {
				return true
			}
		}
	}
	return false
}

// DeepClone returns a JSON-safe deep copy of v. The Absent sentinel
// clones to Null, mirroring what JSON serialization would do to an
// "undefined" value.
func DeepClone(v Value) Value {
	switch tv := v.(type) {
	case absentValue:
		return Null{}
	case Null, Bool, Number, String:
		return tv
	case *Array:
		items := make([]Value, len(tv.Items))
		for i, item := range tv.Items {
			items[i] = DeepClone(item)
		}
		return &Array{Items: items}
	case *Object:
		out := NewObject()
		for _, k := range tv.keys {
			out.Set(k, DeepClone(tv.vals[k]))
		}
		return out
	default:
		return Null{}
	}
}

// FormatNumber renders n the way MarshalValue does, for use in error
// messages and diagnostics.
func FormatNumber(n Number) string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Sprint renders v as compact JSON text for diagnostics (errors, String
// methods); it never fails since Value trees cannot contain cycles.
func Sprint(v Value) string {
	var buf bytes.Buffer
	writeValue(&buf, v)
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v Value) {
	switch tv := canonicalize(v).(type) {
	case nil:
		buf.WriteString("null")
	case Null:
		buf.WriteString("null")
	case absentValue:
		buf.WriteString("null")
	case Bool:
		if tv {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(FormatNumber(tv))
	case String:
		raw, _ := json.Marshal(string(tv))
		buf.Write(raw)
	case *Array:
		buf.WriteByte('[')
		for i, item := range tv.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, item)
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i, k := range tv.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, _ := json.Marshal(k)
			buf.Write(raw)
			buf.WriteByte(':')
			writeValue(buf, tv.vals[k])
		}
		buf.WriteByte('}')
	default:
		fmt.Fprintf(buf, "%v", tv)
	}
}
