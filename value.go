// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt    // integer that fits in 32 bits
	KindLong   // integer that needs 64 bits
	KindDouble // 64-bit float, always finite when built through wrap
	KindString
	KindObject
	KindArray
	kindRaw // value deferring to a Marshaler hook
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case kindRaw:
		return "raw"
	}
	return "unknown"
}

// Value is a tagged union over the JSON kinds.  The zero Value is JSON null.
// A value is immutable once classified; Object and Array containers reached
// through a Value are mutable.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	o    *Object
	a    *Array
	m    Marshaler
}

// Marshaler is implemented by values that produce their own JSON text.  The
// returned string is emitted verbatim by the writer, so it must itself be
// strictly conforming JSON.  A failing hook surfaces as a MarshalerError.
type Marshaler interface {
	MarshalJSONText() (string, error)
}

// Valuer is implemented by external types that know how to project themselves
// into the document model.  It replaces reflection-based construction: types
// declare their own field mapping instead of being introspected.
type Valuer interface {
	JSONValue() (*Value, error)
}

// Null returns the sentinel value for explicit JSON null.  It is distinct
// from an absent key.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean Value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// Int returns an integer Value, using the int kind when v fits in 32 bits and
// the long kind otherwise.
func Int(v int64) *Value {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return &Value{kind: KindInt, i: v}
	}
	return &Value{kind: KindLong, i: v}
}

// Long returns a 64-bit integer Value.
func Long(v int64) *Value {
	return &Value{kind: KindLong, i: v}
}

// Double returns a float Value.  Non-finite values are rejected with
// ErrNonFiniteNumber.
func Double(v float64) (*Value, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, ErrNonFiniteNumber
	}
	return &Value{kind: KindDouble, f: v}, nil
}

// String returns a string Value.
func String(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// Kind returns the variant held by the value.  A nil receiver reports
// KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is the null sentinel.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean payload and whether the value is a boolean.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt64 returns the integer payload and whether the value is an integer of
// either width.
func (v *Value) AsInt64() (int64, bool) {
	if v == nil || (v.kind != KindInt && v.kind != KindLong) {
		return 0, false
	}
	return v.i, true
}

// AsFloat64 returns the float payload and whether the value is a double.
func (v *Value) AsFloat64() (float64, bool) {
	if v == nil || v.kind != KindDouble {
		return 0, false
	}
	return v.f, true
}

// AsString returns the string payload and whether the value is a string.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsObject returns the object payload and whether the value is an object.
func (v *Value) AsObject() (*Object, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	return v.o, true
}

// AsArray returns the array payload and whether the value is an array.
func (v *Value) AsArray() (*Array, bool) {
	if v == nil || v.kind != KindArray {
		return nil, false
	}
	return v.a, true
}

// String returns a display form of the value: the string payload itself for
// strings, compact JSON otherwise.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt, KindLong:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return doubleToString(v.f)
	case KindString:
		return v.s
	case KindObject:
		return v.o.String()
	case KindArray:
		return v.a.String()
	case kindRaw:
		s, err := v.m.MarshalJSONText()
		if err != nil {
			return ""
		}
		return s
	}
	return ""
}

// Interface unwraps the value into native Go types: nil, bool, int32, int64,
// float64, string, map[string]interface{}, or []interface{}.
func (v *Value) Interface() interface{} {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return int32(v.i)
	case KindLong:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindObject:
		return v.o.Interface()
	case KindArray:
		return v.a.Interface()
	}
	return nil
}

// Equals reports structural equality of two values.  Int and long compare
// equal when their magnitudes match; numeric kinds do not cross-compare with
// doubles.
func (v *Value) Equals(other *Value) bool {
	if v.IsNull() || other.IsNull() {
		return v.IsNull() && other.IsNull()
	}
	switch v.kind {
	case KindBool:
		b, ok := other.AsBool()
		return ok && b == v.b
	case KindInt, KindLong:
		i, ok := other.AsInt64()
		return ok && i == v.i
	case KindDouble:
		f, ok := other.AsFloat64()
		return ok && f == v.f
	case KindString:
		s, ok := other.AsString()
		return ok && s == v.s
	case KindObject:
		o, ok := other.AsObject()
		return ok && v.o.Equals(o)
	case KindArray:
		a, ok := other.AsArray()
		return ok && v.a.Equals(a)
	}
	return false
}

// wrap normalizes an arbitrary Go value into the document model.  Model
// values pass through; primitives, strings, slices and string-keyed maps
// convert to their corresponding kinds; nil becomes the null sentinel; types
// implementing Marshaler or Valuer use their own projection.  Anything else
// falls back to its default textual representation.
func wrap(value interface{}) (*Value, error) {
	switch x := value.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case *Object:
		if x == nil {
			return Null(), nil
		}
		return &Value{kind: KindObject, o: x}, nil
	case *Array:
		if x == nil {
			return Null(), nil
		}
		return &Value{kind: KindArray, a: x}, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Long(x), nil
	case uint:
		return wrapUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Long(int64(x)), nil
	case uint64:
		return wrapUint(x)
	case float32:
		return Double(float64(x))
	case float64:
		return Double(x)
	case Marshaler:
		return &Value{kind: kindRaw, m: x}, nil
	case Valuer:
		v, err := x.JSONValue()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return Null(), nil
		}
		return v, nil
	case map[string]interface{}:
		o := NewObject()
		for k, mv := range x {
			o.PutOpt(k, mv)
		}
		return &Value{kind: KindObject, o: o}, nil
	case map[string]string:
		o := NewObject()
		for k, mv := range x {
			o.PutOpt(k, mv)
		}
		return &Value{kind: KindObject, o: o}, nil
	case []interface{}:
		a := NewArray()
		for _, e := range x {
			if err := a.Put(e); err != nil {
				return nil, err
			}
		}
		return &Value{kind: KindArray, a: a}, nil
	case []string:
		a := NewArray()
		for _, e := range x {
			a.Items = append(a.Items, String(e))
		}
		return &Value{kind: KindArray, a: a}, nil
	case []int:
		a := NewArray()
		for _, e := range x {
			a.Items = append(a.Items, Int(int64(e)))
		}
		return &Value{kind: KindArray, a: a}, nil
	case []int64:
		a := NewArray()
		for _, e := range x {
			a.Items = append(a.Items, Long(e))
		}
		return &Value{kind: KindArray, a: a}, nil
	case []float64:
		a := NewArray()
		for _, e := range x {
			v, err := Double(e)
			if err != nil {
				return nil, err
			}
			a.Items = append(a.Items, v)
		}
		return &Value{kind: KindArray, a: a}, nil
	case []bool:
		a := NewArray()
		for _, e := range x {
			a.Items = append(a.Items, Bool(e))
		}
		return &Value{kind: KindArray, a: a}, nil
	case fmt.Stringer:
		return String(x.String()), nil
	default:
		return String(fmt.Sprint(x)), nil
	}
}

func wrapUint(x uint64) (*Value, error) {
	if x <= math.MaxInt64 {
		return Long(int64(x)), nil
	}
	// Out of int64 range; fall back to the float kind like a very large
	// decimal literal would.
	return Double(float64(x))
}

// stringToValue converts an unquoted token into a model value.  The fallback
// chain is fixed: empty string stays a string; case-insensitive true, false
// and null convert to their kinds; a token starting with a digit or '-' is
// tried as a number; everything else, including failed or inexact numeric
// parses, stays a string.
func stringToValue(s string) *Value {
	if s == "" {
		return String(s)
	}
	if strings.EqualFold(s, "true") {
		return Bool(true)
	}
	if strings.EqualFold(s, "false") {
		return Bool(false)
	}
	if strings.EqualFold(s, "null") {
		return Null()
	}

	b := s[0]
	if (b >= '0' && b <= '9') || b == '-' {
		if strings.ContainsAny(s, ".eE") {
			d, err := strconv.ParseFloat(s, 64)
			if err == nil && !math.IsInf(d, 0) && !math.IsNaN(d) {
				return &Value{kind: KindDouble, f: d}
			}
		} else {
			n, err := strconv.ParseInt(s, 10, 64)
			// Only accept integers whose decimal text round-trips
			// exactly, so tokens like "-0" or "012" stay strings.
			if err == nil && s == strconv.FormatInt(n, 10) {
				return Int(n)
			}
		}
	}
	return String(s)
}

// Coercion helpers shared by the Object and Array typed accessors.  The key
// argument only feeds error messages.

func coerceBool(key string, v *Value) (bool, error) {
	if b, ok := v.AsBool(); ok {
		return b, nil
	}
	if s, ok := v.AsString(); ok {
		if strings.EqualFold(s, "true") {
			return true, nil
		}
		if strings.EqualFold(s, "false") {
			return false, nil
		}
	}
	return false, &TypeMismatchError{Key: key, Want: "bool"}
}

func coerceInt(key string, v *Value) (int, error) {
	if i, ok := v.AsInt64(); ok {
		return int(int32(i)), nil
	}
	if f, ok := v.AsFloat64(); ok {
		return int(f), nil
	}
	if s, ok := v.AsString(); ok {
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
	}
	return 0, &TypeMismatchError{Key: key, Want: "int"}
}

func coerceInt64(key string, v *Value) (int64, error) {
	if i, ok := v.AsInt64(); ok {
		return i, nil
	}
	if f, ok := v.AsFloat64(); ok {
		return int64(f), nil
	}
	if s, ok := v.AsString(); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return n, nil
		}
	}
	return 0, &TypeMismatchError{Key: key, Want: "long"}
}

func coerceFloat64(key string, v *Value) (float64, error) {
	if f, ok := v.AsFloat64(); ok {
		return f, nil
	}
	if i, ok := v.AsInt64(); ok {
		return float64(i), nil
	}
	if s, ok := v.AsString(); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, &TypeMismatchError{Key: key, Want: "double"}
}

func coerceString(key string, v *Value) (string, error) {
	if s, ok := v.AsString(); ok {
		return s, nil
	}
	return "", &TypeMismatchError{Key: key, Want: "string"}
}

func coerceObject(key string, v *Value) (*Object, error) {
	if o, ok := v.AsObject(); ok {
		return o, nil
	}
	return nil, &TypeMismatchError{Key: key, Want: "object"}
}

func coerceArray(key string, v *Value) (*Array, error) {
	if a, ok := v.AsArray(); ok {
		return a, nil
	}
	return nil, &TypeMismatchError{Key: key, Want: "array"}
}
