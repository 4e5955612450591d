// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"sort"
)

// KeyOrder selects the iteration and serialization order of an Object's keys.
type KeyOrder int

const (
	// InsertionOrder iterates keys in the order they were first inserted.
	InsertionOrder KeyOrder = iota
	// SortedOrder iterates keys in lexicographic order.
	SortedOrder
)

// Object is a mapping from string keys to values.  Keys are unique.  The
// ordering strategy is fixed at construction; everything else about the two
// variants is identical.
//
// An Object is not safe for concurrent mutation.  Callers sharing an Object
// across goroutines must synchronize externally.
type Object struct {
	entries map[string]*Value
	keys    []string
	order   KeyOrder
}

// NewObject returns an empty Object that iterates keys in insertion order.
func NewObject() *Object {
	return NewObjectWith(InsertionOrder)
}

// NewSortedObject returns an empty Object that iterates keys in lexicographic
// order.
func NewSortedObject() *Object {
	return NewObjectWith(SortedOrder)
}

// NewObjectWith returns an empty Object with the given key ordering strategy.
func NewObjectWith(order KeyOrder) *Object {
	return &Object{
		entries: make(map[string]*Value),
		order:   order,
	}
}

// FromMap builds an Object from a native Go map.  Entries that cannot be
// wrapped are silently skipped.
func FromMap(m map[string]interface{}) *Object {
	return FromMapWith(m, InsertionOrder)
}

// FromMapWith is FromMap with an explicit key ordering strategy.
func FromMapWith(m map[string]interface{}, order KeyOrder) *Object {
	o := NewObjectWith(order)
	for k, v := range m {
		o.PutOpt(k, v)
	}
	return o
}

// Parse builds an Object from JSON-like source text using the relaxed
// grammar.  A malformed document or a duplicate key yields a SyntaxError and
// no partial Object.
func Parse(src string) (*Object, error) {
	return ParseWith(src, InsertionOrder)
}

// ParseWith is Parse with an explicit key ordering strategy, applied to the
// top-level object and every nested object.
func ParseWith(src string, order KeyOrder) (*Object, error) {
	s := NewScanner(src)
	s.order = order
	return parseObject(s, order)
}

// parseObject consumes one object, including its opening brace, from the
// scanner.
func parseObject(s *Scanner, order KeyOrder) (*Object, error) {
	if err := s.descend(); err != nil {
		return nil, err
	}
	defer s.ascend()

	ch, err := s.NextClean()
	if err != nil {
		return nil, err
	}
	if ch != '{' {
		return nil, s.syntaxError("a JSON object text must begin with '{'")
	}

	o := NewObjectWith(order)
	for {
		ch, err = s.NextClean()
		if err != nil {
			return nil, err
		}
		switch ch {
		case 0:
			return nil, s.syntaxError("a JSON object text must end with '}'")
		case '}':
			return o, nil
		}
		if err := s.Back(); err != nil {
			return nil, err
		}
		keyVal, err := s.NextValue()
		if err != nil {
			return nil, err
		}
		key := keyVal.String()

		ch, err = s.NextClean()
		if err != nil {
			return nil, err
		}
		if ch != ':' {
			return nil, s.syntaxError("expected a ':' after a key")
		}
		value, err := s.NextValue()
		if err != nil {
			return nil, err
		}
		if o.Has(key) {
			return nil, s.syntaxError("duplicate key " + Quote(key))
		}
		if err := o.Put(key, value); err != nil {
			return nil, s.syntaxError(err.Error())
		}

		ch, err = s.NextClean()
		if err != nil {
			return nil, err
		}
		switch ch {
		case ';', ',':
			ch, err = s.NextClean()
			if err != nil {
				return nil, err
			}
			if ch == '}' {
				return o, nil
			}
			if err := s.Back(); err != nil {
				return nil, err
			}
		case '}':
			return o, nil
		default:
			return nil, s.syntaxError("expected a ',' or '}'")
		}
	}
}

// insertKey records a new key in iteration order.  The caller guarantees the
// key is not already present.
func (o *Object) insertKey(key string) {
	if o.order == SortedOrder {
		i := sort.SearchStrings(o.keys, key)
		o.keys = append(o.keys, "")
		copy(o.keys[i+1:], o.keys[i:])
		o.keys[i] = key
	} else {
		o.keys = append(o.keys, key)
	}
}

// Put stores a key/value pair, overwriting any prior value for the key.  The
// value is normalized through wrap; a non-finite float is rejected with
// ErrNonFiniteNumber.
func (o *Object) Put(key string, value interface{}) error {
	v, err := wrap(value)
	if err != nil {
		return err
	}
	if _, exists := o.entries[key]; !exists {
		o.insertKey(key)
	}
	o.entries[key] = v
	return nil
}

// PutOnce stores a key/value pair only if the key is not already present.
// Existing keys and invalid values are silently ignored.
func (o *Object) PutOnce(key string, value interface{}) {
	if !o.Has(key) {
		_ = o.Put(key, value)
	}
}

// PutOpt stores a key/value pair, silently ignoring any validity failure.
func (o *Object) PutOpt(key string, value interface{}) {
	_ = o.Put(key, value)
}

// PutNull binds the key to explicit JSON null.
func (o *Object) PutNull(key string) {
	_ = o.Put(key, nil)
}

// PutAll copies every entry of another Object into this one.  When overwrite
// is false, keys already present are left untouched.
func (o *Object) PutAll(other *Object, overwrite bool) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		if overwrite {
			o.PutOpt(key, other.entries[key])
		} else {
			o.PutOnce(key, other.entries[key])
		}
	}
}

// Accumulate gathers values under a key.  The first value accumulated is
// stored as-is, like Put; later values promote the entry to a growing array.
// Accumulating an array value first stores it as the sole element of a new
// array so that appends extend the wrapper, not the value.
func (o *Object) Accumulate(key string, value interface{}) error {
	v, err := wrap(value)
	if err != nil {
		return err
	}
	current, exists := o.entries[key]
	switch {
	case !exists:
		if v.Kind() == KindArray {
			a := NewArray()
			a.Items = append(a.Items, v)
			return o.Put(key, a)
		}
		return o.Put(key, v)
	case current.Kind() == KindArray:
		current.a.Items = append(current.a.Items, v)
		return nil
	default:
		a := NewArray()
		a.Items = append(a.Items, current, v)
		return o.Put(key, a)
	}
}

// Append appends a value to the array under a key, creating a one-element
// array if the key is absent.  A non-array value under the key is a
// TypeMismatchError.
func (o *Object) Append(key string, value interface{}) error {
	v, err := wrap(value)
	if err != nil {
		return err
	}
	current, exists := o.entries[key]
	switch {
	case !exists:
		a := NewArray()
		a.Items = append(a.Items, v)
		return o.Put(key, a)
	case current.Kind() == KindArray:
		current.a.Items = append(current.a.Items, v)
		return nil
	default:
		return &TypeMismatchError{Key: key, Want: "array"}
	}
}

// Increment adds one to the numeric value under a key, preserving its numeric
// kind.  An absent key is created with the integer value 1.
func (o *Object) Increment(key string) error {
	current, exists := o.entries[key]
	if !exists {
		return o.Put(key, 1)
	}
	switch current.Kind() {
	case KindInt:
		o.entries[key] = &Value{kind: KindInt, i: int64(int32(current.i) + 1)}
	case KindLong:
		o.entries[key] = &Value{kind: KindLong, i: current.i + 1}
	case KindDouble:
		o.entries[key] = &Value{kind: KindDouble, f: current.f + 1}
	default:
		return &TypeMismatchError{Key: key, Want: "number"}
	}
	return nil
}

// Get returns the value bound to a key.  An absent key is a
// KeyNotFoundError; a key bound to explicit JSON null returns a nil *Value
// with no error.
func (o *Object) Get(key string) (*Value, error) {
	v, exists := o.entries[key]
	if !exists {
		return nil, &KeyNotFoundError{Key: key}
	}
	if v.IsNull() {
		return nil, nil
	}
	return v, nil
}

// Opt returns the value bound to a key, or nil if the key is absent or bound
// to null.
func (o *Object) Opt(key string) *Value {
	v, err := o.Get(key)
	if err != nil {
		return nil
	}
	return v
}

// Has reports whether the key is present, regardless of its value.
func (o *Object) Has(key string) bool {
	_, exists := o.entries[key]
	return exists
}

// IsNull reports whether the key is present and bound to explicit JSON null.
func (o *Object) IsNull(key string) bool {
	v, exists := o.entries[key]
	return exists && v.IsNull()
}

// GetBool returns the boolean under a key, accepting the strings "true" and
// "false" case-insensitively.
func (o *Object) GetBool(key string) (bool, error) {
	v, err := o.Get(key)
	if err != nil {
		return false, err
	}
	return coerceBool(key, v)
}

// GetInt returns the int under a key.  Numeric values are converted;
// integer-formatted strings are parsed.
func (o *Object) GetInt(key string) (int, error) {
	v, err := o.Get(key)
	if err != nil {
		return 0, err
	}
	return coerceInt(key, v)
}

// GetInt64 returns the 64-bit integer under a key.
func (o *Object) GetInt64(key string) (int64, error) {
	v, err := o.Get(key)
	if err != nil {
		return 0, err
	}
	return coerceInt64(key, v)
}

// GetFloat64 returns the float under a key.  Numeric values are converted;
// numeric strings are parsed.
func (o *Object) GetFloat64(key string) (float64, error) {
	v, err := o.Get(key)
	if err != nil {
		return 0, err
	}
	return coerceFloat64(key, v)
}

// GetString returns the string under a key.  A key bound to null returns the
// empty string with no error; any other non-string value is a
// TypeMismatchError.
func (o *Object) GetString(key string) (string, error) {
	v, err := o.Get(key)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return coerceString(key, v)
}

// GetObject returns the nested Object under a key.
func (o *Object) GetObject(key string) (*Object, error) {
	v, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	return coerceObject(key, v)
}

// GetArray returns the nested Array under a key.
func (o *Object) GetArray(key string) (*Array, error) {
	v, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	return coerceArray(key, v)
}

// OptBool is GetBool with a default substituted on any failure.
func (o *Object) OptBool(key string, def bool) bool {
	b, err := o.GetBool(key)
	if err != nil {
		return def
	}
	return b
}

// OptInt is GetInt with a default substituted on any failure.
func (o *Object) OptInt(key string, def int) int {
	n, err := o.GetInt(key)
	if err != nil {
		return def
	}
	return n
}

// OptInt64 is GetInt64 with a default substituted on any failure.
func (o *Object) OptInt64(key string, def int64) int64 {
	n, err := o.GetInt64(key)
	if err != nil {
		return def
	}
	return n
}

// OptFloat64 is GetFloat64 with a default substituted on any failure.
func (o *Object) OptFloat64(key string, def float64) float64 {
	f, err := o.GetFloat64(key)
	if err != nil {
		return def
	}
	return f
}

// OptString is GetString with a default substituted on any failure.
func (o *Object) OptString(key string, def string) string {
	s, err := o.GetString(key)
	if err != nil {
		return def
	}
	return s
}

// OptObject is GetObject, returning nil on any failure.
func (o *Object) OptObject(key string) *Object {
	obj, err := o.GetObject(key)
	if err != nil {
		return nil
	}
	return obj
}

// OptArray is GetArray, returning nil on any failure.
func (o *Object) OptArray(key string) *Array {
	a, err := o.GetArray(key)
	if err != nil {
		return nil
	}
	return a
}

// Remove deletes a key and returns its prior value, or nil if the key was
// absent.
func (o *Object) Remove(key string) *Value {
	v, exists := o.entries[key]
	if !exists {
		return nil
	}
	delete(o.entries, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return v
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.entries)
}

// Keys returns a copy of the keys in iteration order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Names returns the keys as an Array, or nil if the object is empty.
func (o *Object) Names() *Array {
	if len(o.keys) == 0 {
		return nil
	}
	a := NewArray()
	for _, k := range o.keys {
		a.Items = append(a.Items, String(k))
	}
	return a
}

// Pick returns a new Object holding only the named keys of this one, keeping
// the receiver's ordering strategy.  Missing names are ignored.
func (o *Object) Pick(names ...string) *Object {
	out := NewObjectWith(o.order)
	for _, name := range names {
		if v, exists := o.entries[name]; exists {
			out.PutOnce(name, v)
		}
	}
	return out
}

// ToArray returns the values bound to the given names, in name order, with
// nulls for missing names.  It returns nil if names is empty.
func (o *Object) ToArray(names []string) *Array {
	if len(names) == 0 {
		return nil
	}
	a := NewArray()
	for _, name := range names {
		if v, exists := o.entries[name]; exists {
			a.Items = append(a.Items, v)
		} else {
			a.Items = append(a.Items, Null())
		}
	}
	return a
}

// Each calls fn for every key/value pair in iteration order until fn returns
// false.
func (o *Object) Each(fn func(key string, v *Value) bool) {
	for _, key := range o.keys {
		if !fn(key, o.entries[key]) {
			return
		}
	}
}

// Interface unwraps the object into a native Go map.  Key order is lost.
func (o *Object) Interface() map[string]interface{} {
	out := make(map[string]interface{}, len(o.entries))
	for k, v := range o.entries {
		out[k] = v.Interface()
	}
	return out
}

// Equals reports structural equality: the same key set with recursively
// equal values.  Ordering strategy does not participate.
func (o *Object) Equals(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.entries) != len(other.entries) {
		return false
	}
	for k, v := range o.entries {
		ov, exists := other.entries[k]
		if !exists || !v.Equals(ov) {
			return false
		}
	}
	return true
}
