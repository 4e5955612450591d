// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"strconv"
	"strings"
)

// Array is an ordered, growable sequence of values.  It exclusively owns its
// elements, like Object owns its entries, and is likewise not safe for
// concurrent mutation.
type Array struct {
	Items []*Value
}

// NewArray returns an empty Array.
func NewArray() *Array {
	return &Array{Items: make([]*Value, 0)}
}

// FromSlice builds an Array from a native Go slice.  Elements that cannot be
// wrapped are stored as null.
func FromSlice(s []interface{}) *Array {
	a := NewArray()
	for _, e := range s {
		v, err := wrap(e)
		if err != nil {
			v = Null()
		}
		a.Items = append(a.Items, v)
	}
	return a
}

// ParseArray builds an Array from JSON-like source text using the relaxed
// grammar.
func ParseArray(src string) (*Array, error) {
	return parseArray(NewScanner(src))
}

// parseArray consumes one array, including its opening bracket, from the
// scanner.  It mirrors the object state machine with brackets and no keys.
func parseArray(s *Scanner) (*Array, error) {
	if err := s.descend(); err != nil {
		return nil, err
	}
	defer s.ascend()

	ch, err := s.NextClean()
	if err != nil {
		return nil, err
	}
	if ch != '[' {
		return nil, s.syntaxError("a JSON array text must begin with '['")
	}

	a := NewArray()
	for {
		ch, err = s.NextClean()
		if err != nil {
			return nil, err
		}
		switch ch {
		case 0:
			return nil, s.syntaxError("a JSON array text must end with ']'")
		case ']':
			return a, nil
		}
		if err := s.Back(); err != nil {
			return nil, err
		}
		v, err := s.NextValue()
		if err != nil {
			return nil, err
		}
		a.Items = append(a.Items, v)

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
			if ch == ']' {
				return a, nil
			}
			if err := s.Back(); err != nil {
				return nil, err
			}
		case ']':
			return a, nil
		default:
			return nil, s.syntaxError("expected a ',' or ']'")
		}
	}
}

// Put appends a value, normalized through wrap.
func (a *Array) Put(value interface{}) error {
	v, err := wrap(value)
	if err != nil {
		return err
	}
	a.Items = append(a.Items, v)
	return nil
}

// PutOpt appends a value, silently ignoring any validity failure.
func (a *Array) PutOpt(value interface{}) {
	_ = a.Put(value)
}

// PutIndex sets the element at the index, padding any gap with nulls.  A
// negative index is an IndexOutOfRangeError.
func (a *Array) PutIndex(index int, value interface{}) error {
	if index < 0 {
		return &IndexOutOfRangeError{Index: index, Length: len(a.Items)}
	}
	v, err := wrap(value)
	if err != nil {
		return err
	}
	for len(a.Items) <= index {
		a.Items = append(a.Items, Null())
	}
	a.Items[index] = v
	return nil
}

// Get returns the element at the index.  An index outside the bounds is an
// IndexOutOfRangeError; an explicitly null element returns a nil *Value with
// no error.
func (a *Array) Get(index int) (*Value, error) {
	if index < 0 || index >= len(a.Items) {
		return nil, &IndexOutOfRangeError{Index: index, Length: len(a.Items)}
	}
	v := a.Items[index]
	if v.IsNull() {
		return nil, nil
	}
	return v, nil
}

// Opt returns the element at the index, or nil if the index is out of range
// or the element is null.
func (a *Array) Opt(index int) *Value {
	v, err := a.Get(index)
	if err != nil {
		return nil
	}
	return v
}

// GetBool returns the boolean at the index, accepting the strings "true" and
// "false" case-insensitively.
func (a *Array) GetBool(index int) (bool, error) {
	v, err := a.Get(index)
	if err != nil {
		return false, err
	}
	return coerceBool(strconv.Itoa(index), v)
}

// GetInt returns the int at the index.
func (a *Array) GetInt(index int) (int, error) {
	v, err := a.Get(index)
	if err != nil {
		return 0, err
	}
	return coerceInt(strconv.Itoa(index), v)
}

// GetInt64 returns the 64-bit integer at the index.
func (a *Array) GetInt64(index int) (int64, error) {
	v, err := a.Get(index)
	if err != nil {
		return 0, err
	}
	return coerceInt64(strconv.Itoa(index), v)
}

// GetFloat64 returns the float at the index.
func (a *Array) GetFloat64(index int) (float64, error) {
	v, err := a.Get(index)
	if err != nil {
		return 0, err
	}
	return coerceFloat64(strconv.Itoa(index), v)
}

// GetString returns the string at the index.  A null element returns the
// empty string with no error.
func (a *Array) GetString(index int) (string, error) {
	v, err := a.Get(index)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return coerceString(strconv.Itoa(index), v)
}

// GetObject returns the nested Object at the index.
func (a *Array) GetObject(index int) (*Object, error) {
	v, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	return coerceObject(strconv.Itoa(index), v)
}

// GetArray returns the nested Array at the index.
func (a *Array) GetArray(index int) (*Array, error) {
	v, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	return coerceArray(strconv.Itoa(index), v)
}

// OptBool is GetBool with a default substituted on any failure.
func (a *Array) OptBool(index int, def bool) bool {
	b, err := a.GetBool(index)
	if err != nil {
		return def
	}
	return b
}

// OptInt is GetInt with a default substituted on any failure.
func (a *Array) OptInt(index int, def int) int {
	n, err := a.GetInt(index)
	if err != nil {
		return def
	}
	return n
}

// OptInt64 is GetInt64 with a default substituted on any failure.
func (a *Array) OptInt64(index int, def int64) int64 {
	n, err := a.GetInt64(index)
	if err != nil {
		return def
	}
	return n
}

// OptFloat64 is GetFloat64 with a default substituted on any failure.
func (a *Array) OptFloat64(index int, def float64) float64 {
	f, err := a.GetFloat64(index)
	if err != nil {
		return def
	}
	return f
}

// OptString is GetString with a default substituted on any failure.
func (a *Array) OptString(index int, def string) string {
	s, err := a.GetString(index)
	if err != nil {
		return def
	}
	return s
}

// OptObject is GetObject, returning nil on any failure.
func (a *Array) OptObject(index int) *Object {
	o, err := a.GetObject(index)
	if err != nil {
		return nil
	}
	return o
}

// OptArray is GetArray, returning nil on any failure.
func (a *Array) OptArray(index int) *Array {
	out, err := a.GetArray(index)
	if err != nil {
		return nil
	}
	return out
}

// Remove deletes the element at the index and returns it, or nil if the
// index is out of range.
func (a *Array) Remove(index int) *Value {
	if index < 0 || index >= len(a.Items) {
		return nil
	}
	v := a.Items[index]
	a.Items = append(a.Items[:index], a.Items[index+1:]...)
	return v
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Items)
}

// Join concatenates the serialized elements with the separator.  Strings are
// quoted as they would be in document output.
func (a *Array) Join(separator string) (string, error) {
	parts := make([]string, 0, len(a.Items))
	for _, v := range a.Items {
		s, err := valueToText(v)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, separator), nil
}

// Each calls fn for every element in order until fn returns false.
func (a *Array) Each(fn func(index int, v *Value) bool) {
	for i, v := range a.Items {
		if !fn(i, v) {
			return
		}
	}
}

// Interface unwraps the array into a native Go slice.
func (a *Array) Interface() []interface{} {
	out := make([]interface{}, len(a.Items))
	for i, v := range a.Items {
		out[i] = v.Interface()
	}
	return out
}

// Equals reports structural equality: same length with recursively equal
// elements in the same order.
func (a *Array) Equals(other *Array) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.Items) != len(other.Items) {
		return false
	}
	for i, v := range a.Items {
		if !v.Equals(other.Items[i]) {
			return false
		}
	}
	return true
}
