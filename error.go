// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"errors"
	"fmt"
)

// ErrNonFiniteNumber is returned by strict mutators when a float value is NaN
// or infinite.  JSON has no representation for non-finite numbers.
var ErrNonFiniteNumber = errors.New("JSON does not allow non-finite numbers")

// SyntaxError records a malformed-input error from the parser.  It carries
// the position of the offending character and a small excerpt of the text
// that follows it.
type SyntaxError struct {
	Msg     string
	Line    int
	Column  int
	Context string
}

func (se *SyntaxError) Error() string {
	if se.Context == "" {
		return fmt.Sprintf("syntax error: %s at line %d, column %d", se.Msg, se.Line, se.Column)
	}
	return fmt.Sprintf("syntax error: %s at line %d, column %d, near %q", se.Msg, se.Line, se.Column, se.Context)
}

// KeyNotFoundError is returned by strict accessors when the requested key is
// not present in the object.  An explicitly null value under an existing key
// is not a KeyNotFoundError.
type KeyNotFoundError struct {
	Key string
}

func (ke *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found", ke.Key)
}

// TypeMismatchError is returned when a value is present but cannot be coerced
// to the requested kind.
type TypeMismatchError struct {
	// Key is the object key or decimal array index the accessor was given.
	Key  string
	Want string
}

func (te *TypeMismatchError) Error() string {
	return fmt.Sprintf("value at [%q] is not a %s", te.Key, te.Want)
}

// IndexOutOfRangeError is returned by array accessors given an index outside
// the array bounds.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (ie *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for array of length %d", ie.Index, ie.Length)
}

// MarshalerError is returned when a value's MarshalJSONText hook fails during
// serialization.
type MarshalerError struct {
	Err error
}

func (me *MarshalerError) Error() string {
	return fmt.Sprintf("marshaler hook failed: %v", me.Err)
}

func (me *MarshalerError) Unwrap() error { return me.Err }
