// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quote returns the string wrapped in double quotes with backslash escapes in
// all the right places.  A slash preceded by '<' is escaped so that JSON text
// can be embedded in HTML.  Control characters and the U+0080..U+009F and
// U+2000..U+20FF ranges are emitted as \u escapes.
func Quote(s string) string {
	var buf bytes.Buffer
	quoteTo(&buf, s)
	return buf.String()
}

func quoteTo(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	var prev rune
	for _, c := range s {
		switch c {
		case '\\', '"':
			buf.WriteByte('\\')
			buf.WriteRune(c)
		case '/':
			if prev == '<' {
				buf.WriteByte('\\')
			}
			buf.WriteByte('/')
		case '\b':
			buf.WriteString(`\b`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\f':
			buf.WriteString(`\f`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if c < ' ' || (c >= 0x80 && c < 0xa0) || (c >= 0x2000 && c < 0x2100) {
				fmt.Fprintf(buf, `\u%04x`, c)
			} else {
				buf.WriteRune(c)
			}
		}
		prev = c
	}
	buf.WriteByte('"')
}

// doubleToString produces the minimal decimal text for a float, shaving
// trailing zeros and a bare decimal point when the text has no exponent.  A
// non-finite value renders as "null"; strict insertion rejects those up
// front, so this is a backstop, not a supported path.
func doubleToString(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsRune(s, '.') && !strings.ContainsAny(s, "eE") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// valueToText renders a single value as compact JSON text.
func valueToText(v *Value) (string, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v, 0, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeValue dispatches on kind.  Nested containers delegate recursively; a
// raw value defers to its Marshaler hook and emits the hook's output
// verbatim.
func writeValue(buf *bytes.Buffer, v *Value, indentFactor, indent int) error {
	if v.IsNull() {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt, KindLong:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindDouble:
		buf.WriteString(doubleToString(v.f))
	case KindString:
		quoteTo(buf, v.s)
	case KindObject:
		return v.o.write(buf, indentFactor, indent)
	case KindArray:
		return v.a.write(buf, indentFactor, indent)
	case kindRaw:
		s, err := v.m.MarshalJSONText()
		if err != nil {
			return &MarshalerError{Err: err}
		}
		buf.WriteString(s)
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, n int) {
	for i := 0; i < n; i++ {
		buf.WriteByte(' ')
	}
}

func (o *Object) write(buf *bytes.Buffer, indentFactor, indent int) error {
	buf.WriteByte('{')
	newindent := indent + indentFactor
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if indentFactor > 0 {
			buf.WriteByte('\n')
			writeIndent(buf, newindent)
		}
		quoteTo(buf, key)
		buf.WriteByte(':')
		if indentFactor > 0 {
			buf.WriteByte(' ')
		}
		if err := writeValue(buf, o.entries[key], indentFactor, newindent); err != nil {
			return err
		}
	}
	if indentFactor > 0 && len(o.keys) > 0 {
		buf.WriteByte('\n')
		writeIndent(buf, indent)
	}
	buf.WriteByte('}')
	return nil
}

func (a *Array) write(buf *bytes.Buffer, indentFactor, indent int) error {
	buf.WriteByte('[')
	newindent := indent + indentFactor
	for i, v := range a.Items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if indentFactor > 0 {
			buf.WriteByte('\n')
			writeIndent(buf, newindent)
		}
		if err := writeValue(buf, v, indentFactor, newindent); err != nil {
			return err
		}
	}
	if indentFactor > 0 && len(a.Items) > 0 {
		buf.WriteByte('\n')
		writeIndent(buf, indent)
	}
	buf.WriteByte(']')
	return nil
}

// JSON returns the compact serialization of the object.
func (o *Object) JSON() (string, error) {
	return o.Indent(0)
}

// Indent returns the serialization of the object with the given number of
// spaces added per nesting level.  An indent factor of zero produces the
// compact form.
func (o *Object) Indent(indentFactor int) (string, error) {
	var buf bytes.Buffer
	if err := o.write(&buf, indentFactor, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// String returns the compact serialization, or the empty string if a
// Marshaler hook fails.
func (o *Object) String() string {
	s, err := o.JSON()
	if err != nil {
		return ""
	}
	return s
}

// JSON returns the compact serialization of the array.
func (a *Array) JSON() (string, error) {
	return a.Indent(0)
}

// Indent returns the serialization of the array with the given number of
// spaces added per nesting level.
func (a *Array) Indent(indentFactor int) (string, error) {
	var buf bytes.Buffer
	if err := a.write(&buf, indentFactor, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// String returns the compact serialization, or the empty string if a
// Marshaler hook fails.
func (a *Array) String() string {
	s, err := a.JSON()
	if err != nil {
		return ""
	}
	return s
}
