// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"strings"
	"testing"
)

type parseTestCase struct {
	label  string
	input  string
	output string
	errStr string
}

func testParseCases(t *testing.T, cases []parseTestCase) {
	t.Helper()

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()

			o, err := Parse(c.input)
			if c.errStr != "" {
				var got string
				if err != nil {
					got = err.Error()
				}
				if !strings.Contains(got, c.errStr) {
					t.Errorf("expected error with '%s', but got %v", c.errStr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := o.String(); got != c.output {
				t.Errorf("Parse output doesn't match expected:\nGot:    %s\nExpect: %s", got, c.output)
			}
		})
	}
}

func TestParseStrict(t *testing.T) {
	t.Parallel()

	cases := []parseTestCase{
		{
			label:  "empty object",
			input:  `{}`,
			output: `{}`,
		},
		{
			label:  "strings",
			input:  `{"one":"two","key":"value"}`,
			output: `{"one":"two","key":"value"}`,
		},
		{
			label:  "scalar kinds",
			input:  `{"s":"x","i":5,"b":true,"f":1.5,"n":null}`,
			output: `{"s":"x","i":5,"b":true,"f":1.5,"n":null}`,
		},
		{
			label:  "nested containers",
			input:  `{"o":{"a":[1,2,{"b":[]}]}}`,
			output: `{"o":{"a":[1,2,{"b":[]}]}}`,
		},
		{
			label:  "long integer",
			input:  `{"n":9999999999}`,
			output: `{"n":9999999999}`,
		},
		{
			label:  "exponent number",
			input:  `{"n":1e3}`,
			output: `{"n":1000}`,
		},
		{
			label:  "surrogate pair escape",
			input:  `{"e":"\ud83d\ude00"}`,
			output: "{\"e\":\"\U0001f600\"}",
		},
		{
			label:  "indented input",
			input:  "{\n   \"empty\": false,\n   \"time_milliseconds\": 19608,\n   \"size\": 5\n}",
			output: `{"empty":false,"time_milliseconds":19608,"size":5}`,
		},
	}

	testParseCases(t, cases)
}

func TestParseLenient(t *testing.T) {
	t.Parallel()

	cases := []parseTestCase{
		{
			label:  "unquoted key and value",
			input:  `{ a: 1, b: true, }`,
			output: `{"a":1,"b":true}`,
		},
		{
			label:  "single quotes",
			input:  `{'key': 'value'}`,
			output: `{"key":"value"}`,
		},
		{
			label:  "semicolon separator",
			input:  `{"a":1;"b":2}`,
			output: `{"a":1,"b":2}`,
		},
		{
			label:  "trailing semicolon",
			input:  `{"a":1;}`,
			output: `{"a":1}`,
		},
		{
			label:  "line comment",
			input:  "{ // comment\n \"a\": 1 }",
			output: `{"a":1}`,
		},
		{
			label:  "block comment",
			input:  `{ /* comment */ "a": 1 }`,
			output: `{"a":1}`,
		},
		{
			label:  "hash comment",
			input:  "{ # comment\n \"a\": 1 }",
			output: `{"a":1}`,
		},
		{
			label:  "stars inside block comment",
			input:  `{ /** note **/ "a": 1 }`,
			output: `{"a":1}`,
		},
		{
			label:  "unquoted reserved words case-insensitive",
			input:  `{a: TRUE, b: False, c: NULL}`,
			output: `{"a":true,"b":false,"c":null}`,
		},
		{
			label:  "unquoted token with inner spaces stays string",
			input:  `{a: hello world}`,
			output: `{"a":"hello world"}`,
		},
		{
			label:  "leading zero integer stays string",
			input:  `{a: 012}`,
			output: `{"a":"012"}`,
		},
		{
			label:  "negative zero stays string",
			input:  `{a: -0}`,
			output: `{"a":"-0"}`,
		},
		{
			label:  "numeric key",
			input:  `{1: "one"}`,
			output: `{"1":"one"}`,
		},
	}

	testParseCases(t, cases)
}

func TestParseFailing(t *testing.T) {
	t.Parallel()

	cases := []parseTestCase{
		{
			label:  "not an object",
			input:  `42`,
			errStr: "must begin with '{'",
		},
		{
			label:  "empty input",
			input:  ``,
			errStr: "must begin with '{'",
		},
		{
			label:  "unterminated object",
			input:  `{"a":1`,
			errStr: "expected a ',' or '}'",
		},
		{
			label:  "missing colon",
			input:  `{"a" 1}`,
			errStr: "expected a ':' after a key",
		},
		{
			label:  "missing value",
			input:  `{"a":}`,
			errStr: "missing value",
		},
		{
			label:  "leading comma",
			input:  `{,}`,
			errStr: "missing value",
		},
		{
			label:  "duplicate key",
			input:  `{"a":1,"a":2}`,
			errStr: `duplicate key "a"`,
		},
		{
			label:  "unterminated string",
			input:  `{"a":"b`,
			errStr: "unterminated string",
		},
		{
			label:  "newline in string",
			input:  "{\"a\":\"b\nc\"}",
			errStr: "unterminated string",
		},
		{
			label:  "illegal escape",
			input:  `{"a":"\x"}`,
			errStr: "illegal escape",
		},
		{
			label:  "short unicode escape",
			input:  `{"a":"\u12"}`,
			errStr: "\\u escape",
		},
		{
			label:  "unclosed comment",
			input:  `{ /* comment`,
			errStr: "unclosed comment",
		},
		{
			label:  "bad separator",
			input:  `{"a":1 "b":2}`,
			errStr: "expected a ',' or '}'",
		},
	}

	testParseCases(t, cases)
}

func TestParseArrayCases(t *testing.T) {
	t.Parallel()

	type arrayCase struct {
		label  string
		input  string
		output string
		errStr string
	}

	cases := []arrayCase{
		{
			label:  "empty array",
			input:  `[]`,
			output: `[]`,
		},
		{
			label:  "scalars",
			input:  `[1, "two", true, null, 1.5]`,
			output: `[1,"two",true,null,1.5]`,
		},
		{
			label:  "trailing comma",
			input:  `[1, 2,]`,
			output: `[1,2]`,
		},
		{
			label:  "unquoted tokens",
			input:  `[one, two]`,
			output: `["one","two"]`,
		},
		{
			label:  "nested",
			input:  `[[1],[{"a":2}]]`,
			output: `[[1],[{"a":2}]]`,
		},
		{
			label:  "not an array",
			input:  `{"a":1}`,
			errStr: "must begin with '['",
		},
		{
			label:  "unterminated",
			input:  `[1,2`,
			errStr: "expected a ',' or ']'",
		},
		{
			label:  "space-joined tokens become one string",
			input:  `[1 2]`,
			output: `["1 2"]`,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()

			a, err := ParseArray(c.input)
			if c.errStr != "" {
				var got string
				if err != nil {
					got = err.Error()
				}
				if !strings.Contains(got, c.errStr) {
					t.Errorf("expected error with '%s', but got %v", c.errStr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := a.String(); got != c.output {
				t.Errorf("ParseArray output doesn't match expected:\nGot:    %s\nExpect: %s", got, c.output)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := Parse("{\n  \"a\": 1,\n  \"a\": 2\n}")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("error wasn't a SyntaxError: %v", err)
	}
	if se.Line != 3 {
		t.Errorf("expected error on line 3, got line %d", se.Line)
	}
}

func TestParseSorted(t *testing.T) {
	t.Parallel()

	o, err := ParseWith(`{"b": {"z": 1, "a": 2}, "a": 3}`, SortedOrder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"a":3,"b":{"a":2,"z":1}}`
	if got := o.String(); got != want {
		t.Errorf("sorted parse doesn't match expected:\nGot:    %s\nExpect: %s", got, want)
	}
}

func TestDepthLimit(t *testing.T) {
	t.Parallel()

	input := `{"1":{"2":{"3":[{"5":"a"}]}}}`

	s := NewScanner(input)
	s.MaxDepth(4)
	if _, err := s.NextValue(); err == nil {
		t.Fatalf("expected error and got nil")
	}

	s = NewScanner(input)
	s.MaxDepth(5)
	if _, err := s.NextValue(); err != nil {
		t.Fatalf("expected no error and got: %v", err)
	}
}
