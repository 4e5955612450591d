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

func TestScannerBack(t *testing.T) {
	t.Parallel()

	s := NewScanner("ab")
	if ch := s.Next(); ch != 'a' {
		t.Fatalf("Next: got %q, expected 'a'", ch)
	}
	if err := s.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if ch := s.Next(); ch != 'a' {
		t.Fatalf("Next after Back: got %q, expected 'a'", ch)
	}
	if err := s.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if err := s.Back(); err == nil {
		t.Fatal("second Back succeeded, expected error")
	}
}

func TestScannerNextClean(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label  string
		input  string
		expect rune
	}{
		{"leading space", "   x", 'x'},
		{"line comment", "// note\nx", 'x'},
		{"hash comment", "# note\nx", 'x'},
		{"block comment", "/* note */x", 'x'},
		{"star run", "/***/x", 'x'},
		{"bare slash", "/x", '/'},
		{"trailing slash", "/", '/'},
		{"empty", "", 0},
		{"only comment", "// note", 0},
	}

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			s := NewScanner(c.input)
			ch, err := s.NextClean()
			if err != nil {
				t.Fatalf("NextClean: %v", err)
			}
			if ch != c.expect {
				t.Errorf("got %q, expected %q", ch, c.expect)
			}
		})
	}
}

func TestScannerNextString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label  string
		input  string
		quote  rune
		output string
		errStr string
	}{
		{"plain", `hello"`, '"', "hello", ""},
		{"escapes", `a\tb\né"`, '"', "a\tb\né", ""},
		{"escaped quote", `say \"hi\""`, '"', `say "hi"`, ""},
		{"single quoted", `it's ok'`, '\'', "it", ""},
		{"surrogate pair", `\ud83d\ude00"`, '"', "\U0001f600", ""},
		{"lone high surrogate", `\ud83d"`, '"', "\ufffd", ""},
		{"high surrogate then ordinary escape", `\ud83d\u0041"`, '"', "\ufffdA", ""},
		{"newline in string", "a\nb\"", '"', "", "unterminated string"},
		{"eof", `abc`, '"', "", "unterminated string"},
		{"bad escape", `a\qb"`, '"', "", "illegal escape"},
		{"short hex", `\u00`, '"', "", "substring bounds error"},
		{"bad hex", `\uzzzz"`, '"', "", "illegal \\u escape"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			s := NewScanner(c.input)
			got, err := s.NextString(c.quote)
			if c.errStr != "" {
				if err == nil {
					t.Fatalf("got %q, expected error %q", got, c.errStr)
				}
				if !strings.Contains(err.Error(), c.errStr) {
					t.Errorf("error %q does not contain %q", err.Error(), c.errStr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextString: %v", err)
			}
			if got != c.output {
				t.Errorf("got %q, expected %q", got, c.output)
			}
		})
	}
}

func TestScannerMore(t *testing.T) {
	t.Parallel()

	s := NewScanner("a")
	if !s.More() {
		t.Fatal("More: got false, expected true")
	}
	s.Next()
	if s.More() {
		t.Fatal("More after Next: got true, expected false")
	}
	if ch := s.Next(); ch != 0 {
		t.Fatalf("Next at EOF: got %q, expected 0", ch)
	}
}
