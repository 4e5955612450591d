// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// defaultMaxDepth bounds document nesting so that deeply nested input fails
// with a SyntaxError instead of exhausting the call stack.
const defaultMaxDepth = 200

// excerptLen is how much trailing context a SyntaxError carries.
const excerptLen = 20

// tokenDelimiters end an unquoted token.
const tokenDelimiters = ",:]}/\\\"[{;=#"

// Scanner takes a source text and produces the characters and tokens the
// parser consumes.  It supports a single character of pushback.
type Scanner struct {
	src      []rune
	pos      int
	lastBack bool
	curDepth int
	maxDepth int
	order    KeyOrder
}

// NewScanner returns a scanner over the source text.
func NewScanner(src string) *Scanner {
	return &Scanner{
		src:      []rune(src),
		maxDepth: defaultMaxDepth,
	}
}

// MaxDepth sets the maximum allowed nesting depth.  The default is 200.
func (s *Scanner) MaxDepth(n int) {
	s.maxDepth = n
}

// More reports whether any characters remain.
func (s *Scanner) More() bool {
	return s.pos < len(s.src)
}

// Next consumes and returns the next character, or 0 at end of input.
func (s *Scanner) Next() rune {
	s.lastBack = false
	if s.pos >= len(s.src) {
		return 0
	}
	ch := s.src[s.pos]
	s.pos++
	return ch
}

// Back pushes the last read character back so the next call to Next returns
// it again.  Stepping back twice without an intervening Next is a usage
// error.
func (s *Scanner) Back() error {
	if s.lastBack || s.pos <= 0 {
		return errors.New("jsondoc: stepping back two steps is not supported")
	}
	s.pos--
	s.lastBack = true
	return nil
}

// NextClean consumes white space and comments and returns the next
// significant character, or 0 at end of input.  Comments take the forms
// //..., /*...*/ and #... and are treated as white space.
func (s *Scanner) NextClean() (rune, error) {
	for {
		ch := s.Next()
		switch {
		case ch == '/':
			switch s.Next() {
			case '/':
				s.skipLine()
			case '*':
				if err := s.skipBlockComment(); err != nil {
					return 0, err
				}
			case 0:
				return '/', nil
			default:
				if err := s.Back(); err != nil {
					return 0, err
				}
				return '/', nil
			}
		case ch == '#':
			s.skipLine()
		case ch == 0:
			return 0, nil
		case ch > ' ':
			return ch, nil
		}
	}
}

func (s *Scanner) skipLine() {
	for {
		ch := s.Next()
		if ch == '\n' || ch == '\r' || ch == 0 {
			return
		}
	}
}

func (s *Scanner) skipBlockComment() error {
	for {
		ch := s.Next()
		if ch == 0 {
			return s.syntaxError("unclosed comment")
		}
		if ch != '*' {
			continue
		}
		next := s.Next()
		if next == '/' {
			return nil
		}
		if next == 0 {
			return s.syntaxError("unclosed comment")
		}
		// A run of stars may still end the comment; re-examine it.
		if next == '*' {
			if err := s.Back(); err != nil {
				return err
			}
		}
	}
}

// NextString consumes a quoted string, processing escape sequences.  The
// opening quote character has already been read and is passed as the
// terminator; both '"' and '\'' are accepted by the grammar.
func (s *Scanner) NextString(quote rune) (string, error) {
	var sb strings.Builder
	for {
		ch := s.Next()
		switch ch {
		case 0, '\n', '\r':
			return "", s.syntaxError("unterminated string")
		case '\\':
			esc := s.Next()
			switch esc {
			case 'b':
				sb.WriteByte('\b')
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'f':
				sb.WriteByte('\f')
			case 'r':
				sb.WriteByte('\r')
			case 'u':
				r, err := s.nextHex4()
				if err != nil {
					return "", err
				}
				// A \u escape in the surrogate range carries only half
				// a code point; the other half arrives as a second
				// escape and the two combine into one rune.
				if utf16.IsSurrogate(r) && s.pos+1 < len(s.src) &&
					s.src[s.pos] == '\\' && s.src[s.pos+1] == 'u' {
					save := s.pos
					s.pos += 2
					lo, err := s.nextHex4()
					if err != nil {
						return "", err
					}
					if c := utf16.DecodeRune(r, lo); c != unicode.ReplacementChar {
						r = c
					} else {
						s.pos = save
					}
					s.lastBack = false
				}
				sb.WriteRune(r)
			case '"', '\'', '\\', '/':
				sb.WriteRune(esc)
			default:
				return "", s.syntaxError("illegal escape")
			}
		case quote:
			return sb.String(), nil
		default:
			sb.WriteRune(ch)
		}
	}
}

func (s *Scanner) nextHex4() (rune, error) {
	if s.pos+4 > len(s.src) {
		return 0, s.syntaxError("substring bounds error in \\u escape")
	}
	hex := string(s.src[s.pos : s.pos+4])
	n, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, s.syntaxError("illegal \\u escape")
	}
	s.pos += 4
	s.lastBack = false
	return rune(n), nil
}

// NextValue consumes and returns the next value: an object, an array, a
// quoted string, or an unquoted token run through the string-to-value
// fallback chain.
func (s *Scanner) NextValue() (*Value, error) {
	ch, err := s.NextClean()
	if err != nil {
		return nil, err
	}

	switch ch {
	case '{':
		if err := s.Back(); err != nil {
			return nil, err
		}
		o, err := parseObject(s, s.order)
		if err != nil {
			return nil, err
		}
		return &Value{kind: KindObject, o: o}, nil
	case '[':
		if err := s.Back(); err != nil {
			return nil, err
		}
		a, err := parseArray(s)
		if err != nil {
			return nil, err
		}
		return &Value{kind: KindArray, a: a}, nil
	case '"', '\'':
		str, err := s.NextString(ch)
		if err != nil {
			return nil, err
		}
		return String(str), nil
	}

	// Accumulate an unquoted token until a structural delimiter, then
	// coerce it.  The delimiter is pushed back for the caller.
	var sb strings.Builder
	for ch >= ' ' && !strings.ContainsRune(tokenDelimiters, ch) {
		sb.WriteRune(ch)
		ch = s.Next()
	}
	if ch != 0 {
		if err := s.Back(); err != nil {
			return nil, err
		}
	}

	token := strings.TrimSpace(sb.String())
	if token == "" {
		return nil, s.syntaxError("missing value")
	}
	return stringToValue(token), nil
}

func (s *Scanner) descend() error {
	s.curDepth++
	if s.curDepth > s.maxDepth {
		return s.syntaxError("maximum depth exceeded")
	}
	return nil
}

func (s *Scanner) ascend() {
	s.curDepth--
}

// syntaxError builds a SyntaxError at the scanner's current position with a
// short excerpt of the following text.
func (s *Scanner) syntaxError(msg string) error {
	line, col := 1, 1
	for i := 0; i < s.pos && i < len(s.src); i++ {
		if s.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	end := s.pos + excerptLen
	if end > len(s.src) {
		end = len(s.src)
	}
	start := s.pos
	if start > len(s.src) {
		start = len(s.src)
	}
	return &SyntaxError{
		Msg:     msg,
		Line:    line,
		Column:  col,
		Context: string(s.src[start:end]),
	}
}
