// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package jsondoc is an embeddable JSON document model with a lenient parser
// and a strict serializer.  It represents JSON values in memory as a closed
// set of kinds (null, boolean, integer, long, double, string, object, array)
// that can be built programmatically, parsed from relaxed JSON-like text, and
// re-emitted as strictly conforming JSON text.
//
// Lenient input
//
// The parser accepts a relaxed dialect on input: keys and string values may
// be unquoted or single-quoted, pairs may be separated by ';' as well as ',',
// a trailing separator is tolerated before a closing brace, and '//', '/*
// */', and '#' comments are treated as white space.  Output is always strict
// JSON regardless of how a document was constructed.
//
// Null versus absent
//
// A document distinguishes a key that is absent from a key that is explicitly
// null.  Get on an absent key returns a KeyNotFoundError; Get on a key bound
// to JSON null succeeds and returns a nil *Value.
//
// Strict and lenient accessors
//
// Every typed accessor and mutator comes in a strict form that returns a
// specific error (Get*, Put, Accumulate, Append) and a lenient form that
// substitutes a caller-supplied default or silently does nothing (Opt*,
// PutOpt, PutOnce).  The lenient forms never propagate errors; masking
// malformed optional input is their contract.
//
// Testing
//
// The parser is exercised against the grammar's acceptance and rejection
// cases with table-driven tests, and serialization is round-tripped through
// the parser for structural equality.  BSON interop is verified against the
// MongoDB Go driver.
package jsondoc
