// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Bundle yields dotted-path keys with string values, in the manner of a
// locale resource bundle or a flat properties file.
type Bundle interface {
	// Keys returns every key in the bundle.
	Keys() []string
	// Lookup returns the value for a key and whether the key exists.
	Lookup(key string) (string, bool)
}

// MapBundle is a Bundle backed by a plain map.  Keys are reported in sorted
// order so that FromBundle is deterministic.
type MapBundle map[string]string

// Keys returns the bundle's keys in sorted order.
func (mb MapBundle) Keys() []string {
	keys := make([]string, 0, len(mb))
	for k := range mb {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the value for a key and whether the key exists.
func (mb MapBundle) Lookup(key string) (string, bool) {
	v, ok := mb[key]
	return v, ok
}

// FromBundle builds a nested Object from a bundle of dotted-path keys.  Each
// key is split on '.'; every segment but the last materializes an
// intermediate Object, and the last segment binds the bundle's string value.
// An intermediate segment already bound to a non-object value is replaced by
// a fresh Object.
func FromBundle(b Bundle) (*Object, error) {
	return FromBundleWith(b, InsertionOrder)
}

// FromBundleWith is FromBundle with an explicit key ordering strategy,
// applied to the root and every intermediate Object.
func FromBundleWith(b Bundle, order KeyOrder) (*Object, error) {
	root := NewObjectWith(order)
	for _, key := range b.Keys() {
		value, ok := b.Lookup(key)
		if !ok {
			continue
		}
		path := strings.Split(key, ".")
		last := len(path) - 1
		target := root
		for _, segment := range path[:last] {
			next := target.OptObject(segment)
			if next == nil {
				next = NewObjectWith(order)
				if err := target.Put(segment, next); err != nil {
					return nil, errors.Wrapf(err, "bundle key %q", key)
				}
			}
			target = next
		}
		if err := target.Put(path[last], value); err != nil {
			return nil, errors.Wrapf(err, "bundle key %q", key)
		}
	}
	return root, nil
}
