// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFromBSON(t *testing.T) {
	t.Parallel()

	doc := bson.D{
		{Key: "s", Value: "text"},
		{Key: "i", Value: int32(42)},
		{Key: "l", Value: int64(9999999999)},
		{Key: "f", Value: 1.5},
		{Key: "b", Value: true},
		{Key: "n", Value: primitive.Null{}},
		{Key: "a", Value: bson.A{int32(1), "two"}},
		{Key: "o", Value: bson.D{{Key: "deep", Value: false}}},
	}

	o, err := FromBSON(doc)
	require.NoError(t, err)

	require.Equal(t, []string{"s", "i", "l", "f", "b", "n", "a", "o"}, o.Keys())
	require.Equal(t, "text", o.OptString("s", ""))
	require.Equal(t, 42, o.OptInt("i", -1))
	require.Equal(t, int64(9999999999), o.OptInt64("l", -1))
	require.Equal(t, 1.5, o.OptFloat64("f", -1))
	require.True(t, o.IsNull("n"))

	v, err := o.Get("i")
	require.NoError(t, err)
	require.Equal(t, KindInt, v.Kind())
	v, err = o.Get("l")
	require.NoError(t, err)
	require.Equal(t, KindLong, v.Kind())

	require.Equal(t, `[1,"two"]`, o.OptArray("a").String())
	require.Equal(t, `{"deep":false}`, o.OptObject("o").String())
}

func TestBSONRoundTrip(t *testing.T) {
	t.Parallel()

	doc := bson.D{
		{Key: "a", Value: int32(1)},
		{Key: "b", Value: "x"},
		{Key: "c", Value: bson.A{int64(5), primitive.Null{}, 2.25}},
		{Key: "d", Value: bson.D{{Key: "e", Value: true}}},
	}

	o, err := FromBSON(doc)
	require.NoError(t, err)

	back, err := o.BSON()
	require.NoError(t, err)
	require.Equal(t, doc, back)

	// The document must also agree with the driver's own encoding.
	wantRaw, err := bson.Marshal(doc)
	require.NoError(t, err)
	gotRaw, err := bson.Marshal(back)
	require.NoError(t, err)
	require.Equal(t, wantRaw, gotRaw)
}

func TestBSONSpecialTypes(t *testing.T) {
	t.Parallel()

	oid := primitive.ObjectID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c}
	doc := bson.D{
		{Key: "id", Value: oid},
		{Key: "ts", Value: primitive.DateTime(1500000000000)},
	}

	o, err := FromBSON(doc)
	require.NoError(t, err)
	require.Equal(t, oid.Hex(), o.OptString("id", ""))
	require.Equal(t, int64(1500000000000), o.OptInt64("ts", -1))
}

func TestFromBSONDuplicateKey(t *testing.T) {
	t.Parallel()

	doc := bson.D{
		{Key: "a", Value: int32(1)},
		{Key: "a", Value: int32(2)},
	}
	_, err := FromBSON(doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate key")
}

func TestBSONNoFormForMarshaler(t *testing.T) {
	t.Parallel()

	o := NewObject()
	require.NoError(t, o.Put("h", goodHook{}))
	_, err := o.BSON()
	require.Error(t, err)
}

func TestFromBSONSorted(t *testing.T) {
	t.Parallel()

	doc := bson.D{
		{Key: "b", Value: int32(2)},
		{Key: "a", Value: int32(1)},
	}
	o, err := FromBSONWith(doc, SortedOrder)
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":2}`, o.String())
}
