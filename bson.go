// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jsondoc

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FromBSON builds an Object from a BSON document, preserving the document's
// key order.  BSON int32, int64 and double map onto the int, long and double
// kinds; BSON null maps onto the null sentinel.  ObjectIDs and Decimal128
// values convert to their canonical string forms; datetimes convert to
// millisecond epoch longs.
func FromBSON(doc bson.D) (*Object, error) {
	return FromBSONWith(doc, InsertionOrder)
}

// FromBSONWith is FromBSON with an explicit key ordering strategy.
func FromBSONWith(doc bson.D, order KeyOrder) (*Object, error) {
	o := NewObjectWith(order)
	for _, e := range doc {
		v, err := bsonToValue(e.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", e.Key)
		}
		if o.Has(e.Key) {
			return nil, errors.Errorf("duplicate key %q in BSON document", e.Key)
		}
		if err := o.Put(e.Key, v); err != nil {
			return nil, errors.Wrapf(err, "key %q", e.Key)
		}
	}
	return o, nil
}

func bsonToValue(v interface{}) (*Value, error) {
	switch x := v.(type) {
	case nil, primitive.Null:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int32:
		return &Value{kind: KindInt, i: int64(x)}, nil
	case int64:
		return Long(x), nil
	case float64:
		return Double(x)
	case primitive.DateTime:
		return Long(int64(x)), nil
	case primitive.ObjectID:
		return String(x.Hex()), nil
	case primitive.Decimal128:
		return String(x.String()), nil
	case bson.D:
		o, err := FromBSON(x)
		if err != nil {
			return nil, err
		}
		return wrap(o)
	case bson.M:
		o := NewObject()
		for k, mv := range x {
			ev, err := bsonToValue(mv)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			if err := o.Put(k, ev); err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
		}
		return wrap(o)
	case primitive.A:
		return bsonArrayToValue(x)
	default:
		// No direct kind; fall back to the generic wrap rules.
		return wrap(v)
	}
}

func bsonArrayToValue(in []interface{}) (*Value, error) {
	a := NewArray()
	for i, e := range in {
		v, err := bsonToValue(e)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		a.Items = append(a.Items, v)
	}
	return wrap(a)
}

// BSON converts the object to a BSON document in iteration order.  The int
// and long kinds map to BSON int32 and int64; null maps to BSON null.  A
// value deferring to a Marshaler hook has no BSON form and is an error.
func (o *Object) BSON() (bson.D, error) {
	doc := make(bson.D, 0, len(o.keys))
	for _, key := range o.keys {
		bv, err := valueToBSON(o.entries[key])
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key)
		}
		doc = append(doc, bson.E{Key: key, Value: bv})
	}
	return doc, nil
}

// BSON converts the array to a BSON array.
func (a *Array) BSON() (bson.A, error) {
	out := make(bson.A, 0, len(a.Items))
	for i, v := range a.Items {
		bv, err := valueToBSON(v)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		out = append(out, bv)
	}
	return out, nil
}

func valueToBSON(v *Value) (interface{}, error) {
	if v.IsNull() {
		return primitive.Null{}, nil
	}
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return int32(v.i), nil
	case KindLong:
		return v.i, nil
	case KindDouble:
		return v.f, nil
	case KindString:
		return v.s, nil
	case KindObject:
		return v.o.BSON()
	case KindArray:
		return v.a.BSON()
	}
	return nil, errors.Errorf("no BSON form for %s value", v.kind)
}
