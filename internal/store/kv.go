package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Kind identifies the type of a stored value.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindSet    Kind = "set"
)

// Value is a typed preference value.
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Bool bool
	Set  []string
}

// String creates a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int creates an int value.
func Int(n int64) Value { return Value{Kind: KindInt, Int: n} }

// Bool creates a bool value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Set creates a string-set value. Duplicates are dropped and members sorted.
func Set(members ...string) Value {
	if len(members) == 0 {
		return Value{Kind: KindSet}
	}
	s := slices.Clone(members)
	slices.Sort(s)
	return Value{Kind: KindSet, Set: slices.Compact(s)}
}

// KV is the persistence contract consumed by the preference layer.
//
// Get reports found=false for missing keys. Keys returns matching keys in
// ascending byte order. Apply executes every operation of the batch or none.
type KV interface {
	Get(ctx context.Context, key string) (v Value, found bool, err error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Apply(ctx context.Context, b *Batch) error
}

// Batch is an ordered list of writes applied atomically.
type Batch struct {
	ops []op
}

type op struct {
	key    string
	value  Value
	delete bool
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Put records a write of v under key.
func (b *Batch) Put(key string, v Value) *Batch {
	b.ops = append(b.ops, op{key: key, value: v})
	return b
}

// Delete records the removal of key.
func (b *Batch) Delete(keys ...string) *Batch {
	for _, k := range keys {
		b.ops = append(b.ops, op{key: k, delete: true})
	}
	return b
}

// Len returns the number of recorded operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// encodeValue converts a Value to its TEXT column form.
func encodeValue(v Value) (string, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	case KindSet:
		members := v.Set
		if members == nil {
			members = []string{}
		}
		data, err := json.Marshal(members)
		if err != nil {
			return "", fmt.Errorf("encode set: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown value kind %q", v.Kind)
	}
}

// decodeValue parses a TEXT column back into a Value of the given kind.
func decodeValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindString:
		return String(text), nil
	case KindInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("decode int: %w", err)
		}
		return Int(n), nil
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("decode bool: %w", err)
		}
		return Bool(b), nil
	case KindSet:
		var members []string
		if err := json.Unmarshal([]byte(text), &members); err != nil {
			return Value{}, fmt.Errorf("decode set: %w", err)
		}
		return Set(members...), nil
	default:
		return Value{}, fmt.Errorf("unknown value kind %q", kind)
	}
}
