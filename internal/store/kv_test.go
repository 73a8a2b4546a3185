package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_GetMissing(t *testing.T) {
	for name, kv := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(t.Context(), "NOPE")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestKV_TypedRoundTrip(t *testing.T) {
	for name, kv := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, kv.Apply(ctx, NewBatch().
				Put("S", String("Café")).
				Put("I", Int(-42)).
				Put("B", Bool(true)).
				Put("SET", Set("x", "a", "x"))))

			v, _, err := kv.Get(ctx, "S")
			require.NoError(t, err)
			assert.Equal(t, String("Café"), v)

			v, _, err = kv.Get(ctx, "I")
			require.NoError(t, err)
			assert.Equal(t, int64(-42), v.Int)

			v, _, err = kv.Get(ctx, "B")
			require.NoError(t, err)
			assert.True(t, v.Bool)

			v, _, err = kv.Get(ctx, "SET")
			require.NoError(t, err)
			assert.Equal(t, KindSet, v.Kind)
			assert.Equal(t, []string{"a", "x"}, v.Set)
		})
	}
}

func TestKV_EmptySet(t *testing.T) {
	for name, kv := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, kv.Apply(ctx, NewBatch().Put("SET", Set())))

			v, ok, err := kv.Get(ctx, "SET")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, KindSet, v.Kind)
			assert.Empty(t, v.Set)
		})
	}
}

func TestKV_OverwriteAndDelete(t *testing.T) {
	for name, kv := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, kv.Apply(ctx, NewBatch().Put("K", String("one"))))
			require.NoError(t, kv.Apply(ctx, NewBatch().Put("K", Int(2))))

			v, _, err := kv.Get(ctx, "K")
			require.NoError(t, err)
			assert.Equal(t, Int(2), v)

			require.NoError(t, kv.Apply(ctx, NewBatch().Delete("K", "NEVER_SET")))
			_, ok, err := kv.Get(ctx, "K")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestKV_KeysByPrefix(t *testing.T) {
	for name, kv := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, kv.Apply(ctx, NewBatch().
				Put("RENAME_b", String("B")).
				Put("RENAME_a", String("A")).
				Put("HIDDEN_APPS", Set())))

			keys, err := kv.Keys(ctx, "RENAME_")
			require.NoError(t, err)
			assert.Equal(t, []string{"RENAME_a", "RENAME_b"}, keys)

			all, err := kv.Keys(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestKV_ApplyIsAtomic(t *testing.T) {
	for name, kv := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			err := kv.Apply(ctx, NewBatch().
				Put("GOOD", String("x")).
				Put("BAD", Value{Kind: "float"}))
			require.Error(t, err)

			_, ok, err := kv.Get(ctx, "GOOD")
			require.NoError(t, err)
			assert.False(t, ok, "partial batch must not be visible")
		})
	}
}
