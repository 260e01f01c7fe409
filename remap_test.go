package memo

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"memo-cache/internal/metrics"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemapper_Alias(t *testing.T) {
	store, _ := newFakeStore[int](3 * time.Millisecond)
	store.Memoize("a", 3)
	store.Memoize("b", 6)

	alias := NewRemapper(store, Table{"aaa": "a"})

	t.Run("alias reads real key", func(t *testing.T) {
		assert.Equal(t, mo.Some(3), alias.Retrieve("aaa"))
		assert.True(t, alias.Retrieve("bbb").IsAbsent())
		assert.Equal(t, 0, alias.RetrieveOrDefault("bbb"))
	})

	t.Run("alias writes real key", func(t *testing.T) {
		alias.Memoize("aaa", 5)
		assert.Equal(t, mo.Some(5), alias.Retrieve("aaa"))
		assert.Equal(t, mo.Some(5), store.Retrieve("a"))
		assert.Equal(t, 5, alias.RetrieveOrDefault("aaa"))
		assert.True(t, store.Retrieve("aaa").IsAbsent())
	})

	t.Run("unmapped key passes through", func(t *testing.T) {
		alias.Memoize("ccc", 9)
		assert.Equal(t, mo.Some(9), alias.Retrieve("ccc"))
		assert.Equal(t, mo.Some(9), store.Retrieve("ccc"))
		assert.Equal(t, mo.Some(6), alias.Retrieve("b"))
	})
}

func TestRemapper_SingleLevelResolution(t *testing.T) {
	store, _ := newFakeStore[string](time.Minute)
	alias := NewRemapper(store, Table{
		"x": "y",
		"y": "x",
		"a": "b",
		"b": "c",
		"s": "s",
	})

	assert.Equal(t, "y", alias.Resolve("x"))
	assert.Equal(t, "x", alias.Resolve("y"))
	assert.Equal(t, "b", alias.Resolve("a"))
	assert.Equal(t, "s", alias.Resolve("s"))
	assert.Equal(t, "z", alias.Resolve("z"))

	alias.Memoize("a", "via a")
	assert.Equal(t, mo.Some("via a"), store.Retrieve("b"))
	assert.True(t, store.Retrieve("c").IsAbsent())

	alias.Memoize("x", "via x")
	assert.Equal(t, mo.Some("via x"), store.Retrieve("y"))
	assert.True(t, store.Retrieve("x").IsAbsent())
}

func TestRemapper_TableIsCopied(t *testing.T) {
	store, _ := newFakeStore[int](time.Minute)
	table := Table{"aaa": "a"}
	alias := NewRemapper(store, table)

	table["aaa"] = "other"
	table["bbb"] = "b"

	assert.Equal(t, "a", alias.Resolve("aaa"))
	assert.Equal(t, "bbb", alias.Resolve("bbb"))
}

func TestRemapper_NilTable(t *testing.T) {
	store, _ := newFakeStore[int](time.Minute)
	alias := NewRemapper(store, nil)

	alias.Memoize("k", 1)
	assert.Equal(t, mo.Some(1), store.Retrieve("k"))
}

func TestRemapper_ForgetSweepsBackingStore(t *testing.T) {
	store, c := newFakeStore[int](3 * time.Millisecond)
	alias := NewRemapper(store, Table{"aaa": "a"})

	alias.Memoize("aaa", 1)
	store.Memoize("plain", 2)
	c.Advance(2 * time.Millisecond)
	store.Memoize("fresh", 3)
	c.Advance(2 * time.Millisecond)

	assert.Equal(t, 2, alias.Forget())
	assert.True(t, store.Retrieve("a").IsAbsent())
	assert.True(t, store.Retrieve("plain").IsAbsent())
	assert.Equal(t, mo.Some(3), alias.Retrieve("fresh"))
	assert.Same(t, store, alias.Store())
}

func TestRemapper_SharedStore(t *testing.T) {
	store, _ := newFakeStore[int](time.Minute)
	v1 := NewRemapper(store, Table{"user": "user:v1"})
	v2 := NewRemapper(store, Table{"user": "user:v2"})

	v1.Memoize("user", 1)
	v2.Memoize("user", 2)

	assert.Equal(t, mo.Some(1), v1.Retrieve("user"))
	assert.Equal(t, mo.Some(2), v2.Retrieve("user"))
	assert.Equal(t, 2, store.Len())
}

func TestRemapper_Defaulter(t *testing.T) {
	store, _ := newFakeStore[port](time.Minute)
	alias := NewRemapper(store, Table{"web": "http"})

	assert.Equal(t, port(80), alias.RetrieveOrDefault("web"))

	store.Memoize("http", 8080)
	assert.Equal(t, port(8080), alias.RetrieveOrDefault("web"))
}

func TestRemapper_Concurrent(t *testing.T) {
	store := NewStore[int](time.Minute)
	table := Table{}
	for i := 0; i < 50; i++ {
		table[fmt.Sprintf("alias-%d", i)] = fmt.Sprintf("real-%d", i)
	}
	alias := NewRemapper(store, table)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i < 50 {
				alias.Memoize(fmt.Sprintf("alias-%d", i), i)
			} else {
				alias.Memoize(fmt.Sprintf("direct-%d", i), i)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, mo.Some(i), store.Retrieve(fmt.Sprintf("real-%d", i)))
	}
	for i := 50; i < 100; i++ {
		assert.Equal(t, mo.Some(i), store.Retrieve(fmt.Sprintf("direct-%d", i)))
	}
}

func TestRemapper_Stats(t *testing.T) {
	store, _ := newFakeStore[int](time.Minute)
	alias := NewRemapper(store, Table{"aaa": "a"})

	assert.Equal(t, "a", alias.Resolve("aaa"))
	assert.Equal(t, "ccc", alias.Resolve("ccc"))
	stats := store.Stats()
	assert.NotContains(t, stats, string(metrics.RemapHitsTotal), "Resolve must not count")
	assert.NotContains(t, stats, string(metrics.RemapPassthroughTotal), "Resolve must not count")

	alias.Memoize("aaa", 1)
	alias.Retrieve("aaa")
	alias.Retrieve("ccc")

	stats = store.Stats()
	assert.Equal(t, int64(2), stats[string(metrics.RemapHitsTotal)])
	assert.Equal(t, int64(1), stats[string(metrics.RemapPassthroughTotal)])
}

func TestTable_Validate(t *testing.T) {
	assert.NoError(t, Table(nil).Validate())
	assert.NoError(t, Table{"a": "b", "b": "a"}.Validate())

	err := Table{"": "a"}.Validate()
	assert.True(t, errors.Is(err, ErrEmptyAlias))

	err = Table{"a": ""}.Validate()
	assert.ErrorIs(t, err, ErrEmptyAlias)
}

func TestParseTable(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		table, err := ParseTable([]byte("aaa: a\n\"user\": \"user:v2\"\n"))
		require.NoError(t, err)
		assert.Equal(t, Table{"aaa": "a", "user": "user:v2"}, table)
	})

	t.Run("empty", func(t *testing.T) {
		table, err := ParseTable(nil)
		require.NoError(t, err)
		assert.Empty(t, table)
	})

	t.Run("duplicate alias", func(t *testing.T) {
		_, err := ParseTable([]byte("aaa: a\naaa: b\n"))
		assert.Error(t, err)
	})

	t.Run("empty target", func(t *testing.T) {
		_, err := ParseTable([]byte("aaa: \"\"\n"))
		assert.ErrorIs(t, err, ErrEmptyAlias)
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, err := ParseTable([]byte("- a\n- b\n"))
		assert.Error(t, err)
	})
}
