package stream_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjmalina/blog/stream"
)

func TestOf(t *testing.T) {
	s := stream.Of(1, 2, 3)

	var out []int
	for v := range s.Values() {
		out = append(out, v)
	}

	require.Equal(t, []int{1, 2, 3}, out)
}

func TestEmpty(t *testing.T) {
	require.Empty(t, stream.Collect(stream.Empty[int]()))
}

func TestUnfold_Countdown(t *testing.T) {
	s := stream.Unfold(3, func(n int) (int, int, bool) {
		if n == 0 {
			return 0, 0, false
		}
		return n, n - 1, true
	})

	require.Equal(t, []int{3, 2, 1}, stream.Collect(s))
}

func TestUnfold_FibonacciIsLazy(t *testing.T) {
	type pair struct{ a, b int }
	fibs := stream.Unfold(pair{0, 1}, func(p pair) (int, pair, bool) {
		return p.a, pair{p.b, p.a + p.b}, true
	})

	// The generator is unbounded; Take bounds the demand.
	require.Equal(t, []int{0, 1, 1, 2, 3, 5, 8}, stream.Collect(stream.Take(fibs, 7)))
}

func TestIterate(t *testing.T) {
	doubles := stream.Iterate(1, func(n int) int { return n * 2 })

	require.Equal(t, []int{1, 2, 4, 8, 16}, stream.Collect(stream.Take(doubles, 5)))
}

func TestConstant(t *testing.T) {
	ones := stream.Constant(1)

	require.Equal(t, []int{1, 1, 1}, stream.Collect(stream.Take(ones, 3)))
}

func TestHead_OnlyForcesFirstElement(t *testing.T) {
	computed := 0
	s := stream.Iterate(1, func(n int) int {
		computed++
		return n + 1
	})

	v, ok := stream.Head(s)

	require.True(t, ok)
	require.Equal(t, 1, v)
	// Iterate steps once to produce the seed's successor before the
	// consumer stops; it must not run further than that.
	require.LessOrEqual(t, computed, 1)
}

func TestHead_Empty(t *testing.T) {
	_, ok := stream.Head(stream.Empty[string]())
	require.False(t, ok)
}

func TestFind_ShortCircuits(t *testing.T) {
	seen := 0
	s := stream.Map(stream.Of(1, 2, 3, 4, 5), func(v int) int {
		seen++
		return v
	})

	v, ok := stream.Find(s, func(v int) bool { return v == 3 })

	require.True(t, ok)
	require.Equal(t, 3, v)
	require.Equal(t, 3, seen)
}

func TestExists(t *testing.T) {
	s := stream.Of("a", "b", "c")

	require.True(t, stream.Exists(s, func(v string) bool { return v == "b" }))
	require.False(t, stream.Exists(stream.Of("a"), func(v string) bool { return v == "z" }))
}

func TestCount(t *testing.T) {
	require.Equal(t, 4, stream.Count(stream.Of(1, 2, 3, 4)))
	require.Equal(t, 0, stream.Count(stream.Empty[int]()))
}

func TestDeepStreamDoesNotOverflow(t *testing.T) {
	// A million-element generative stream forces the iterative
	// implementation: a recursive one would blow the stack here.
	nats := stream.Iterate(0, func(n int) int { return n + 1 })
	evens := stream.Filter(nats, func(n int) bool { return n%2 == 0 })

	out := stream.Collect(stream.Take(evens, 1_000_000))

	require.Len(t, out, 1_000_000)
	require.Equal(t, 1_999_998, out[len(out)-1])
}
