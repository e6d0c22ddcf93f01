package stream_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjmalina/blog/stream"
)

func TestMap_TransformsValues(t *testing.T) {
	s := stream.Map(stream.Of(1, 2, 3), func(v int) int {
		return v * 2
	})

	require.Equal(t, []int{2, 4, 6}, stream.Collect(s))
}

func TestMap_ChangesType(t *testing.T) {
	s := stream.Map(stream.Of("go", "scala"), strings.ToUpper)

	require.Equal(t, []string{"GO", "SCALA"}, stream.Collect(s))
}

func TestFilter_FiltersCorrectly(t *testing.T) {
	s := stream.Filter(stream.Of(1, 2, 3, 4, 5), func(v int) bool {
		return v%2 == 0
	})

	require.Equal(t, []int{2, 4}, stream.Collect(s))
}

func TestTake_BoundsStream(t *testing.T) {
	s := stream.Of(1, 2, 3, 4, 5)

	require.Equal(t, []int{1, 2, 3}, stream.Collect(stream.Take(s, 3)))
	require.Empty(t, stream.Collect(stream.Take(s, 0)))
	require.Empty(t, stream.Collect(stream.Take(s, -1)))
}

func TestTake_MoreThanAvailable(t *testing.T) {
	s := stream.Of(1, 2)

	require.Equal(t, []int{1, 2}, stream.Collect(stream.Take(s, 10)))
}

func TestTakeWhile(t *testing.T) {
	s := stream.TakeWhile(stream.Of(1, 2, 3, 1, 2), func(v int) bool {
		return v < 3
	})

	require.Equal(t, []int{1, 2}, stream.Collect(s))
}

func TestDrop(t *testing.T) {
	s := stream.Of(1, 2, 3, 4)

	require.Equal(t, []int{3, 4}, stream.Collect(stream.Drop(s, 2)))
	require.Equal(t, []int{1, 2, 3, 4}, stream.Collect(stream.Drop(s, 0)))
	require.Empty(t, stream.Collect(stream.Drop(s, 10)))
}

func TestConcat_PreservesOrder(t *testing.T) {
	s := stream.Concat(stream.Of(1, 2), stream.Empty[int](), stream.Of(3))

	require.Equal(t, []int{1, 2, 3}, stream.Collect(s))
}

func TestChunk_GroupsCorrectly(t *testing.T) {
	s := stream.Chunk(stream.Of(1, 2, 3, 4, 5), 2)

	require.Equal(t, [][]int{
		{1, 2},
		{3, 4},
		{5},
	}, stream.Collect(s))
}

func TestChunk_PanicInvalidSize(t *testing.T) {
	s := stream.Of(1, 2, 3)

	require.Panics(t, func() {
		stream.Chunk(s, 0)
	})
	require.Panics(t, func() {
		stream.Chunk(s, -1)
	})
}

func TestChunk_RetainedChunksDoNotAlias(t *testing.T) {
	chunks := stream.Collect(stream.Chunk(stream.Of(1, 2, 3, 4), 2))

	chunks[1][0] = 99

	require.Equal(t, []int{1, 2}, chunks[0])
}

func TestGroupBy_ConsecutiveKeys(t *testing.T) {
	s := stream.GroupBy(stream.Of("aa", "ab", "ba", "ac"), func(v string) byte {
		return v[0]
	})

	require.Equal(t, [][]string{
		{"aa", "ab"},
		{"ba"},
		{"ac"},
	}, stream.Collect(s))
}

func TestGroupBy_Empty(t *testing.T) {
	s := stream.GroupBy(stream.Empty[int](), func(v int) int { return v })

	require.Empty(t, stream.Collect(s))
}

func TestComposedPipelineIsLazy(t *testing.T) {
	mapped := 0
	nats := stream.Iterate(1, func(n int) int { return n + 1 })
	squares := stream.Map(nats, func(n int) int {
		mapped++
		return n * n
	})
	small := stream.TakeWhile(squares, func(n int) bool { return n < 100 })

	out := stream.Collect(small)

	require.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64, 81}, out)
	// TakeWhile forces exactly one element past the boundary.
	require.Equal(t, 10, mapped)
}
