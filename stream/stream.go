// Package stream provides lazy, composable sequences over iter.Seq.
//
// A Stream[T] represents a demand-driven sequence of values: nothing is
// computed until the stream is iterated, and consumers that stop early
// (Take, Head, Find) never force the rest of the sequence. Generative
// constructors (Unfold, Iterate, Constant) build unbounded streams from a
// seed; transformations (Map, Filter, Take, ...) compose without
// intermediate buffering.
//
// All operations are implemented with plain loops rather than recursion,
// so arbitrarily long streams cannot exhaust the call stack.
package stream

import "iter"

// Stream is a lazily-evaluated sequence of values of type T.
type Stream[T any] struct {
	seq iter.Seq[T]
}

// From wraps an iter.Seq into a Stream.
func From[T any](seq iter.Seq[T]) Stream[T] {
	return Stream[T]{seq: seq}
}

// Of returns a Stream over the given values.
func Of[T any](vals ...T) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			for _, v := range vals {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Empty returns a Stream that yields nothing.
func Empty[T any]() Stream[T] {
	return Stream[T]{seq: func(yield func(T) bool) {}}
}

// Unfold builds a Stream from a seed and a step function. step returns the
// next value, the next seed, and whether the stream continues; returning
// ok=false terminates the stream. The classic corecursive generator: the
// seed is threaded through iteratively, one step per demanded element.
func Unfold[S, T any](seed S, step func(S) (T, S, bool)) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			s := seed
			for {
				v, next, ok := step(s)
				if !ok {
					return
				}
				if !yield(v) {
					return
				}
				s = next
			}
		},
	}
}

// Iterate returns the unbounded Stream seed, f(seed), f(f(seed)), ...
func Iterate[T any](seed T, f func(T) T) Stream[T] {
	return Unfold(seed, func(s T) (T, T, bool) {
		return s, f(s), true
	})
}

// Constant returns the unbounded Stream v, v, v, ...
func Constant[T any](v T) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			for yield(v) {
			}
		},
	}
}

// Values returns the underlying iter.Seq for range-over-func consumption.
func (s Stream[T]) Values() iter.Seq[T] {
	return s.seq
}

// Collect drains the stream into a slice. Do not call Collect on an
// unbounded stream without a bounding Take or TakeWhile upstream.
func Collect[T any](s Stream[T]) []T {
	var out []T
	for v := range s.seq {
		out = append(out, v)
	}
	return out
}

// Head returns the first element, or ok=false for an empty stream.
// Only the first element is ever computed.
func Head[T any](s Stream[T]) (T, bool) {
	for v := range s.seq {
		return v, true
	}
	var zero T
	return zero, false
}

// Find returns the first element satisfying predicate. Iteration stops at
// the first match.
func Find[T any](s Stream[T], predicate func(T) bool) (T, bool) {
	for v := range s.seq {
		if predicate(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Exists reports whether any element satisfies predicate, short-circuiting
// on the first match.
func Exists[T any](s Stream[T], predicate func(T) bool) bool {
	_, ok := Find(s, predicate)
	return ok
}

// Count drains the stream and returns the number of elements.
func Count[T any](s Stream[T]) int {
	n := 0
	for range s.seq {
		n++
	}
	return n
}
