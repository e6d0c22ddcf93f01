package stream

// Map transforms each value using fn and returns a new Stream producing the
// mapped values.
func Map[In, Out any](s Stream[In], fn func(In) Out) Stream[Out] {
	return Stream[Out]{
		seq: func(yield func(Out) bool) {
			for in := range s.seq {
				if !yield(fn(in)) {
					return
				}
			}
		},
	}
}

// Filter returns a Stream that yields only the values for which predicate
// returns true.
func Filter[T any](s Stream[T], predicate func(T) bool) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			for in := range s.seq {
				if predicate(in) {
					if !yield(in) {
						return
					}
				}
			}
		},
	}
}

// Take returns a Stream of at most n leading values. Take makes unbounded
// generative streams safe to consume.
func Take[T any](s Stream[T], n int) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			if n <= 0 {
				return
			}
			taken := 0
			for in := range s.seq {
				if !yield(in) {
					return
				}
				taken++
				if taken >= n {
					return
				}
			}
		},
	}
}

// TakeWhile yields leading values while predicate holds, stopping at the
// first value for which it does not.
func TakeWhile[T any](s Stream[T], predicate func(T) bool) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			for in := range s.seq {
				if !predicate(in) {
					return
				}
				if !yield(in) {
					return
				}
			}
		},
	}
}

// Drop skips the first n values and yields the rest.
func Drop[T any](s Stream[T], n int) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			dropped := 0
			for in := range s.seq {
				if dropped < n {
					dropped++
					continue
				}
				if !yield(in) {
					return
				}
			}
		},
	}
}

// Concat yields all values of the given streams in order.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	return Stream[T]{
		seq: func(yield func(T) bool) {
			for _, s := range streams {
				for in := range s.seq {
					if !yield(in) {
						return
					}
				}
			}
		},
	}
}

// Chunk groups incoming values into slices of the given size. The final
// chunk may be smaller than size. Each chunk has its own backing slice, so
// callers may retain chunks safely.
//
// Chunk panics if size is not positive.
func Chunk[T any](s Stream[T], size int) Stream[[]T] {
	if size <= 0 {
		panic("stream.Chunk: size must be positive")
	}
	return Stream[[]T]{
		seq: func(yield func([]T) bool) {
			accum := make([]T, 0, size)
			for in := range s.seq {
				if len(accum) >= size {
					if !yield(accum) {
						return
					}
					accum = make([]T, 0, size)
				}
				accum = append(accum, in)
			}
			if len(accum) > 0 {
				yield(accum)
			}
		},
	}
}

// GroupBy groups consecutive values that share a key into slices. Values
// are not reordered: a group ends when the key returned by keyFunc changes.
// The input must already be ordered by the grouping key if one group per
// key is desired.
func GroupBy[T any, K comparable](s Stream[T], keyFunc func(T) K) Stream[[]T] {
	return Stream[[]T]{
		seq: func(yield func([]T) bool) {
			accum := make([]T, 0)
			var currentKey K
			for in := range s.seq {
				k := keyFunc(in)
				if k != currentKey && len(accum) > 0 {
					if !yield(accum) {
						return
					}
					accum = make([]T, 0)
				}
				currentKey = k
				accum = append(accum, in)
			}
			if len(accum) > 0 {
				yield(accum)
			}
		},
	}
}
