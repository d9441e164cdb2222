package iterproto

import (
	"iter"
)

// Countdown is an Iterable that yields start, start-1, ..., 1 and then reports done.
// A start of zero or less yields no value.
func Countdown(start int) Iterable[int] {
	return countdown(start)
}

type countdown int

func (start countdown) Cursor() Cursor[int] {
	return &countdownCursor{n: int(start)}
}

// countdownCursor is a self-iterable Cursor.
type countdownCursor struct {
	n int
}

func (c *countdownCursor) Cursor() Cursor[int] { return c }

func (c *countdownCursor) Next() Step[int] {
	if c.n <= 0 {
		return Done[int]()
	}
	c.n--
	return Yield(c.n + 1)
}

// Slice is an Iterable over a slice.
// Every Cursor call starts a new traversal from the first element,
// and the returned Cursor is self-iterable.
func Slice[T any](vs []T) Iterable[T] {
	return sliceIterable[T](vs)
}

type sliceIterable[T any] []T

func (vs sliceIterable[T]) Cursor() Cursor[T] {
	return &sliceCursor[T]{values: vs}
}

type sliceCursor[T any] struct {
	values []T
	index  int
}

func (c *sliceCursor[T]) Cursor() Cursor[T] { return c }

func (c *sliceCursor[T]) Next() Step[T] {
	if len(c.values) <= c.index {
		return Done[T]()
	}
	v := c.values[c.index]
	c.index++
	return Yield(v)
}

// FromSeq is an Iterable over Go's push style iterator.
// Every Cursor call starts a new iteration of the sequence.
//
// The Cursor pulls the values of the sequence with iter.Pull,
// which holds resources until the sequence is finished.
// A Cursor that is abandoned before it reports done should be freed with Release.
func FromSeq[T any](seq iter.Seq[T]) Iterable[T] {
	return seqIterable[T](seq)
}

type seqIterable[T any] iter.Seq[T]

func (seq seqIterable[T]) Cursor() Cursor[T] {
	next, stop := iter.Pull(iter.Seq[T](seq))
	return &pullCursor[T]{next: next, stop: stop}
}

type pullCursor[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

func (c *pullCursor[T]) Cursor() Cursor[T] { return c }

func (c *pullCursor[T]) Next() Step[T] {
	if c.done {
		return Done[T]()
	}
	v, ok := c.next()
	if !ok {
		_ = c.Close()
		return Done[T]()
	}
	return Yield(v)
}

func (c *pullCursor[T]) Close() error {
	if c.done {
		return nil
	}
	c.done = true
	c.stop()
	return nil
}

// Func turns a pull function into a self-iterable Cursor.
// After next reports false for the first time, the Cursor stays done
// and next is not called anymore.
func Func[T any](next func() (T, bool)) Cursor[T] {
	return &funcCursor[T]{next: next}
}

type funcCursor[T any] struct {
	next func() (T, bool)
	done bool
}

func (c *funcCursor[T]) Cursor() Cursor[T] { return c }

func (c *funcCursor[T]) Next() Step[T] {
	if c.done {
		return Done[T]()
	}
	v, ok := c.next()
	if !ok {
		c.done = true
		return Done[T]()
	}
	return Yield(v)
}
