// Package iterproto provides a minimal iterator protocol runtime.
//
// # Summary
//
// An Iterable is a value that can produce a Cursor on demand,
// and a Cursor is a stateful value that produces Steps one at a time.
// A Step either carries the next value or reports that the Cursor is exhausted.
// The traversal helpers (ForEach, Collect, Take, Destructure) consume any Iterable
// without knowing how the values are produced,
// so a data producer only needs to implement these two small interfaces
// to be usable by every sequence-processing consumer.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
package iterproto

import (
	"io"
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
)

const (
	// ErrProtocol is returned when a value does not conform to the iterator protocol.
	// For example, a value presented as Iterable has no Cursor factory,
	// or a Cursor returns a Step that is neither a value nor a done marker.
	ErrProtocol errorkit.Error = "ErrProtocol"
	// ErrInvalidArgument is returned when a traversal helper receives a malformed parameter.
	ErrInvalidArgument errorkit.Error = "ErrInvalidArgument"
)

// Iterable is a value that can produce a Cursor.
// Calling Cursor multiple times yields independent cursors,
// unless the Iterable is a self-iterable Cursor, which returns itself.
type Iterable[T any] interface {
	Cursor() Cursor[T]
}

// Cursor produces the next Step of an iteration.
//
// A Cursor is owned by a single traversal.
// It is not safe to advance the same Cursor from multiple goroutines,
// and the runtime does not guard against it.
//
// Once a Cursor reported a done Step, it should keep reporting done Steps.
type Cursor[T any] interface {
	Next() Step[T]
}

// Step is the result of a single Cursor.Next call.
// It is either a value Step, made with Yield, or a done Step, made with Done.
// The zero Step is malformed and rejected by Advance.
type Step[T any] struct {
	value T
	done  bool
	set   bool
}

// Yield makes a Step that carries a value.
func Yield[T any](v T) Step[T] {
	return Step[T]{value: v, set: true}
}

// Done makes a Step that reports exhaustion.
func Done[T any]() Step[T] {
	return Step[T]{done: true, set: true}
}

// Done reports whether the Cursor is exhausted.
func (s Step[T]) Done() bool { return s.done }

// Value returns the value of the Step.
// For a done Step it is the zero value.
func (s Step[T]) Value() T { return s.value }

// Get returns the value and true for a value Step, and the zero value and false for a done Step.
func (s Step[T]) Get() (T, bool) { return s.value, s.set && !s.done }

func (s Step[T]) valid() bool { return s.set }

// IsIterable reports whether MakeCursor would accept the value.
func IsIterable[T any](v any) bool {
	switch v := v.(type) {
	case Iterable[T], []T:
		return true
	case iter.Seq[T]:
		return v != nil
	default:
		return false
	}
}

// MakeCursor invokes the Cursor factory of an Iterable.
//
// Besides Iterable[T] values, native Go sequences are accepted as built-in iterables:
// a []T is consumed with Slice and an iter.Seq[T] with FromSeq.
// Any other value fails with ErrProtocol.
func MakeCursor[T any](v any) (Cursor[T], error) {
	var it Iterable[T]
	switch v := v.(type) {
	case nil:
		return nil, ErrProtocol.F("nil value is not iterable")
	case Iterable[T]:
		it = v
	case []T:
		it = Slice(v)
	case iter.Seq[T]:
		if v == nil {
			return nil, ErrProtocol.F("nil %T is not iterable", v)
		}
		it = FromSeq(v)
	default:
		return nil, ErrProtocol.F("%T has no cursor factory", v)
	}
	c := it.Cursor()
	if c == nil {
		return nil, ErrProtocol.F("%T returned a nil cursor", v)
	}
	return c, nil
}

// Advance calls the Cursor's Next exactly once.
// A nil Cursor or a malformed Step fails with ErrProtocol.
func Advance[T any](c Cursor[T]) (Step[T], error) {
	if c == nil {
		return Step[T]{}, ErrProtocol.F("nil cursor")
	}
	s := c.Next()
	if !s.valid() {
		return Step[T]{}, ErrProtocol.F("%T returned a step without done state", c)
	}
	return s, nil
}

// ForEach advances the Iterable's Cursor until it is done,
// and calls fn with every value in production order.
func ForEach[T any](it Iterable[T], fn func(T)) error {
	c, err := MakeCursor[T](it)
	if err != nil {
		return err
	}
	for {
		s, err := Advance(c)
		if err != nil {
			return err
		}
		if s.Done() {
			return nil
		}
		fn(s.Value())
	}
}

// Collect drains the Iterable into a slice.
//
// Collect never returns if the Cursor never reports done.
// Use Take for producers that are not known to be finite.
func Collect[T any](it Iterable[T]) ([]T, error) {
	var vs = make([]T, 0)
	err := ForEach(it, func(v T) {
		vs = append(vs, v)
	})
	return vs, err
}

// Take draws at most n values from the Iterable.
// It stops advancing as soon as n values are collected or the Cursor is done,
// so it is safe to use with infinite producers.
func Take[T any](it Iterable[T], n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidArgument.F("take count must be non-negative, got %d", n)
	}
	c, err := MakeCursor[T](it)
	if err != nil {
		return nil, err
	}
	return take(c, n)
}

func take[T any](c Cursor[T], n int) ([]T, error) {
	var vs = make([]T, 0)
	for len(vs) < n {
		s, err := Advance(c)
		if err != nil {
			return vs, err
		}
		if s.Done() {
			break
		}
		vs = append(vs, s.Value())
	}
	return vs, nil
}

// Destructure takes the first n values into head, and the remaining values of the same Cursor into rest.
// When the Iterable has fewer than n values, head is shorter than n and rest is empty.
func Destructure[T any](it Iterable[T], n int) (head []T, rest []T, _ error) {
	if n < 0 {
		return nil, nil, ErrInvalidArgument.F("destructure count must be non-negative, got %d", n)
	}
	c, err := MakeCursor[T](it)
	if err != nil {
		return nil, nil, err
	}
	head, err = take(c, n)
	if err != nil {
		return head, nil, err
	}
	rest, err = Collect[T](self[T]{c: c})
	return head, rest, err
}

// self presents an already obtained Cursor as an Iterable,
// so traversal continues from its current position.
type self[T any] struct{ c Cursor[T] }

func (s self[T]) Cursor() Cursor[T] { return s.c }

// All turns the Iterable into a range-over-func sequence.
// A protocol violation is yielded as the last element with a non-nil error.
func All[T any](it Iterable[T]) iterkit.SeqE[T] {
	return func(yield func(T, error) bool) {
		var zero T
		c, err := MakeCursor[T](it)
		if err != nil {
			yield(zero, err)
			return
		}
		for {
			s, err := Advance(c)
			if err != nil {
				yield(zero, err)
				return
			}
			if s.Done() {
				return
			}
			if !yield(s.Value(), nil) {
				return
			}
		}
	}
}

// Release frees the resources held by a Cursor, if it holds any.
// Cursors that implement io.Closer are closed, others are left as is.
// Release is only needed when a resource-holding Cursor is abandoned before it is done.
func Release[T any](c Cursor[T]) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
