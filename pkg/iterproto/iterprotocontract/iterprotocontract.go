package iterprotocontract

import (
	"reflect"
	"testing"

	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterprotocol/pkg/iterproto"
)

// Iterable is the behavioural contract of a finite iterproto.Iterable producer.
// The mk function is expected to return iterables that yield the same values every time.
func Iterable[T any](mk func(testing.TB) iterproto.Iterable[T]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) iterproto.Iterable[T] {
		return mk(t)
	})

	drain := func(t *testcase.T, c iterproto.Cursor[T]) []T {
		var vs []T
		for {
			step, err := iterproto.Advance(c)
			assert.NoError(t, err)
			if step.Done() {
				return vs
			}
			vs = append(vs, step.Value())
		}
	}

	s.Test("the iterable makes a cursor", func(t *testcase.T) {
		assert.True(t, iterproto.IsIterable[T](subject.Get(t)))
		c, err := iterproto.MakeCursor[T](subject.Get(t))
		assert.NoError(t, err)
		assert.NotNil(t, c)
		t.Defer(iterproto.Release[T], c)
	})

	s.Test("every step is well formed, and once done, the cursor stays done", func(t *testcase.T) {
		c, err := iterproto.MakeCursor[T](subject.Get(t))
		assert.NoError(t, err)
		t.Defer(iterproto.Release[T], c)
		drain(t, c)

		t.Random.Repeat(1, 5, func() {
			step, err := iterproto.Advance(c)
			assert.NoError(t, err)
			assert.True(t, step.Done())
		})
	})

	s.Test("cursors of the same iterable are independent", func(t *testcase.T) {
		it := subject.Get(t)
		c1, err := iterproto.MakeCursor[T](it)
		assert.NoError(t, err)
		t.Defer(iterproto.Release[T], c1)
		c2, err := iterproto.MakeCursor[T](it)
		assert.NoError(t, err)
		t.Defer(iterproto.Release[T], c2)
		if reflect.TypeOf(c1).Comparable() && c1 == c2 {
			t.Skip("the iterable is a self-iterable cursor")
		}
		assert.Equal(t, drain(t, c1), drain(t, c2))
	})

	s.Test("take draws at most n values", func(t *testcase.T) {
		all, err := iterproto.Collect(mk(t))
		assert.NoError(t, err)

		n := t.Random.IntB(0, len(all)+2)
		vs, err := iterproto.Take(mk(t), n)
		assert.NoError(t, err)
		assert.True(t, len(vs) <= n)
		if n <= len(all) {
			assert.Equal(t, all[:n], vs)
		} else {
			assert.Equal(t, all, vs)
		}
	})

	s.Test("for each visits the collected values in production order", func(t *testcase.T) {
		exp, err := iterproto.Collect(mk(t))
		assert.NoError(t, err)

		var got = make([]T, 0)
		assert.NoError(t, iterproto.ForEach(subject.Get(t), func(v T) {
			got = append(got, v)
		}))
		assert.Equal(t, exp, got)
	})

	return s.AsSuite("Iterable")
}
