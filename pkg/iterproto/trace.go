package iterproto

import (
	"context"
	"reflect"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/option"
)

// Trace decorates an Iterable, so every Step of its cursors is logged at debug level.
// Protocol violations of the wrapped Cursor are logged as warnings.
// When l is nil, the package level logger is used.
//
// A traced self-iterable Cursor stays self-iterable:
// its Cursor method returns the traced Cursor itself.
func Trace[T any](ctx context.Context, it Iterable[T], l *logging.Logger, opts ...TraceOption) Iterable[T] {
	var out traceLogger = defaultLogger{}
	if l != nil {
		out = l
	}
	return tracedIterable[T]{
		ctx:      ctx,
		iterable: it,
		logger:   out,
		config:   option.ToConfig[TraceConfig](opts),
	}
}

type traceLogger interface {
	Debug(ctx context.Context, msg string, ds ...logging.Detail)
	Warn(ctx context.Context, msg string, ds ...logging.Detail)
}

type defaultLogger struct{}

func (defaultLogger) Debug(ctx context.Context, msg string, ds ...logging.Detail) {
	logger.Debug(ctx, msg, ds...)
}

func (defaultLogger) Warn(ctx context.Context, msg string, ds ...logging.Detail) {
	logger.Warn(ctx, msg, ds...)
}

type tracedIterable[T any] struct {
	ctx      context.Context
	iterable Iterable[T]
	logger   traceLogger
	config   TraceConfig
}

func (ti tracedIterable[T]) Cursor() Cursor[T] {
	c, err := MakeCursor[T](ti.iterable)
	if err != nil {
		ti.logger.Warn(ti.ctx, "iterable has no cursor",
			logging.Field("cursor", ti.config.Label),
			logging.ErrField(err))
		return nil
	}
	return &tracedCursor[T]{tracedIterable: ti, cursor: c}
}

type tracedCursor[T any] struct {
	tracedIterable[T]
	cursor   Cursor[T]
	position int
}

// Cursor returns the traced cursor itself when the wrapped cursor is self-iterable.
func (tc *tracedCursor[T]) Cursor() Cursor[T] {
	if isSelfIterable(tc.cursor) {
		return tc
	}
	return tc.tracedIterable.Cursor()
}

func (tc *tracedCursor[T]) Next() Step[T] {
	s, err := Advance(tc.cursor)
	if err != nil {
		tc.logger.Warn(tc.ctx, "cursor violated the iterator protocol",
			logging.Field("cursor", tc.config.Label),
			logging.Field("position", tc.position),
			logging.ErrField(err))
		return s
	}
	details := []logging.Detail{
		logging.Field("cursor", tc.config.Label),
		logging.Field("position", tc.position),
		logging.Field("done", s.Done()),
	}
	if tc.config.Values && !s.Done() {
		details = append(details, logging.Field("value", s.Value()))
	}
	tc.logger.Debug(tc.ctx, "cursor step", details...)
	if !s.Done() {
		tc.position++
	}
	return s
}

func (tc *tracedCursor[T]) Close() error {
	return Release(tc.cursor)
}

func isSelfIterable[T any](c Cursor[T]) bool {
	it, ok := c.(Iterable[T])
	if !ok || !reflect.TypeOf(c).Comparable() {
		return false
	}
	other := it.Cursor()
	if other == c {
		return true
	}
	_ = Release(other)
	return false
}
