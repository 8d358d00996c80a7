package recurring

import (
	"context"
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/loop"
)

// Task is a recurring unit of work.
//
// Return:
//
// - T : same as return value T of loop.Task[T]
//
// - bool : true when this task did something in this cycle, and more backlog can be.
// otherwise false.
//
// - error : non-nil when the cycle failed.
type Task[T any] func(context.Context, T) (T, bool, error)

// Policy decides how a recurring task goes on after each cycle.
type Policy struct {
	// Interval between idle cycles.
	Interval time.Duration

	// StopOnError breaks the loop when a cycle fails.
	// Otherwise failures are reported via OnError and the loop continues.
	StopOnError bool

	// OnError is called for each failed cycle when StopOnError is false.
	OnError func(error)
}

func (p Policy) Next(ok bool, err error) loop.Next {
	if err != nil {
		if p.StopOnError {
			return loop.Break(err)
		}
		if p.OnError != nil {
			p.OnError(err)
		}
		return loop.Continue(p.Interval)
	}
	if ok {
		return loop.Continue(0)
	}
	return loop.Continue(p.Interval)
}

// a loop.Task which executes rt and applies p.Next to the result.
func (rt Task[T]) Applied(p Policy) loop.Task[T] {
	return func(ctx context.Context, t T) (T, loop.Next) {
		new, ok, err := rt(ctx, t)
		return new, p.Next(ok, err)
	}
}
