package loop

import (
	"context"
	"fmt"
	"time"
)

type Next struct {
	// if not nil, breaks with error
	err error

	// if quit == true and err == nil, breaks without error
	quit bool

	// otherwise, continue loop with interval.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}

	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// continue loop.
//
// args:
//
// - interval: sleep before starting next task.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// break loop.
//
// args:
//
// - err: If you break loop with error, set non nil value.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task receives (context, last value) and returns (new value, Continue() or Break()).
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task in loop until task returns Break(...) or ctx is Done.
//
// Task should return 2 values:
//
// - T : any value the task needs to carry to the next cycle.
// It can be statistics, result of processing, or something else.
//
// - next: Continue(time.Duration) or Break(error).
// To run one more time, return Continue(time.Duration);
// the task will be called again with the last T after the interval (can be 0).
// Zero value (Next{}) equals Continue(0), that is, "go next ASAP!".
//
// # Returns
//
// - T: the T the task returned at last.
// This value is always returned whether or not error is non-nil.
//
// - error: error in Break(error), or ctx.Err() when ctx is Done.
func Start[T any](ctx context.Context, init T, task Task[T]) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		v, n := task(ctx, value)

		if n.err != nil {
			return v, n.err
		} else if n.quit {
			return v, nil
		}
		value = v

		timer := time.NewTimer(n.interval)
		select {
		case <-ctx.Done():
			// shutting down is priority. it should come first, and checking timer later.
			if !timer.Stop() {
				<-timer.C // drain. see: time.Timer.Stop's document
			}
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}
