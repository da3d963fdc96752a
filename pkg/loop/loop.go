// Package loop repeats a task until it breaks or the context is done.
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a task.
//
// The zero value means "continue immediately".
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

// Continue the loop after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break the loop. Pass nil to stop without error.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is a body of a loop.
//
// It receives the value returned last time (or the initial value), and
// returns a new value with what to do next.
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task repeatedly.
//
// Example: poll a queue, sleeping a while when it is empty.
//
//	loop.Start(ctx, 0, func(ctx context.Context, handled int) (int, loop.Next) {
//		item, err := queue.Pop(ctx)
//		if errors.Is(err, ErrEmpty) {
//			return handled, loop.Continue(time.Second)
//		} else if err != nil {
//			return handled, loop.Break(err)
//		}
//		process(item)
//		return handled + 1, loop.Continue(0)
//	})
//
// # Args
//
// - ctx: when it is done, the loop breaks with ctx.Err().
//
// - init: value passed to the first call of task.
//
// - task: body of the loop.
//
// - options: options for loop.
//
// # Returns
//
// - T: value task returns at last. It is returned even when error is not nil.
//
// - error: error in Break(error), or ctx.Err().
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		lc := &loopConfig{ctx: ctx}
		for _, opt := range options {
			lc = opt(lc)
		}

		v, n := func() (T, Next) {
			if lc.deferred != nil {
				defer lc.deferred()
			}
			return task(lc.ctx, value)
		}()

		if n.err != nil {
			return v, n.err
		} else if n.quit {
			return v, nil
		}
		value = v

		timer := time.NewTimer(n.interval)
		select {
		case <-ctx.Done():
			// shutting down comes first.
			timer.Stop()
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
}

type LoopOption func(*loopConfig) *loopConfig

// WithTimeout sets timeout on each call of task.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		return &loopConfig{
			ctx: ctx,
			deferred: func() {
				if lc.deferred != nil {
					defer lc.deferred()
				}
				cancel()
			},
		}
	}
}
