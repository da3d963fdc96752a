package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrRetry marks an error as transient.
//
// Wrap it (like `fmt.Errorf("%w: ...", ErrRetry)`) to let Blocking call the function again.
var ErrRetry = errors.New("retry")

// Policy is an exponential backoff schedule.
type Policy struct {
	// delay before the first retry.
	Initial time.Duration

	// growth rate of delay. Values less than 1 are treated as 1.
	Multiplier float64

	// upper bound of delay. Zero means no bound.
	Max time.Duration

	// how many times the function can be called in total. Zero means no limit.
	Attempts int
}

// Static is a Policy waiting for interval on every retry.
func Static(interval time.Duration, attempts int) Policy {
	return Policy{Initial: interval, Multiplier: 1, Attempts: attempts}
}

// Delay returns how long to wait after n-th failure (n >= 1).
//
// It is Initial * Multiplier^(n-1), capped by Max.
func (p Policy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	m := p.Multiplier
	if m < 1 {
		m = 1
	}
	d := float64(p.Initial) * math.Pow(m, float64(n-1))
	if p.Max > 0 && float64(p.Max) < d {
		return p.Max
	}
	if float64(math.MaxInt64) < d {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// Exhausted tells whether n attempts are all that Policy allows.
func (p Policy) Exhausted(n int) bool {
	return 0 < p.Attempts && p.Attempts <= n
}

// Blocking calls f until it returns nil or non-retry error.
//
// # Args
//
// - ctx: context. When it is done while waiting, Blocking returns ctx.Err().
//
// - p: retry schedule.
//
// - f: function to be called. If f returns ErrRetry, Blocking calls f again after backoff.
//
// # Returns
//
// - T: last return value of f
//
// - error: error returned by f. When attempts are exhausted, the last error.
func Blocking[T any](ctx context.Context, p Policy, f func(context.Context) (T, error)) (T, error) {
	for n := 1; ; n++ {
		last, err := f(ctx)
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrRetry) {
			return last, err
		}
		if p.Exhausted(n) {
			return last, fmt.Errorf("gave up after %d attempts: %w", n, err)
		}

		timer := time.NewTimer(p.Delay(n))
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		case <-timer.C:
		}
	}
}
