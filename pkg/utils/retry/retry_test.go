package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/utils/retry"
)

func TestPolicy_Delay(t *testing.T) {
	policy := retry.Policy{Initial: time.Second, Multiplier: 2, Max: 10 * time.Second}

	for n, want := range map[int]time.Duration{
		0: time.Second,
		1: time.Second,
		2: 2 * time.Second,
		3: 4 * time.Second,
		4: 8 * time.Second,
		5: 10 * time.Second,
		6: 10 * time.Second,
	} {
		if got := policy.Delay(n); got != want {
			t.Errorf("Delay(%d) = %s, want %s", n, got, want)
		}
	}

	if d := retry.Static(time.Second, 0).Delay(5); d != time.Second {
		t.Errorf("static delay changes: %s", d)
	}
}

func TestBlocking(t *testing.T) {
	policy := retry.Policy{Initial: time.Millisecond, Multiplier: 1, Attempts: 3}

	t.Run("it retries transient errors", func(t *testing.T) {
		calls := 0
		got, err := retry.Blocking(context.Background(), policy, func(context.Context) (int, error) {
			calls += 1
			if calls < 3 {
				return 0, fmt.Errorf("%w: not yet", retry.ErrRetry)
			}
			return 42, nil
		})
		if err != nil || got != 42 || calls != 3 {
			t.Errorf("got (%d, %v) in %d calls", got, err, calls)
		}
	})

	t.Run("it gives up when attempts are exhausted", func(t *testing.T) {
		calls := 0
		_, err := retry.Blocking(context.Background(), policy, func(context.Context) (int, error) {
			calls += 1
			return 0, retry.ErrRetry
		})
		if !errors.Is(err, retry.ErrRetry) || calls != 3 {
			t.Errorf("got %v in %d calls", err, calls)
		}
	})

	t.Run("it stops at non-retry errors", func(t *testing.T) {
		expected := errors.New("fatal")
		calls := 0
		_, err := retry.Blocking(context.Background(), policy, func(context.Context) (int, error) {
			calls += 1
			return 0, expected
		})
		if !errors.Is(err, expected) || calls != 1 {
			t.Errorf("got %v in %d calls", err, calls)
		}
	})

	t.Run("it stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		_, err := retry.Blocking(ctx, retry.Static(time.Hour, 0), func(context.Context) (int, error) {
			cancel()
			return 0, retry.ErrRetry
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
