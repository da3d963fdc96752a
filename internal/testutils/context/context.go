package context

import (
	"context"
	"testing"
	"time"
)

// cleanupMargin is left between the context deadline and the test deadline.
const cleanupMargin = time.Second

// WithTest bounds ctx by the deadline of the test (`go test -timeout`),
// so a stuck worker fails the test instead of hanging it.
//
// Without a test deadline, ctx is returned as it is.
func WithTest(ctx context.Context, t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	if deadline, ok := t.Deadline(); ok {
		return context.WithDeadline(ctx, deadline.Add(-cleanupMargin))
	}
	return context.WithCancel(ctx)
}
