package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
	"github.com/lucas-ellwanger/newtube/pkg/loop"
	"github.com/lucas-ellwanger/newtube/pkg/loop/recurring"
	"github.com/lucas-ellwanger/newtube/pkg/metrics"
	"github.com/lucas-ellwanger/newtube/pkg/utils/retry"
	"golang.org/x/sync/errgroup"
)

// Worker claims due runs and executes them.
type Worker struct {
	journal kdb.WorkflowInterface
	bodies  map[domain.WorkflowName]Body
	logger  *log.Logger

	backoff     retry.Policy
	lease       time.Duration
	timeout     time.Duration
	concurrency int
	now         func() time.Time
}

type Option func(*Worker)

// WithBackoff sets the retry schedule. Attempts of the policy is the max attempts of a run.
func WithBackoff(p retry.Policy) Option {
	return func(w *Worker) { w.backoff = p }
}

// WithLease sets how long a run can be running before another worker reclaims it.
func WithLease(d time.Duration) Option {
	return func(w *Worker) { w.lease = d }
}

// WithTimeout sets the deadline of each execution.
func WithTimeout(d time.Duration) Option {
	return func(w *Worker) { w.timeout = d }
}

func WithConcurrency(n int) Option {
	return func(w *Worker) { w.concurrency = n }
}

func WithLogger(l *log.Logger) Option {
	return func(w *Worker) { w.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(w *Worker) { w.now = now }
}

func NewWorker(journal kdb.WorkflowInterface, bodies map[domain.WorkflowName]Body, options ...Option) *Worker {
	w := &Worker{
		journal: journal,
		bodies:  bodies,
		logger:  log.New("workflow"),
		backoff: retry.Policy{
			Initial: 10 * time.Second, Multiplier: 2, Max: 10 * time.Minute, Attempts: 5,
		},
		lease:       15 * time.Minute,
		timeout:     10 * time.Minute,
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.concurrency < 1 {
		w.concurrency = 1
	}
	if w.lease < w.timeout {
		w.lease = w.timeout
	}
	return w
}

// Tick claims a due run and executes it.
//
// Returns
//
// - bool: true when a run has been executed.
//
// - error: error on the journal. Errors of the run are recorded in the journal, not returned.
func (w *Worker) Tick(ctx context.Context) (bool, error) {
	run, err := w.journal.Claim(ctx, w.lease)
	if errors.Is(err, domerr.ErrMissing) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	w.logger.Infof("run %s (%s): attempt #%d", run.Id, run.Name, run.Attempts)
	return true, w.execute(ctx, run)
}

func (w *Worker) execute(ctx context.Context, run domain.WorkflowRun) error {
	body, ok := w.bodies[run.Name]
	if !ok {
		return w.fail(ctx, run, fmt.Errorf("no workflow named %s", run.Name))
	}

	steps, err := w.journal.Steps(ctx, run.Id)
	if err != nil {
		return err
	}

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = Permanent(fmt.Errorf("panic: %v", r))
			}
		}()
		rctx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()
		return body(rctx, &Run{run: run, steps: steps, journal: w.journal})
	}()

	switch {
	case err == nil:
		if err := w.journal.Finish(ctx, run.Id, run.Attempts); err != nil {
			return w.released(run, err)
		}
		metrics.WorkflowRun(run.Name.String(), "done")
		w.logger.Infof("run %s (%s): done", run.Id, run.Name)
		return nil
	case errors.Is(err, ErrPermanent), w.backoff.Exhausted(run.Attempts):
		return w.fail(ctx, run, err)
	default:
		at := w.now().Add(w.backoff.Delay(run.Attempts))
		if rerr := w.journal.Retry(ctx, run.Id, run.Attempts, err.Error(), at); rerr != nil {
			return w.released(run, rerr)
		}
		metrics.WorkflowRun(run.Name.String(), "retry")
		w.logger.Warnf("run %s (%s): will retry at %s: %s", run.Id, run.Name, at, err)
		return nil
	}
}

func (w *Worker) fail(ctx context.Context, run domain.WorkflowRun, cause error) error {
	if err := w.journal.Fail(ctx, run.Id, run.Attempts, cause.Error()); err != nil {
		return w.released(run, err)
	}
	metrics.WorkflowRun(run.Name.String(), "failed")
	w.logger.Errorf("run %s (%s): failed: %s", run.Id, run.Name, cause)
	return nil
}

// released handles an error on recording the outcome of the run.
//
// When another worker has reclaimed the run, the outcome is dropped: the run belongs to the other worker.
func (w *Worker) released(run domain.WorkflowRun, err error) error {
	if !errors.Is(err, domerr.ErrLeaseExpired) {
		return err
	}
	metrics.WorkflowRun(run.Name.String(), "lost")
	w.logger.Warnf("run %s (%s): attempt #%d has been taken over. its outcome is discarded", run.Id, run.Name, run.Attempts)
	return nil
}

// Start runs Tick in loops following the policy, until ctx is done or all loops break.
//
// With recurring.Backlog(), it returns after all due runs are executed.
func (w *Worker) Start(ctx context.Context, policy recurring.Policy) error {
	task := recurring.Task[struct{}](func(ctx context.Context, v struct{}) (struct{}, bool, error) {
		ok, err := w.Tick(ctx)
		if err != nil && ctx.Err() == nil {
			w.logger.Errorf("journal: %s", err)
		}
		return v, ok, err
	})

	eg, ectx := errgroup.WithContext(ctx)
	for range w.concurrency {
		eg.Go(func() error {
			_, err := loop.Start(ectx, struct{}{}, task.Applied(policy))
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		})
	}
	return eg.Wait()
}
