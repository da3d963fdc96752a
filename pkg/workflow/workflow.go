// Package workflow runs durable, step-journaled background jobs.
//
// A workflow is a function over a *Run. Its side effects are split into named
// steps with Step. Each completed step is journaled, so when a run is retried
// the completed steps are replayed from the journal instead of being executed again.
//
//	func body(ctx context.Context, r *workflow.Run) error {
//		in := Input{}
//		if err := r.Input(&in); err != nil {
//			return workflow.Permanent(err)
//		}
//		video, err := workflow.Step(ctx, r, "get-video", func(ctx context.Context) (Video, error) {
//			return fetch(ctx, in.VideoId)
//		})
//		...
//	}
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
	"github.com/lucas-ellwanger/newtube/pkg/metrics"
)

// ErrPermanent marks errors which retrying cannot resolve.
var ErrPermanent = errors.New("permanent error")

type permanent struct {
	err error
}

func (p permanent) Error() string {
	return fmt.Sprintf("%s: %s", ErrPermanent, p.err)
}

func (p permanent) Unwrap() []error {
	return []error{ErrPermanent, p.err}
}

// Permanent wraps err to fail the run without retrying. It returns nil for nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

// Body is the implementation of a workflow.
type Body func(ctx context.Context, r *Run) error

// Run is an execution of a workflow run, seen from its Body.
type Run struct {
	run     domain.WorkflowRun
	steps   map[string][]byte
	journal kdb.WorkflowInterface
}

func (r *Run) Id() string {
	return r.run.Id
}

func (r *Run) Name() domain.WorkflowName {
	return r.run.Name
}

// Attempt is how many times the run has been claimed, including this time.
func (r *Run) Attempt() int {
	return r.run.Attempts
}

// Input decodes the payload of the run into v.
func (r *Run) Input(v any) error {
	return json.Unmarshal(r.run.Payload, v)
}

// Step executes f once per run, and journals its result.
//
// When the step has been completed in a previous attempt, f is not called and
// the journaled result is returned.
//
// The result should be JSON serializable.
func Step[T any](ctx context.Context, r *Run, name string, f func(context.Context) (T, error)) (T, error) {
	if b, ok := r.steps[name]; ok {
		replayed := new(T)
		if err := json.Unmarshal(b, replayed); err != nil {
			return *new(T), fmt.Errorf("step %s: broken journal: %w", name, Permanent(err))
		}
		return *replayed, nil
	}

	begin := time.Now()
	result, err := f(ctx)
	if err != nil {
		return *new(T), fmt.Errorf("step %s: %w", name, err)
	}
	metrics.WorkflowStep(r.run.Name.String(), name, time.Since(begin))

	b, err := json.Marshal(result)
	if err != nil {
		return *new(T), fmt.Errorf("step %s: %w", name, Permanent(err))
	}
	if err := r.journal.SaveStep(ctx, r.run.Id, name, b); err != nil {
		return *new(T), fmt.Errorf("step %s: journaling: %w", name, err)
	}
	r.steps[name] = b
	return result, nil
}

// Enqueue registers a new run of the workflow with input.
func Enqueue(ctx context.Context, journal kdb.WorkflowInterface, name domain.WorkflowName, input any) (domain.WorkflowRun, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return domain.WorkflowRun{}, err
	}
	return journal.Enqueue(ctx, name, b)
}
