package db

import (
	"context"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// WorkflowInterface is the journal of workflow runs and their steps.
type WorkflowInterface interface {
	// Enqueue registers a new run waiting for execution.
	Enqueue(ctx context.Context, name domain.WorkflowName, payload []byte) (domain.WorkflowRun, error)

	// Get returns the run.
	//
	// It returns ErrMissing when not found.
	Get(ctx context.Context, runId string) (domain.WorkflowRun, error)

	// Claim picks a due run and marks it running.
	//
	// A run is due when it is waiting and its next attempt time has come,
	// or it has been running longer than lease (the worker running it is considered lost).
	//
	// It returns ErrMissing when there are no due runs.
	Claim(ctx context.Context, lease time.Duration) (domain.WorkflowRun, error)

	// Steps returns results of completed steps of the run, keyed by step name.
	Steps(ctx context.Context, runId string) (map[string][]byte, error)

	// SaveStep records the result of a completed step.
	//
	// Recording the same step twice is not an error; the first result is kept.
	SaveStep(ctx context.Context, runId string, step string, result []byte) error

	// Finish marks the run done.
	//
	// Finish, Retry and Fail update the run only while it is running the attempt
	// (WorkflowRun.Attempts at Claim). Otherwise, another worker has reclaimed the run;
	// they return ErrLeaseExpired and the run is left as it is.
	// They return ErrMissing when the run does not exist.
	Finish(ctx context.Context, runId string, attempt int) error

	// Retry puts the run back to waiting, to be claimed at the given time.
	Retry(ctx context.Context, runId string, attempt int, cause string, at time.Time) error

	// Fail gives up the run.
	Fail(ctx context.Context, runId string, attempt int, cause string) error
}
