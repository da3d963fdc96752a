package domain

import (
	"fmt"
	"time"

	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

type WorkflowName string

const (
	GenerateTitle       WorkflowName = "title"
	GenerateDescription WorkflowName = "description"
	GenerateThumbnail   WorkflowName = "thumbnail"
)

func (w WorkflowName) String() string {
	return string(w)
}

func AsWorkflowName(s string) (WorkflowName, error) {
	switch WorkflowName(s) {
	case GenerateTitle:
		return GenerateTitle, nil
	case GenerateDescription:
		return GenerateDescription, nil
	case GenerateThumbnail:
		return GenerateThumbnail, nil
	default:
		return WorkflowName(s), fmt.Errorf(`%w: unknown workflow "%s"`, domerr.ErrInvalidArgument, s)
	}
}

type WorkflowStatus string

const (
	// The run is waiting for (re)execution.
	WorkflowWaiting WorkflowStatus = "waiting"

	// A worker has claimed the run.
	WorkflowRunning WorkflowStatus = "running"

	// All steps are done.
	WorkflowDone WorkflowStatus = "done"

	// The run is given up.
	WorkflowFailed WorkflowStatus = "failed"
)

func (w WorkflowStatus) String() string {
	return string(w)
}

func AsWorkflowStatus(s string) (WorkflowStatus, error) {
	switch WorkflowStatus(s) {
	case WorkflowWaiting:
		return WorkflowWaiting, nil
	case WorkflowRunning:
		return WorkflowRunning, nil
	case WorkflowDone:
		return WorkflowDone, nil
	case WorkflowFailed:
		return WorkflowFailed, nil
	default:
		return WorkflowStatus(s), fmt.Errorf(`%w: unknown workflow status "%s"`, domerr.ErrInvalidArgument, s)
	}
}

type WorkflowRun struct {
	Id   string
	Name WorkflowName

	// JSON encoded input of the workflow.
	Payload []byte

	Status WorkflowStatus

	// how many times the run has been claimed.
	Attempts int

	LastError     *string
	NextAttemptAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VideoWorkflowInput is the payload of workflows working on a video.
type VideoWorkflowInput struct {
	UserId  string `json:"userId"`
	VideoId string `json:"videoId"`

	// image prompt. Used by the thumbnail workflow only.
	Prompt string `json:"prompt,omitempty"`
}
