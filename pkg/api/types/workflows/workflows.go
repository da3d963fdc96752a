package workflows

import (
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

type Run struct {
	RunId     string          `json:"runId"`
	Workflow  string          `json:"workflow"`
	Status    string          `json:"status"`
	Attempts  int             `json:"attempts"`
	LastError *string         `json:"lastError,omitempty"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func Compose(r domain.WorkflowRun) Run {
	return Run{
		RunId:     r.Id,
		Workflow:  r.Name.String(),
		Status:    r.Status.String(),
		Attempts:  r.Attempts,
		LastError: r.LastError,
		CreatedAt: rfctime.RFC3339(r.CreatedAt),
	}
}

// GenerateRequest is the body of a request to generate metadata of a video.
type GenerateRequest struct {
	// what the image should be. Required for thumbnails, ignored otherwise.
	Prompt string `json:"prompt"`
}
