package reactions

import (
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

// Reaction is the result of toggling a like or a dislike.
type Reaction struct {
	UserId string `json:"userId"`

	// id of the video or the comment
	TargetId string `json:"targetId"`

	Type string `json:"type"`

	// true when the same reaction has been there, and this request took it back.
	Removed bool `json:"removed"`

	UpdatedAt rfctime.RFC3339 `json:"updatedAt"`
}

func Compose(r domain.ReactionResult) Reaction {
	return Reaction{
		UserId:    r.UserId,
		TargetId:  r.TargetId,
		Type:      r.Type.String(),
		Removed:   r.Removed,
		UpdatedAt: rfctime.RFC3339(r.UpdatedAt),
	}
}

// ComposeViewerReaction converts the viewer's reaction to its wire form.
func ComposeViewerReaction(r *domain.ReactionType) *string {
	if r == nil {
		return nil
	}
	s := r.String()
	return &s
}
