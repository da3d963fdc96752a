package domain

import (
	"fmt"
	"time"

	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

type ReactionType string

const (
	Like    ReactionType = "like"
	Dislike ReactionType = "dislike"
)

func (r ReactionType) String() string {
	return string(r)
}

func AsReactionType(s string) (ReactionType, error) {
	switch ReactionType(s) {
	case Like:
		return Like, nil
	case Dislike:
		return Dislike, nil
	default:
		return ReactionType(s), fmt.Errorf(`%w: unknown reaction "%s"`, domerr.ErrInvalidArgument, s)
	}
}

// Reaction of a user on a video or a comment.
type Reaction struct {
	UserId string

	// id of the reacted video or comment.
	TargetId string

	Type ReactionType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReactionResult is the outcome of toggling a reaction.
type ReactionResult struct {
	Reaction

	// true when the reaction had the same type and is removed by this toggle.
	Removed bool
}
