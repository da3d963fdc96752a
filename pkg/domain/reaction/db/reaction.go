package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// ReactionInterface manages reactions on one kind of target (videos or comments).
type ReactionInterface interface {
	// Toggle sets the user's reaction on the target.
	//
	// When the user already has the same reaction, it is removed instead.
	// Otherwise the reaction is created or replaced, so that the user has
	// at most one reaction per target.
	//
	// Args
	//
	// - context.Context
	//
	// - string: user id
	//
	// - string: target id
	//
	// - ReactionType
	//
	// Returns
	//
	// - ReactionResult: the reaction set or removed.
	//
	// - error: ErrMissing when the target is not found.
	Toggle(context.Context, string, string, domain.ReactionType) (domain.ReactionResult, error)
}
