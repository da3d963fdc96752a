package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

type UserInterface interface {
	// Get a user as a channel.
	//
	// Args
	//
	// - context.Context
	//
	// - string: id of the user
	//
	// - *string: id of the viewer. nil for anonymous viewers.
	//
	// Returns
	//
	// - UserProfile
	//
	// - error: ErrMissing when the user is not found.
	Get(context.Context, string, *string) (domain.UserProfile, error)

	// GetByExternalId finds a user by the id in the authentication provider.
	//
	// It returns ErrMissing when not found.
	GetByExternalId(context.Context, string) (domain.User, error)

	// Upsert creates a user, or updates the user having the same external id.
	Upsert(context.Context, domain.UserSpec) (domain.User, error)

	// DeleteByExternalId removes the user and everything the user owns.
	//
	// It returns ErrMissing when not found.
	DeleteByExternalId(context.Context, string) error
}
