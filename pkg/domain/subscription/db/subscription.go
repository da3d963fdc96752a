package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

type SubscriptionInterface interface {
	// New subscribes the creator.
	//
	// Args
	//
	// - context.Context
	//
	// - string: viewer id
	//
	// - string: creator id
	//
	// Returns
	//
	// - Subscription
	//
	// - error:
	// ErrSelfSubscription when viewer and creator are the same.
	// ErrConflict when already subscribed.
	// ErrMissing when the creator is not found.
	New(context.Context, string, string) (domain.Subscription, error)

	// Delete unsubscribes the creator.
	//
	// It returns ErrMissing when not subscribed.
	Delete(context.Context, string, string) (domain.Subscription, error)

	// Find lists creators the viewer subscribes, by subscription time.
	//
	// Cursors point subscriptions by the creator id and the subscription's update time.
	Find(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.SubscribedCreator, domain.Cursor], error)
}
