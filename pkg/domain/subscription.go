package domain

import "time"

type Subscription struct {
	ViewerId  string
	CreatorId string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscribedCreator is a creator listed in the viewer's subscriptions.
type SubscribedCreator struct {
	Subscription
	Creator User

	SubscriberCount int64
}
