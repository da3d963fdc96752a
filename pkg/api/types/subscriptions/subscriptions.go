package subscriptions

import (
	apiusers "github.com/lucas-ellwanger/newtube/pkg/api/types/users"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

type Subscription struct {
	ViewerId  string          `json:"viewerId"`
	CreatorId string          `json:"creatorId"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func ComposeSubscription(s domain.Subscription) Subscription {
	return Subscription{
		ViewerId:  s.ViewerId,
		CreatorId: s.CreatorId,
		CreatedAt: rfctime.RFC3339(s.CreatedAt),
	}
}

// Creator is a user the viewer subscribes.
type Creator struct {
	apiusers.User
	SubscriberCount int64           `json:"subscriberCount"`
	SubscribedAt    rfctime.RFC3339 `json:"subscribedAt"`
}

func ComposeCreator(c domain.SubscribedCreator) Creator {
	return Creator{
		User:            apiusers.ComposeUser(c.Creator),
		SubscriberCount: c.SubscriberCount,
		SubscribedAt:    rfctime.RFC3339(c.CreatedAt),
	}
}

type NewSubscription struct {
	// the creator to subscribe
	UserId string `json:"userId"`
}
