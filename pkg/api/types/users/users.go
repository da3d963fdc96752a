package users

import (
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

type User struct {
	UserId    string          `json:"userId"`
	Name      string          `json:"name"`
	ImageUrl  string          `json:"imageUrl"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func ComposeUser(u domain.User) User {
	return User{
		UserId:    u.Id,
		Name:      u.Name,
		ImageUrl:  u.ImageUrl,
		CreatedAt: rfctime.RFC3339(u.CreatedAt),
	}
}

func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == nil && o == nil
	}
	return u.UserId == o.UserId &&
		u.Name == o.Name &&
		u.ImageUrl == o.ImageUrl &&
		u.CreatedAt.Equal(&o.CreatedAt)
}

// Profile is a user seen as a channel.
type Profile struct {
	User
	SubscriberCount  int64 `json:"subscriberCount"`
	VideoCount       int64 `json:"videoCount"`
	ViewerSubscribed bool  `json:"viewerSubscribed"`
}

func ComposeProfile(p domain.UserProfile) Profile {
	return Profile{
		User:             ComposeUser(p.User),
		SubscriberCount:  p.SubscriberCount,
		VideoCount:       p.VideoCount,
		ViewerSubscribed: p.ViewerSubscribed,
	}
}

func (p *Profile) Equal(o *Profile) bool {
	if p == nil || o == nil {
		return p == nil && o == nil
	}
	return p.User.Equal(&o.User) &&
		p.SubscriberCount == o.SubscriberCount &&
		p.VideoCount == o.VideoCount &&
		p.ViewerSubscribed == o.ViewerSubscribed
}
