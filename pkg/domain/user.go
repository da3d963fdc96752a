package domain

import "time"

type User struct {
	Id string

	// id of the user in the authentication provider.
	ExternalId string

	Name     string
	ImageUrl string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == nil && o == nil
	}
	return u.Id == o.Id &&
		u.ExternalId == o.ExternalId &&
		u.Name == o.Name &&
		u.ImageUrl == o.ImageUrl &&
		u.CreatedAt.Equal(o.CreatedAt) &&
		u.UpdatedAt.Equal(o.UpdatedAt)
}

// UserProfile is a User seen as a channel.
type UserProfile struct {
	User

	SubscriberCount int64
	VideoCount      int64

	// true when the viewer subscribes the user. Always false for anonymous viewers.
	ViewerSubscribed bool
}

// UserSpec is a set of attributes synchronized from the authentication provider.
type UserSpec struct {
	ExternalId string
	Name       string
	ImageUrl   string
}
