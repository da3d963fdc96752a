package domain

import (
	"fmt"
	"time"

	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

type Visibility string

const (
	Private Visibility = "private"
	Public  Visibility = "public"
)

func (v Visibility) String() string {
	return string(v)
}

func AsVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case Private:
		return Private, nil
	case Public:
		return Public, nil
	default:
		return Visibility(s), fmt.Errorf(`%w: unknown visibility "%s"`, domerr.ErrInvalidArgument, s)
	}
}

// Status of the asset on the video host.
const (
	HostingWaiting = "waiting"
	HostingReady   = "ready"
	HostingErrored = "errored"
)

// Hosting is the state of the video on the video host.
type Hosting struct {
	Status      *string
	AssetId     *string
	UploadId    *string
	PlaybackId  *string
	TrackId     *string
	TrackStatus *string
}

// Media is a file stored in the object storage.
//
// Key is nil when the Url does not point the object storage (for example, the video host's thumbnail).
type Media struct {
	Url *string
	Key *string
}

type Video struct {
	Id          string
	Title       string
	Description *string

	Hosting   Hosting
	Thumbnail Media
	Preview   Media

	// milliseconds
	Duration int64

	Visibility Visibility
	UserId     string
	CategoryId *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v *Video) IsOwnedBy(userId string) bool {
	return v.UserId == userId
}

// VideoSummary is a Video shown in lists.
type VideoSummary struct {
	Video
	User User

	ViewCount    int64
	LikeCount    int64
	DislikeCount int64
	CommentCount int64

	// when the video entered the listing: updated time for plain listings,
	// view time for history, reaction time for liked videos and
	// addition time for playlists.
	ListedAt time.Time
}

// VideoDetail is a Video shown in its own page.
type VideoDetail struct {
	Video
	User UserProfile

	ViewCount    int64
	LikeCount    int64
	DislikeCount int64

	// nil when the viewer has not reacted, or the viewer is anonymous.
	ViewerReaction *ReactionType
}

// NewVideo is a spec of a video just uploaded.
type NewVideo struct {
	UserId string

	// empty means "Untitled".
	Title string

	UploadId string
}

// VideoUpdate describes changes on a video.
//
// nil fields are left unchanged.
type VideoUpdate struct {
	Title       *string
	Description *string

	// to unset the category, set ClearCategory.
	CategoryId    *string
	ClearCategory bool

	Visibility *Visibility

	Thumbnail *Media
	Preview   *Media
}

func (vu VideoUpdate) IsEmpty() bool {
	return vu.Title == nil &&
		vu.Description == nil &&
		vu.CategoryId == nil && !vu.ClearCategory &&
		vu.Visibility == nil &&
		vu.Thumbnail == nil &&
		vu.Preview == nil
}

// HostingUpdate describes changes reported by the video host.
//
// nil fields are left unchanged.
type HostingUpdate struct {
	Status      *string
	AssetId     *string
	PlaybackId  *string
	TrackId     *string
	TrackStatus *string

	// milliseconds
	Duration *int64

	Thumbnail *Media
	Preview   *Media
}

// VideoFindQuery selects public videos.
type VideoFindQuery struct {
	PageRequest[Cursor]

	CategoryId *string
	UserId     *string

	// case-insensitive substring of the title.
	Search *string
}
