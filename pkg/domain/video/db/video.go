package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// HostingKey identifies a video by one of its ids.
type HostingKey struct {
	column string
	value  string
}

func (k HostingKey) Column() string { return k.column }
func (k HostingKey) Value() string  { return k.value }
func (k HostingKey) String() string { return k.column + "=" + k.value }

// ByVideoId identifies a video by its own id.
func ByVideoId(id string) HostingKey { return HostingKey{column: "id", value: id} }

// ByUploadId identifies a video by the id of its direct upload on the video host.
func ByUploadId(id string) HostingKey { return HostingKey{column: "mux_upload_id", value: id} }

// ByAssetId identifies a video by the id of its asset on the video host.
func ByAssetId(id string) HostingKey { return HostingKey{column: "mux_asset_id", value: id} }

type VideoInterface interface {
	// New registers a private, untitled video waiting for the upload.
	New(context.Context, domain.NewVideo) (domain.Video, error)

	// Get returns the video regardless of visibility.
	//
	// It returns ErrMissing when not found.
	Get(context.Context, HostingKey) (domain.Video, error)

	// GetDetail returns the video with its owner and aggregations.
	//
	// Args
	//
	// - context.Context
	//
	// - string: video id
	//
	// - *string: viewer id. nil for anonymous viewers.
	//
	// Returns
	//
	// - VideoDetail
	//
	// - error: ErrMissing when not found, or the video is private and the viewer is not the owner.
	GetDetail(context.Context, string, *string) (domain.VideoDetail, error)

	// Find lists public videos.
	Find(context.Context, domain.VideoFindQuery) (domain.Page[domain.VideoSummary, domain.Cursor], error)

	// FindTrending lists public videos by view count.
	FindTrending(context.Context, domain.PageRequest[domain.TrendingCursor]) (domain.Page[domain.VideoSummary, domain.TrendingCursor], error)

	// FindSubscribed lists public videos of creators the viewer subscribes.
	FindSubscribed(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)

	// FindByOwner lists the user's videos, including private ones.
	FindByOwner(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)

	// FindHistory lists videos the viewer has watched, by view time.
	//
	// Private videos of other users are excluded.
	FindHistory(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)

	// FindLiked lists videos the viewer likes, by reaction time.
	//
	// Private videos of other users are excluded.
	FindLiked(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)

	// Update changes the video owned by the user.
	//
	// Args
	//
	// - context.Context
	//
	// - string: video id
	//
	// - string: owner id
	//
	// - VideoUpdate
	//
	// Returns
	//
	// - Video: updated video
	//
	// - error: ErrMissing when the video is not found or not owned by the user,
	// or the new category does not exist.
	Update(context.Context, string, string, domain.VideoUpdate) (domain.Video, error)

	// UpdateHosting changes the state on the video host.
	//
	// It returns ErrMissing when not found.
	UpdateHosting(context.Context, HostingKey, domain.HostingUpdate) (domain.Video, error)

	// Delete removes the video owned by the user, and returns the removed one.
	//
	// It returns ErrMissing when the video is not found or not owned by the user.
	Delete(context.Context, string, string) (domain.Video, error)

	// DeleteBy removes the video regardless of the owner.
	//
	// It returns ErrMissing when not found.
	DeleteBy(context.Context, HostingKey) (domain.Video, error)
}
