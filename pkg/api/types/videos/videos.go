package videos

import (
	apireactions "github.com/lucas-ellwanger/newtube/pkg/api/types/reactions"
	apiusers "github.com/lucas-ellwanger/newtube/pkg/api/types/users"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

// Hosting is the state of the video on the video host.
type Hosting struct {
	Status      *string `json:"status,omitempty"`
	AssetId     *string `json:"assetId,omitempty"`
	UploadId    *string `json:"uploadId,omitempty"`
	PlaybackId  *string `json:"playbackId,omitempty"`
	TrackId     *string `json:"trackId,omitempty"`
	TrackStatus *string `json:"trackStatus,omitempty"`
}

type Video struct {
	VideoId      string          `json:"videoId"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	Hosting      Hosting         `json:"hosting"`
	ThumbnailUrl *string         `json:"thumbnailUrl,omitempty"`
	PreviewUrl   *string         `json:"previewUrl,omitempty"`
	Duration     int64           `json:"duration"`
	Visibility   string          `json:"visibility"`
	UserId       string          `json:"userId"`
	CategoryId   *string         `json:"categoryId,omitempty"`
	CreatedAt    rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt    rfctime.RFC3339 `json:"updatedAt"`
}

func ComposeVideo(v domain.Video) Video {
	return Video{
		VideoId:     v.Id,
		Title:       v.Title,
		Description: v.Description,
		Hosting: Hosting{
			Status:      v.Hosting.Status,
			AssetId:     v.Hosting.AssetId,
			UploadId:    v.Hosting.UploadId,
			PlaybackId:  v.Hosting.PlaybackId,
			TrackId:     v.Hosting.TrackId,
			TrackStatus: v.Hosting.TrackStatus,
		},
		ThumbnailUrl: v.Thumbnail.Url,
		PreviewUrl:   v.Preview.Url,
		Duration:     v.Duration,
		Visibility:   v.Visibility.String(),
		UserId:       v.UserId,
		CategoryId:   v.CategoryId,
		CreatedAt:    rfctime.RFC3339(v.CreatedAt),
		UpdatedAt:    rfctime.RFC3339(v.UpdatedAt),
	}
}

// Summary is a video in lists.
type Summary struct {
	Video
	User         apiusers.User `json:"user"`
	ViewCount    int64         `json:"viewCount"`
	LikeCount    int64         `json:"likeCount"`
	DislikeCount int64         `json:"dislikeCount"`
	CommentCount int64         `json:"commentCount"`
}

func ComposeSummary(s domain.VideoSummary) Summary {
	return Summary{
		Video:        ComposeVideo(s.Video),
		User:         apiusers.ComposeUser(s.User),
		ViewCount:    s.ViewCount,
		LikeCount:    s.LikeCount,
		DislikeCount: s.DislikeCount,
		CommentCount: s.CommentCount,
	}
}

// Detail is a video in its own page.
type Detail struct {
	Video
	User           apiusers.Profile `json:"user"`
	ViewCount      int64            `json:"viewCount"`
	LikeCount      int64            `json:"likeCount"`
	DislikeCount   int64            `json:"dislikeCount"`
	ViewerReaction *string          `json:"viewerReaction"`
}

func ComposeDetail(d domain.VideoDetail) Detail {
	return Detail{
		Video:          ComposeVideo(d.Video),
		User:           apiusers.ComposeProfile(d.User),
		ViewCount:      d.ViewCount,
		LikeCount:      d.LikeCount,
		DislikeCount:   d.DislikeCount,
		ViewerReaction: apireactions.ComposeViewerReaction(d.ViewerReaction),
	}
}

// Created is the response of creating a video.
type Created struct {
	Video Video `json:"video"`

	// URL to PUT the video file.
	UploadUrl string `json:"uploadUrl"`
}

// Update is the request to change a video.
//
// Omitted fields are left unchanged. An empty CategoryId unsets the category.
type Update struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryId  *string `json:"categoryId,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

type View struct {
	UserId    string          `json:"userId"`
	VideoId   string          `json:"videoId"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func ComposeView(v domain.VideoView) View {
	return View{UserId: v.UserId, VideoId: v.VideoId, CreatedAt: rfctime.RFC3339(v.CreatedAt)}
}
