package playlists

import (
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

type Playlist struct {
	PlaylistId  string          `json:"playlistId"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	UserId      string          `json:"userId"`
	CreatedAt   rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt   rfctime.RFC3339 `json:"updatedAt"`
}

func ComposePlaylist(p domain.Playlist) Playlist {
	return Playlist{
		PlaylistId:  p.Id,
		Name:        p.Name,
		Description: p.Description,
		UserId:      p.UserId,
		CreatedAt:   rfctime.RFC3339(p.CreatedAt),
		UpdatedAt:   rfctime.RFC3339(p.UpdatedAt),
	}
}

type Summary struct {
	Playlist
	VideoCount   int64   `json:"videoCount"`
	ThumbnailUrl *string `json:"thumbnailUrl,omitempty"`

	// present only in listings for a video.
	ContainsVideo *bool `json:"containsVideo,omitempty"`
}

func ComposeSummary(s domain.PlaylistSummary) Summary {
	return Summary{
		Playlist:     ComposePlaylist(s.Playlist),
		VideoCount:   s.VideoCount,
		ThumbnailUrl: s.ThumbnailUrl,
	}
}

// ComposeSummaryForVideo is ComposeSummary with ContainsVideo.
func ComposeSummaryForVideo(s domain.PlaylistSummary) Summary {
	summary := ComposeSummary(s)
	contains := s.ContainsVideo
	summary.ContainsVideo = &contains
	return summary
}

type NewPlaylist struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Entry is a video in a playlist.
type Entry struct {
	PlaylistId string          `json:"playlistId"`
	VideoId    string          `json:"videoId"`
	CreatedAt  rfctime.RFC3339 `json:"createdAt"`
}

func ComposeEntry(e domain.PlaylistVideo) Entry {
	return Entry{PlaylistId: e.PlaylistId, VideoId: e.VideoId, CreatedAt: rfctime.RFC3339(e.CreatedAt)}
}
