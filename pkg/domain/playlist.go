package domain

import "time"

type Playlist struct {
	Id          string
	Name        string
	Description *string
	UserId      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlaylistSummary is a Playlist shown in lists.
type PlaylistSummary struct {
	Playlist

	VideoCount int64

	// thumbnail of the video added most recently. nil for empty playlists.
	ThumbnailUrl *string

	// whether the playlist contains the queried video.
	// Meaningful only for PlaylistInterface.FindForVideo.
	ContainsVideo bool
}

type NewPlaylist struct {
	UserId      string
	Name        string
	Description *string
}

// PlaylistVideo is a video in a playlist.
type PlaylistVideo struct {
	PlaylistId string
	VideoId    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
