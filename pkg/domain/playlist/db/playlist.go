package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// PlaylistInterface manages playlists.
//
// Every operation is scoped to the owner: playlists of other users are treated as missing.
type PlaylistInterface interface {
	New(context.Context, domain.NewPlaylist) (domain.Playlist, error)

	// Get returns the user's playlist.
	//
	// Args
	//
	// - context.Context
	//
	// - string: user id
	//
	// - string: playlist id
	//
	// Returns
	//
	// - Playlist
	//
	// - error: ErrMissing when not found.
	Get(context.Context, string, string) (domain.Playlist, error)

	// Delete removes the user's playlist and returns the removed one.
	Delete(context.Context, string, string) (domain.Playlist, error)

	// Find lists the user's playlists.
	Find(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error)

	// FindForVideo lists the user's playlists, marking those containing the video.
	//
	// Args
	//
	// - context.Context
	//
	// - string: user id
	//
	// - string: video id
	//
	// - PageRequest
	FindForVideo(context.Context, string, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error)

	// AddVideo puts the video into the user's playlist.
	//
	// Args
	//
	// - context.Context
	//
	// - string: user id
	//
	// - string: playlist id
	//
	// - string: video id
	//
	// Returns
	//
	// - PlaylistVideo
	//
	// - error: ErrMissing when the playlist or the video is not found.
	// ErrConflict when the playlist has the video already.
	AddVideo(context.Context, string, string, string) (domain.PlaylistVideo, error)

	// RemoveVideo takes the video out of the user's playlist.
	//
	// It returns ErrMissing when the playlist does not contain the video.
	RemoveVideo(context.Context, string, string, string) (domain.PlaylistVideo, error)

	// Videos lists videos in the user's playlist by the time they are added.
	//
	// Private videos of other users are excluded.
	//
	// It returns ErrMissing when the playlist is not found.
	Videos(context.Context, string, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)
}
