package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apiplaylists "github.com/lucas-ellwanger/newtube/pkg/api/types/playlists"
	apivideos "github.com/lucas-ellwanger/newtube/pkg/api/types/videos"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	kplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
)

func FindPlaylistsHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbPlaylist.Find(c.Request().Context(), user.Id, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apiplaylists.ComposeSummary)
	}
}

// FindPlaylistsForVideoHandler lists the viewer's playlists, telling whether each contains the video.
func FindPlaylistsForVideoHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbPlaylist.FindForVideo(c.Request().Context(), user.Id, videoId, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apiplaylists.ComposeSummaryForVideo)
	}
}

func CreatePlaylistHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := bind[apiplaylists.NewPlaylist](c)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return apierr.BadRequest(`"name" should not be empty`, nil)
		}

		pl, err := dbPlaylist.New(c.Request().Context(), domain.NewPlaylist{
			UserId: user.Id, Name: name, Description: req.Description,
		})
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusCreated, apiplaylists.ComposePlaylist(pl))
	}
}

func GetPlaylistHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		playlistId, err := idParam(c, "playlistId")
		if err != nil {
			return err
		}

		pl, err := dbPlaylist.Get(c.Request().Context(), user.Id, playlistId)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apiplaylists.ComposePlaylist(pl))
	}
}

func DeletePlaylistHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		playlistId, err := idParam(c, "playlistId")
		if err != nil {
			return err
		}

		pl, err := dbPlaylist.Delete(c.Request().Context(), user.Id, playlistId)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apiplaylists.ComposePlaylist(pl))
	}
}

func FindPlaylistVideosHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		playlistId, err := idParam(c, "playlistId")
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbPlaylist.Videos(c.Request().Context(), user.Id, playlistId, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

func AddPlaylistVideoHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		playlistId, err := idParam(c, "playlistId")
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}

		entry, err := dbPlaylist.AddVideo(c.Request().Context(), user.Id, playlistId, videoId)
		if errors.Is(err, domerr.ErrConflict) {
			return apierr.Conflict("the video is in the playlist already", apierr.WithError(err))
		} else if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apiplaylists.ComposeEntry(entry))
	}
}

func RemovePlaylistVideoHandler(dbPlaylist kplaylist.PlaylistInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		playlistId, err := idParam(c, "playlistId")
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}

		entry, err := dbPlaylist.RemoveVideo(c.Request().Context(), user.Id, playlistId, videoId)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apiplaylists.ComposeEntry(entry))
	}
}

// FindHistoryHandler lists videos the viewer watched, latest first.
func FindHistoryHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbVideo.FindHistory(c.Request().Context(), user.Id, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

// FindLikedHandler lists videos the viewer liked, latest first.
func FindLikedHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbVideo.FindLiked(c.Request().Context(), user.Id, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}
