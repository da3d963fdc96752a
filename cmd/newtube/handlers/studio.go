package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apivideos "github.com/lucas-ellwanger/newtube/pkg/api/types/videos"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
)

// SearchVideosHandler finds public videos by a part of their title.
func SearchVideosHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		query, err := func(c echo.Context) (domain.VideoFindQuery, error) {
			req, err := pageRequest[domain.Cursor](c)
			if err != nil {
				return domain.VideoFindQuery{}, err
			}
			categoryId, err := optionalId(c, "categoryId")
			if err != nil {
				return domain.VideoFindQuery{}, err
			}
			q := domain.VideoFindQuery{PageRequest: req, CategoryId: categoryId}
			if s := strings.TrimSpace(c.QueryParam("query")); s != "" {
				q.Search = &s
			}
			return q, nil
		}(c)
		if err != nil {
			return err
		}

		page, err := dbVideo.Find(c.Request().Context(), query)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

func FindStudioVideosHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbVideo.FindByOwner(c.Request().Context(), user.Id, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

func GetStudioVideoHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		video, err := ownedVideo(c, dbVideo, user.Id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, apivideos.ComposeVideo(video))
	}
}
