package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apireactions "github.com/lucas-ellwanger/newtube/pkg/api/types/reactions"
	apivideos "github.com/lucas-ellwanger/newtube/pkg/api/types/videos"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kreaction "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db"
	kview "github.com/lucas-ellwanger/newtube/pkg/domain/view/db"
)

// RecordViewHandler records that the viewer watched the video.
//
// Watching again does not count; the first view is returned.
func RecordViewHandler(dbView kview.ViewInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}

		view, err := dbView.Record(c.Request().Context(), user.Id, videoId)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apivideos.ComposeView(view))
	}
}

// ToggleReactionHandler likes or dislikes a target.
//
// Sending the same reaction twice takes it back.
//
// Args
//
// - dbReaction: reactions on videos or on comments
//
// - param: name of the path parameter holding the target id
func ToggleReactionHandler(dbReaction kreaction.ReactionInterface, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		targetId, err := idParam(c, param)
		if err != nil {
			return err
		}
		typ, err := domain.AsReactionType(c.Param("type"))
		if err != nil {
			return apierr.NotFound()
		}

		result, err := dbReaction.Toggle(c.Request().Context(), user.Id, targetId, typ)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apireactions.Compose(result))
	}
}
