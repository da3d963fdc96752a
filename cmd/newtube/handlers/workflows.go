package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apiworkflows "github.com/lucas-ellwanger/newtube/pkg/api/types/workflows"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	kworkflow "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
	"github.com/lucas-ellwanger/newtube/pkg/workflow"
)

// GenerateHandler enqueues a workflow generating a title, a description or a thumbnail of the video.
//
// The workflow runs in the worker; the response is the enqueued run.
func GenerateHandler(dbVideo kvideo.VideoInterface, journal kworkflow.WorkflowInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		name, err := domain.AsWorkflowName(c.Param("workflow"))
		if err != nil {
			return apierr.NotFound()
		}
		req, err := bind[apiworkflows.GenerateRequest](c)
		if err != nil {
			return err
		}
		prompt := strings.TrimSpace(req.Prompt)
		if name == domain.GenerateThumbnail && prompt == "" {
			return apierr.BadRequest(`"prompt" is required to generate thumbnails`, nil)
		}
		if name != domain.GenerateThumbnail {
			prompt = ""
		}

		video, err := ownedVideo(c, dbVideo, user.Id)
		if err != nil {
			return err
		}

		run, err := workflow.Enqueue(
			c.Request().Context(), journal, name,
			domain.VideoWorkflowInput{UserId: user.Id, VideoId: video.Id, Prompt: prompt},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusAccepted, apiworkflows.Compose(run))
	}
}
