package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apicomments "github.com/lucas-ellwanger/newtube/pkg/api/types/comments"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kcomment "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db"
)

func FindCommentsHandler(dbComment kcomment.CommentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		query, err := func(c echo.Context) (domain.CommentFindQuery, error) {
			videoId, err := idParam(c, "videoId")
			if err != nil {
				return domain.CommentFindQuery{}, err
			}
			req, err := pageRequest[domain.Cursor](c)
			if err != nil {
				return domain.CommentFindQuery{}, err
			}
			parentId, err := optionalId(c, "parentId")
			if err != nil {
				return domain.CommentFindQuery{}, err
			}
			return domain.CommentFindQuery{
				PageRequest: req,
				VideoId:     videoId,
				ParentId:    parentId,
				ViewerId:    auth.ViewerId(c),
			}, nil
		}(c)
		if err != nil {
			return err
		}

		page, err := dbComment.Find(c.Request().Context(), query)
		if err != nil {
			return apierr.FromDomain(err)
		}
		resp, err := apicomments.ComposePage(page)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func CreateCommentHandler(dbComment kcomment.CommentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}
		req, err := bind[apicomments.NewComment](c)
		if err != nil {
			return err
		}
		if strings.TrimSpace(req.Content) == "" {
			return apierr.BadRequest(`"content" should not be empty`, nil)
		}
		if req.ParentId != nil && *req.ParentId == "" {
			req.ParentId = nil
		}

		comment, err := dbComment.New(c.Request().Context(), domain.NewComment{
			UserId:   user.Id,
			VideoId:  videoId,
			ParentId: req.ParentId,
			Content:  req.Content,
		})
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusCreated, apicomments.ComposeComment(comment))
	}
}

func DeleteCommentHandler(dbComment kcomment.CommentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		commentId, err := idParam(c, "commentId")
		if err != nil {
			return err
		}

		comment, err := dbComment.Delete(c.Request().Context(), commentId, user.Id)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apicomments.ComposeComment(comment))
	}
}
