package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	"github.com/lucas-ellwanger/newtube/pkg/api/types/pages"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// pageRequest reads "cursor" and "limit" query parameters.
func pageRequest[C any](c echo.Context) (domain.PageRequest[C], error) {
	req := domain.PageRequest[C]{Limit: domain.DefaultPageLimit}

	if l := c.QueryParam("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 || domain.MaxPageLimit < limit {
			return domain.PageRequest[C]{}, apierr.BadRequest(
				`"limit" should be an integer in [1, 100]`, err,
			)
		}
		req.Limit = limit
	}

	cursor, err := pages.DecodeCursor[C](c.QueryParam("cursor"))
	if err != nil {
		return domain.PageRequest[C]{}, apierr.BadRequest(
			`"cursor" should be a value of "nextCursor" in a previous response`, err,
		)
	}
	req.Cursor = cursor
	return req, nil
}

// idParam reads a path parameter holding an id.
//
// Malformed ids cannot point anything, so they are reported as 404.
func idParam(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apierr.NotFound()
	}
	return id, nil
}

// optionalId reads a query parameter holding an id.
func optionalId(c echo.Context, name string) (*string, error) {
	id := c.QueryParam(name)
	if id == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apierr.BadRequest(`"`+name+`" should be an id`, err)
	}
	return &id, nil
}

// viewer returns the signed-in user.
//
// Handlers using this should be behind auth.RequireUser.
func viewer(c echo.Context) (domain.User, error) {
	u, ok := auth.Viewer(c)
	if !ok {
		return domain.User{}, apierr.Unauthorized("sign in to continue.", nil)
	}
	return u, nil
}

func bind[T any](c echo.Context) (T, error) {
	v := new(T)
	if err := c.Bind(v); err != nil {
		var herr *echo.HTTPError
		if errors.As(err, &herr) && herr.Code == http.StatusUnsupportedMediaType {
			return *v, apierr.NewErrorMessage(
				http.StatusUnsupportedMediaType, "unsupported media type",
				apierr.WithAdvice("send JSON with Content-Type: application/json"),
			)
		}
		return *v, apierr.BadRequest("request body is malformed", err)
	}
	return *v, nil
}

func respondPage[T any, C any, R any](c echo.Context, page domain.Page[T, C], compose func(T) R) error {
	resp, err := pages.Compose(page, compose)
	if err != nil {
		return apierr.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
