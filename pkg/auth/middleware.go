package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	kuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
)

const (
	viewerKey = "newtube.viewer"

	// SessionCookie is the cookie name the authentication provider stores session tokens in.
	SessionCookie = "__session"
)

func token(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if t, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(t)
		}
		return ""
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return ""
}

// Middleware resolves the viewer of requests.
//
// Requests without tokens pass as anonymous.
// Requests with invalid tokens, or tokens of users not synchronized yet, are rejected with 401.
func Middleware(v *Verifier, users kuser.UserInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := token(c)
			if tok == "" {
				return next(c)
			}

			externalId, err := v.Verify(tok)
			if err != nil {
				return apierr.Unauthorized("sign in again.", err)
			}

			user, err := users.GetByExternalId(c.Request().Context(), externalId)
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.Unauthorized("your account is not ready yet. retry later.", err)
			} else if err != nil {
				return apierr.InternalServerError(err)
			}

			c.Set(viewerKey, user)
			return next(c)
		}
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := Viewer(c); !ok {
			return apierr.Unauthorized("sign in to continue.", nil)
		}
		return next(c)
	}
}

// Viewer returns the user sending the request.
func Viewer(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(viewerKey).(domain.User)
	return u, ok
}

// ViewerId returns the id of the viewer, or nil for anonymous viewers.
func ViewerId(c echo.Context) *string {
	u, ok := Viewer(c)
	if !ok {
		return nil
	}
	return &u.Id
}

// SetViewer sets the viewer of the request.
func SetViewer(c echo.Context, u domain.User) {
	c.Set(viewerKey, u)
}
