package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	httptestutil "github.com/lucas-ellwanger/newtube/internal/testutils/http"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	mockuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db/mock"
)

func TestMiddleware(t *testing.T) {
	alice := domain.User{Id: "9f0c8a1e-6c55-4a4b-8a0e-2b6f9f1d2c3a", ExternalId: "user_1", Name: "alice"}

	testee := auth.HS256(secret, auth.WithTimeFunc(func() time.Time { return now }))
	token := func(t *testing.T, sub string) string {
		return sign(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		})
	}

	type when struct {
		request []httptestutil.RequestOption
		user    func(context.Context, string) (domain.User, error)
	}
	type then struct {
		status int
		viewer *domain.User
	}

	for name, testcase := range map[string]struct {
		when
		then
	}{
		"anonymous request passes without viewer": {
			when{},
			then{status: http.StatusOK},
		},
		"bearer token resolves the viewer": {
			when{
				request: []httptestutil.RequestOption{
					httptestutil.WithHeader("Authorization", "Bearer "+token(t, "user_1")),
				},
				user: func(context.Context, string) (domain.User, error) { return alice, nil },
			},
			then{status: http.StatusOK, viewer: &alice},
		},
		"session cookie resolves the viewer": {
			when{
				request: []httptestutil.RequestOption{
					httptestutil.WithCookie(&http.Cookie{Name: auth.SessionCookie, Value: token(t, "user_1")}),
				},
				user: func(context.Context, string) (domain.User, error) { return alice, nil },
			},
			then{status: http.StatusOK, viewer: &alice},
		},
		"invalid token is unauthorized": {
			when{
				request: []httptestutil.RequestOption{
					httptestutil.WithHeader("Authorization", "Bearer broken"),
				},
			},
			then{status: http.StatusUnauthorized},
		},
		"token of a user not synchronized yet is unauthorized": {
			when{
				request: []httptestutil.RequestOption{
					httptestutil.WithHeader("Authorization", "Bearer "+token(t, "user_2")),
				},
				user: func(context.Context, string) (domain.User, error) {
					return domain.User{}, domerr.ErrMissing
				},
			},
			then{status: http.StatusUnauthorized},
		},
		"database error is internal server error": {
			when{
				request: []httptestutil.RequestOption{
					httptestutil.WithHeader("Authorization", "Bearer "+token(t, "user_1")),
				},
				user: func(context.Context, string) (domain.User, error) {
					return domain.User{}, errors.New("fake error")
				},
			},
			then{status: http.StatusInternalServerError},
		},
	} {
		t.Run(name, func(t *testing.T) {
			users := mockuser.New()
			users.Impl.GetByExternalId = testcase.when.user

			e := echo.New()
			c, _ := httptestutil.Get(e, "/api/videos", testcase.when.request...)

			var viewer *domain.User
			err := auth.Middleware(testee, users)(func(c echo.Context) error {
				if u, ok := auth.Viewer(c); ok {
					viewer = &u
				}
				return nil
			})(c)

			status := http.StatusOK
			if err != nil {
				var herr *echo.HTTPError
				if !errors.As(err, &herr) {
					t.Fatalf("unexpected error: %v", err)
				}
				status = herr.Code
			}
			if status != testcase.then.status {
				t.Errorf("status: got %d, want %d", status, testcase.then.status)
			}
			if !viewer.Equal(testcase.then.viewer) {
				t.Errorf("viewer: got %+v, want %+v", viewer, testcase.then.viewer)
			}
			if testcase.when.user != nil {
				if users.Calls.GetByExternalId.Times() != 1 || users.Calls.GetByExternalId[0] == "" {
					t.Errorf("unexpected lookup: %v", users.Calls.GetByExternalId)
				}
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	e := echo.New()

	t.Run("it rejects anonymous requests", func(t *testing.T) {
		c, _ := httptestutil.Get(e, "/api/playlists")
		err := auth.RequireUser(func(echo.Context) error {
			t.Error("handler is called")
			return nil
		})(c)
		var herr *echo.HTTPError
		if !errors.As(err, &herr) || herr.Code != http.StatusUnauthorized {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it passes signed-in requests", func(t *testing.T) {
		c, _ := httptestutil.Get(e, "/api/playlists")
		auth.SetViewer(c, domain.User{Id: "u"})
		called := false
		if err := auth.RequireUser(func(echo.Context) error {
			called = true
			return nil
		})(c); err != nil {
			t.Fatal(err)
		}
		if !called {
			t.Error("handler is not called")
		}
		if id := auth.ViewerId(c); id == nil || *id != "u" {
			t.Errorf("unexpected viewer id: %v", id)
		}
	})
}
