package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/lucas-ellwanger/newtube/cmd/newtube/handlers"
	httptestutil "github.com/lucas-ellwanger/newtube/internal/testutils/http"
	apicategories "github.com/lucas-ellwanger/newtube/pkg/api/types/categories"
	apiusers "github.com/lucas-ellwanger/newtube/pkg/api/types/users"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	mockcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db/mock"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	mockuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db/mock"
	"github.com/lucas-ellwanger/newtube/pkg/utils/pointer"
)

func TestListCategoriesHandler(t *testing.T) {
	t.Run("it lists categories", func(t *testing.T) {
		dbCategory := mockcategory.New()
		dbCategory.Impl.List = func(context.Context) ([]domain.Category, error) {
			return []domain.Category{
				{Id: categoryId, Name: "Music", Description: pointer.Ref("songs and covers")},
				{Id: videoId, Name: "Sports"},
			}, nil
		}

		e := echo.New()
		c, rec := httptestutil.Get(e, "/api/categories")

		err := handlers.ListCategoriesHandler(dbCategory)(c)
		if got := statusOf(t, err, rec); got != http.StatusOK {
			t.Fatalf("unexpected status: %d", got)
		}
		want := []apicategories.Category{
			{CategoryId: categoryId, Name: "Music", Description: pointer.Ref("songs and covers")},
			{CategoryId: videoId, Name: "Sports"},
		}
		if diff := cmp.Diff(want, decode[[]apicategories.Category](t, rec)); diff != "" {
			t.Errorf("categories (-want +got):\n%s", diff)
		}
	})

	t.Run("no categories is an empty list", func(t *testing.T) {
		dbCategory := mockcategory.New()
		dbCategory.Impl.List = func(context.Context) ([]domain.Category, error) {
			return nil, nil
		}

		e := echo.New()
		c, rec := httptestutil.Get(e, "/api/categories")

		err := handlers.ListCategoriesHandler(dbCategory)(c)
		if got := statusOf(t, err, rec); got != http.StatusOK {
			t.Fatalf("unexpected status: %d", got)
		}
		if body := rec.Body.String(); body != "[]\n" {
			t.Errorf("unexpected body: %q", body)
		}
	})

	t.Run("repository error is 500", func(t *testing.T) {
		dbCategory := mockcategory.New()
		dbCategory.Impl.List = func(context.Context) ([]domain.Category, error) {
			return nil, errors.New("fake error")
		}

		e := echo.New()
		c, rec := httptestutil.Get(e, "/api/categories")

		err := handlers.ListCategoriesHandler(dbCategory)(c)
		if got := statusOf(t, err, rec); got != http.StatusInternalServerError {
			t.Fatalf("unexpected status: %d", got)
		}
	})
}

func TestGetUserHandler(t *testing.T) {
	type when struct {
		userId string
		viewer *domain.User
		err    error
	}
	type then struct {
		status   int
		viewerId *string
	}

	for name, testcase := range map[string]struct {
		when
		then
	}{
		"anonymous viewer": {
			when{userId: alice.Id},
			then{status: http.StatusOK},
		},
		"signed-in viewer": {
			when{userId: alice.Id, viewer: &bob},
			then{status: http.StatusOK, viewerId: &bob.Id},
		},
		"unknown user is 404": {
			when{userId: alice.Id, err: domerr.ErrMissing},
			then{status: http.StatusNotFound},
		},
		"malformed id is 404": {
			when{userId: "alice"},
			then{status: http.StatusNotFound},
		},
	} {
		t.Run(name, func(t *testing.T) {
			dbUser := mockuser.New()
			dbUser.Impl.Get = func(context.Context, string, *string) (domain.UserProfile, error) {
				if testcase.when.err != nil {
					return domain.UserProfile{}, testcase.when.err
				}
				return domain.UserProfile{
					User: alice, SubscriberCount: 3, VideoCount: 5, ViewerSubscribed: testcase.when.viewer != nil,
				}, nil
			}

			e := echo.New()
			c, rec := httptestutil.Get(e, "/api/users/"+testcase.when.userId)
			httptestutil.Params(c, []string{"userId"}, testcase.when.userId)
			if testcase.when.viewer != nil {
				signedIn(c, *testcase.when.viewer)
			}

			err := handlers.GetUserHandler(dbUser)(c)
			if got := statusOf(t, err, rec); got != testcase.then.status {
				t.Fatalf("unexpected status: %d", got)
			}
			if testcase.then.status != http.StatusOK {
				return
			}

			call := dbUser.Calls.Get[0]
			if call.UserId != alice.Id {
				t.Errorf("unexpected user: %s", call.UserId)
			}
			if diff := cmp.Diff(testcase.then.viewerId, call.ViewerId); diff != "" {
				t.Errorf("viewer (-want +got):\n%s", diff)
			}

			want := apiusers.Profile{
				User:             apiusers.ComposeUser(alice),
				SubscriberCount:  3,
				VideoCount:       5,
				ViewerSubscribed: testcase.when.viewer != nil,
			}
			got := decode[apiusers.Profile](t, rec)
			if !want.Equal(&got) {
				t.Errorf("unexpected profile:\n- want: %+v\n- got : %+v", want, got)
			}
		})
	}
}
