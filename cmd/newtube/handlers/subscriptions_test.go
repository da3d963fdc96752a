package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/lucas-ellwanger/newtube/cmd/newtube/handlers"
	httptestutil "github.com/lucas-ellwanger/newtube/internal/testutils/http"
	"github.com/lucas-ellwanger/newtube/pkg/api/types/pages"
	apisubscriptions "github.com/lucas-ellwanger/newtube/pkg/api/types/subscriptions"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	mocksubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db/mock"
)

func TestCreateSubscriptionHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		body   string
		err    error
		status int
	}{
		"it subscribes": {
			body: `{"userId": "` + alice.Id + `"}`, status: http.StatusCreated,
		},
		"subscribing twice is a conflict": {
			body: `{"userId": "` + alice.Id + `"}`, err: domerr.ErrConflict, status: http.StatusConflict,
		},
		"subscribing oneself is rejected": {
			body: `{"userId": "` + bob.Id + `"}`, err: domerr.ErrSelfSubscription, status: http.StatusBadRequest,
		},
		"unknown creator is 404": {
			body: `{"userId": "` + alice.Id + `"}`, err: domerr.ErrMissing, status: http.StatusNotFound,
		},
		"malformed creator id is rejected": {
			body: `{"userId": "alice"}`, status: http.StatusBadRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			dbSubscription := mocksubscription.New()
			dbSubscription.Impl.New = func(_ context.Context, viewer string, creator string) (domain.Subscription, error) {
				if testcase.err != nil {
					return domain.Subscription{}, testcase.err
				}
				return domain.Subscription{ViewerId: viewer, CreatorId: creator, CreatedAt: now, UpdatedAt: now}, nil
			}

			e := echo.New()
			c, rec := httptestutil.Post(
				e, "/api/subscriptions", strings.NewReader(testcase.body),
				httptestutil.ContentType(echo.MIMEApplicationJSON),
			)
			signedIn(c, bob)

			err := handlers.CreateSubscriptionHandler(dbSubscription)(c)
			if got := statusOf(t, err, rec); got != testcase.status {
				t.Fatalf("unexpected status: %d", got)
			}
			if testcase.status != http.StatusCreated {
				return
			}
			body := decode[apisubscriptions.Subscription](t, rec)
			if body.ViewerId != bob.Id || body.CreatorId != alice.Id {
				t.Errorf("unexpected body: %+v", body)
			}
		})
	}
}

func TestDeleteSubscriptionHandler(t *testing.T) {
	dbSubscription := mocksubscription.New()
	dbSubscription.Impl.Delete = func(context.Context, string, string) (domain.Subscription, error) {
		return domain.Subscription{}, domerr.ErrMissing
	}

	e := echo.New()
	c, rec := httptestutil.Delete(e, "/api/subscriptions/"+alice.Id)
	httptestutil.Params(c, []string{"userId"}, alice.Id)
	signedIn(c, bob)

	err := handlers.DeleteSubscriptionHandler(dbSubscription)(c)
	if got := statusOf(t, err, rec); got != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", got)
	}
	if call := dbSubscription.Calls.Delete[0]; call.ViewerId != bob.Id || call.CreatorId != alice.Id {
		t.Errorf("unexpected call: %+v", call)
	}
}

func TestFindSubscriptionsHandler(t *testing.T) {
	dbSubscription := mocksubscription.New()
	dbSubscription.Impl.Find = func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.SubscribedCreator, domain.Cursor], error) {
		return domain.Page[domain.SubscribedCreator, domain.Cursor]{
			Items: []domain.SubscribedCreator{
				{
					Subscription:    domain.Subscription{ViewerId: bob.Id, CreatorId: alice.Id, CreatedAt: now, UpdatedAt: now},
					Creator:         alice,
					SubscriberCount: 12,
				},
			},
		}, nil
	}

	e := echo.New()
	c, rec := httptestutil.Get(e, "/api/subscriptions?limit=1")
	signedIn(c, bob)

	err := handlers.FindSubscriptionsHandler(dbSubscription)(c)
	if got := statusOf(t, err, rec); got != http.StatusOK {
		t.Fatalf("unexpected status: %d", got)
	}
	if call := dbSubscription.Calls.Find[0]; call.ViewerId != bob.Id || call.Req.Limit != 1 {
		t.Errorf("unexpected call: %+v", call)
	}
	body := decode[pages.Page[apisubscriptions.Creator]](t, rec)
	if len(body.Items) != 1 || body.Items[0].UserId != alice.Id || body.Items[0].SubscriberCount != 12 {
		t.Errorf("unexpected body: %+v", body)
	}
}
