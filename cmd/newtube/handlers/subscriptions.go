package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apisubscriptions "github.com/lucas-ellwanger/newtube/pkg/api/types/subscriptions"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	ksubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db"
)

func FindSubscriptionsHandler(dbSubscription ksubscription.SubscriptionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbSubscription.Find(c.Request().Context(), user.Id, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apisubscriptions.ComposeCreator)
	}
}

func CreateSubscriptionHandler(dbSubscription ksubscription.SubscriptionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := bind[apisubscriptions.NewSubscription](c)
		if err != nil {
			return err
		}
		if _, err := uuid.Parse(req.UserId); err != nil {
			return apierr.BadRequest(`"userId" should be an id of the creator`, err)
		}

		sub, err := dbSubscription.New(c.Request().Context(), user.Id, req.UserId)
		if errors.Is(err, domerr.ErrConflict) {
			return apierr.Conflict("already subscribed", apierr.WithError(err))
		} else if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusCreated, apisubscriptions.ComposeSubscription(sub))
	}
}

func DeleteSubscriptionHandler(dbSubscription ksubscription.SubscriptionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		creatorId, err := idParam(c, "userId")
		if err != nil {
			return err
		}

		sub, err := dbSubscription.Delete(c.Request().Context(), user.Id, creatorId)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apisubscriptions.ComposeSubscription(sub))
	}
}
