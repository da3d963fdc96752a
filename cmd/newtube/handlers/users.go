package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apicategories "github.com/lucas-ellwanger/newtube/pkg/api/types/categories"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apiusers "github.com/lucas-ellwanger/newtube/pkg/api/types/users"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	kcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
	kuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
)

func ListCategoriesHandler(dbCategory kcategory.CategoryInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		categories, err := dbCategory.List(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}

		resp := make([]apicategories.Category, 0, len(categories))
		for _, cat := range categories {
			resp = append(resp, apicategories.Compose(cat))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func GetUserHandler(dbUser kuser.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := idParam(c, "userId")
		if err != nil {
			return err
		}

		profile, err := dbUser.Get(c.Request().Context(), userId, auth.ViewerId(c))
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apiusers.ComposeProfile(profile))
	}
}
