package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

type CategoryInterface interface {
	// List returns all categories ordered by name.
	List(context.Context) ([]domain.Category, error)

	// Seed registers categories.
	//
	// Categories with the same name are updated with the new description.
	// It returns the registered categories in the given order.
	Seed(context.Context, []domain.CategorySpec) ([]domain.Category, error)
}
