package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
)

type CategoryInterface struct {
	Impl struct {
		List func(context.Context) ([]domain.Category, error)
		Seed func(context.Context, []domain.CategorySpec) ([]domain.Category, error)
	}
	Calls struct {
		List dbmock.CallLog[struct{}]
		Seed dbmock.CallLog[[]domain.CategorySpec]
	}
}

var _ kdb.CategoryInterface = &CategoryInterface{}

func New() *CategoryInterface {
	return &CategoryInterface{}
}

func (m *CategoryInterface) List(ctx context.Context) ([]domain.Category, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("it should no be called"))
}

func (m *CategoryInterface) Seed(ctx context.Context, specs []domain.CategorySpec) ([]domain.Category, error) {
	m.Calls.Seed = append(m.Calls.Seed, specs)
	if m.Impl.Seed != nil {
		return m.Impl.Seed(ctx, specs)
	}
	panic(errors.New("it should no be called"))
}
