package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		Get                func(context.Context, string, *string) (domain.UserProfile, error)
		GetByExternalId    func(context.Context, string) (domain.User, error)
		Upsert             func(context.Context, domain.UserSpec) (domain.User, error)
		DeleteByExternalId func(context.Context, string) error
	}
	Calls struct {
		Get dbmock.CallLog[struct {
			UserId   string
			ViewerId *string
		}]
		GetByExternalId    dbmock.CallLog[string]
		Upsert             dbmock.CallLog[domain.UserSpec]
		DeleteByExternalId dbmock.CallLog[string]
	}
}

var _ kdb.UserInterface = &UserInterface{}

func New() *UserInterface {
	return &UserInterface{}
}

func (m *UserInterface) Get(ctx context.Context, userId string, viewerId *string) (domain.UserProfile, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		UserId   string
		ViewerId *string
	}{UserId: userId, ViewerId: viewerId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userId, viewerId)
	}
	panic(errors.New("it should no be called"))
}

func (m *UserInterface) GetByExternalId(ctx context.Context, externalId string) (domain.User, error) {
	m.Calls.GetByExternalId = append(m.Calls.GetByExternalId, externalId)
	if m.Impl.GetByExternalId != nil {
		return m.Impl.GetByExternalId(ctx, externalId)
	}
	panic(errors.New("it should no be called"))
}

func (m *UserInterface) Upsert(ctx context.Context, spec domain.UserSpec) (domain.User, error) {
	m.Calls.Upsert = append(m.Calls.Upsert, spec)
	if m.Impl.Upsert != nil {
		return m.Impl.Upsert(ctx, spec)
	}
	panic(errors.New("it should no be called"))
}

func (m *UserInterface) DeleteByExternalId(ctx context.Context, externalId string) error {
	m.Calls.DeleteByExternalId = append(m.Calls.DeleteByExternalId, externalId)
	if m.Impl.DeleteByExternalId != nil {
		return m.Impl.DeleteByExternalId(ctx, externalId)
	}
	panic(errors.New("it should no be called"))
}
