package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db"
)

type SubscriptionInterface struct {
	Impl struct {
		New    func(context.Context, string, string) (domain.Subscription, error)
		Delete func(context.Context, string, string) (domain.Subscription, error)
		Find   func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.SubscribedCreator, domain.Cursor], error)
	}
	Calls struct {
		New dbmock.CallLog[struct {
			ViewerId  string
			CreatorId string
		}]
		Delete dbmock.CallLog[struct {
			ViewerId  string
			CreatorId string
		}]
		Find dbmock.CallLog[struct {
			ViewerId string
			Req      domain.PageRequest[domain.Cursor]
		}]
	}
}

var _ kdb.SubscriptionInterface = &SubscriptionInterface{}

func New() *SubscriptionInterface {
	return &SubscriptionInterface{}
}

func (m *SubscriptionInterface) New(ctx context.Context, viewerId string, creatorId string) (domain.Subscription, error) {
	m.Calls.New = append(m.Calls.New, struct {
		ViewerId  string
		CreatorId string
	}{
		ViewerId:  viewerId,
		CreatorId: creatorId,
	})
	if m.Impl.New != nil {
		return m.Impl.New(ctx, viewerId, creatorId)
	}
	panic(errors.New("it should no be called"))
}

func (m *SubscriptionInterface) Delete(ctx context.Context, viewerId string, creatorId string) (domain.Subscription, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		ViewerId  string
		CreatorId string
	}{
		ViewerId:  viewerId,
		CreatorId: creatorId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, viewerId, creatorId)
	}
	panic(errors.New("it should no be called"))
}

func (m *SubscriptionInterface) Find(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.SubscribedCreator, domain.Cursor], error) {
	m.Calls.Find = append(m.Calls.Find, struct {
		ViewerId string
		Req      domain.PageRequest[domain.Cursor]
	}{
		ViewerId: viewerId,
		Req:      req,
	})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, viewerId, req)
	}
	panic(errors.New("it should no be called"))
}

