package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/view/db"
)

type ViewInterface struct {
	Impl struct {
		Record func(context.Context, string, string) (domain.VideoView, error)
	}
	Calls struct {
		Record dbmock.CallLog[struct {
			UserId  string
			VideoId string
		}]
	}
}

var _ kdb.ViewInterface = &ViewInterface{}

func New() *ViewInterface {
	return &ViewInterface{}
}

func (m *ViewInterface) Record(ctx context.Context, userId string, videoId string) (domain.VideoView, error) {
	m.Calls.Record = append(m.Calls.Record, struct {
		UserId  string
		VideoId string
	}{
		UserId:  userId,
		VideoId: videoId,
	})
	if m.Impl.Record != nil {
		return m.Impl.Record(ctx, userId, videoId)
	}
	panic(errors.New("it should no be called"))
}

