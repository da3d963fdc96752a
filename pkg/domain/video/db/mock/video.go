package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
)

type VideoInterface struct {
	Impl struct {
		New            func(context.Context, domain.NewVideo) (domain.Video, error)
		Get            func(context.Context, kdb.HostingKey) (domain.Video, error)
		GetDetail      func(context.Context, string, *string) (domain.VideoDetail, error)
		Find           func(context.Context, domain.VideoFindQuery) (domain.Page[domain.VideoSummary, domain.Cursor], error)
		FindTrending   func(context.Context, domain.PageRequest[domain.TrendingCursor]) (domain.Page[domain.VideoSummary, domain.TrendingCursor], error)
		FindSubscribed func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)
		FindByOwner    func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)
		FindHistory    func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)
		FindLiked      func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)
		Update         func(context.Context, string, string, domain.VideoUpdate) (domain.Video, error)
		UpdateHosting  func(context.Context, kdb.HostingKey, domain.HostingUpdate) (domain.Video, error)
		Delete         func(context.Context, string, string) (domain.Video, error)
		DeleteBy       func(context.Context, kdb.HostingKey) (domain.Video, error)
	}
	Calls struct {
		New       dbmock.CallLog[domain.NewVideo]
		Get       dbmock.CallLog[kdb.HostingKey]
		GetDetail dbmock.CallLog[struct {
			VideoId  string
			ViewerId *string
		}]
		Find           dbmock.CallLog[domain.VideoFindQuery]
		FindTrending   dbmock.CallLog[domain.PageRequest[domain.TrendingCursor]]
		FindSubscribed dbmock.CallLog[struct {
			ViewerId string
			Req      domain.PageRequest[domain.Cursor]
		}]
		FindByOwner dbmock.CallLog[struct {
			UserId string
			Req    domain.PageRequest[domain.Cursor]
		}]
		FindHistory dbmock.CallLog[struct {
			ViewerId string
			Req      domain.PageRequest[domain.Cursor]
		}]
		FindLiked dbmock.CallLog[struct {
			ViewerId string
			Req      domain.PageRequest[domain.Cursor]
		}]
		Update dbmock.CallLog[struct {
			VideoId string
			UserId  string
			Update  domain.VideoUpdate
		}]
		UpdateHosting dbmock.CallLog[struct {
			Key    kdb.HostingKey
			Update domain.HostingUpdate
		}]
		Delete dbmock.CallLog[struct {
			VideoId string
			UserId  string
		}]
		DeleteBy dbmock.CallLog[kdb.HostingKey]
	}
}

var _ kdb.VideoInterface = &VideoInterface{}

func New() *VideoInterface {
	return &VideoInterface{}
}

func (m *VideoInterface) New(ctx context.Context, nv domain.NewVideo) (domain.Video, error) {
	m.Calls.New = append(m.Calls.New, nv)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, nv)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) Get(ctx context.Context, key kdb.HostingKey) (domain.Video, error) {
	m.Calls.Get = append(m.Calls.Get, key)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, key)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) GetDetail(ctx context.Context, videoId string, viewerId *string) (domain.VideoDetail, error) {
	m.Calls.GetDetail = append(m.Calls.GetDetail, struct {
		VideoId  string
		ViewerId *string
	}{
		VideoId:  videoId,
		ViewerId: viewerId,
	})
	if m.Impl.GetDetail != nil {
		return m.Impl.GetDetail(ctx, videoId, viewerId)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) Find(ctx context.Context, query domain.VideoFindQuery) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) FindTrending(ctx context.Context, req domain.PageRequest[domain.TrendingCursor]) (domain.Page[domain.VideoSummary, domain.TrendingCursor], error) {
	m.Calls.FindTrending = append(m.Calls.FindTrending, req)
	if m.Impl.FindTrending != nil {
		return m.Impl.FindTrending(ctx, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) FindSubscribed(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	m.Calls.FindSubscribed = append(m.Calls.FindSubscribed, struct {
		ViewerId string
		Req      domain.PageRequest[domain.Cursor]
	}{
		ViewerId: viewerId,
		Req:      req,
	})
	if m.Impl.FindSubscribed != nil {
		return m.Impl.FindSubscribed(ctx, viewerId, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) FindByOwner(ctx context.Context, userId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	m.Calls.FindByOwner = append(m.Calls.FindByOwner, struct {
		UserId string
		Req    domain.PageRequest[domain.Cursor]
	}{
		UserId: userId,
		Req:    req,
	})
	if m.Impl.FindByOwner != nil {
		return m.Impl.FindByOwner(ctx, userId, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) FindHistory(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	m.Calls.FindHistory = append(m.Calls.FindHistory, struct {
		ViewerId string
		Req      domain.PageRequest[domain.Cursor]
	}{
		ViewerId: viewerId,
		Req:      req,
	})
	if m.Impl.FindHistory != nil {
		return m.Impl.FindHistory(ctx, viewerId, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) FindLiked(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	m.Calls.FindLiked = append(m.Calls.FindLiked, struct {
		ViewerId string
		Req      domain.PageRequest[domain.Cursor]
	}{
		ViewerId: viewerId,
		Req:      req,
	})
	if m.Impl.FindLiked != nil {
		return m.Impl.FindLiked(ctx, viewerId, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) Update(ctx context.Context, videoId string, userId string, update domain.VideoUpdate) (domain.Video, error) {
	m.Calls.Update = append(m.Calls.Update, struct {
		VideoId string
		UserId  string
		Update  domain.VideoUpdate
	}{
		VideoId: videoId,
		UserId:  userId,
		Update:  update,
	})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, videoId, userId, update)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) UpdateHosting(ctx context.Context, key kdb.HostingKey, update domain.HostingUpdate) (domain.Video, error) {
	m.Calls.UpdateHosting = append(m.Calls.UpdateHosting, struct {
		Key    kdb.HostingKey
		Update domain.HostingUpdate
	}{
		Key:    key,
		Update: update,
	})
	if m.Impl.UpdateHosting != nil {
		return m.Impl.UpdateHosting(ctx, key, update)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) Delete(ctx context.Context, videoId string, userId string) (domain.Video, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		VideoId string
		UserId  string
	}{
		VideoId: videoId,
		UserId:  userId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, videoId, userId)
	}
	panic(errors.New("it should no be called"))
}

func (m *VideoInterface) DeleteBy(ctx context.Context, key kdb.HostingKey) (domain.Video, error) {
	m.Calls.DeleteBy = append(m.Calls.DeleteBy, key)
	if m.Impl.DeleteBy != nil {
		return m.Impl.DeleteBy(ctx, key)
	}
	panic(errors.New("it should no be called"))
}

