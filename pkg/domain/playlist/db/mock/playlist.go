package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db"
)

type PlaylistInterface struct {
	Impl struct {
		New          func(context.Context, domain.NewPlaylist) (domain.Playlist, error)
		Get          func(context.Context, string, string) (domain.Playlist, error)
		Delete       func(context.Context, string, string) (domain.Playlist, error)
		Find         func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error)
		FindForVideo func(context.Context, string, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error)
		AddVideo     func(context.Context, string, string, string) (domain.PlaylistVideo, error)
		RemoveVideo  func(context.Context, string, string, string) (domain.PlaylistVideo, error)
		Videos       func(context.Context, string, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error)
	}
	Calls struct {
		New dbmock.CallLog[domain.NewPlaylist]
		Get dbmock.CallLog[struct {
			UserId     string
			PlaylistId string
		}]
		Delete dbmock.CallLog[struct {
			UserId     string
			PlaylistId string
		}]
		Find dbmock.CallLog[struct {
			UserId string
			Req    domain.PageRequest[domain.Cursor]
		}]
		FindForVideo dbmock.CallLog[struct {
			UserId  string
			VideoId string
			Req     domain.PageRequest[domain.Cursor]
		}]
		AddVideo dbmock.CallLog[struct {
			UserId     string
			PlaylistId string
			VideoId    string
		}]
		RemoveVideo dbmock.CallLog[struct {
			UserId     string
			PlaylistId string
			VideoId    string
		}]
		Videos dbmock.CallLog[struct {
			UserId     string
			PlaylistId string
			Req        domain.PageRequest[domain.Cursor]
		}]
	}
}

var _ kdb.PlaylistInterface = &PlaylistInterface{}

func New() *PlaylistInterface {
	return &PlaylistInterface{}
}

func (m *PlaylistInterface) New(ctx context.Context, np domain.NewPlaylist) (domain.Playlist, error) {
	m.Calls.New = append(m.Calls.New, np)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, np)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) Get(ctx context.Context, userId string, playlistId string) (domain.Playlist, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		UserId     string
		PlaylistId string
	}{
		UserId:     userId,
		PlaylistId: playlistId,
	})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userId, playlistId)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) Delete(ctx context.Context, userId string, playlistId string) (domain.Playlist, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		UserId     string
		PlaylistId string
	}{
		UserId:     userId,
		PlaylistId: playlistId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, userId, playlistId)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) Find(ctx context.Context, userId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error) {
	m.Calls.Find = append(m.Calls.Find, struct {
		UserId string
		Req    domain.PageRequest[domain.Cursor]
	}{
		UserId: userId,
		Req:    req,
	})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, userId, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) FindForVideo(ctx context.Context, userId string, videoId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error) {
	m.Calls.FindForVideo = append(m.Calls.FindForVideo, struct {
		UserId  string
		VideoId string
		Req     domain.PageRequest[domain.Cursor]
	}{
		UserId:  userId,
		VideoId: videoId,
		Req:     req,
	})
	if m.Impl.FindForVideo != nil {
		return m.Impl.FindForVideo(ctx, userId, videoId, req)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) AddVideo(ctx context.Context, userId string, playlistId string, videoId string) (domain.PlaylistVideo, error) {
	m.Calls.AddVideo = append(m.Calls.AddVideo, struct {
		UserId     string
		PlaylistId string
		VideoId    string
	}{
		UserId:     userId,
		PlaylistId: playlistId,
		VideoId:    videoId,
	})
	if m.Impl.AddVideo != nil {
		return m.Impl.AddVideo(ctx, userId, playlistId, videoId)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) RemoveVideo(ctx context.Context, userId string, playlistId string, videoId string) (domain.PlaylistVideo, error) {
	m.Calls.RemoveVideo = append(m.Calls.RemoveVideo, struct {
		UserId     string
		PlaylistId string
		VideoId    string
	}{
		UserId:     userId,
		PlaylistId: playlistId,
		VideoId:    videoId,
	})
	if m.Impl.RemoveVideo != nil {
		return m.Impl.RemoveVideo(ctx, userId, playlistId, videoId)
	}
	panic(errors.New("it should no be called"))
}

func (m *PlaylistInterface) Videos(ctx context.Context, userId string, playlistId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	m.Calls.Videos = append(m.Calls.Videos, struct {
		UserId     string
		PlaylistId string
		Req        domain.PageRequest[domain.Cursor]
	}{
		UserId:     userId,
		PlaylistId: playlistId,
		Req:        req,
	})
	if m.Impl.Videos != nil {
		return m.Impl.Videos(ctx, userId, playlistId, req)
	}
	panic(errors.New("it should no be called"))
}

