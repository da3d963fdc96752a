package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
)

type Host struct {
	Impl struct {
		CreateUpload func(ctx context.Context, passthrough string) (mux.Upload, error)
		CancelUpload func(ctx context.Context, uploadId string) error
		GetAsset     func(ctx context.Context, assetId string) (mux.Asset, error)
		DeleteAsset  func(ctx context.Context, assetId string) error
		Transcript   func(ctx context.Context, playbackId string, trackId string) (string, error)
	}
	Calls struct {
		CreateUpload []string
		CancelUpload []string
		GetAsset     []string
		DeleteAsset  []string
		Transcript   []struct {
			PlaybackId string
			TrackId    string
		}
	}
}

var _ mux.Interface = &Host{}

func New() *Host {
	return &Host{}
}

func (m *Host) CreateUpload(ctx context.Context, passthrough string) (mux.Upload, error) {
	m.Calls.CreateUpload = append(m.Calls.CreateUpload, passthrough)
	if m.Impl.CreateUpload != nil {
		return m.Impl.CreateUpload(ctx, passthrough)
	}
	panic(errors.New("it should no be called"))
}

func (m *Host) CancelUpload(ctx context.Context, uploadId string) error {
	m.Calls.CancelUpload = append(m.Calls.CancelUpload, uploadId)
	if m.Impl.CancelUpload != nil {
		return m.Impl.CancelUpload(ctx, uploadId)
	}
	panic(errors.New("it should no be called"))
}

func (m *Host) GetAsset(ctx context.Context, assetId string) (mux.Asset, error) {
	m.Calls.GetAsset = append(m.Calls.GetAsset, assetId)
	if m.Impl.GetAsset != nil {
		return m.Impl.GetAsset(ctx, assetId)
	}
	panic(errors.New("it should no be called"))
}

func (m *Host) DeleteAsset(ctx context.Context, assetId string) error {
	m.Calls.DeleteAsset = append(m.Calls.DeleteAsset, assetId)
	if m.Impl.DeleteAsset != nil {
		return m.Impl.DeleteAsset(ctx, assetId)
	}
	panic(errors.New("it should no be called"))
}

func (m *Host) Transcript(ctx context.Context, playbackId string, trackId string) (string, error) {
	m.Calls.Transcript = append(m.Calls.Transcript, struct {
		PlaybackId string
		TrackId    string
	}{PlaybackId: playbackId, TrackId: trackId})
	if m.Impl.Transcript != nil {
		return m.Impl.Transcript(ctx, playbackId, trackId)
	}
	panic(errors.New("it should no be called"))
}

func (m *Host) ThumbnailUrl(playbackId string) string {
	return "https://image.example.com/" + playbackId + "/thumbnail.jpg"
}

func (m *Host) PreviewUrl(playbackId string) string {
	return "https://image.example.com/" + playbackId + "/animated.gif"
}
