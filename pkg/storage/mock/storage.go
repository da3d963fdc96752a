package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
)

type Storage struct {
	Impl struct {
		Put        func(ctx context.Context, key string, contentType string, body []byte) (domain.Media, error)
		PutFromUrl func(ctx context.Context, key string, src string) (domain.Media, error)
		Delete     func(ctx context.Context, key string) error
	}
	Calls struct {
		Put []struct {
			Key         string
			ContentType string
			Body        []byte
		}
		PutFromUrl []struct {
			Key string
			Src string
		}
		Delete []string
	}
}

var _ storage.Interface = &Storage{}

func New() *Storage {
	return &Storage{}
}

func (m *Storage) Put(ctx context.Context, key string, contentType string, body []byte) (domain.Media, error) {
	m.Calls.Put = append(m.Calls.Put, struct {
		Key         string
		ContentType string
		Body        []byte
	}{Key: key, ContentType: contentType, Body: body})
	if m.Impl.Put != nil {
		return m.Impl.Put(ctx, key, contentType, body)
	}
	panic(errors.New("it should no be called"))
}

func (m *Storage) PutFromUrl(ctx context.Context, key string, src string) (domain.Media, error) {
	m.Calls.PutFromUrl = append(m.Calls.PutFromUrl, struct {
		Key string
		Src string
	}{Key: key, Src: src})
	if m.Impl.PutFromUrl != nil {
		return m.Impl.PutFromUrl(ctx, key, src)
	}
	panic(errors.New("it should no be called"))
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	m.Calls.Delete = append(m.Calls.Delete, key)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, key)
	}
	panic(errors.New("it should no be called"))
}
