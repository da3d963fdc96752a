package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
)

type CommentInterface struct {
	Impl struct {
		New    func(context.Context, domain.NewComment) (domain.Comment, error)
		Delete func(context.Context, string, string) (domain.Comment, error)
		Find   func(context.Context, domain.CommentFindQuery) (domain.CommentPage, error)
	}
	Calls struct {
		New    dbmock.CallLog[domain.NewComment]
		Delete dbmock.CallLog[struct {
			CommentId string
			UserId    string
		}]
		Find dbmock.CallLog[domain.CommentFindQuery]
	}
}

var _ kdb.CommentInterface = &CommentInterface{}

func New() *CommentInterface {
	return &CommentInterface{}
}

func (m *CommentInterface) New(ctx context.Context, nc domain.NewComment) (domain.Comment, error) {
	m.Calls.New = append(m.Calls.New, nc)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, nc)
	}
	panic(errors.New("it should no be called"))
}

func (m *CommentInterface) Delete(ctx context.Context, commentId string, userId string) (domain.Comment, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		CommentId string
		UserId    string
	}{
		CommentId: commentId,
		UserId:    userId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, commentId, userId)
	}
	panic(errors.New("it should no be called"))
}

func (m *CommentInterface) Find(ctx context.Context, query domain.CommentFindQuery) (domain.CommentPage, error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}
	panic(errors.New("it should no be called"))
}

