package mocks

import (
	"context"
	"errors"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db"
)

type ReactionInterface struct {
	Impl struct {
		Toggle func(context.Context, string, string, domain.ReactionType) (domain.ReactionResult, error)
	}
	Calls struct {
		Toggle dbmock.CallLog[struct {
			UserId   string
			TargetId string
			Reaction domain.ReactionType
		}]
	}
}

var _ kdb.ReactionInterface = &ReactionInterface{}

func New() *ReactionInterface {
	return &ReactionInterface{}
}

func (m *ReactionInterface) Toggle(ctx context.Context, userId string, targetId string, reaction domain.ReactionType) (domain.ReactionResult, error) {
	m.Calls.Toggle = append(m.Calls.Toggle, struct {
		UserId   string
		TargetId string
		Reaction domain.ReactionType
	}{
		UserId:   userId,
		TargetId: targetId,
		Reaction: reaction,
	})
	if m.Impl.Toggle != nil {
		return m.Impl.Toggle(ctx, userId, targetId, reaction)
	}
	panic(errors.New("it should no be called"))
}

