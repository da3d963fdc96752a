package postgres

import (
	"context"

	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/view/db"
)

type viewPG struct {
	pool kpool.Pool
}

var _ kdb.ViewInterface = &viewPG{}

func New(pool kpool.Pool) *viewPG {
	return &viewPG{pool: pool}
}

func (m *viewPG) Record(ctx context.Context, userId string, videoId string) (domain.VideoView, error) {
	v := domain.VideoView{}
	// "do update" with no change makes "returning" yield the existing row.
	if err := m.pool.QueryRow(
		ctx,
		`
		insert into "video_views" ("user_id", "video_id") values ($1, $2)
		on conflict ("user_id", "video_id") do update set "user_id" = excluded."user_id"
		returning "user_id", "video_id", "created_at", "updated_at"
		`,
		userId, videoId,
	).Scan(&v.UserId, &v.VideoId, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return domain.VideoView{}, xe.Translate(err)
	}
	return v, nil
}
