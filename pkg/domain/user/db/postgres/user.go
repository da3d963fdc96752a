package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	internal "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
)

type userPG struct {
	pool kpool.Pool
}

var _ kdb.UserInterface = &userPG{}

func New(pool kpool.Pool) *userPG {
	return &userPG{pool: pool}
}

func (m *userPG) Get(ctx context.Context, userId string, viewerId *string) (domain.UserProfile, error) {
	p := internal.Params{}
	id := p.Add(userId)
	viewer := p.Add(viewerId)

	up := domain.UserProfile{}
	err := m.pool.QueryRow(
		ctx,
		`
		select `+internal.UserColumns+`,
			(select count(*) from "subscriptions" where "creator_id" = "u"."id"),
			(select count(*) from "videos" where "user_id" = "u"."id"),
			exists (
				select 1 from "subscriptions"
				where "creator_id" = "u"."id" and "viewer_id" = `+viewer+`::uuid
			)
		from "users" as "u"
		where "u"."id" = `+id+`
		`,
		p...,
	).Scan(append(
		internal.UserFields(&up.User),
		&up.SubscriberCount, &up.VideoCount, &up.ViewerSubscribed,
	)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserProfile{}, xe.Missing{Table: "users", Identity: "id=" + userId}
	} else if err != nil {
		return domain.UserProfile{}, xe.Translate(err)
	}
	return up, nil
}

func (m *userPG) GetByExternalId(ctx context.Context, externalId string) (domain.User, error) {
	u := domain.User{}
	err := m.pool.QueryRow(
		ctx,
		`select `+internal.UserColumns+` from "users" as "u" where "u"."external_id" = $1`,
		externalId,
	).Scan(internal.UserFields(&u)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, xe.Missing{Table: "users", Identity: "external_id=" + externalId}
	} else if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (m *userPG) Upsert(ctx context.Context, spec domain.UserSpec) (domain.User, error) {
	u := domain.User{}
	if err := m.pool.QueryRow(
		ctx,
		`
		insert into "users" as "u" ("id", "external_id", "name", "image_url")
		values ($1, $2, $3, $4)
		on conflict ("external_id") do update
		set "name" = excluded."name",
			"image_url" = excluded."image_url",
			"updated_at" = now()
		returning `+internal.UserColumns,
		uuid.NewString(), spec.ExternalId, spec.Name, spec.ImageUrl,
	).Scan(internal.UserFields(&u)...); err != nil {
		return domain.User{}, xe.Translate(err)
	}
	return u, nil
}

func (m *userPG) DeleteByExternalId(ctx context.Context, externalId string) error {
	ctag, err := m.pool.Exec(
		ctx, `delete from "users" where "external_id" = $1`, externalId,
	)
	if err != nil {
		return err
	}
	if ctag.RowsAffected() == 0 {
		return xe.Missing{Table: "users", Identity: "external_id=" + externalId}
	}
	return nil
}
