package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	internal "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db"
)

type subscriptionPG struct {
	pool kpool.Pool
}

var _ kdb.SubscriptionInterface = &subscriptionPG{}

func New(pool kpool.Pool) *subscriptionPG {
	return &subscriptionPG{pool: pool}
}

const columns = `"viewer_id", "creator_id", "created_at", "updated_at"`

func fields(s *domain.Subscription) []any {
	return []any{&s.ViewerId, &s.CreatorId, &s.CreatedAt, &s.UpdatedAt}
}

func (m *subscriptionPG) New(ctx context.Context, viewerId string, creatorId string) (domain.Subscription, error) {
	if viewerId == creatorId {
		return domain.Subscription{}, domerr.ErrSelfSubscription
	}

	s := domain.Subscription{}
	if err := m.pool.QueryRow(
		ctx,
		`
		insert into "subscriptions" ("viewer_id", "creator_id") values ($1, $2)
		returning `+columns,
		viewerId, creatorId,
	).Scan(fields(&s)...); err != nil {
		return domain.Subscription{}, xe.Translate(err)
	}
	return s, nil
}

func (m *subscriptionPG) Delete(ctx context.Context, viewerId string, creatorId string) (domain.Subscription, error) {
	s := domain.Subscription{}
	err := m.pool.QueryRow(
		ctx,
		`
		delete from "subscriptions" where "viewer_id" = $1 and "creator_id" = $2
		returning `+columns,
		viewerId, creatorId,
	).Scan(fields(&s)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subscription{}, xe.Missing{
			Table: "subscriptions", Identity: "viewer_id=" + viewerId + ",creator_id=" + creatorId,
		}
	} else if err != nil {
		return domain.Subscription{}, xe.Translate(err)
	}
	return s, nil
}

func (m *subscriptionPG) Find(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.SubscribedCreator, domain.Cursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.SubscribedCreator, domain.Cursor]{}, err
	}

	p := internal.Params{}
	where := internal.And(
		`"s"."viewer_id" = `+p.Add(viewerId)+`::uuid`,
		internal.After(&p, `"s"."updated_at"`, `"s"."creator_id"`, req.Cursor),
	)
	limit := p.Add(req.Fetch())

	rows, err := m.pool.Query(
		ctx,
		`
		select
			"s"."viewer_id", "s"."creator_id", "s"."created_at", "s"."updated_at",
			`+internal.UserColumns+`,
			(select count(*) from "subscriptions" where "creator_id" = "u"."id")
		from "subscriptions" as "s"
		inner join "users" as "u" on "u"."id" = "s"."creator_id"
		where `+where+`
		order by "s"."updated_at" desc, "s"."creator_id" desc
		limit `+limit,
		p...,
	)
	if err != nil {
		return domain.Page[domain.SubscribedCreator, domain.Cursor]{}, xe.Translate(err)
	}
	defer rows.Close()

	creators := []domain.SubscribedCreator{}
	for rows.Next() {
		c := domain.SubscribedCreator{}
		if err := rows.Scan(append(
			append(fields(&c.Subscription), internal.UserFields(&c.Creator)...),
			&c.SubscriberCount,
		)...); err != nil {
			return domain.Page[domain.SubscribedCreator, domain.Cursor]{}, err
		}
		creators = append(creators, c)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.SubscribedCreator, domain.Cursor]{}, xe.Translate(err)
	}

	return domain.Paginate(
		creators, req.Limit,
		func(c domain.SubscribedCreator) domain.Cursor {
			return domain.Cursor{Id: c.CreatorId, UpdatedAt: c.UpdatedAt}
		},
	), nil
}
