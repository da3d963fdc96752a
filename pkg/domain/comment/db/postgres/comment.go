package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	internal "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/postgres"
	"golang.org/x/sync/errgroup"
)

type commentPG struct {
	pool kpool.Pool
}

var _ kdb.CommentInterface = &commentPG{}

func New(pool kpool.Pool) *commentPG {
	return &commentPG{pool: pool}
}

const columns = `
	"c"."id", "c"."parent_id", "c"."user_id", "c"."video_id", "c"."content",
	"c"."created_at", "c"."updated_at"`

func fields(c *domain.Comment) []any {
	return []any{
		&c.Id, &c.ParentId, &c.UserId, &c.VideoId, &c.Content,
		&c.CreatedAt, &c.UpdatedAt,
	}
}

func (m *commentPG) New(ctx context.Context, nc domain.NewComment) (domain.Comment, error) {
	if strings.TrimSpace(nc.Content) == "" {
		return domain.Comment{}, fmt.Errorf("%w: empty comment", domerr.ErrInvalidArgument)
	}

	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.Comment, error) {
		if nc.ParentId != nil {
			var grandParent *string
			var videoId string
			err := tx.QueryRow(
				ctx,
				`select "parent_id", "video_id" from "comments" where "id" = $1 for share`,
				*nc.ParentId,
			).Scan(&grandParent, &videoId)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Comment{}, xe.Missing{Table: "comments", Identity: "id=" + *nc.ParentId}
			} else if err != nil {
				return domain.Comment{}, xe.Translate(err)
			}
			if grandParent != nil {
				return domain.Comment{}, domerr.ErrReplyToReply
			}
			if videoId != nc.VideoId {
				return domain.Comment{}, fmt.Errorf(
					"%w: parent comment %s is not on the video %s",
					domerr.ErrInvalidArgument, *nc.ParentId, nc.VideoId,
				)
			}
		}

		c := domain.Comment{}
		if err := tx.QueryRow(
			ctx,
			`
			insert into "comments" as "c" ("id", "parent_id", "user_id", "video_id", "content")
			values ($1, $2, $3, $4, $5)
			returning `+columns,
			uuid.NewString(), nc.ParentId, nc.UserId, nc.VideoId, nc.Content,
		).Scan(fields(&c)...); err != nil {
			return domain.Comment{}, xe.Translate(err)
		}
		return c, nil
	})
}

func (m *commentPG) Delete(ctx context.Context, commentId string, userId string) (domain.Comment, error) {
	c := domain.Comment{}
	err := m.pool.QueryRow(
		ctx,
		`
		delete from "comments" as "c"
		where "c"."id" = $1 and "c"."user_id" = $2
		returning `+columns,
		commentId, userId,
	).Scan(fields(&c)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Comment{}, xe.Missing{Table: "comments", Identity: "id=" + commentId}
	} else if err != nil {
		return domain.Comment{}, xe.Translate(err)
	}
	return c, nil
}

func (m *commentPG) Find(ctx context.Context, query domain.CommentFindQuery) (domain.CommentPage, error) {
	if err := query.Validate(); err != nil {
		return domain.CommentPage{}, err
	}

	eg, ectx := errgroup.WithContext(ctx)

	var total int64
	eg.Go(func() error {
		err := m.pool.QueryRow(
			ectx,
			`select count(*) from "comments" where "video_id" = $1`,
			query.VideoId,
		).Scan(&total)
		return xe.Translate(err)
	})

	var page domain.Page[domain.CommentDetail, domain.Cursor]
	eg.Go(func() error {
		p, err := m.page(ectx, query)
		if err != nil {
			return err
		}
		page = p
		return nil
	})

	if err := eg.Wait(); err != nil {
		return domain.CommentPage{}, err
	}
	return domain.CommentPage{Page: page, TotalCount: total}, nil
}

func (m *commentPG) page(ctx context.Context, query domain.CommentFindQuery) (domain.Page[domain.CommentDetail, domain.Cursor], error) {
	p := internal.Params{}
	viewer := p.Add(query.ViewerId)

	parent := `"c"."parent_id" is null`
	if query.ParentId != nil {
		parent = `"c"."parent_id" = ` + p.Add(*query.ParentId) + `::uuid`
	}
	where := internal.And(
		`"c"."video_id" = `+p.Add(query.VideoId)+`::uuid`,
		parent,
		internal.After(&p, `"c"."updated_at"`, `"c"."id"`, query.Cursor),
	)
	limit := p.Add(query.Fetch())

	rows, err := m.pool.Query(
		ctx,
		`
		select `+columns+`, `+internal.UserColumns+`,
			(
				select "type"::text from "comment_reactions"
				where "comment_id" = "c"."id" and "user_id" = `+viewer+`::uuid
			),
			(select count(*) from "comments" as "r" where "r"."parent_id" = "c"."id"),
			(
				select count(*) from "comment_reactions"
				where "comment_id" = "c"."id" and "type" = 'like'
			),
			(
				select count(*) from "comment_reactions"
				where "comment_id" = "c"."id" and "type" = 'dislike'
			)
		from "comments" as "c"
		inner join "users" as "u" on "u"."id" = "c"."user_id"
		where `+where+`
		order by "c"."updated_at" desc, "c"."id" desc
		limit `+limit,
		p...,
	)
	if err != nil {
		return domain.Page[domain.CommentDetail, domain.Cursor]{}, xe.Translate(err)
	}
	defer rows.Close()

	details := []domain.CommentDetail{}
	for rows.Next() {
		d := domain.CommentDetail{}
		reaction := pgtype.Text{}
		if err := rows.Scan(append(
			append(fields(&d.Comment), internal.UserFields(&d.User)...),
			&reaction, &d.ReplyCount, &d.LikeCount, &d.DislikeCount,
		)...); err != nil {
			return domain.Page[domain.CommentDetail, domain.Cursor]{}, err
		}
		if reaction.Status == pgtype.Present {
			r, err := domain.AsReactionType(reaction.String)
			if err != nil {
				return domain.Page[domain.CommentDetail, domain.Cursor]{}, err
			}
			d.ViewerReaction = &r
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.CommentDetail, domain.Cursor]{}, xe.Translate(err)
	}

	return domain.Paginate(
		details, query.Limit,
		func(d domain.CommentDetail) domain.Cursor {
			return domain.Cursor{Id: d.Id, UpdatedAt: d.UpdatedAt}
		},
	), nil
}
