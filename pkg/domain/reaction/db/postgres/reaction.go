package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db"
)

type reactionPG struct {
	pool kpool.Pool

	// table storing reactions
	table string

	// column referring the target
	target string
}

var _ kdb.ReactionInterface = &reactionPG{}

// NewVideoReaction returns ReactionInterface for reactions on videos.
func NewVideoReaction(pool kpool.Pool) *reactionPG {
	return &reactionPG{pool: pool, table: "video_reactions", target: "video_id"}
}

// NewCommentReaction returns ReactionInterface for reactions on comments.
func NewCommentReaction(pool kpool.Pool) *reactionPG {
	return &reactionPG{pool: pool, table: "comment_reactions", target: "comment_id"}
}

func (m *reactionPG) columns() string {
	return fmt.Sprintf(
		`"user_id", "%s", "type"::text, "created_at", "updated_at"`, m.target,
	)
}

func scan(row pgx.Row) (domain.Reaction, error) {
	r := domain.Reaction{}
	var typ string
	if err := row.Scan(&r.UserId, &r.TargetId, &typ, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return domain.Reaction{}, err
	}
	rt, err := domain.AsReactionType(typ)
	if err != nil {
		return domain.Reaction{}, err
	}
	r.Type = rt
	return r, nil
}

func (m *reactionPG) Toggle(ctx context.Context, userId string, targetId string, reaction domain.ReactionType) (domain.ReactionResult, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.ReactionResult, error) {
		var current string
		err := tx.QueryRow(
			ctx,
			fmt.Sprintf(
				`select "type"::text from "%s" where "user_id" = $1 and "%s" = $2 for update`,
				m.table, m.target,
			),
			userId, targetId,
		).Scan(&current)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return domain.ReactionResult{}, xe.Translate(err)
		}

		if err == nil && current == reaction.String() {
			removed, err := scan(tx.QueryRow(
				ctx,
				fmt.Sprintf(
					`delete from "%s" where "user_id" = $1 and "%s" = $2 returning %s`,
					m.table, m.target, m.columns(),
				),
				userId, targetId,
			))
			if err != nil {
				return domain.ReactionResult{}, xe.Translate(err)
			}
			return domain.ReactionResult{Reaction: removed, Removed: true}, nil
		}

		upserted, err := scan(tx.QueryRow(
			ctx,
			fmt.Sprintf(
				`
				insert into "%[1]s" ("user_id", "%[2]s", "type")
				values ($1, $2, $3::reaction_type)
				on conflict ("user_id", "%[2]s") do update
				set "type" = excluded."type", "updated_at" = now()
				returning %[3]s
				`,
				m.table, m.target, m.columns(),
			),
			userId, targetId, reaction.String(),
		))
		if err != nil {
			return domain.ReactionResult{}, xe.Translate(err)
		}
		return domain.ReactionResult{Reaction: upserted}, nil
	})
}
