package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	internal "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db"
)

type playlistPG struct {
	pool kpool.Pool
}

var _ kdb.PlaylistInterface = &playlistPG{}

func New(pool kpool.Pool) *playlistPG {
	return &playlistPG{pool: pool}
}

const columns = `
	"p"."id", "p"."name", "p"."description", "p"."user_id",
	"p"."created_at", "p"."updated_at"`

func fields(p *domain.Playlist) []any {
	return []any{&p.Id, &p.Name, &p.Description, &p.UserId, &p.CreatedAt, &p.UpdatedAt}
}

func missing(playlistId string) error {
	return xe.Missing{Table: "playlists", Identity: "id=" + playlistId}
}

func (m *playlistPG) New(ctx context.Context, np domain.NewPlaylist) (domain.Playlist, error) {
	pl := domain.Playlist{}
	if err := m.pool.QueryRow(
		ctx,
		`
		insert into "playlists" as "p" ("id", "name", "description", "user_id")
		values ($1, $2, $3, $4)
		returning `+columns,
		uuid.NewString(), np.Name, np.Description, np.UserId,
	).Scan(fields(&pl)...); err != nil {
		return domain.Playlist{}, xe.Translate(err)
	}
	return pl, nil
}

func get(ctx context.Context, q kpool.Queryer, userId string, playlistId string, lock string) (domain.Playlist, error) {
	pl := domain.Playlist{}
	err := q.QueryRow(
		ctx,
		`select `+columns+` from "playlists" as "p" where "p"."id" = $1 and "p"."user_id" = $2 `+lock,
		playlistId, userId,
	).Scan(fields(&pl)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Playlist{}, missing(playlistId)
	} else if err != nil {
		return domain.Playlist{}, xe.Translate(err)
	}
	return pl, nil
}

func (m *playlistPG) Get(ctx context.Context, userId string, playlistId string) (domain.Playlist, error) {
	return get(ctx, m.pool, userId, playlistId, "")
}

func (m *playlistPG) Delete(ctx context.Context, userId string, playlistId string) (domain.Playlist, error) {
	pl := domain.Playlist{}
	err := m.pool.QueryRow(
		ctx,
		`
		delete from "playlists" as "p" where "p"."id" = $1 and "p"."user_id" = $2
		returning `+columns,
		playlistId, userId,
	).Scan(fields(&pl)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Playlist{}, missing(playlistId)
	} else if err != nil {
		return domain.Playlist{}, xe.Translate(err)
	}
	return pl, nil
}

func (m *playlistPG) Find(ctx context.Context, userId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error) {
	return m.find(ctx, userId, nil, req)
}

func (m *playlistPG) FindForVideo(ctx context.Context, userId string, videoId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error) {
	return m.find(ctx, userId, &videoId, req)
}

func (m *playlistPG) find(ctx context.Context, userId string, videoId *string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.PlaylistSummary, domain.Cursor]{}, err
	}

	p := internal.Params{}
	contains := "false"
	if videoId != nil {
		contains = fmt.Sprintf(
			`exists (
				select 1 from "playlist_videos"
				where "playlist_id" = "p"."id" and "video_id" = %s::uuid
			)`,
			p.Add(*videoId),
		)
	}
	where := internal.And(
		`"p"."user_id" = `+p.Add(userId)+`::uuid`,
		internal.After(&p, `"p"."updated_at"`, `"p"."id"`, req.Cursor),
	)
	limit := p.Add(req.Fetch())

	rows, err := m.pool.Query(
		ctx,
		`
		select `+columns+`,
			(select count(*) from "playlist_videos" where "playlist_id" = "p"."id"),
			(
				select "v"."thumbnail_url"
				from "playlist_videos" as "pv"
				inner join "videos" as "v" on "v"."id" = "pv"."video_id"
				where "pv"."playlist_id" = "p"."id"
				order by "pv"."updated_at" desc, "pv"."video_id" desc
				limit 1
			),
			`+contains+`
		from "playlists" as "p"
		where `+where+`
		order by "p"."updated_at" desc, "p"."id" desc
		limit `+limit,
		p...,
	)
	if err != nil {
		return domain.Page[domain.PlaylistSummary, domain.Cursor]{}, xe.Translate(err)
	}
	defer rows.Close()

	summaries := []domain.PlaylistSummary{}
	for rows.Next() {
		s := domain.PlaylistSummary{}
		if err := rows.Scan(append(
			fields(&s.Playlist),
			&s.VideoCount, &s.ThumbnailUrl, &s.ContainsVideo,
		)...); err != nil {
			return domain.Page[domain.PlaylistSummary, domain.Cursor]{}, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.PlaylistSummary, domain.Cursor]{}, xe.Translate(err)
	}

	return domain.Paginate(
		summaries, req.Limit,
		func(s domain.PlaylistSummary) domain.Cursor {
			return domain.Cursor{Id: s.Id, UpdatedAt: s.UpdatedAt}
		},
	), nil
}

const entryColumns = `"playlist_id", "video_id", "created_at", "updated_at"`

func entryFields(pv *domain.PlaylistVideo) []any {
	return []any{&pv.PlaylistId, &pv.VideoId, &pv.CreatedAt, &pv.UpdatedAt}
}

func (m *playlistPG) AddVideo(ctx context.Context, userId string, playlistId string, videoId string) (domain.PlaylistVideo, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.PlaylistVideo, error) {
		if _, err := get(ctx, tx, userId, playlistId, "for update"); err != nil {
			return domain.PlaylistVideo{}, err
		}

		pv := domain.PlaylistVideo{}
		if err := tx.QueryRow(
			ctx,
			`
			insert into "playlist_videos" ("playlist_id", "video_id") values ($1, $2)
			returning `+entryColumns,
			playlistId, videoId,
		).Scan(entryFields(&pv)...); err != nil {
			return domain.PlaylistVideo{}, xe.Translate(err)
		}
		return pv, nil
	})
}

func (m *playlistPG) RemoveVideo(ctx context.Context, userId string, playlistId string, videoId string) (domain.PlaylistVideo, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.PlaylistVideo, error) {
		if _, err := get(ctx, tx, userId, playlistId, "for update"); err != nil {
			return domain.PlaylistVideo{}, err
		}

		pv := domain.PlaylistVideo{}
		err := tx.QueryRow(
			ctx,
			`
			delete from "playlist_videos" where "playlist_id" = $1 and "video_id" = $2
			returning `+entryColumns,
			playlistId, videoId,
		).Scan(entryFields(&pv)...)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlaylistVideo{}, xe.Missing{
				Table: "playlist_videos", Identity: "playlist_id=" + playlistId + ",video_id=" + videoId,
			}
		} else if err != nil {
			return domain.PlaylistVideo{}, xe.Translate(err)
		}
		return pv, nil
	})
}

func (m *playlistPG) Videos(ctx context.Context, userId string, playlistId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}
	if _, err := m.Get(ctx, userId, playlistId); err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}

	p := internal.Params{}
	q := internal.VideoSummaryQuery{
		Join: `inner join "playlist_videos" as "l"
			on "l"."video_id" = "v"."id" and "l"."playlist_id" = ` + p.Add(playlistId) + `::uuid`,
		ListedAt: `"l"."updated_at"`,
		Where: internal.And(
			`("v"."visibility" = 'public' or "v"."user_id" = `+p.Add(userId)+`::uuid)`,
			internal.After(&p, `"l"."updated_at"`, `"v"."id"`, req.Cursor),
		),
		Limit: req.Fetch(),
	}
	sql := q.SQL(&p)

	rows, err := m.pool.Query(ctx, sql, p...)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, xe.Translate(err)
	}
	summaries, err := internal.ScanVideoSummaries(rows)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, xe.Translate(err)
	}
	return domain.Paginate(summaries, req.Limit, internal.ListedCursor), nil
}
