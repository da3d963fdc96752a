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
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	internal "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
)

// the title of videos just created.
const Untitled = "Untitled"

type videoPG struct {
	pool kpool.Pool
}

var _ kdb.VideoInterface = &videoPG{}

func New(pool kpool.Pool) *videoPG {
	return &videoPG{pool: pool}
}

func (m *videoPG) New(ctx context.Context, nv domain.NewVideo) (domain.Video, error) {
	title := nv.Title
	if title == "" {
		title = Untitled
	}
	v, err := internal.ScanVideo(m.pool.QueryRow(
		ctx,
		`
		insert into "videos" as "v" ("id", "title", "mux_status", "mux_upload_id", "user_id")
		values ($1, $2, $3, $4, $5)
		returning `+internal.VideoColumns,
		uuid.NewString(), title, domain.HostingWaiting, nv.UploadId, nv.UserId,
	))
	if err != nil {
		return domain.Video{}, xe.Translate(err)
	}
	return v, nil
}

func (m *videoPG) Get(ctx context.Context, key kdb.HostingKey) (domain.Video, error) {
	v, err := internal.ScanVideo(m.pool.QueryRow(
		ctx,
		`select `+internal.VideoColumns+` from "videos" as "v" where "v"."`+key.Column()+`" = $1`,
		key.Value(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Video{}, xe.Missing{Table: "videos", Identity: key.String()}
	} else if err != nil {
		return domain.Video{}, xe.Translate(err)
	}
	return v, nil
}

func (m *videoPG) GetDetail(ctx context.Context, videoId string, viewerId *string) (domain.VideoDetail, error) {
	p := internal.Params{}
	id := p.Add(videoId)
	viewer := p.Add(viewerId)

	d := domain.VideoDetail{}
	reaction := pgtype.Text{}
	video, err := internal.ScanVideo(
		m.pool.QueryRow(
			ctx,
			`
			select `+internal.VideoColumns+`, `+internal.UserColumns+`,
				(select count(*) from "subscriptions" where "creator_id" = "u"."id"),
				(select count(*) from "videos" where "user_id" = "u"."id"),
				exists (
					select 1 from "subscriptions"
					where "creator_id" = "u"."id" and "viewer_id" = `+viewer+`::uuid
				),
				"views"."n", "likes"."n", "dislikes"."n",
				(
					select "type"::text from "video_reactions"
					where "video_id" = "v"."id" and "user_id" = `+viewer+`::uuid
				)
			from "videos" as "v"
			inner join "users" as "u" on "u"."id" = "v"."user_id"
			`+internal.VideoCounts+`
			where "v"."id" = `+id+`
				and ("v"."visibility" = 'public' or "v"."user_id" = `+viewer+`::uuid)
			`,
			p...,
		),
		append(
			internal.UserFields(&d.User.User),
			&d.User.SubscriberCount, &d.User.VideoCount, &d.User.ViewerSubscribed,
			&d.ViewCount, &d.LikeCount, &d.DislikeCount,
			&reaction,
		)...,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.VideoDetail{}, xe.Missing{Table: "videos", Identity: "id=" + videoId}
	} else if err != nil {
		return domain.VideoDetail{}, xe.Translate(err)
	}
	d.Video = video

	if reaction.Status == pgtype.Present {
		r, err := domain.AsReactionType(reaction.String)
		if err != nil {
			return domain.VideoDetail{}, err
		}
		d.ViewerReaction = &r
	}
	return d, nil
}

func (m *videoPG) summaries(ctx context.Context, p internal.Params, q internal.VideoSummaryQuery) ([]domain.VideoSummary, error) {
	sql := q.SQL(&p)
	rows, err := m.pool.Query(ctx, sql, p...)
	if err != nil {
		return nil, xe.Translate(err)
	}
	s, err := internal.ScanVideoSummaries(rows)
	if err != nil {
		return nil, xe.Translate(err)
	}
	return s, nil
}

func (m *videoPG) Find(ctx context.Context, query domain.VideoFindQuery) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	if err := query.Validate(); err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}

	p := internal.Params{}
	conds := []string{
		`"v"."visibility" = 'public'`,
		internal.After(&p, `"v"."updated_at"`, `"v"."id"`, query.Cursor),
	}
	if query.CategoryId != nil {
		conds = append(conds, `"v"."category_id" = `+p.Add(*query.CategoryId)+`::uuid`)
	}
	if query.UserId != nil {
		conds = append(conds, `"v"."user_id" = `+p.Add(*query.UserId)+`::uuid`)
	}
	if query.Search != nil {
		conds = append(conds, `strpos(lower("v"."title"), lower(`+p.Add(*query.Search)+`::text)) > 0`)
	}

	q := internal.VideoSummaryQuery{
		Where: internal.And(conds...),
		Limit: query.Fetch(),
	}
	rows, err := m.summaries(ctx, p, q)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}
	return domain.Paginate(rows, query.Limit, internal.ListedCursor), nil
}

func (m *videoPG) FindTrending(ctx context.Context, req domain.PageRequest[domain.TrendingCursor]) (domain.Page[domain.VideoSummary, domain.TrendingCursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.VideoSummary, domain.TrendingCursor]{}, err
	}

	p := internal.Params{}
	q := internal.VideoSummaryQuery{
		Where: internal.And(
			`"v"."visibility" = 'public'`,
			internal.AfterCount(&p, internal.ViewCount, `"v"."id"`, req.Cursor),
		),
		OrderBy: internal.ViewCount + ` desc, "v"."id" desc`,
		Limit:   req.Fetch(),
	}
	rows, err := m.summaries(ctx, p, q)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.TrendingCursor]{}, err
	}
	return domain.Paginate(
		rows, req.Limit,
		func(s domain.VideoSummary) domain.TrendingCursor {
			return domain.TrendingCursor{Id: s.Id, ViewCount: s.ViewCount}
		},
	), nil
}

func (m *videoPG) FindSubscribed(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}

	p := internal.Params{}
	q := internal.VideoSummaryQuery{
		Join: `inner join "subscriptions" as "s" on "s"."creator_id" = "v"."user_id"`,
		Where: internal.And(
			`"v"."visibility" = 'public'`,
			`"s"."viewer_id" = `+p.Add(viewerId)+`::uuid`,
			internal.After(&p, `"v"."updated_at"`, `"v"."id"`, req.Cursor),
		),
		Limit: req.Fetch(),
	}
	rows, err := m.summaries(ctx, p, q)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}
	return domain.Paginate(rows, req.Limit, internal.ListedCursor), nil
}

func (m *videoPG) FindByOwner(ctx context.Context, userId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}

	p := internal.Params{}
	q := internal.VideoSummaryQuery{
		Where: internal.And(
			`"v"."user_id" = `+p.Add(userId)+`::uuid`,
			internal.After(&p, `"v"."updated_at"`, `"v"."id"`, req.Cursor),
		),
		Limit: req.Fetch(),
	}
	rows, err := m.summaries(ctx, p, q)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}
	return domain.Paginate(rows, req.Limit, internal.ListedCursor), nil
}

// findListed lists videos joined with a per-viewer table, ordered by the time of the joined row.
func (m *videoPG) findListed(
	ctx context.Context, join string, viewerId string, req domain.PageRequest[domain.Cursor],
) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}

	p := internal.Params{}
	viewer := p.Add(viewerId)
	q := internal.VideoSummaryQuery{
		Join:     fmt.Sprintf(join, viewer),
		ListedAt: `"l"."updated_at"`,
		Where: internal.And(
			`("v"."visibility" = 'public' or "v"."user_id" = `+viewer+`::uuid)`,
			internal.After(&p, `"l"."updated_at"`, `"v"."id"`, req.Cursor),
		),
		Limit: req.Fetch(),
	}
	rows, err := m.summaries(ctx, p, q)
	if err != nil {
		return domain.Page[domain.VideoSummary, domain.Cursor]{}, err
	}
	return domain.Paginate(rows, req.Limit, internal.ListedCursor), nil
}

func (m *videoPG) FindHistory(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	return m.findListed(
		ctx,
		`inner join "video_views" as "l" on "l"."video_id" = "v"."id" and "l"."user_id" = %s::uuid`,
		viewerId, req,
	)
}

func (m *videoPG) FindLiked(ctx context.Context, viewerId string, req domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
	return m.findListed(
		ctx,
		`inner join "video_reactions" as "l"
			on "l"."video_id" = "v"."id" and "l"."user_id" = %s::uuid and "l"."type" = 'like'`,
		viewerId, req,
	)
}

func (m *videoPG) Update(ctx context.Context, videoId string, userId string, up domain.VideoUpdate) (domain.Video, error) {
	p := internal.Params{}
	sets := []string{}
	if up.Title != nil {
		sets = append(sets, `"title" = `+p.Add(*up.Title))
	}
	if up.Description != nil {
		sets = append(sets, `"description" = `+p.Add(*up.Description))
	}
	if up.ClearCategory {
		sets = append(sets, `"category_id" = null`)
	} else if up.CategoryId != nil {
		sets = append(sets, `"category_id" = `+p.Add(*up.CategoryId)+`::uuid`)
	}
	if up.Visibility != nil {
		sets = append(sets, `"visibility" = `+p.Add(up.Visibility.String())+`::video_visibility`)
	}
	sets = append(sets, mediaSets(&p, "thumbnail", up.Thumbnail)...)
	sets = append(sets, mediaSets(&p, "preview", up.Preview)...)

	if len(sets) == 0 {
		v, err := m.Get(ctx, kdb.ByVideoId(videoId))
		if err != nil {
			return domain.Video{}, err
		}
		if !v.IsOwnedBy(userId) {
			return domain.Video{}, xe.Missing{Table: "videos", Identity: "id=" + videoId}
		}
		return v, nil
	}

	id := p.Add(videoId)
	owner := p.Add(userId)
	v, err := internal.ScanVideo(m.pool.QueryRow(
		ctx,
		fmt.Sprintf(
			`
			update "videos" as "v"
			set %s, "updated_at" = now()
			where "v"."id" = %s and "v"."user_id" = %s
			returning %s
			`,
			strings.Join(sets, ", "), id, owner, internal.VideoColumns,
		),
		p...,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Video{}, xe.Missing{Table: "videos", Identity: "id=" + videoId}
	} else if err != nil {
		return domain.Video{}, xe.Translate(err)
	}
	return v, nil
}

func (m *videoPG) UpdateHosting(ctx context.Context, key kdb.HostingKey, up domain.HostingUpdate) (domain.Video, error) {
	p := internal.Params{}
	sets := []string{`"updated_at" = now()`}
	for col, val := range map[string]*string{
		"mux_status":       up.Status,
		"mux_asset_id":     up.AssetId,
		"mux_playback_id":  up.PlaybackId,
		"mux_track_id":     up.TrackId,
		"mux_track_status": up.TrackStatus,
	} {
		if val == nil {
			continue
		}
		sets = append(sets, fmt.Sprintf(`"%s" = %s`, col, p.Add(*val)))
	}
	if up.Duration != nil {
		sets = append(sets, `"duration" = `+p.Add(*up.Duration))
	}
	sets = append(sets, mediaSets(&p, "thumbnail", up.Thumbnail)...)
	sets = append(sets, mediaSets(&p, "preview", up.Preview)...)

	v, err := internal.ScanVideo(m.pool.QueryRow(
		ctx,
		fmt.Sprintf(
			`update "videos" as "v" set %s where "v"."%s" = %s returning %s`,
			strings.Join(sets, ", "), key.Column(), p.Add(key.Value()), internal.VideoColumns,
		),
		p...,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Video{}, xe.Missing{Table: "videos", Identity: key.String()}
	} else if err != nil {
		return domain.Video{}, xe.Translate(err)
	}
	return v, nil
}

func mediaSets(p *internal.Params, prefix string, media *domain.Media) []string {
	if media == nil {
		return nil
	}
	return []string{
		fmt.Sprintf(`"%s_url" = %s`, prefix, p.Add(media.Url)),
		fmt.Sprintf(`"%s_key" = %s`, prefix, p.Add(media.Key)),
	}
}

func (m *videoPG) Delete(ctx context.Context, videoId string, userId string) (domain.Video, error) {
	v, err := internal.ScanVideo(m.pool.QueryRow(
		ctx,
		`
		delete from "videos" as "v"
		where "v"."id" = $1 and "v"."user_id" = $2
		returning `+internal.VideoColumns,
		videoId, userId,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Video{}, xe.Missing{Table: "videos", Identity: "id=" + videoId}
	} else if err != nil {
		return domain.Video{}, xe.Translate(err)
	}
	return v, nil
}

func (m *videoPG) DeleteBy(ctx context.Context, key kdb.HostingKey) (domain.Video, error) {
	v, err := internal.ScanVideo(m.pool.QueryRow(
		ctx,
		`delete from "videos" as "v" where "v"."`+key.Column()+`" = $1 returning `+internal.VideoColumns,
		key.Value(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Video{}, xe.Missing{Table: "videos", Identity: key.String()}
	} else if err != nil {
		return domain.Video{}, xe.Translate(err)
	}
	return v, nil
}
