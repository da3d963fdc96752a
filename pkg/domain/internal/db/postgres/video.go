package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// VideoColumns selects a video from the table aliased as "v".
//
// Scan them with ScanVideo.
const VideoColumns = `
	"v"."id", "v"."title", "v"."description",
	"v"."mux_status", "v"."mux_asset_id", "v"."mux_upload_id",
	"v"."mux_playback_id", "v"."mux_track_id", "v"."mux_track_status",
	"v"."thumbnail_url", "v"."thumbnail_key", "v"."preview_url", "v"."preview_key",
	"v"."duration", "v"."visibility"::text, "v"."user_id", "v"."category_id",
	"v"."created_at", "v"."updated_at"`

// UserColumns selects a user from the table aliased as "u".
const UserColumns = `
	"u"."id", "u"."external_id", "u"."name", "u"."image_url",
	"u"."created_at", "u"."updated_at"`

// UserFields returns scan destinations for UserColumns.
func UserFields(u *domain.User) []any {
	return []any{
		&u.Id, &u.ExternalId, &u.Name, &u.ImageUrl,
		&u.CreatedAt, &u.UpdatedAt,
	}
}

// videoFields returns scan destinations for VideoColumns.
//
// The visibility is scanned into vis; convert it with AsVisibility after scan.
func videoFields(v *domain.Video, vis *string) []any {
	return []any{
		&v.Id, &v.Title, &v.Description,
		&v.Hosting.Status, &v.Hosting.AssetId, &v.Hosting.UploadId,
		&v.Hosting.PlaybackId, &v.Hosting.TrackId, &v.Hosting.TrackStatus,
		&v.Thumbnail.Url, &v.Thumbnail.Key, &v.Preview.Url, &v.Preview.Key,
		&v.Duration, vis, &v.UserId, &v.CategoryId,
		&v.CreatedAt, &v.UpdatedAt,
	}
}

// ScanVideo scans a row selected by VideoColumns, followed by extra.
func ScanVideo(row pgx.Row, extra ...any) (domain.Video, error) {
	v := domain.Video{}
	var vis string
	if err := row.Scan(append(videoFields(&v, &vis), extra...)...); err != nil {
		return domain.Video{}, err
	}
	visibility, err := domain.AsVisibility(vis)
	if err != nil {
		return domain.Video{}, err
	}
	v.Visibility = visibility
	return v, nil
}

// VideoCounts joins aggregations of the video laterally.
//
// Columns are "views"."n", "likes"."n", "dislikes"."n" and "comments"."n".
const VideoCounts = `
	cross join lateral (
		select count(*) as "n" from "video_views" where "video_id" = "v"."id"
	) as "views"
	cross join lateral (
		select count(*) as "n" from "video_reactions"
		where "video_id" = "v"."id" and "type" = 'like'
	) as "likes"
	cross join lateral (
		select count(*) as "n" from "video_reactions"
		where "video_id" = "v"."id" and "type" = 'dislike'
	) as "dislikes"
	cross join lateral (
		select count(*) as "n" from "comments" where "video_id" = "v"."id"
	) as "comments"`

// ViewCount is the expression of the view count in VideoSummaryQuery.
const ViewCount = `"views"."n"`

// VideoSummaryQuery builds a query of video summaries.
//
// The video is aliased as "v" and its owner as "u".
type VideoSummaryQuery struct {
	// additional joins.
	Join string

	// expression of the time the video is listed at.
	// When empty, "v"."updated_at" is used.
	ListedAt string

	// condition. It can refer Params by placeholders.
	Where string

	// order of rows. When empty, listed time and id, both descending.
	OrderBy string

	Limit int
}

func (q VideoSummaryQuery) listedAt() string {
	if q.ListedAt == "" {
		return `"v"."updated_at"`
	}
	return q.ListedAt
}

// SQL renders the query. Limit is added into p.
func (q VideoSummaryQuery) SQL(p *Params) string {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = fmt.Sprintf(`%s desc, "v"."id" desc`, q.listedAt())
	}
	where := q.Where
	if where == "" {
		where = "true"
	}
	return fmt.Sprintf(
		`
		select %s, %s,
			"views"."n", "likes"."n", "dislikes"."n", "comments"."n",
			%s
		from "videos" as "v"
		inner join "users" as "u" on "u"."id" = "v"."user_id"
		%s
		%s
		where %s
		order by %s
		limit %s
		`,
		VideoColumns, UserColumns, q.listedAt(),
		q.Join, VideoCounts,
		where, orderBy, p.Add(q.Limit),
	)
}

// ScanVideoSummaries scans all rows of a query built by VideoSummaryQuery.
func ScanVideoSummaries(rows pgx.Rows) ([]domain.VideoSummary, error) {
	defer rows.Close()

	result := []domain.VideoSummary{}
	for rows.Next() {
		s := domain.VideoSummary{}
		video, err := ScanVideo(
			rows,
			append(
				UserFields(&s.User),
				&s.ViewCount, &s.LikeCount, &s.DislikeCount, &s.CommentCount,
				&s.ListedAt,
			)...,
		)
		if err != nil {
			return nil, err
		}
		s.Video = video
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListedCursor is the cursor of a summary listed by its ListedAt.
func ListedCursor(s domain.VideoSummary) domain.Cursor {
	return domain.Cursor{Id: s.Id, UpdatedAt: s.ListedAt}
}
