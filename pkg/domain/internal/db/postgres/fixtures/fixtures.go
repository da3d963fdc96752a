// Package fixtures inserts rows for repository tests.
package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// Base is the timestamp fixtures are relative to.
var Base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// At returns Base + minutes.
func At(minutes int) time.Time {
	return Base.Add(time.Duration(minutes) * time.Minute)
}

func exec(ctx context.Context, t *testing.T, pool kpool.Queryer, sql string, args ...any) {
	t.Helper()
	if _, err := pool.Exec(ctx, sql, args...); err != nil {
		t.Fatalf("fixture: %v\n%s", err, sql)
	}
}

func User(ctx context.Context, t *testing.T, pool kpool.Queryer, name string) domain.User {
	t.Helper()
	u := domain.User{
		Id:         uuid.NewString(),
		ExternalId: "ext-" + name,
		Name:       name,
		ImageUrl:   "https://example.com/" + name + ".png",
		CreatedAt:  Base,
		UpdatedAt:  Base,
	}
	exec(
		ctx, t, pool,
		`insert into "users" ("id", "external_id", "name", "image_url", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6)`,
		u.Id, u.ExternalId, u.Name, u.ImageUrl, u.CreatedAt, u.UpdatedAt,
	)
	return u
}

func Category(ctx context.Context, t *testing.T, pool kpool.Queryer, name string) domain.Category {
	t.Helper()
	c := domain.Category{Id: uuid.NewString(), Name: name, CreatedAt: Base, UpdatedAt: Base}
	exec(
		ctx, t, pool,
		`insert into "categories" ("id", "name", "created_at", "updated_at") values ($1, $2, $3, $4)`,
		c.Id, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	return c
}

// VideoSpec describes a video fixture.
type VideoSpec struct {
	Title      string
	Visibility domain.Visibility
	CategoryId *string
	UploadId   *string
	AssetId    *string

	// minutes from Base
	UpdatedAt int
}

func Video(ctx context.Context, t *testing.T, pool kpool.Queryer, owner domain.User, spec VideoSpec) string {
	t.Helper()
	id := uuid.NewString()
	vis := spec.Visibility
	if vis == "" {
		vis = domain.Public
	}
	exec(
		ctx, t, pool,
		`insert into "videos" (
			"id", "title", "visibility", "user_id", "category_id",
			"mux_upload_id", "mux_asset_id", "created_at", "updated_at"
		) values ($1, $2, $3::video_visibility, $4, $5, $6, $7, $8, $9)`,
		id, spec.Title, vis.String(), owner.Id, spec.CategoryId,
		spec.UploadId, spec.AssetId, Base, At(spec.UpdatedAt),
	)
	return id
}

func View(ctx context.Context, t *testing.T, pool kpool.Queryer, userId, videoId string, minutes int) {
	t.Helper()
	exec(
		ctx, t, pool,
		`insert into "video_views" ("user_id", "video_id", "created_at", "updated_at") values ($1, $2, $3, $3)`,
		userId, videoId, At(minutes),
	)
}

func VideoReaction(ctx context.Context, t *testing.T, pool kpool.Queryer, userId, videoId string, r domain.ReactionType, minutes int) {
	t.Helper()
	exec(
		ctx, t, pool,
		`insert into "video_reactions" ("user_id", "video_id", "type", "created_at", "updated_at")
		values ($1, $2, $3::reaction_type, $4, $4)`,
		userId, videoId, r.String(), At(minutes),
	)
}

func CommentReaction(ctx context.Context, t *testing.T, pool kpool.Queryer, userId, commentId string, r domain.ReactionType, minutes int) {
	t.Helper()
	exec(
		ctx, t, pool,
		`insert into "comment_reactions" ("user_id", "comment_id", "type", "created_at", "updated_at")
		values ($1, $2, $3::reaction_type, $4, $4)`,
		userId, commentId, r.String(), At(minutes),
	)
}

func Comment(ctx context.Context, t *testing.T, pool kpool.Queryer, userId, videoId string, parentId *string, minutes int) string {
	t.Helper()
	id := uuid.NewString()
	exec(
		ctx, t, pool,
		`insert into "comments" ("id", "parent_id", "user_id", "video_id", "content", "created_at", "updated_at")
		values ($1, $2, $3, $4, $5, $6, $6)`,
		id, parentId, userId, videoId, "comment "+id, At(minutes),
	)
	return id
}

func Subscription(ctx context.Context, t *testing.T, pool kpool.Queryer, viewerId, creatorId string, minutes int) {
	t.Helper()
	exec(
		ctx, t, pool,
		`insert into "subscriptions" ("viewer_id", "creator_id", "created_at", "updated_at") values ($1, $2, $3, $3)`,
		viewerId, creatorId, At(minutes),
	)
}

func Playlist(ctx context.Context, t *testing.T, pool kpool.Queryer, userId string, name string, minutes int) string {
	t.Helper()
	id := uuid.NewString()
	exec(
		ctx, t, pool,
		`insert into "playlists" ("id", "name", "user_id", "created_at", "updated_at") values ($1, $2, $3, $4, $4)`,
		id, name, userId, At(minutes),
	)
	return id
}

func PlaylistVideo(ctx context.Context, t *testing.T, pool kpool.Queryer, playlistId, videoId string, minutes int) {
	t.Helper()
	exec(
		ctx, t, pool,
		`insert into "playlist_videos" ("playlist_id", "video_id", "created_at", "updated_at") values ($1, $2, $3, $3)`,
		playlistId, videoId, At(minutes),
	)
}
