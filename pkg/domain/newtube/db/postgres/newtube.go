package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	kcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
	kpgcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db/postgres"
	kcomment "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db"
	kpgcomment "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db/postgres"
	dbInterface "github.com/lucas-ellwanger/newtube/pkg/domain/newtube/db"
	kplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db"
	kpgplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db/postgres"
	kreaction "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db"
	kpgreaction "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db/postgres"
	kschema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db"
	kpgschema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db/postgres"
	ksubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db"
	kpgsubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db/postgres"
	kuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
	kpguser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db/postgres"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	kpgvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db/postgres"
	kview "github.com/lucas-ellwanger/newtube/pkg/domain/view/db"
	kpgview "github.com/lucas-ellwanger/newtube/pkg/domain/view/db/postgres"
	kworkflow "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
	kpgworkflow "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db/postgres"
	xe "github.com/lucas-ellwanger/newtube/pkg/errors"
)

type newtubeDBPostgres struct {
	pool            *pgxpool.Pool
	wrapped         kpool.Pool
	user            kuser.UserInterface
	category        kcategory.CategoryInterface
	video           kvideo.VideoInterface
	view            kview.ViewInterface
	videoReaction   kreaction.ReactionInterface
	comment         kcomment.CommentInterface
	commentReaction kreaction.ReactionInterface
	subscription    ksubscription.SubscriptionInterface
	playlist        kplaylist.PlaylistInterface
	workflow        kworkflow.WorkflowInterface
	schema          kschema.SchemaInterface
}

type Config struct {
	// how often the schema version is checked. See SchemaInterface.Context.
	SchemaCheckInterval time.Duration

	// max connections in the pool. 0 means pgxpool's default.
	MaxConns int32
}

func DefaultConfig() Config {
	return Config{
		SchemaCheckInterval: 30 * time.Second,
	}
}

type Option func(*Config) *Config

func WithSchemaCheckInterval(d time.Duration) Option {
	return func(c *Config) *Config {
		c.SchemaCheckInterval = d
		return c
	}
}

func WithMaxConns(n int32) Option {
	return func(c *Config) *Config {
		c.MaxConns = n
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.NewtubeDatabase, error) {
	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	pgconf, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	if 0 < c.MaxConns {
		pgconf.MaxConns = c.MaxConns
	}
	pool, err := pgxpool.ConnectConfig(ctx, pgconf)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	p := kpool.Wrap(pool)
	return &newtubeDBPostgres{
		pool:            pool,
		wrapped:         p,
		user:            kpguser.New(p),
		category:        kpgcategory.New(p),
		video:           kpgvideo.New(p),
		view:            kpgview.New(p),
		videoReaction:   kpgreaction.NewVideoReaction(p),
		comment:         kpgcomment.New(p),
		commentReaction: kpgreaction.NewCommentReaction(p),
		subscription:    kpgsubscription.New(p),
		playlist:        kpgplaylist.New(p),
		workflow:        kpgworkflow.New(p),
		schema:          kpgschema.New(p, kpgschema.WithCheckInterval(c.SchemaCheckInterval)),
	}, nil
}

func (k *newtubeDBPostgres) User() kuser.UserInterface { return k.user }

func (k *newtubeDBPostgres) Category() kcategory.CategoryInterface { return k.category }

func (k *newtubeDBPostgres) Video() kvideo.VideoInterface { return k.video }

func (k *newtubeDBPostgres) View() kview.ViewInterface { return k.view }

func (k *newtubeDBPostgres) VideoReaction() kreaction.ReactionInterface { return k.videoReaction }

func (k *newtubeDBPostgres) Comment() kcomment.CommentInterface { return k.comment }

func (k *newtubeDBPostgres) CommentReaction() kreaction.ReactionInterface {
	return k.commentReaction
}

func (k *newtubeDBPostgres) Subscription() ksubscription.SubscriptionInterface {
	return k.subscription
}

func (k *newtubeDBPostgres) Playlist() kplaylist.PlaylistInterface { return k.playlist }

func (k *newtubeDBPostgres) Workflow() kworkflow.WorkflowInterface { return k.workflow }

func (k *newtubeDBPostgres) Schema() kschema.SchemaInterface { return k.schema }

func (k *newtubeDBPostgres) Ping(ctx context.Context) error {
	return k.wrapped.Ping(ctx)
}

func (k *newtubeDBPostgres) Close() error {
	k.pool.Close()
	return nil
}
