package db

import (
	"context"

	kcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
	kcomment "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db"
	kplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db"
	kreaction "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db"
	kschema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db"
	ksubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db"
	kuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	kview "github.com/lucas-ellwanger/newtube/pkg/domain/view/db"
	kworkflow "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
)

type NewtubeDatabase interface {
	User() kuser.UserInterface
	Category() kcategory.CategoryInterface
	Video() kvideo.VideoInterface
	View() kview.ViewInterface
	VideoReaction() kreaction.ReactionInterface
	Comment() kcomment.CommentInterface
	CommentReaction() kreaction.ReactionInterface
	Subscription() ksubscription.SubscriptionInterface
	Playlist() kplaylist.PlaylistInterface
	Workflow() kworkflow.WorkflowInterface
	Schema() kschema.SchemaInterface

	// Ping checks the database is reachable.
	Ping(context.Context) error

	Close() error
}
