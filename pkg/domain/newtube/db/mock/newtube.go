package mocks

import (
	"context"
	"errors"

	kcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
	mockcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db/mock"
	kcomment "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db"
	mockcomment "github.com/lucas-ellwanger/newtube/pkg/domain/comment/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/newtube/db"
	kplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db"
	mockplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db/mock"
	kreaction "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db"
	mockreaction "github.com/lucas-ellwanger/newtube/pkg/domain/reaction/db/mock"
	kschema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db"
	ksubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db"
	mocksubscription "github.com/lucas-ellwanger/newtube/pkg/domain/subscription/db/mock"
	kuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
	mockuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db/mock"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	mockvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db/mock"
	kview "github.com/lucas-ellwanger/newtube/pkg/domain/view/db"
	mockview "github.com/lucas-ellwanger/newtube/pkg/domain/view/db/mock"
	kworkflow "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
	mockworkflow "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db/mock"
)

// Database is a NewtubeDatabase made of mocked repositories.
type Database struct {
	MockUser            *mockuser.UserInterface
	MockCategory        *mockcategory.CategoryInterface
	MockVideo           *mockvideo.VideoInterface
	MockView            *mockview.ViewInterface
	MockVideoReaction   *mockreaction.ReactionInterface
	MockComment         *mockcomment.CommentInterface
	MockCommentReaction *mockreaction.ReactionInterface
	MockSubscription    *mocksubscription.SubscriptionInterface
	MockPlaylist        *mockplaylist.PlaylistInterface
	MockWorkflow        *mockworkflow.WorkflowInterface
	MockSchema          *Schema

	Impl struct {
		Ping func(context.Context) error
	}
}

var _ kdb.NewtubeDatabase = &Database{}

func New() *Database {
	return &Database{
		MockUser:            mockuser.New(),
		MockCategory:        mockcategory.New(),
		MockVideo:           mockvideo.New(),
		MockView:            mockview.New(),
		MockVideoReaction:   mockreaction.New(),
		MockComment:         mockcomment.New(),
		MockCommentReaction: mockreaction.New(),
		MockSubscription:    mocksubscription.New(),
		MockPlaylist:        mockplaylist.New(),
		MockWorkflow:        mockworkflow.New(),
		MockSchema:          &Schema{},
	}
}

func (m *Database) User() kuser.UserInterface                         { return m.MockUser }
func (m *Database) Category() kcategory.CategoryInterface             { return m.MockCategory }
func (m *Database) Video() kvideo.VideoInterface                      { return m.MockVideo }
func (m *Database) View() kview.ViewInterface                         { return m.MockView }
func (m *Database) VideoReaction() kreaction.ReactionInterface        { return m.MockVideoReaction }
func (m *Database) Comment() kcomment.CommentInterface                { return m.MockComment }
func (m *Database) CommentReaction() kreaction.ReactionInterface      { return m.MockCommentReaction }
func (m *Database) Subscription() ksubscription.SubscriptionInterface { return m.MockSubscription }
func (m *Database) Playlist() kplaylist.PlaylistInterface             { return m.MockPlaylist }
func (m *Database) Workflow() kworkflow.WorkflowInterface             { return m.MockWorkflow }
func (m *Database) Schema() kschema.SchemaInterface                   { return m.MockSchema }

func (m *Database) Ping(ctx context.Context) error {
	if m.Impl.Ping != nil {
		return m.Impl.Ping(ctx)
	}
	return nil
}

func (m *Database) Close() error { return nil }

type Schema struct {
	Impl struct {
		Upgrade func(context.Context) error
		Version func(context.Context) (int, error)
		Latest  func() (int, error)
	}
	Calls struct {
		Upgrade int
	}
}

var _ kschema.SchemaInterface = &Schema{}

func (m *Schema) Upgrade(ctx context.Context) error {
	m.Calls.Upgrade += 1
	if m.Impl.Upgrade != nil {
		return m.Impl.Upgrade(ctx)
	}
	panic(errors.New("it should no be called"))
}

func (m *Schema) Version(ctx context.Context) (int, error) {
	if m.Impl.Version != nil {
		return m.Impl.Version(ctx)
	}
	panic(errors.New("it should no be called"))
}

func (m *Schema) Latest() (int, error) {
	if m.Impl.Latest != nil {
		return m.Impl.Latest()
	}
	panic(errors.New("it should no be called"))
}

// Context never expires.
func (m *Schema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
