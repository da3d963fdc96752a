package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lucas-ellwanger/newtube/cmd/newtube/handlers"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/newtube/db"
	"github.com/lucas-ellwanger/newtube/pkg/metrics"
	"github.com/lucas-ellwanger/newtube/pkg/ratelimit"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
	"github.com/lucas-ellwanger/newtube/pkg/utils/echoutil"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
)

const API_ROOT = "/api"

// Dependencies are what the API server is built from.
type Dependencies struct {
	DB      kdb.NewtubeDatabase
	Tokens  *auth.Verifier
	Host    mux.Interface
	Storage storage.Interface

	MuxWebhook   handlers.SignatureVerifier
	UsersWebhook handlers.SignatureVerifier

	RateLimit    ratelimit.Config
	AllowOrigins []string
}

func BuildServer(deps Dependencies, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}

	e.Use(echoutil.LogHandlerFunc)
	e.Use(metrics.Middleware())
	if len(deps.AllowOrigins) != 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     deps.AllowOrigins,
			AllowCredentials: true,
		}))
	}

	e.GET("/metrics", metrics.Handler())
	e.GET("/healthz", func(c echo.Context) error {
		if err := deps.DB.Ping(c.Request().Context()); err != nil {
			return apierr.ServiceUnavailable("database is not reachable", err)
		}
		return c.NoContent(http.StatusOK)
	})

	db := deps.DB

	// webhooks are authenticated by signatures, not by viewers.
	hooks := e.Group(API_ROOT + "/webhooks")
	hooks.POST("/mux", handlers.MuxWebhookHandler(db.Video(), deps.Host, deps.Storage, deps.MuxWebhook))
	hooks.POST("/users", handlers.UsersWebhookHandler(db.User(), deps.UsersWebhook))

	api := e.Group(API_ROOT, auth.Middleware(deps.Tokens, db.User()))
	signedIn := auth.RequireUser
	limited := ratelimit.Middleware(deps.RateLimit)

	{
		api.GET("/categories", handlers.ListCategoriesHandler(db.Category()))
		api.GET("/users/:userId", handlers.GetUserHandler(db.User()))
		api.GET("/search", handlers.SearchVideosHandler(db.Video()))
	}

	{
		api.GET("/videos", handlers.FindVideosHandler(db.Video()))
		api.GET("/videos/trending", handlers.FindTrendingVideosHandler(db.Video()))
		api.GET("/videos/subscribed", handlers.FindSubscribedVideosHandler(db.Video()), signedIn)
		api.POST("/videos", handlers.CreateVideoHandler(db.Video(), deps.Host), signedIn, limited)
		api.GET("/videos/:videoId", handlers.GetVideoHandler(db.Video()))
		api.PUT("/videos/:videoId", handlers.UpdateVideoHandler(db.Video()), signedIn, limited)
		api.DELETE(
			"/videos/:videoId",
			handlers.DeleteVideoHandler(db.Video(), deps.Host, deps.Storage),
			signedIn, limited,
		)
		api.POST(
			"/videos/:videoId/thumbnail/restore",
			handlers.RestoreThumbnailHandler(db.Video(), deps.Host, deps.Storage),
			signedIn, limited,
		)
		api.POST(
			"/videos/:videoId/revalidate",
			handlers.RevalidateVideoHandler(db.Video(), deps.Host),
			signedIn, limited,
		)
		api.POST(
			"/videos/:videoId/generate/:workflow",
			handlers.GenerateHandler(db.Video(), db.Workflow()),
			signedIn, limited,
		)
		api.POST("/videos/:videoId/views", handlers.RecordViewHandler(db.View()), signedIn, limited)
		api.PUT(
			"/videos/:videoId/reactions/:type",
			handlers.ToggleReactionHandler(db.VideoReaction(), "videoId"),
			signedIn, limited,
		)
		api.GET("/videos/:videoId/playlists", handlers.FindPlaylistsForVideoHandler(db.Playlist()), signedIn)
	}

	{
		api.GET("/videos/:videoId/comments", handlers.FindCommentsHandler(db.Comment()))
		api.POST("/videos/:videoId/comments", handlers.CreateCommentHandler(db.Comment()), signedIn, limited)
		api.DELETE("/comments/:commentId", handlers.DeleteCommentHandler(db.Comment()), signedIn, limited)
		api.PUT(
			"/comments/:commentId/reactions/:type",
			handlers.ToggleReactionHandler(db.CommentReaction(), "commentId"),
			signedIn, limited,
		)
	}

	{
		api.GET("/studio/videos", handlers.FindStudioVideosHandler(db.Video()), signedIn)
		api.GET("/studio/videos/:videoId", handlers.GetStudioVideoHandler(db.Video()), signedIn)
	}

	{
		api.GET("/subscriptions", handlers.FindSubscriptionsHandler(db.Subscription()), signedIn)
		api.POST("/subscriptions", handlers.CreateSubscriptionHandler(db.Subscription()), signedIn, limited)
		api.DELETE(
			"/subscriptions/:userId",
			handlers.DeleteSubscriptionHandler(db.Subscription()),
			signedIn, limited,
		)
	}

	{
		api.GET("/playlists", handlers.FindPlaylistsHandler(db.Playlist()), signedIn)
		api.POST("/playlists", handlers.CreatePlaylistHandler(db.Playlist()), signedIn, limited)
		api.GET("/playlists/history", handlers.FindHistoryHandler(db.Video()), signedIn)
		api.GET("/playlists/liked", handlers.FindLikedHandler(db.Video()), signedIn)
		api.GET("/playlists/:playlistId", handlers.GetPlaylistHandler(db.Playlist()), signedIn)
		api.DELETE("/playlists/:playlistId", handlers.DeletePlaylistHandler(db.Playlist()), signedIn, limited)
		api.GET("/playlists/:playlistId/videos", handlers.FindPlaylistVideosHandler(db.Playlist()), signedIn)
		api.PUT(
			"/playlists/:playlistId/videos/:videoId",
			handlers.AddPlaylistVideoHandler(db.Playlist()),
			signedIn, limited,
		)
		api.DELETE(
			"/playlists/:playlistId/videos/:videoId",
			handlers.RemovePlaylistVideoHandler(db.Playlist()),
			signedIn, limited,
		)
	}

	return e
}
