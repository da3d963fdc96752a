package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/lucas-ellwanger/newtube/cmd/newtube/handlers"
	httptestutil "github.com/lucas-ellwanger/newtube/internal/testutils/http"
	"github.com/lucas-ellwanger/newtube/pkg/api/types/pages"
	apiplaylists "github.com/lucas-ellwanger/newtube/pkg/api/types/playlists"
	apivideos "github.com/lucas-ellwanger/newtube/pkg/api/types/videos"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	mockplaylist "github.com/lucas-ellwanger/newtube/pkg/domain/playlist/db/mock"
	mockvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db/mock"
	"github.com/lucas-ellwanger/newtube/pkg/utils/pointer"
)

func TestCreatePlaylistHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		body   string
		status int
		want   *domain.NewPlaylist
	}{
		"with description": {
			body:   `{"name": " watch later ", "description": "for weekends"}`,
			status: http.StatusCreated,
			want:   &domain.NewPlaylist{UserId: alice.Id, Name: "watch later", Description: pointer.Ref("for weekends")},
		},
		"without description": {
			body:   `{"name": "music"}`,
			status: http.StatusCreated,
			want:   &domain.NewPlaylist{UserId: alice.Id, Name: "music"},
		},
		"blank name is rejected": {
			body:   `{"name": ""}`,
			status: http.StatusBadRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			dbPlaylist := mockplaylist.New()
			dbPlaylist.Impl.New = func(_ context.Context, np domain.NewPlaylist) (domain.Playlist, error) {
				return domain.Playlist{
					Id: playlistId, Name: np.Name, Description: np.Description, UserId: np.UserId,
					CreatedAt: now, UpdatedAt: now,
				}, nil
			}

			e := echo.New()
			c, rec := httptestutil.Post(
				e, "/api/playlists", strings.NewReader(testcase.body),
				httptestutil.ContentType(echo.MIMEApplicationJSON),
			)
			signedIn(c, alice)

			err := handlers.CreatePlaylistHandler(dbPlaylist)(c)
			if got := statusOf(t, err, rec); got != testcase.status {
				t.Fatalf("unexpected status: %d", got)
			}
			if testcase.want == nil {
				if dbPlaylist.Calls.New.Times() != 0 {
					t.Errorf("created: %+v", dbPlaylist.Calls.New)
				}
				return
			}
			if diff := cmp.Diff([]domain.NewPlaylist{*testcase.want}, []domain.NewPlaylist(dbPlaylist.Calls.New)); diff != "" {
				t.Errorf("new playlist (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddPlaylistVideoHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		err    error
		status int
	}{
		"it adds the video":                {status: http.StatusOK},
		"adding twice is a conflict":       {err: domerr.ErrConflict, status: http.StatusConflict},
		"missing playlist or video is 404": {err: domerr.ErrMissing, status: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			dbPlaylist := mockplaylist.New()
			dbPlaylist.Impl.AddVideo = func(_ context.Context, _ string, pl string, v string) (domain.PlaylistVideo, error) {
				if testcase.err != nil {
					return domain.PlaylistVideo{}, testcase.err
				}
				return domain.PlaylistVideo{PlaylistId: pl, VideoId: v, CreatedAt: now, UpdatedAt: now}, nil
			}

			e := echo.New()
			c, rec := httptestutil.Put(e, "/api/playlists/"+playlistId+"/videos/"+videoId, nil)
			httptestutil.Params(c, []string{"playlistId", "videoId"}, playlistId, videoId)
			signedIn(c, alice)

			err := handlers.AddPlaylistVideoHandler(dbPlaylist)(c)
			if got := statusOf(t, err, rec); got != testcase.status {
				t.Fatalf("unexpected status: %d", got)
			}
			call := dbPlaylist.Calls.AddVideo[0]
			if call.UserId != alice.Id || call.PlaylistId != playlistId || call.VideoId != videoId {
				t.Errorf("unexpected call: %+v", call)
			}
			if testcase.status != http.StatusOK {
				return
			}
			body := decode[apiplaylists.Entry](t, rec)
			if body.PlaylistId != playlistId || body.VideoId != videoId {
				t.Errorf("unexpected body: %+v", body)
			}
		})
	}
}

func TestFindPlaylistsForVideoHandler(t *testing.T) {
	dbPlaylist := mockplaylist.New()
	dbPlaylist.Impl.FindForVideo = func(context.Context, string, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.PlaylistSummary, domain.Cursor], error) {
		return domain.Page[domain.PlaylistSummary, domain.Cursor]{
			Items: []domain.PlaylistSummary{
				{Playlist: domain.Playlist{Id: playlistId, Name: "music", UserId: alice.Id}, VideoCount: 1, ContainsVideo: true},
			},
		}, nil
	}

	e := echo.New()
	c, rec := httptestutil.Get(e, "/api/videos/"+videoId+"/playlists")
	httptestutil.Params(c, []string{"videoId"}, videoId)
	signedIn(c, alice)

	err := handlers.FindPlaylistsForVideoHandler(dbPlaylist)(c)
	if got := statusOf(t, err, rec); got != http.StatusOK {
		t.Fatalf("unexpected status: %d", got)
	}
	body := decode[pages.Page[apiplaylists.Summary]](t, rec)
	if len(body.Items) != 1 || body.Items[0].ContainsVideo == nil || !*body.Items[0].ContainsVideo {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestFindHistoryHandler(t *testing.T) {
	cursor := domain.Cursor{Id: videoId, UpdatedAt: now}
	dbVideo := mockvideo.New()
	dbVideo.Impl.FindHistory = func(context.Context, string, domain.PageRequest[domain.Cursor]) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
		return domain.Page[domain.VideoSummary, domain.Cursor]{
			Items:      []domain.VideoSummary{{Video: video(alice), User: alice, ListedAt: now}},
			NextCursor: &cursor,
		}, nil
	}

	e := echo.New()
	c, rec := httptestutil.Get(e, "/api/playlists/history?limit=1")
	signedIn(c, bob)

	err := handlers.FindHistoryHandler(dbVideo)(c)
	if got := statusOf(t, err, rec); got != http.StatusOK {
		t.Fatalf("unexpected status: %d", got)
	}
	if call := dbVideo.Calls.FindHistory[0]; call.ViewerId != bob.Id || call.Req.Limit != 1 {
		t.Errorf("unexpected call: %+v", call)
	}

	body := decode[pages.Page[apivideos.Summary]](t, rec)
	if body.NextCursor == nil {
		t.Fatal("no cursor")
	}
	got, err := pages.DecodeCursor[domain.Cursor](*body.NextCursor)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(&cursor) {
		t.Errorf("unexpected cursor: %+v", got)
	}
}

func TestPlaylistHandlers_RequireSignIn(t *testing.T) {
	dbPlaylist := mockplaylist.New()

	for name, h := range map[string]echo.HandlerFunc{
		"find":   handlers.FindPlaylistsHandler(dbPlaylist),
		"get":    handlers.GetPlaylistHandler(dbPlaylist),
		"delete": handlers.DeletePlaylistHandler(dbPlaylist),
		"videos": handlers.FindPlaylistVideosHandler(dbPlaylist),
		"remove": handlers.RemovePlaylistVideoHandler(dbPlaylist),
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			c, rec := httptestutil.Get(e, "/api/playlists/"+playlistId)
			httptestutil.Params(c, []string{"playlistId", "videoId"}, playlistId, videoId)

			err := h(c)
			if got := statusOf(t, err, rec); got != http.StatusUnauthorized {
				t.Fatalf("unexpected status: %d", got)
			}
		})
	}
}
