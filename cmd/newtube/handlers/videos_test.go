package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/lucas-ellwanger/newtube/cmd/newtube/handlers"
	httptestutil "github.com/lucas-ellwanger/newtube/internal/testutils/http"
	"github.com/lucas-ellwanger/newtube/pkg/api/types/pages"
	apivideos "github.com/lucas-ellwanger/newtube/pkg/api/types/videos"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	mockvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db/mock"
	mockstorage "github.com/lucas-ellwanger/newtube/pkg/storage/mock"
	"github.com/lucas-ellwanger/newtube/pkg/utils/pointer"
	"github.com/lucas-ellwanger/newtube/pkg/utils/try"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
	mockmux "github.com/lucas-ellwanger/newtube/pkg/videohost/mux/mock"
)

func video(owner domain.User) domain.Video {
	return domain.Video{
		Id:         videoId,
		Title:      "cats",
		Visibility: domain.Public,
		UserId:     owner.Id,
		Hosting: domain.Hosting{
			Status:     pointer.Ref(domain.HostingReady),
			AssetId:    pointer.Ref("asset-1"),
			UploadId:   pointer.Ref("upload-1"),
			PlaybackId: pointer.Ref("playback-1"),
		},
		Thumbnail: domain.Media{
			Url: pointer.Ref("https://cdn.example.com/videos/v/thumbnail-old.jpg"),
			Key: pointer.Ref("videos/v/thumbnail-old.jpg"),
		},
		Preview: domain.Media{
			Url: pointer.Ref("https://cdn.example.com/videos/v/preview-old.gif"),
			Key: pointer.Ref("videos/v/preview-old.gif"),
		},
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
}

func TestFindVideosHandler(t *testing.T) {
	cursor := domain.Cursor{Id: videoId, UpdatedAt: now}
	encoded := try.To(pages.EncodeCursor(&cursor)).OrFatal(t)

	type then struct {
		status int
		query  *domain.VideoFindQuery
	}

	for name, testcase := range map[string]struct {
		when string
		then
	}{
		"without parameters, it queries the first page with the default limit": {
			when: "/api/videos",
			then: then{
				status: http.StatusOK,
				query: &domain.VideoFindQuery{
					PageRequest: domain.PageRequest[domain.Cursor]{Limit: domain.DefaultPageLimit},
				},
			},
		},
		"it passes cursor, limit and filters": {
			when: "/api/videos?limit=20&cursor=" + *encoded + "&categoryId=" + categoryId + "&userId=" + alice.Id,
			then: then{
				status: http.StatusOK,
				query: &domain.VideoFindQuery{
					PageRequest: domain.PageRequest[domain.Cursor]{Limit: 20, Cursor: &cursor},
					CategoryId:  pointer.Ref(categoryId),
					UserId:      pointer.Ref(alice.Id),
				},
			},
		},
		"limit over the maximum is rejected": {
			when: "/api/videos?limit=101",
			then: then{status: http.StatusBadRequest},
		},
		"limit 0 is rejected": {
			when: "/api/videos?limit=0",
			then: then{status: http.StatusBadRequest},
		},
		"malformed cursor is rejected": {
			when: "/api/videos?cursor=***",
			then: then{status: http.StatusBadRequest},
		},
		"malformed category is rejected": {
			when: "/api/videos?categoryId=music",
			then: then{status: http.StatusBadRequest},
		},
	} {
		t.Run(name, func(t *testing.T) {
			dbVideo := mockvideo.New()
			dbVideo.Impl.Find = func(context.Context, domain.VideoFindQuery) (domain.Page[domain.VideoSummary, domain.Cursor], error) {
				return domain.Page[domain.VideoSummary, domain.Cursor]{
					Items: []domain.VideoSummary{
						{Video: video(alice), User: alice, ViewCount: 3, ListedAt: now},
					},
					NextCursor: &cursor,
				}, nil
			}

			e := echo.New()
			c, rec := httptestutil.Get(e, testcase.when)
			err := handlers.FindVideosHandler(dbVideo)(c)

			if got := statusOf(t, err, rec); got != testcase.then.status {
				t.Fatalf("unexpected status: %d", got)
			}
			if testcase.then.query == nil {
				if dbVideo.Calls.Find.Times() != 0 {
					t.Errorf("repository is called: %+v", dbVideo.Calls.Find)
				}
				return
			}

			if diff := cmp.Diff([]domain.VideoFindQuery{*testcase.then.query}, []domain.VideoFindQuery(dbVideo.Calls.Find)); diff != "" {
				t.Errorf("query (-want +got):\n%s", diff)
			}

			body := decode[pages.Page[apivideos.Summary]](t, rec)
			if len(body.Items) != 1 || body.Items[0].VideoId != videoId || body.Items[0].ViewCount != 3 {
				t.Errorf("unexpected items: %+v", body.Items)
			}
			if body.NextCursor == nil || *body.NextCursor != *encoded {
				t.Errorf("unexpected cursor: %v", body.NextCursor)
			}
		})
	}
}

func TestGetVideoHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		viewer   *domain.User
		videoId  string
		err      error
		status   int
		viewerId *string
	}{
		"anonymous viewer gets the video": {
			videoId: videoId, status: http.StatusOK,
		},
		"signed-in viewer is passed to the repository": {
			viewer: &bob, videoId: videoId, status: http.StatusOK, viewerId: &bob.Id,
		},
		"missing video is 404": {
			videoId: videoId, err: domerr.ErrMissing, status: http.StatusNotFound,
		},
		"malformed id is 404": {
			videoId: "not-an-id", status: http.StatusNotFound,
		},
	} {
		t.Run(name, func(t *testing.T) {
			dbVideo := mockvideo.New()
			dbVideo.Impl.GetDetail = func(context.Context, string, *string) (domain.VideoDetail, error) {
				if testcase.err != nil {
					return domain.VideoDetail{}, testcase.err
				}
				return domain.VideoDetail{
					Video:          video(alice),
					User:           domain.UserProfile{User: alice, SubscriberCount: 1},
					ViewerReaction: pointer.Ref(domain.Like),
				}, nil
			}

			e := echo.New()
			c, rec := httptestutil.Get(e, "/api/videos/"+testcase.videoId)
			httptestutil.Params(c, []string{"videoId"}, testcase.videoId)
			if testcase.viewer != nil {
				signedIn(c, *testcase.viewer)
			}

			err := handlers.GetVideoHandler(dbVideo)(c)
			if got := statusOf(t, err, rec); got != testcase.status {
				t.Fatalf("unexpected status: %d", got)
			}
			if testcase.status != http.StatusOK {
				return
			}

			call := dbVideo.Calls.GetDetail[0]
			if call.VideoId != videoId || !cmp.Equal(call.ViewerId, testcase.viewerId) {
				t.Errorf("unexpected call: %+v", call)
			}
			body := decode[apivideos.Detail](t, rec)
			if body.ViewerReaction == nil || *body.ViewerReaction != "like" {
				t.Errorf("unexpected viewer reaction: %v", body.ViewerReaction)
			}
		})
	}
}

func TestCreateVideoHandler(t *testing.T) {
	t.Run("it creates an upload and a private untitled video", func(t *testing.T) {
		host := mockmux.New()
		host.Impl.CreateUpload = func(context.Context, string) (mux.Upload, error) {
			return mux.Upload{Id: "upload-1", Url: "https://storage.example.com/upload-1"}, nil
		}
		dbVideo := mockvideo.New()
		dbVideo.Impl.New = func(_ context.Context, nv domain.NewVideo) (domain.Video, error) {
			return domain.Video{
				Id: videoId, Title: nv.Title, UserId: nv.UserId, Visibility: domain.Private,
				Hosting: domain.Hosting{UploadId: &nv.UploadId, Status: pointer.Ref(domain.HostingWaiting)},
			}, nil
		}

		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos", nil)
		signedIn(c, alice)

		err := handlers.CreateVideoHandler(dbVideo, host)(c)
		if got := statusOf(t, err, rec); got != http.StatusCreated {
			t.Fatalf("unexpected status: %d", got)
		}

		if diff := cmp.Diff([]string{alice.Id}, host.Calls.CreateUpload); diff != "" {
			t.Errorf("passthrough (-want +got):\n%s", diff)
		}
		want := domain.NewVideo{UserId: alice.Id, UploadId: "upload-1"}
		if diff := cmp.Diff([]domain.NewVideo{want}, []domain.NewVideo(dbVideo.Calls.New)); diff != "" {
			t.Errorf("new video (-want +got):\n%s", diff)
		}
		body := decode[apivideos.Created](t, rec)
		if body.UploadUrl != "https://storage.example.com/upload-1" || body.Video.Visibility != "private" {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("when the video host fails, no videos are created", func(t *testing.T) {
		host := mockmux.New()
		host.Impl.CreateUpload = func(context.Context, string) (mux.Upload, error) {
			return mux.Upload{}, errors.New("fake error")
		}
		dbVideo := mockvideo.New()

		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos", nil)
		signedIn(c, alice)

		err := handlers.CreateVideoHandler(dbVideo, host)(c)
		if got := statusOf(t, err, rec); got != http.StatusServiceUnavailable {
			t.Fatalf("unexpected status: %d", got)
		}
		if dbVideo.Calls.New.Times() != 0 {
			t.Errorf("video is created: %+v", dbVideo.Calls.New)
		}
	})

	t.Run("when the video cannot be registered, the upload is cancelled", func(t *testing.T) {
		for name, cancelErr := range map[string]error{
			"cancelled":           nil,
			"cannot be cancelled": errors.New("fake error"),
		} {
			t.Run(name, func(t *testing.T) {
				host := mockmux.New()
				host.Impl.CreateUpload = func(context.Context, string) (mux.Upload, error) {
					return mux.Upload{Id: "upload-1", Url: "https://storage.example.com/upload-1"}, nil
				}
				host.Impl.CancelUpload = func(context.Context, string) error { return cancelErr }
				dbVideo := mockvideo.New()
				dbVideo.Impl.New = func(context.Context, domain.NewVideo) (domain.Video, error) {
					return domain.Video{}, errors.New("fake error")
				}

				e := echo.New()
				c, rec := httptestutil.Post(e, "/api/videos", nil)
				signedIn(c, alice)

				err := handlers.CreateVideoHandler(dbVideo, host)(c)
				if got := statusOf(t, err, rec); got != http.StatusInternalServerError {
					t.Fatalf("unexpected status: %d", got)
				}
				if diff := cmp.Diff([]string{"upload-1"}, host.Calls.CancelUpload); diff != "" {
					t.Errorf("cancelled uploads (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos", nil)

		err := handlers.CreateVideoHandler(mockvideo.New(), mockmux.New())(c)
		if got := statusOf(t, err, rec); got != http.StatusUnauthorized {
			t.Fatalf("unexpected status: %d", got)
		}
	})
}

func TestUpdateVideoHandler(t *testing.T) {
	type then struct {
		status int
		update *domain.VideoUpdate
	}

	for name, testcase := range map[string]struct {
		when string
		then
	}{
		"title and visibility are updated": {
			when: `{"title": "  dogs ", "visibility": "public"}`,
			then: then{
				status: http.StatusOK,
				update: &domain.VideoUpdate{
					Title:      pointer.Ref("dogs"),
					Visibility: pointer.Ref(domain.Public),
				},
			},
		},
		"empty category unsets the category": {
			when: `{"categoryId": ""}`,
			then: then{
				status: http.StatusOK,
				update: &domain.VideoUpdate{ClearCategory: true},
			},
		},
		"category and description are updated": {
			when: `{"categoryId": "` + categoryId + `", "description": "about dogs"}`,
			then: then{
				status: http.StatusOK,
				update: &domain.VideoUpdate{
					CategoryId:  pointer.Ref(categoryId),
					Description: pointer.Ref("about dogs"),
				},
			},
		},
		"blank title is rejected": {
			when: `{"title": "   "}`,
			then: then{status: http.StatusBadRequest},
		},
		"too long title is rejected": {
			when: `{"title": "` + strings.Repeat("a", 101) + `"}`,
			then: then{status: http.StatusBadRequest},
		},
		"unknown visibility is rejected": {
			when: `{"visibility": "unlisted"}`,
			then: then{status: http.StatusBadRequest},
		},
		"empty update is rejected": {
			when: `{}`,
			then: then{status: http.StatusBadRequest},
		},
		"malformed JSON is rejected": {
			when: `{"title": `,
			then: then{status: http.StatusBadRequest},
		},
	} {
		t.Run(name, func(t *testing.T) {
			dbVideo := mockvideo.New()
			dbVideo.Impl.Update = func(context.Context, string, string, domain.VideoUpdate) (domain.Video, error) {
				return video(alice), nil
			}

			e := echo.New()
			c, rec := httptestutil.Put(
				e, "/api/videos/"+videoId, strings.NewReader(testcase.when),
				httptestutil.ContentType(echo.MIMEApplicationJSON),
			)
			httptestutil.Params(c, []string{"videoId"}, videoId)
			signedIn(c, alice)

			err := handlers.UpdateVideoHandler(dbVideo)(c)
			if got := statusOf(t, err, rec); got != testcase.then.status {
				t.Fatalf("unexpected status: %d", got)
			}
			if testcase.then.update == nil {
				if dbVideo.Calls.Update.Times() != 0 {
					t.Errorf("repository is called: %+v", dbVideo.Calls.Update)
				}
				return
			}

			if dbVideo.Calls.Update.Times() != 1 {
				t.Fatalf("unexpected calls: %+v", dbVideo.Calls.Update)
			}
			call := dbVideo.Calls.Update[0]
			if call.VideoId != videoId || call.UserId != alice.Id {
				t.Errorf("unexpected target: %+v", call)
			}
			if diff := cmp.Diff(*testcase.then.update, call.Update); diff != "" {
				t.Errorf("update (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("non-owner gets 404", func(t *testing.T) {
		dbVideo := mockvideo.New()
		dbVideo.Impl.Update = func(context.Context, string, string, domain.VideoUpdate) (domain.Video, error) {
			return domain.Video{}, domerr.ErrMissing
		}

		e := echo.New()
		c, rec := httptestutil.Put(
			e, "/api/videos/"+videoId, strings.NewReader(`{"title": "mine"}`),
			httptestutil.ContentType(echo.MIMEApplicationJSON),
		)
		httptestutil.Params(c, []string{"videoId"}, videoId)
		signedIn(c, bob)

		err := handlers.UpdateVideoHandler(dbVideo)(c)
		if got := statusOf(t, err, rec); got != http.StatusNotFound {
			t.Fatalf("unexpected status: %d", got)
		}
	})
}

func TestDeleteVideoHandler(t *testing.T) {
	t.Run("it removes stored files and the asset", func(t *testing.T) {
		dbVideo := mockvideo.New()
		dbVideo.Impl.Delete = func(context.Context, string, string) (domain.Video, error) {
			return video(alice), nil
		}
		host := mockmux.New()
		host.Impl.DeleteAsset = func(context.Context, string) error { return nil }
		st := mockstorage.New()
		st.Impl.Delete = func(_ context.Context, key string) error {
			if strings.Contains(key, "preview") {
				return errors.New("fake error")
			}
			return nil
		}

		e := echo.New()
		c, rec := httptestutil.Delete(e, "/api/videos/"+videoId)
		httptestutil.Params(c, []string{"videoId"}, videoId)
		signedIn(c, alice)

		err := handlers.DeleteVideoHandler(dbVideo, host, st)(c)
		if got := statusOf(t, err, rec); got != http.StatusOK {
			t.Fatalf("unexpected status: %d", got)
		}

		if diff := cmp.Diff(
			[]string{"videos/v/thumbnail-old.jpg", "videos/v/preview-old.gif"},
			st.Calls.Delete,
		); diff != "" {
			t.Errorf("deleted keys (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"asset-1"}, host.Calls.DeleteAsset); diff != "" {
			t.Errorf("deleted assets (-want +got):\n%s", diff)
		}
	})

	t.Run("missing video is 404 and nothing is cleaned up", func(t *testing.T) {
		dbVideo := mockvideo.New()
		dbVideo.Impl.Delete = func(context.Context, string, string) (domain.Video, error) {
			return domain.Video{}, domerr.ErrMissing
		}
		host := mockmux.New()
		st := mockstorage.New()

		e := echo.New()
		c, rec := httptestutil.Delete(e, "/api/videos/"+videoId)
		httptestutil.Params(c, []string{"videoId"}, videoId)
		signedIn(c, bob)

		err := handlers.DeleteVideoHandler(dbVideo, host, st)(c)
		if got := statusOf(t, err, rec); got != http.StatusNotFound {
			t.Fatalf("unexpected status: %d", got)
		}
		if len(st.Calls.Delete) != 0 || len(host.Calls.DeleteAsset) != 0 {
			t.Errorf("cleaned up: %+v, %+v", st.Calls.Delete, host.Calls.DeleteAsset)
		}
	})
}

func TestRestoreThumbnailHandler(t *testing.T) {
	newMocks := func(v domain.Video) (*mockvideo.VideoInterface, *mockmux.Host, *mockstorage.Storage) {
		dbVideo := mockvideo.New()
		dbVideo.Impl.Get = func(context.Context, kvideo.HostingKey) (domain.Video, error) {
			return v, nil
		}
		dbVideo.Impl.Update = func(_ context.Context, _ string, _ string, u domain.VideoUpdate) (domain.Video, error) {
			updated := v
			updated.Thumbnail = *u.Thumbnail
			return updated, nil
		}
		st := mockstorage.New()
		st.Impl.PutFromUrl = func(_ context.Context, key string, _ string) (domain.Media, error) {
			return domain.Media{Url: pointer.Ref("https://cdn.example.com/" + key), Key: &key}, nil
		}
		st.Impl.Delete = func(context.Context, string) error { return nil }
		return dbVideo, mockmux.New(), st
	}

	t.Run("it copies the thumbnail of the video host and removes the old one", func(t *testing.T) {
		dbVideo, host, st := newMocks(video(alice))

		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos/"+videoId+"/thumbnail/restore", nil)
		httptestutil.Params(c, []string{"videoId"}, videoId)
		signedIn(c, alice)

		err := handlers.RestoreThumbnailHandler(dbVideo, host, st)(c)
		if got := statusOf(t, err, rec); got != http.StatusOK {
			t.Fatalf("unexpected status: %d", got)
		}

		if len(st.Calls.PutFromUrl) != 1 {
			t.Fatalf("unexpected copies: %+v", st.Calls.PutFromUrl)
		}
		put := st.Calls.PutFromUrl[0]
		if put.Src != "https://image.example.com/playback-1/thumbnail.jpg" {
			t.Errorf("unexpected source: %s", put.Src)
		}
		if !strings.HasPrefix(put.Key, "videos/"+videoId+"/thumbnail-") {
			t.Errorf("unexpected key: %s", put.Key)
		}
		if diff := cmp.Diff([]string{"videos/v/thumbnail-old.jpg"}, st.Calls.Delete); diff != "" {
			t.Errorf("deleted keys (-want +got):\n%s", diff)
		}

		body := decode[apivideos.Video](t, rec)
		if body.ThumbnailUrl == nil || *body.ThumbnailUrl != "https://cdn.example.com/"+put.Key {
			t.Errorf("unexpected thumbnail: %v", body.ThumbnailUrl)
		}
	})

	t.Run("non-owner gets 404", func(t *testing.T) {
		dbVideo, host, st := newMocks(video(alice))

		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos/"+videoId+"/thumbnail/restore", nil)
		httptestutil.Params(c, []string{"videoId"}, videoId)
		signedIn(c, bob)

		err := handlers.RestoreThumbnailHandler(dbVideo, host, st)(c)
		if got := statusOf(t, err, rec); got != http.StatusNotFound {
			t.Fatalf("unexpected status: %d", got)
		}
		if len(st.Calls.PutFromUrl) != 0 {
			t.Errorf("copied: %+v", st.Calls.PutFromUrl)
		}
	})

	t.Run("video without playback is rejected", func(t *testing.T) {
		v := video(alice)
		v.Hosting.PlaybackId = nil
		dbVideo, host, st := newMocks(v)

		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos/"+videoId+"/thumbnail/restore", nil)
		httptestutil.Params(c, []string{"videoId"}, videoId)
		signedIn(c, alice)

		err := handlers.RestoreThumbnailHandler(dbVideo, host, st)(c)
		if got := statusOf(t, err, rec); got != http.StatusBadRequest {
			t.Fatalf("unexpected status: %d", got)
		}
	})
}

func TestRevalidateVideoHandler(t *testing.T) {
	dbVideo := mockvideo.New()
	dbVideo.Impl.Get = func(context.Context, kvideo.HostingKey) (domain.Video, error) {
		return video(alice), nil
	}
	dbVideo.Impl.UpdateHosting = func(context.Context, kvideo.HostingKey, domain.HostingUpdate) (domain.Video, error) {
		return video(alice), nil
	}
	host := mockmux.New()
	host.Impl.GetAsset = func(context.Context, string) (mux.Asset, error) {
		return mux.Asset{
			Id: "asset-1", Status: "ready", UploadId: "upload-1",
			PlaybackIds: []mux.PlaybackId{{Id: "playback-2", Policy: "public"}},
			Tracks: []mux.Track{
				{Id: "video-track", Type: "video", Status: "ready"},
				{Id: "text-track", Type: "text", Status: "ready", LanguageCode: "en"},
			},
			Duration: 12.5,
		}, nil
	}

	e := echo.New()
	c, rec := httptestutil.Post(e, "/api/videos/"+videoId+"/revalidate", nil)
	httptestutil.Params(c, []string{"videoId"}, videoId)
	signedIn(c, alice)

	err := handlers.RevalidateVideoHandler(dbVideo, host)(c)
	if got := statusOf(t, err, rec); got != http.StatusOK {
		t.Fatalf("unexpected status: %d", got)
	}

	if diff := cmp.Diff([]string{"asset-1"}, host.Calls.GetAsset); diff != "" {
		t.Errorf("assets (-want +got):\n%s", diff)
	}
	if dbVideo.Calls.UpdateHosting.Times() != 1 {
		t.Fatalf("unexpected calls: %+v", dbVideo.Calls.UpdateHosting)
	}
	call := dbVideo.Calls.UpdateHosting[0]
	if call.Key != kvideo.ByVideoId(videoId) {
		t.Errorf("unexpected key: %s", call.Key)
	}
	want := domain.HostingUpdate{
		Status:      pointer.Ref("ready"),
		AssetId:     pointer.Ref("asset-1"),
		PlaybackId:  pointer.Ref("playback-2"),
		TrackId:     pointer.Ref("text-track"),
		TrackStatus: pointer.Ref("ready"),
		Duration:    pointer.Ref[int64](12500),
	}
	if diff := cmp.Diff(want, call.Update); diff != "" {
		t.Errorf("update (-want +got):\n%s", diff)
	}
}
