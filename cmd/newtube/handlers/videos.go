package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	apivideos "github.com/lucas-ellwanger/newtube/pkg/api/types/videos"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
)

const maxTitleLength = 100

func FindVideosHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		query, err := func(c echo.Context) (domain.VideoFindQuery, error) {
			req, err := pageRequest[domain.Cursor](c)
			if err != nil {
				return domain.VideoFindQuery{}, err
			}
			categoryId, err := optionalId(c, "categoryId")
			if err != nil {
				return domain.VideoFindQuery{}, err
			}
			userId, err := optionalId(c, "userId")
			if err != nil {
				return domain.VideoFindQuery{}, err
			}
			return domain.VideoFindQuery{PageRequest: req, CategoryId: categoryId, UserId: userId}, nil
		}(c)
		if err != nil {
			return err
		}

		page, err := dbVideo.Find(c.Request().Context(), query)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

func FindTrendingVideosHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := pageRequest[domain.TrendingCursor](c)
		if err != nil {
			return err
		}

		page, err := dbVideo.FindTrending(c.Request().Context(), req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

func FindSubscribedVideosHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		req, err := pageRequest[domain.Cursor](c)
		if err != nil {
			return err
		}

		page, err := dbVideo.FindSubscribed(c.Request().Context(), user.Id, req)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return respondPage(c, page, apivideos.ComposeSummary)
	}
}

func GetVideoHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}

		detail, err := dbVideo.GetDetail(c.Request().Context(), videoId, auth.ViewerId(c))
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apivideos.ComposeDetail(detail))
	}
}

// CreateVideoHandler issues a direct upload on the video host and registers a video waiting for it.
func CreateVideoHandler(dbVideo kvideo.VideoInterface, host mux.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		upload, err := host.CreateUpload(ctx, user.Id)
		if err != nil {
			return apierr.ServiceUnavailable("video host is not available. retry later.", err)
		}

		video, err := dbVideo.New(ctx, domain.NewVideo{UserId: user.Id, UploadId: upload.Id})
		if err != nil {
			if cerr := host.CancelUpload(context.WithoutCancel(ctx), upload.Id); cerr != nil {
				c.Logger().Warnf("upload %s (by user %s) is orphaned: cannot cancel: %s", upload.Id, user.Id, cerr)
			}
			return apierr.FromDomain(err)
		}

		return c.JSON(http.StatusCreated, apivideos.Created{
			Video:     apivideos.ComposeVideo(video),
			UploadUrl: upload.Url,
		})
	}
}

func asVideoUpdate(req apivideos.Update) (domain.VideoUpdate, error) {
	u := domain.VideoUpdate{Description: req.Description}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || maxTitleLength < len([]rune(title)) {
			return domain.VideoUpdate{}, apierr.BadRequest(`"title" should have 1 to 100 characters`, nil)
		}
		u.Title = &title
	}

	if req.CategoryId != nil {
		if *req.CategoryId == "" {
			u.ClearCategory = true
		} else if _, err := uuid.Parse(*req.CategoryId); err != nil {
			return domain.VideoUpdate{}, apierr.BadRequest(`"categoryId" should be an id of categories`, err)
		} else {
			u.CategoryId = req.CategoryId
		}
	}

	if req.Visibility != nil {
		v, err := domain.AsVisibility(*req.Visibility)
		if err != nil {
			return domain.VideoUpdate{}, apierr.BadRequest(`"visibility" should be "public" or "private"`, err)
		}
		u.Visibility = &v
	}

	if u.IsEmpty() {
		return domain.VideoUpdate{}, apierr.BadRequest("nothing to update", nil)
	}
	return u, nil
}

func UpdateVideoHandler(dbVideo kvideo.VideoInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}
		req, err := bind[apivideos.Update](c)
		if err != nil {
			return err
		}
		update, err := asVideoUpdate(req)
		if err != nil {
			return err
		}

		video, err := dbVideo.Update(c.Request().Context(), videoId, user.Id, update)
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apivideos.ComposeVideo(video))
	}
}

// DeleteVideoHandler removes the video, then its files in the storage and its asset on the video host.
//
// Failures on cleaning up files and assets are logged, and do not fail the request.
func DeleteVideoHandler(dbVideo kvideo.VideoInterface, host mux.Interface, st storage.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		videoId, err := idParam(c, "videoId")
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		video, err := dbVideo.Delete(ctx, videoId, user.Id)
		if err != nil {
			return apierr.FromDomain(err)
		}

		discardMedia(ctx, c.Logger(), st, video.Id, video.Thumbnail, video.Preview)
		if video.Hosting.AssetId != nil {
			if err := host.DeleteAsset(ctx, *video.Hosting.AssetId); err != nil {
				c.Logger().Warnf("video %s: cannot delete asset %s: %s", video.Id, *video.Hosting.AssetId, err)
			}
		}

		return c.JSON(http.StatusOK, apivideos.ComposeVideo(video))
	}
}

// ownedVideo gets the video only when the viewer owns it.
func ownedVideo(c echo.Context, dbVideo kvideo.VideoInterface, userId string) (domain.Video, error) {
	videoId, err := idParam(c, "videoId")
	if err != nil {
		return domain.Video{}, err
	}
	video, err := dbVideo.Get(c.Request().Context(), kvideo.ByVideoId(videoId))
	if err != nil {
		return domain.Video{}, apierr.FromDomain(err)
	}
	if !video.IsOwnedBy(userId) {
		return domain.Video{}, apierr.NotFound()
	}
	return video, nil
}

// RestoreThumbnailHandler replaces the thumbnail with the one the video host generated.
func RestoreThumbnailHandler(dbVideo kvideo.VideoInterface, host mux.Interface, st storage.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		video, err := ownedVideo(c, dbVideo, user.Id)
		if err != nil {
			return err
		}
		if video.Hosting.PlaybackId == nil {
			return apierr.BadRequest("the video is not ready yet.", nil)
		}
		ctx := c.Request().Context()

		thumbnail, err := st.PutFromUrl(
			ctx,
			storage.ThumbnailKey(video.Id, ".jpg"),
			host.ThumbnailUrl(*video.Hosting.PlaybackId),
		)
		if err != nil {
			return apierr.ServiceUnavailable("cannot copy the thumbnail. retry later.", err)
		}

		updated, err := dbVideo.Update(ctx, video.Id, user.Id, domain.VideoUpdate{Thumbnail: &thumbnail})
		if err != nil {
			discardMedia(ctx, c.Logger(), st, video.Id, thumbnail)
			return apierr.FromDomain(err)
		}

		discardMedia(ctx, c.Logger(), st, video.Id, video.Thumbnail)
		return c.JSON(http.StatusOK, apivideos.ComposeVideo(updated))
	}
}

// discardMedia deletes stored objects of media, best effort.
func discardMedia(ctx context.Context, logger echo.Logger, st storage.Interface, videoId string, media ...domain.Media) {
	for _, m := range media {
		if m.Key == nil {
			continue
		}
		if err := st.Delete(ctx, *m.Key); err != nil {
			logger.Warnf("video %s: cannot delete %s: %s", videoId, *m.Key, err)
		}
	}
}

// hostingUpdate converts the asset on the video host to a change of the video.
func hostingUpdate(asset mux.Asset) domain.HostingUpdate {
	u := domain.HostingUpdate{Status: &asset.Status, AssetId: &asset.Id}
	if pid, ok := asset.PlaybackId(); ok {
		u.PlaybackId = &pid
	}
	if asset.Duration != 0 {
		d := asset.DurationMillis()
		u.Duration = &d
	}
	if t, ok := asset.TextTrack(); ok {
		u.TrackId = &t.Id
		u.TrackStatus = &t.Status
	}
	return u
}

// RevalidateVideoHandler reloads the state of the video from the video host.
func RevalidateVideoHandler(dbVideo kvideo.VideoInterface, host mux.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := viewer(c)
		if err != nil {
			return err
		}
		video, err := ownedVideo(c, dbVideo, user.Id)
		if err != nil {
			return err
		}
		if video.Hosting.AssetId == nil {
			return apierr.BadRequest("the video has not been uploaded yet.", nil)
		}
		ctx := c.Request().Context()

		asset, err := host.GetAsset(ctx, *video.Hosting.AssetId)
		if errors.Is(err, mux.ErrNotFound) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.ServiceUnavailable("video host is not available. retry later.", err)
		}

		updated, err := dbVideo.UpdateHosting(ctx, kvideo.ByVideoId(video.Id), hostingUpdate(asset))
		if err != nil {
			return apierr.FromDomain(err)
		}
		return c.JSON(http.StatusOK, apivideos.ComposeVideo(updated))
	}
}
