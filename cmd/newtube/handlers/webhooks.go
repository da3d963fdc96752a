package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	kuser "github.com/lucas-ellwanger/newtube/pkg/domain/user/db"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	"github.com/lucas-ellwanger/newtube/pkg/metrics"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
)

// maxWebhookBody is the largest webhook payload accepted.
const maxWebhookBody = 1 << 20

// SignatureVerifier checks a signed request.
type SignatureVerifier interface {
	Verify(header http.Header, body []byte) error
}

// verifiedBody reads the request body and checks its signature.
func verifiedBody(c echo.Context, v SignatureVerifier) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return nil, apierr.BadRequest("cannot read the body", err)
	}
	if err := v.Verify(c.Request().Header, body); err != nil {
		return nil, apierr.Unauthorized("signature is not valid", err)
	}
	return body, nil
}

type webhookAck struct {
	Type    string `json:"type"`
	Ignored bool   `json:"ignored,omitempty"`
}

// MuxWebhookHandler follows the state of assets on the video host.
//
// Events for videos removed already are acknowledged and ignored.
func MuxWebhookHandler(
	dbVideo kvideo.VideoInterface,
	host mux.Interface,
	st storage.Interface,
	verifier SignatureVerifier,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := verifiedBody(c, verifier)
		if err != nil {
			return err
		}
		ev, err := mux.ParseEvent(body)
		if err != nil {
			return apierr.BadRequest("malformed event", err)
		}
		metrics.WebhookEvent("mux", ev.Type)
		ctx := c.Request().Context()

		switch ev.Type {
		case mux.AssetCreated, mux.AssetErrored, mux.AssetReady, mux.AssetDeleted:
			asset, err := ev.Asset()
			if err != nil {
				return apierr.BadRequest("malformed event", err)
			}
			if asset.UploadId == "" {
				return apierr.BadRequest("the asset has no upload id", nil)
			}
			err = onAsset(ctx, c.Logger(), dbVideo, host, st, ev.Type, asset)
			if errors.Is(err, domerr.ErrMissing) {
				c.Logger().Infof("%s: no videos for upload %s", ev.Type, asset.UploadId)
				return c.JSON(http.StatusOK, webhookAck{Type: ev.Type, Ignored: true})
			} else if err != nil {
				return err
			}
		case mux.AssetTrackReady:
			track, err := ev.Track()
			if err != nil {
				return apierr.BadRequest("malformed event", err)
			}
			if track.AssetId == "" {
				return apierr.BadRequest("the track has no asset id", nil)
			}
			_, err = dbVideo.UpdateHosting(ctx, kvideo.ByAssetId(track.AssetId), domain.HostingUpdate{
				TrackId: &track.Id, TrackStatus: &track.Status,
			})
			if errors.Is(err, domerr.ErrMissing) {
				c.Logger().Infof("%s: no videos for asset %s", ev.Type, track.AssetId)
				return c.JSON(http.StatusOK, webhookAck{Type: ev.Type, Ignored: true})
			} else if err != nil {
				return apierr.InternalServerError(err)
			}
		default:
			return c.JSON(http.StatusOK, webhookAck{Type: ev.Type, Ignored: true})
		}

		return c.JSON(http.StatusOK, webhookAck{Type: ev.Type})
	}
}

func onAsset(
	ctx context.Context,
	logger echo.Logger,
	dbVideo kvideo.VideoInterface,
	host mux.Interface,
	st storage.Interface,
	typ string,
	asset mux.Asset,
) error {
	key := kvideo.ByUploadId(asset.UploadId)

	switch typ {
	case mux.AssetCreated:
		_, err := dbVideo.UpdateHosting(ctx, key, domain.HostingUpdate{
			Status: &asset.Status, AssetId: &asset.Id,
		})
		return wrapDomain(err)
	case mux.AssetErrored:
		_, err := dbVideo.UpdateHosting(ctx, key, domain.HostingUpdate{Status: &asset.Status})
		return wrapDomain(err)
	case mux.AssetDeleted:
		_, err := dbVideo.DeleteBy(ctx, key)
		return wrapDomain(err)
	}

	// ready
	video, err := dbVideo.Get(ctx, key)
	if err != nil {
		return wrapDomain(err)
	}
	pid, ok := asset.PlaybackId()
	if !ok {
		return apierr.BadRequest("the asset has no playback ids", nil)
	}

	// copies not referred by the video are discarded.
	update := hostingUpdate(asset)
	thumbnail, err := st.PutFromUrl(ctx, storage.ThumbnailKey(video.Id, ".jpg"), host.ThumbnailUrl(pid))
	if err != nil {
		return apierr.ServiceUnavailable("cannot copy the thumbnail", err)
	}
	preview, err := st.PutFromUrl(ctx, storage.PreviewKey(video.Id, ".gif"), host.PreviewUrl(pid))
	if err != nil {
		discardMedia(ctx, logger, st, video.Id, thumbnail)
		return apierr.ServiceUnavailable("cannot copy the preview", err)
	}
	update.Thumbnail = &thumbnail
	update.Preview = &preview

	if _, err := dbVideo.UpdateHosting(ctx, key, update); err != nil {
		discardMedia(ctx, logger, st, video.Id, thumbnail, preview)
		return wrapDomain(err)
	}
	discardMedia(ctx, logger, st, video.Id, video.Thumbnail, video.Preview)
	return nil
}

// wrapDomain keeps ErrMissing as is, and converts others into HTTP errors.
func wrapDomain(err error) error {
	if err == nil || errors.Is(err, domerr.ErrMissing) {
		return err
	}
	return apierr.FromDomain(err)
}

// userEvent is a user synchronization event from the authentication provider.
type userEvent struct {
	Type string `json:"type"`
	Data struct {
		Id        string  `json:"id"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		ImageUrl  string  `json:"image_url"`
	} `json:"data"`
}

func (ev userEvent) name() string {
	parts := []string{}
	for _, p := range []*string{ev.Data.FirstName, ev.Data.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	if len(parts) == 0 {
		return anonymousName
	}
	return strings.Join(parts, " ")
}

// anonymousName is the name of users who have neither first nor last names.
const anonymousName = "Anonymous"

// Types of user synchronization events.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// UsersWebhookHandler synchronizes users with the authentication provider.
func UsersWebhookHandler(dbUser kuser.UserInterface, verifier SignatureVerifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := verifiedBody(c, verifier)
		if err != nil {
			return err
		}
		ev := userEvent{}
		if err := json.Unmarshal(body, &ev); err != nil {
			return apierr.BadRequest("malformed event", err)
		}
		metrics.WebhookEvent("users", ev.Type)
		if ev.Data.Id == "" {
			return apierr.BadRequest("the event has no user id", nil)
		}
		ctx := c.Request().Context()

		switch ev.Type {
		case UserCreated, UserUpdated:
			if _, err := dbUser.Upsert(ctx, domain.UserSpec{
				ExternalId: ev.Data.Id,
				Name:       ev.name(),
				ImageUrl:   ev.Data.ImageUrl,
			}); err != nil {
				return apierr.FromDomain(err)
			}
		case UserDeleted:
			err := dbUser.DeleteByExternalId(ctx, ev.Data.Id)
			if errors.Is(err, domerr.ErrMissing) {
				return c.JSON(http.StatusOK, webhookAck{Type: ev.Type, Ignored: true})
			} else if err != nil {
				return apierr.InternalServerError(err)
			}
		default:
			return c.JSON(http.StatusOK, webhookAck{Type: ev.Type, Ignored: true})
		}

		return c.JSON(http.StatusOK, webhookAck{Type: ev.Type})
	}
}
