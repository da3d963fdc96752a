// Package videos implements workflows generating titles, descriptions and thumbnails of videos.
package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lucas-ellwanger/newtube/pkg/ai"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	kvideo "github.com/lucas-ellwanger/newtube/pkg/domain/video/db"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
	"github.com/lucas-ellwanger/newtube/pkg/workflow"
)

// ErrNoTranscript means the video has no captions (yet).
var ErrNoTranscript = errors.New("transcript is not available")

type Workflows struct {
	videos  kvideo.VideoInterface
	host    mux.Interface
	ai      ai.Interface
	storage storage.Interface
}

func New(videos kvideo.VideoInterface, host mux.Interface, gen ai.Interface, st storage.Interface) *Workflows {
	return &Workflows{videos: videos, host: host, ai: gen, storage: st}
}

// Bodies returns workflow implementations by name.
func (w *Workflows) Bodies() map[domain.WorkflowName]workflow.Body {
	return map[domain.WorkflowName]workflow.Body{
		domain.GenerateTitle:       w.Title,
		domain.GenerateDescription: w.Description,
		domain.GenerateThumbnail:   w.Thumbnail,
	}
}

// target is the part of a video workflows need.
type target struct {
	Id           string  `json:"id"`
	UserId       string  `json:"userId"`
	PlaybackId   *string `json:"playbackId,omitempty"`
	TrackId      *string `json:"trackId,omitempty"`
	TrackStatus  *string `json:"trackStatus,omitempty"`
	ThumbnailKey *string `json:"thumbnailKey,omitempty"`
}

// permanentIfMissing stops retrying when the video has gone.
func permanentIfMissing(err error) error {
	if errors.Is(err, domerr.ErrMissing) {
		return workflow.Permanent(err)
	}
	return err
}

func input(r *workflow.Run) (domain.VideoWorkflowInput, error) {
	in := domain.VideoWorkflowInput{}
	if err := r.Input(&in); err != nil {
		return in, workflow.Permanent(err)
	}
	if in.VideoId == "" || in.UserId == "" {
		return in, workflow.Permanent(fmt.Errorf("%w: videoId and userId are required", domerr.ErrInvalidArgument))
	}
	return in, nil
}

func (w *Workflows) getVideo(ctx context.Context, r *workflow.Run, in domain.VideoWorkflowInput) (target, error) {
	return workflow.Step(ctx, r, "get-video", func(ctx context.Context) (target, error) {
		v, err := w.videos.Get(ctx, kvideo.ByVideoId(in.VideoId))
		if err != nil {
			return target{}, permanentIfMissing(err)
		}
		if !v.IsOwnedBy(in.UserId) {
			return target{}, workflow.Permanent(fmt.Errorf(
				"%w: video %s is not owned by %s", domerr.ErrMissing, in.VideoId, in.UserId,
			))
		}
		return target{
			Id:           v.Id,
			UserId:       v.UserId,
			PlaybackId:   v.Hosting.PlaybackId,
			TrackId:      v.Hosting.TrackId,
			TrackStatus:  v.Hosting.TrackStatus,
			ThumbnailKey: v.Thumbnail.Key,
		}, nil
	})
}

func (w *Workflows) getTranscript(ctx context.Context, r *workflow.Run, v target) (string, error) {
	return workflow.Step(ctx, r, "get-transcript", func(ctx context.Context) (string, error) {
		if v.PlaybackId == nil || v.TrackId == nil {
			return "", ErrNoTranscript
		}
		text, err := w.host.Transcript(ctx, *v.PlaybackId, *v.TrackId)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", workflow.Permanent(ErrNoTranscript)
		}
		return text, nil
	})
}

func (w *Workflows) update(ctx context.Context, r *workflow.Run, v target, u domain.VideoUpdate) error {
	_, err := workflow.Step(ctx, r, "update-video", func(ctx context.Context) (struct{}, error) {
		_, err := w.videos.Update(ctx, v.Id, v.UserId, u)
		return struct{}{}, permanentIfMissing(err)
	})
	return err
}

// truncate s to at most n runes.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return strings.TrimSpace(string(rs[:n]))
}

// Title generates the title from the transcript.
//
// steps: get-video, get-transcript, generate-title, update-video
func (w *Workflows) Title(ctx context.Context, r *workflow.Run) error {
	in, err := input(r)
	if err != nil {
		return err
	}
	v, err := w.getVideo(ctx, r, in)
	if err != nil {
		return err
	}
	transcript, err := w.getTranscript(ctx, r, v)
	if err != nil {
		return err
	}
	title, err := workflow.Step(ctx, r, "generate-title", func(ctx context.Context) (string, error) {
		t, err := w.ai.GenerateText(ctx, titlePrompt, transcript)
		if err != nil {
			return "", err
		}
		return truncate(strings.Trim(strings.TrimSpace(t), `"`), maxTitleLength), nil
	})
	if err != nil {
		return err
	}
	return w.update(ctx, r, v, domain.VideoUpdate{Title: &title})
}

// Description generates the description from the transcript.
//
// steps: get-video, get-transcript, generate-description, update-video
func (w *Workflows) Description(ctx context.Context, r *workflow.Run) error {
	in, err := input(r)
	if err != nil {
		return err
	}
	v, err := w.getVideo(ctx, r, in)
	if err != nil {
		return err
	}
	transcript, err := w.getTranscript(ctx, r, v)
	if err != nil {
		return err
	}
	description, err := workflow.Step(ctx, r, "generate-description", func(ctx context.Context) (string, error) {
		d, err := w.ai.GenerateText(ctx, descriptionPrompt, transcript)
		if err != nil {
			return "", err
		}
		return truncate(d, maxDescriptionLength), nil
	})
	if err != nil {
		return err
	}
	return w.update(ctx, r, v, domain.VideoUpdate{Description: &description})
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// Thumbnail draws a new thumbnail from the prompt, and replaces the stored one.
//
// steps: get-video, generate-thumbnail, update-video
func (w *Workflows) Thumbnail(ctx context.Context, r *workflow.Run) error {
	in, err := input(r)
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return workflow.Permanent(fmt.Errorf("%w: prompt is required", domerr.ErrInvalidArgument))
	}
	v, err := w.getVideo(ctx, r, in)
	if err != nil {
		return err
	}
	thumbnail, err := workflow.Step(ctx, r, "generate-thumbnail", func(ctx context.Context) (domain.Media, error) {
		img, err := w.ai.GenerateImage(ctx, in.Prompt, thumbnailAspectRatio)
		if err != nil {
			return domain.Media{}, err
		}
		m, err := w.storage.Put(ctx, storage.ThumbnailKey(v.Id, extension(img.MIMEType)), img.MIMEType, img.Bytes)
		if err != nil {
			return domain.Media{}, err
		}
		if v.ThumbnailKey != nil {
			// best effort
			_ = w.storage.Delete(ctx, *v.ThumbnailKey)
		}
		return m, nil
	})
	if err != nil {
		return err
	}
	return w.update(ctx, r, v, domain.VideoUpdate{Thumbnail: &thumbnail})
}
