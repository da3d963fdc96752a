package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

type ViewInterface interface {
	// Record registers that the user watched the video.
	//
	// When the user has watched the video already, the existing view is returned unchanged.
	//
	// It returns ErrMissing when the video is not found.
	Record(ctx context.Context, userId string, videoId string) (domain.VideoView, error)
}
