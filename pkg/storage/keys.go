package storage

import (
	"path"

	"github.com/google/uuid"
)

// ThumbnailKey names a new object for a thumbnail of the video.
//
// Keys are unique per call, so that a new thumbnail never overwrites the one in use.
func ThumbnailKey(videoId string, ext string) string {
	return path.Join("videos", videoId, "thumbnail-"+uuid.NewString()+ext)
}

// PreviewKey names a new object for a preview of the video.
func PreviewKey(videoId string, ext string) string {
	return path.Join("videos", videoId, "preview-"+uuid.NewString()+ext)
}
