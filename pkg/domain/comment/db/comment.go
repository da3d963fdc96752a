package db

import (
	"context"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

type CommentInterface interface {
	// New posts a comment.
	//
	// Returns
	//
	// - Comment
	//
	// - error:
	// ErrMissing when the video or the parent comment is not found.
	// ErrReplyToReply when the parent is a reply.
	// ErrInvalidArgument when the parent is on another video.
	New(context.Context, domain.NewComment) (domain.Comment, error)

	// Delete removes the comment written by the user, and its replies.
	//
	// Args
	//
	// - context.Context
	//
	// - string: comment id
	//
	// - string: author id
	//
	// Returns
	//
	// - Comment: removed comment
	//
	// - error: ErrMissing when not found or the user is not the author.
	Delete(context.Context, string, string) (domain.Comment, error)

	// Find lists comments on a video with the total number of comments on the video.
	Find(context.Context, domain.CommentFindQuery) (domain.CommentPage, error)
}
