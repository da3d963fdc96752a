package domain

import "time"

type Comment struct {
	Id string

	// nil for top-level comments.
	ParentId *string

	UserId  string
	VideoId string
	Content string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentDetail is a Comment with its author and aggregated reactions.
type CommentDetail struct {
	Comment
	User User

	// nil when the viewer has not reacted, or the viewer is anonymous.
	ViewerReaction *ReactionType

	ReplyCount   int64
	LikeCount    int64
	DislikeCount int64
}

type NewComment struct {
	UserId   string
	VideoId  string
	ParentId *string
	Content  string
}

type CommentFindQuery struct {
	PageRequest[Cursor]

	VideoId string

	// when nil, top-level comments are queried. Otherwise, replies to the comment.
	ParentId *string

	// used to resolve ViewerReaction. nil for anonymous viewers.
	ViewerId *string
}

// CommentPage is a page of comments with the number of all comments on the video.
type CommentPage struct {
	Page[CommentDetail, Cursor]

	TotalCount int64
}
