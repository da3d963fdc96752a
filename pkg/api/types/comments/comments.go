package comments

import (
	"github.com/lucas-ellwanger/newtube/pkg/api/types/pages"
	apireactions "github.com/lucas-ellwanger/newtube/pkg/api/types/reactions"
	apiusers "github.com/lucas-ellwanger/newtube/pkg/api/types/users"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/utils/rfctime"
)

type Comment struct {
	CommentId string          `json:"commentId"`
	ParentId  *string         `json:"parentId,omitempty"`
	UserId    string          `json:"userId"`
	VideoId   string          `json:"videoId"`
	Content   string          `json:"content"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt rfctime.RFC3339 `json:"updatedAt"`
}

func ComposeComment(c domain.Comment) Comment {
	return Comment{
		CommentId: c.Id,
		ParentId:  c.ParentId,
		UserId:    c.UserId,
		VideoId:   c.VideoId,
		Content:   c.Content,
		CreatedAt: rfctime.RFC3339(c.CreatedAt),
		UpdatedAt: rfctime.RFC3339(c.UpdatedAt),
	}
}

type Detail struct {
	Comment
	User           apiusers.User `json:"user"`
	ViewerReaction *string       `json:"viewerReaction"`
	ReplyCount     int64         `json:"replyCount"`
	LikeCount      int64         `json:"likeCount"`
	DislikeCount   int64         `json:"dislikeCount"`
}

func ComposeDetail(d domain.CommentDetail) Detail {
	return Detail{
		Comment:        ComposeComment(d.Comment),
		User:           apiusers.ComposeUser(d.User),
		ViewerReaction: apireactions.ComposeViewerReaction(d.ViewerReaction),
		ReplyCount:     d.ReplyCount,
		LikeCount:      d.LikeCount,
		DislikeCount:   d.DislikeCount,
	}
}

// Page is a page of comments, with the number of all comments on the video.
type Page struct {
	pages.Page[Detail]
	TotalCount int64 `json:"totalCount"`
}

func ComposePage(p domain.CommentPage) (Page, error) {
	page, err := pages.Compose(p.Page, ComposeDetail)
	if err != nil {
		return Page{}, err
	}
	return Page{Page: page, TotalCount: p.TotalCount}, nil
}

type NewComment struct {
	// reply to this comment. Omit for top-level comments.
	ParentId *string `json:"parentId,omitempty"`
	Content  string  `json:"content"`
}
