package domain

import (
	"fmt"
	"time"

	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

const (
	// DefaultPageLimit is used when a caller does not specify a page size.
	DefaultPageLimit = 5

	// MaxPageLimit is the largest page a caller may request.
	MaxPageLimit = 100
)

// Cursor points the last item of a page ordered by (UpdatedAt DESC, Id DESC).
//
// The next page starts strictly after the pointed item:
//
//	updated_at < UpdatedAt OR (updated_at = UpdatedAt AND id < Id)
type Cursor struct {
	Id        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Cursor) Equal(o *Cursor) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	return c.Id == o.Id && c.UpdatedAt.Equal(o.UpdatedAt)
}

// TrendingCursor points the last item of a page ordered by (ViewCount DESC, Id DESC).
type TrendingCursor struct {
	Id        string `json:"id"`
	ViewCount int64  `json:"viewCount"`
}

func (c *TrendingCursor) Equal(o *TrendingCursor) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	return *c == *o
}

// Page is a slice of a cursor-paginated result.
//
// NextCursor is nil when there are no more items.
type Page[T any, C any] struct {
	Items      []T
	NextCursor *C
}

// PageRequest is the common part of paginated queries.
type PageRequest[C any] struct {
	Cursor *C
	Limit  int
}

// Validate checks Limit is in [1, MaxPageLimit].
func (pr PageRequest[C]) Validate() error {
	if pr.Limit < 1 || MaxPageLimit < pr.Limit {
		return fmt.Errorf(
			"%w: limit should be in [1, %d], but %d",
			domerr.ErrInvalidArgument, MaxPageLimit, pr.Limit,
		)
	}
	return nil
}

// Fetch is the number of rows a query should request to detect whether a next page exists.
func (pr PageRequest[C]) Fetch() int {
	return pr.Limit + 1
}

// Paginate builds a Page from rows fetched with `limit + 1`.
//
// When rows has more than limit items, the surplus is dropped and
// NextCursor points the last kept item.
func Paginate[T any, C any](rows []T, limit int, cursorOf func(T) C) Page[T, C] {
	if len(rows) <= limit {
		if rows == nil {
			rows = []T{}
		}
		return Page[T, C]{Items: rows}
	}

	items := rows[:limit]
	next := cursorOf(items[len(items)-1])
	return Page[T, C]{Items: items, NextCursor: &next}
}
