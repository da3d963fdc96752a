// Package pages is the wire format of cursor-paginated responses.
//
// Cursors are opaque for clients: a cursor is a JSON document encoded in base64url.
package pages

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

type Page[T any] struct {
	Items []T `json:"items"`

	// pass this as "cursor" query parameter to get the next page.
	// null when there are no more items.
	NextCursor *string `json:"nextCursor"`
}

// EncodeCursor stringifies a cursor. It returns nil for nil.
func EncodeCursor[C any](c *C) (*string, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	return &s, nil
}

// DecodeCursor parses a cursor made by EncodeCursor. It returns nil for "".
func DecodeCursor[C any](s string) (*C, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	c := new(C)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	return c, nil
}

// Compose converts items of a domain page and encodes its cursor.
func Compose[T any, C any, R any](p domain.Page[T, C], compose func(T) R) (Page[R], error) {
	cursor, err := EncodeCursor(p.NextCursor)
	if err != nil {
		return Page[R]{}, err
	}
	items := make([]R, 0, len(p.Items))
	for _, i := range p.Items {
		items = append(items, compose(i))
	}
	return Page[R]{Items: items, NextCursor: cursor}, nil
}
