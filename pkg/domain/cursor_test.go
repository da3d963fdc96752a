package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

func TestPaginate(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	row := func(id string, minutes int) domain.Comment {
		return domain.Comment{Id: id, UpdatedAt: base.Add(-time.Duration(minutes) * time.Minute)}
	}
	cursorOf := func(c domain.Comment) domain.Cursor {
		return domain.Cursor{Id: c.Id, UpdatedAt: c.UpdatedAt}
	}

	type when struct {
		rows  []domain.Comment
		limit int
	}
	type then struct {
		ids  []string
		next *domain.Cursor
	}

	for name, testcase := range map[string]struct {
		when
		then
	}{
		"when rows are fewer than limit, it returns all of them without cursor": {
			when{rows: []domain.Comment{row("c3", 0), row("c2", 1)}, limit: 3},
			then{ids: []string{"c3", "c2"}, next: nil},
		},
		"when rows are as many as limit, it returns all of them without cursor": {
			when{rows: []domain.Comment{row("c3", 0), row("c2", 1), row("c1", 2)}, limit: 3},
			then{ids: []string{"c3", "c2", "c1"}, next: nil},
		},
		"when there is one more row than limit, it drops the last and points the last kept": {
			when{rows: []domain.Comment{row("c4", 0), row("c3", 1), row("c2", 2), row("c1", 3)}, limit: 3},
			then{
				ids:  []string{"c4", "c3", "c2"},
				next: &domain.Cursor{Id: "c2", UpdatedAt: base.Add(-2 * time.Minute)},
			},
		},
		"when there are no rows, it returns empty items": {
			when{rows: nil, limit: 3},
			then{ids: []string{}, next: nil},
		},
	} {
		t.Run(name, func(t *testing.T) {
			page := domain.Paginate(testcase.when.rows, testcase.when.limit, cursorOf)

			if page.Items == nil {
				t.Fatal("items should not be nil")
			}
			if len(page.Items) != len(testcase.then.ids) {
				t.Fatalf("unmatch length: actual = %d, expected = %d", len(page.Items), len(testcase.then.ids))
			}
			for i, item := range page.Items {
				if item.Id != testcase.then.ids[i] {
					t.Errorf("items[%d]: actual = %s, expected = %s", i, item.Id, testcase.then.ids[i])
				}
			}
			if !page.NextCursor.Equal(testcase.then.next) {
				t.Errorf("unmatch cursor: actual = %+v, expected = %+v", page.NextCursor, testcase.then.next)
			}
		})
	}
}

func TestPageRequest_Validate(t *testing.T) {
	for limit, ok := range map[int]bool{
		-1:  false,
		0:   false,
		1:   true,
		5:   true,
		100: true,
		101: false,
	} {
		err := domain.PageRequest[domain.Cursor]{Limit: limit}.Validate()
		if ok && err != nil {
			t.Errorf("limit = %d: unexpected error: %v", limit, err)
		}
		if !ok && !errors.Is(err, domerr.ErrInvalidArgument) {
			t.Errorf("limit = %d: expected ErrInvalidArgument, but %v", limit, err)
		}
	}
}

func TestPageRequest_Fetch(t *testing.T) {
	if got := (domain.PageRequest[domain.TrendingCursor]{Limit: 10}).Fetch(); got != 11 {
		t.Errorf("unexpected fetch size: %d", got)
	}
}
