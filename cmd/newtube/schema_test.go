package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	mockcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db/mock"
	mockdb "github.com/lucas-ellwanger/newtube/pkg/domain/newtube/db/mock"
)

func TestUpgradeSchema(t *testing.T) {
	for name, testcase := range map[string]struct {
		before int
		after  int
		want   string
	}{
		"empty database": {before: 0, after: 3, want: "schema is upgraded: version 0 -> 3\n"},
		"latest already": {before: 3, after: 3, want: "schema is up to date: version 3\n"},
	} {
		t.Run(name, func(t *testing.T) {
			schema := &mockdb.Schema{}
			version := testcase.before
			schema.Impl.Version = func(context.Context) (int, error) { return version, nil }
			schema.Impl.Upgrade = func(context.Context) error {
				version = testcase.after
				return nil
			}

			out := new(bytes.Buffer)
			if err := upgradeSchema(context.Background(), schema, out); err != nil {
				t.Fatal(err)
			}
			if schema.Calls.Upgrade != 1 {
				t.Errorf("upgraded %d times", schema.Calls.Upgrade)
			}
			if got := out.String(); got != testcase.want {
				t.Errorf("output: %q, want %q", got, testcase.want)
			}
		})
	}

	t.Run("upgrade error is returned", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		schema := &mockdb.Schema{}
		schema.Impl.Version = func(context.Context) (int, error) { return 1, nil }
		schema.Impl.Upgrade = func(context.Context) error { return expectedErr }

		if err := upgradeSchema(context.Background(), schema, new(bytes.Buffer)); !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestShowSchemaVersion(t *testing.T) {
	schema := &mockdb.Schema{}
	schema.Impl.Version = func(context.Context) (int, error) { return 2, nil }
	schema.Impl.Latest = func() (int, error) { return 3, nil }

	out := new(bytes.Buffer)
	if err := showSchemaVersion(context.Background(), schema, out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "current: 2\nlatest: 3\n"; got != want {
		t.Errorf("output: %q, want %q", got, want)
	}
}

func TestSeedCategories(t *testing.T) {
	dbCategory := mockcategory.New()
	dbCategory.Impl.Seed = func(_ context.Context, specs []domain.CategorySpec) ([]domain.Category, error) {
		return []domain.Category{{Id: "c-1", Name: specs[0].Name}}, nil
	}

	out := new(bytes.Buffer)
	if err := seedCategories(context.Background(), dbCategory, out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(
		[][]domain.CategorySpec{domain.DefaultCategories()},
		[][]domain.CategorySpec(dbCategory.Calls.Seed),
	); diff != "" {
		t.Errorf("seeded (-want +got):\n%s", diff)
	}
	if got, want := out.String(), "c-1\t"+domain.DefaultCategories()[0].Name+"\n"; got != want {
		t.Errorf("output: %q, want %q", got, want)
	}
}
