package postgres

import (
	"cmp"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	schema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db"
	"github.com/lucas-ellwanger/newtube/pkg/loop"
)

//go:embed migrations
var migrations embed.FS

// Migrations is the schema repository bundled in the binary.
//
// Each directory named with a number is a version; *.sql files in it are applied in name order.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err) // embedded tree is always there
	}
	return sub
}

type pgSchema struct {
	pool       kpool.Pool
	repository fs.FS
	interval   time.Duration
}

var _ schema.SchemaInterface = &pgSchema{}

type Option func(*pgSchema)

// WithCheckInterval sets how often Context polls the version in database.
func WithCheckInterval(d time.Duration) Option {
	return func(s *pgSchema) { s.interval = d }
}

// WithRepository replaces the bundled migrations.
func WithRepository(repository fs.FS) Option {
	return func(s *pgSchema) { s.repository = repository }
}

func New(pool kpool.Pool, options ...Option) *pgSchema {
	s := &pgSchema{
		pool:       pool,
		repository: Migrations(),
		interval:   30 * time.Second,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

type version struct {
	Version int
	Files   []string
}

func (v version) Apply(ctx context.Context, repository fs.FS, conn kpool.Queryer) error {
	for _, f := range v.Files {
		query, err := fs.ReadFile(repository, f)
		if err != nil {
			return err
		}
		if _, err := conn.Exec(ctx, string(query)); err != nil {
			return fmt.Errorf("version %d, %s: %w", v.Version, f, err)
		}
	}
	return nil
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	return readVersion(ctx, s.pool)
}

func readVersion(ctx context.Context, q kpool.Queryer) (int, error) {
	var exists bool
	if err := q.QueryRow(
		ctx, `SELECT to_regclass('schema_version') IS NOT NULL`,
	).Scan(&exists); err != nil {
		return -1, err
	}
	if !exists {
		return 0, nil
	}

	var version *int
	if err := q.QueryRow(
		ctx, `SELECT max("version") FROM "schema_version"`,
	).Scan(&version); err != nil {
		return -1, err
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

func (s *pgSchema) Latest() (int, error) {
	vs, err := s.versions()
	if err != nil {
		return -1, err
	}
	if len(vs) == 0 {
		return 0, nil
	}
	return vs[len(vs)-1].Version, nil
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	schemaVersions, err := s.versions()
	if err != nil {
		return err
	}

	_, err = kpool.InTx(ctx, s.pool, func(tx kpool.Tx) (struct{}, error) {
		// serialize concurrent upgraders.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(4242)`); err != nil {
			return struct{}{}, err
		}

		currentVersion, err := readVersion(ctx, tx)
		if err != nil {
			return struct{}{}, err
		}

		for _, v := range schemaVersions {
			if v.Version <= currentVersion {
				continue
			}
			if err := v.Apply(ctx, s.repository, tx); err != nil {
				return struct{}{}, err
			}
			if _, err := tx.Exec(ctx, `DELETE FROM "schema_version"`); err != nil {
				return struct{}{}, err
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO "schema_version" ("version") VALUES ($1)`,
				v.Version,
			); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func (s *pgSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, can := context.WithCancelCause(ctx)

	latest, err := s.Latest()
	if err != nil {
		can(fmt.Errorf("failed to read schema repository: %w", err))
		return cctx, func() {}
	}

	check := func(ctx context.Context) error {
		current, err := s.Version(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current schema version: %w", err)
		}
		if current < latest {
			return fmt.Errorf(
				"schema is outdated: %d (in db) < %d (required)", current, latest,
			)
		}
		return nil
	}

	if err := check(cctx); err != nil {
		can(err)
		return cctx, func() {}
	}

	go func() {
		_, err := loop.Start(cctx, struct{}{}, func(ctx context.Context, v struct{}) (struct{}, loop.Next) {
			if err := check(ctx); err != nil {
				return v, loop.Break(err)
			}
			return v, loop.Continue(s.interval)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			can(err)
		}
	}()

	return cctx, func() { can(nil) }
}

// versions lookup the schema repository.
//
// # Returns
//
// - []version: schema versions, sorted by version number.
func (s *pgSchema) versions() ([]version, error) {
	dir, err := fs.ReadDir(s.repository, ".")
	if err != nil {
		return nil, err
	}

	schemaVersions := make([]version, 0, len(dir))
	for _, entry := range dir {
		if !entry.IsDir() {
			continue
		}
		v, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		files, err := fs.ReadDir(s.repository, entry.Name())
		if err != nil {
			return nil, err
		}
		sqls := []string{}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
				continue
			}
			sqls = append(sqls, path.Join(entry.Name(), f.Name()))
		}
		slices.Sort(sqls)

		schemaVersions = append(schemaVersions, version{Version: v, Files: sqls})
	}
	slices.SortFunc(
		schemaVersions,
		func(i, j version) int { return cmp.Compare(i.Version, j.Version) },
	)

	return schemaVersions, nil
}
