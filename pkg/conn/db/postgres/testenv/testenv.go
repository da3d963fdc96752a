package testenv

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	schema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db/postgres"
)

// EnvDatabaseURI names the environment variable holding the connection string
// of a database dedicated to tests.
const EnvDatabaseURI = "NEWTUBE_TEST_DB_URI"

type pg struct {
	pool *pgxpool.Pool
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		ClearTables(ctx, p.pool, t)
	})

	ClearTables(ctx, p.pool, t)
	return kpool.Wrap(p.pool)
}

// PoolBroaker is a interface to get a pool.
type PoolBroaker interface {
	// GetPool returns a pool.
	//
	// Tables are cleaned up before returning and after t.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

// NewPoolBroaker returns a PoolBroaker connecting the database in $NEWTUBE_TEST_DB_URI.
//
// The test is skipped when the variable is not set.
// The schema is upgraded to the latest before returning.
func NewPoolBroaker(ctx context.Context, t *testing.T) PoolBroaker {
	t.Helper()

	uri := os.Getenv(EnvDatabaseURI)
	if uri == "" {
		t.Skipf("%s is not set", EnvDatabaseURI)
	}

	pool, err := pgxpool.Connect(ctx, uri)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	if err := schema.New(kpool.Wrap(pool)).Upgrade(ctx); err != nil {
		t.Fatal(err)
	}

	return &pg{pool: pool}
}

func ClearTables(ctx context.Context, p *pgxpool.Pool, t *testing.T) {
	t.Helper()

	if _, err := p.Exec(
		ctx,
		// by cascade, rows referring them are deleted too.
		`truncate "users", "categories", "workflow_runs" cascade`,
	); err != nil {
		t.Errorf("fail to clean-up tables.: %v", err)
	}
}
