package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/testenv"
	kpgschema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db/postgres"
	"github.com/lucas-ellwanger/newtube/pkg/utils/try"
)

func TestSchema(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	ctx := context.Background()
	pool := poolBroaker.GetPool(ctx, t)

	testee := kpgschema.New(pool, kpgschema.WithCheckInterval(10*time.Millisecond))

	latest := try.To(testee.Latest()).OrFatal(t)
	if latest < 2 {
		t.Errorf("unexpected latest version: %d", latest)
	}

	t.Run("upgrading the latest schema changes nothing", func(t *testing.T) {
		if err := testee.Upgrade(ctx); err != nil {
			t.Fatal(err)
		}
		if v := try.To(testee.Version(ctx)).OrFatal(t); v != latest {
			t.Errorf("version: %d, latest: %d", v, latest)
		}
	})

	t.Run("Context is alive while the schema is the latest", func(t *testing.T) {
		sctx, cancel := testee.Context(ctx)
		defer cancel()

		select {
		case <-sctx.Done():
			t.Errorf("context is done: %v", context.Cause(sctx))
		case <-time.After(50 * time.Millisecond):
		}
	})
}
