package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
)

type categoryPG struct {
	pool kpool.Pool
}

var _ kdb.CategoryInterface = &categoryPG{}

func New(pool kpool.Pool) *categoryPG {
	return &categoryPG{pool: pool}
}

const columns = `"id", "name", "description", "created_at", "updated_at"`

func scan(row pgx.Row) (domain.Category, error) {
	c := domain.Category{}
	err := row.Scan(&c.Id, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (m *categoryPG) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := m.pool.Query(
		ctx, `select `+columns+` from "categories" order by "name"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (m *categoryPG) Seed(ctx context.Context, specs []domain.CategorySpec) ([]domain.Category, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) ([]domain.Category, error) {
		result := make([]domain.Category, 0, len(specs))
		for _, s := range specs {
			c, err := scan(tx.QueryRow(
				ctx,
				`
				insert into "categories" ("id", "name", "description")
				values ($1, $2, $3)
				on conflict ("name") do update
				set "description" = excluded."description", "updated_at" = now()
				returning `+columns,
				uuid.NewString(), s.Name, s.Description,
			))
			if err != nil {
				return nil, err
			}
			result = append(result, c)
		}
		return result, nil
	})
}
