package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/lucas-ellwanger/newtube/pkg/conn/db/postgres/pool"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
	xe "github.com/lucas-ellwanger/newtube/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
)

type workflowPG struct {
	pool kpool.Pool
}

var _ kdb.WorkflowInterface = &workflowPG{}

func New(pool kpool.Pool) *workflowPG {
	return &workflowPG{pool: pool}
}

const columns = `
	"id", "name", "payload", "status"::text, "attempts", "last_error",
	"next_attempt_at", "created_at", "updated_at"`

func scan(row pgx.Row) (domain.WorkflowRun, error) {
	r := domain.WorkflowRun{}
	var name, status string
	payload := pgtype.JSONB{}
	if err := row.Scan(
		&r.Id, &name, &payload, &status, &r.Attempts, &r.LastError,
		&r.NextAttemptAt, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return domain.WorkflowRun{}, err
	}

	n, err := domain.AsWorkflowName(name)
	if err != nil {
		return domain.WorkflowRun{}, err
	}
	s, err := domain.AsWorkflowStatus(status)
	if err != nil {
		return domain.WorkflowRun{}, err
	}
	r.Name = n
	r.Status = s
	r.Payload = payload.Bytes
	return r, nil
}

func (m *workflowPG) Enqueue(ctx context.Context, name domain.WorkflowName, payload []byte) (domain.WorkflowRun, error) {
	r, err := scan(m.pool.QueryRow(
		ctx,
		`
		insert into "workflow_runs" ("id", "name", "payload")
		values ($1, $2, $3)
		returning `+columns,
		uuid.NewString(), name.String(), pgtype.JSONB{Bytes: payload, Status: pgtype.Present},
	))
	if err != nil {
		return domain.WorkflowRun{}, xe.Translate(err)
	}
	return r, nil
}

func (m *workflowPG) Get(ctx context.Context, runId string) (domain.WorkflowRun, error) {
	r, err := scan(m.pool.QueryRow(
		ctx, `select `+columns+` from "workflow_runs" where "id" = $1`, runId,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WorkflowRun{}, xe.Missing{Table: "workflow_runs", Identity: "id=" + runId}
	} else if err != nil {
		return domain.WorkflowRun{}, xe.Translate(err)
	}
	return r, nil
}

func (m *workflowPG) Claim(ctx context.Context, lease time.Duration) (domain.WorkflowRun, error) {
	r, err := scan(m.pool.QueryRow(
		ctx,
		`
		update "workflow_runs"
		set "status" = 'running', "attempts" = "attempts" + 1, "updated_at" = now()
		where "id" = (
			select "id" from "workflow_runs"
			where ("status" = 'waiting' and "next_attempt_at" <= now())
				or ("status" = 'running' and "updated_at" < now() - $1::interval)
			order by "next_attempt_at", "id"
			limit 1
			for update skip locked
		)
		returning `+columns,
		lease,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WorkflowRun{}, xe.Missing{Table: "workflow_runs", Identity: "due runs"}
	} else if err != nil {
		return domain.WorkflowRun{}, xe.Translate(err)
	}
	return r, nil
}

func (m *workflowPG) Steps(ctx context.Context, runId string) (map[string][]byte, error) {
	rows, err := m.pool.Query(
		ctx,
		`select "name", "result" from "workflow_steps" where "run_id" = $1`,
		runId,
	)
	if err != nil {
		return nil, xe.Translate(err)
	}
	defer rows.Close()

	steps := map[string][]byte{}
	for rows.Next() {
		var name string
		result := pgtype.JSONB{}
		if err := rows.Scan(&name, &result); err != nil {
			return nil, err
		}
		steps[name] = result.Bytes
	}
	return steps, rows.Err()
}

func (m *workflowPG) SaveStep(ctx context.Context, runId string, step string, result []byte) error {
	_, err := m.pool.Exec(
		ctx,
		`
		insert into "workflow_steps" ("run_id", "name", "result") values ($1, $2, $3)
		on conflict ("run_id", "name") do nothing
		`,
		runId, step, pgtype.JSONB{Bytes: result, Status: pgtype.Present},
	)
	return xe.Translate(err)
}

func (m *workflowPG) setStatus(
	ctx context.Context,
	runId string, attempt int,
	status domain.WorkflowStatus, cause *string, at *time.Time,
) error {
	ctag, err := m.pool.Exec(
		ctx,
		`
		update "workflow_runs"
		set "status" = $3::workflow_status,
			"last_error" = coalesce($4, "last_error"),
			"next_attempt_at" = coalesce($5, "next_attempt_at"),
			"updated_at" = now()
		where "id" = $1 and "status" = 'running' and "attempts" = $2
		`,
		runId, attempt, status.String(), cause, at,
	)
	if err != nil {
		return xe.Translate(err)
	}
	if ctag.RowsAffected() != 0 {
		return nil
	}

	var exists bool
	if err := m.pool.QueryRow(
		ctx, `select exists (select 1 from "workflow_runs" where "id" = $1)`, runId,
	).Scan(&exists); err != nil {
		return xe.Translate(err)
	}
	if !exists {
		return xe.Missing{Table: "workflow_runs", Identity: "id=" + runId}
	}
	return fmt.Errorf("workflow run %s (attempt #%d): %w", runId, attempt, domerr.ErrLeaseExpired)
}

func (m *workflowPG) Finish(ctx context.Context, runId string, attempt int) error {
	return m.setStatus(ctx, runId, attempt, domain.WorkflowDone, nil, nil)
}

func (m *workflowPG) Retry(ctx context.Context, runId string, attempt int, cause string, at time.Time) error {
	return m.setStatus(ctx, runId, attempt, domain.WorkflowWaiting, &cause, &at)
}

func (m *workflowPG) Fail(ctx context.Context, runId string, attempt int, cause string) error {
	return m.setStatus(ctx, runId, attempt, domain.WorkflowFailed, &cause, nil)
}
