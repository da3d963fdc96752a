package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	dbmock "github.com/lucas-ellwanger/newtube/pkg/domain/internal/db/mock"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/workflow/db"
)

type WorkflowInterface struct {
	Impl struct {
		Enqueue  func(context.Context, domain.WorkflowName, []byte) (domain.WorkflowRun, error)
		Get      func(context.Context, string) (domain.WorkflowRun, error)
		Claim    func(context.Context, time.Duration) (domain.WorkflowRun, error)
		Steps    func(context.Context, string) (map[string][]byte, error)
		SaveStep func(context.Context, string, string, []byte) error
		Finish   func(context.Context, string, int) error
		Retry    func(context.Context, string, int, string, time.Time) error
		Fail     func(context.Context, string, int, string) error
	}
	Calls struct {
		Enqueue dbmock.CallLog[struct {
			Name    domain.WorkflowName
			Payload []byte
		}]
		Get      dbmock.CallLog[string]
		Claim    dbmock.CallLog[time.Duration]
		Steps    dbmock.CallLog[string]
		SaveStep dbmock.CallLog[struct {
			RunId  string
			Step   string
			Result []byte
		}]
		Finish dbmock.CallLog[struct {
			RunId   string
			Attempt int
		}]
		Retry dbmock.CallLog[struct {
			RunId   string
			Attempt int
			Cause   string
			At      time.Time
		}]
		Fail dbmock.CallLog[struct {
			RunId   string
			Attempt int
			Cause   string
		}]
	}
}

var _ kdb.WorkflowInterface = &WorkflowInterface{}

func New() *WorkflowInterface {
	return &WorkflowInterface{}
}

func (m *WorkflowInterface) Enqueue(ctx context.Context, name domain.WorkflowName, payload []byte) (domain.WorkflowRun, error) {
	m.Calls.Enqueue = append(m.Calls.Enqueue, struct {
		Name    domain.WorkflowName
		Payload []byte
	}{
		Name:    name,
		Payload: payload,
	})
	if m.Impl.Enqueue != nil {
		return m.Impl.Enqueue(ctx, name, payload)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) Get(ctx context.Context, runId string) (domain.WorkflowRun, error) {
	m.Calls.Get = append(m.Calls.Get, runId)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, runId)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) Claim(ctx context.Context, lease time.Duration) (domain.WorkflowRun, error) {
	m.Calls.Claim = append(m.Calls.Claim, lease)
	if m.Impl.Claim != nil {
		return m.Impl.Claim(ctx, lease)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) Steps(ctx context.Context, runId string) (map[string][]byte, error) {
	m.Calls.Steps = append(m.Calls.Steps, runId)
	if m.Impl.Steps != nil {
		return m.Impl.Steps(ctx, runId)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) SaveStep(ctx context.Context, runId string, step string, result []byte) error {
	m.Calls.SaveStep = append(m.Calls.SaveStep, struct {
		RunId  string
		Step   string
		Result []byte
	}{
		RunId:  runId,
		Step:   step,
		Result: result,
	})
	if m.Impl.SaveStep != nil {
		return m.Impl.SaveStep(ctx, runId, step, result)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) Finish(ctx context.Context, runId string, attempt int) error {
	m.Calls.Finish = append(m.Calls.Finish, struct {
		RunId   string
		Attempt int
	}{
		RunId:   runId,
		Attempt: attempt,
	})
	if m.Impl.Finish != nil {
		return m.Impl.Finish(ctx, runId, attempt)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) Retry(ctx context.Context, runId string, attempt int, cause string, at time.Time) error {
	m.Calls.Retry = append(m.Calls.Retry, struct {
		RunId   string
		Attempt int
		Cause   string
		At      time.Time
	}{
		RunId:   runId,
		Attempt: attempt,
		Cause:   cause,
		At:      at,
	})
	if m.Impl.Retry != nil {
		return m.Impl.Retry(ctx, runId, attempt, cause, at)
	}
	panic(errors.New("it should no be called"))
}

func (m *WorkflowInterface) Fail(ctx context.Context, runId string, attempt int, cause string) error {
	m.Calls.Fail = append(m.Calls.Fail, struct {
		RunId   string
		Attempt int
		Cause   string
	}{
		RunId:   runId,
		Attempt: attempt,
		Cause:   cause,
	})
	if m.Impl.Fail != nil {
		return m.Impl.Fail(ctx, runId, attempt, cause)
	}
	panic(errors.New("it should no be called"))
}
