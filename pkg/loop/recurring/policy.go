// Package recurring decides how a loop continues after each round of work.
package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/loop"
)

// Task does a round of work.
//
// Returns
//
// - T : same as T of loop.Task[T]
//
// - bool : true when this round did something, so more backlog can remain.
//
// - error : error in this round.
type Task[T any] func(context.Context, T) (T, bool, error)

// Applied converts rt into loop.Task, deciding what is next by p.
func (rt Task[T]) Applied(p Policy) loop.Task[T] {
	return func(ctx context.Context, t T) (T, loop.Next) {
		new, ok, err := rt(ctx, t)
		return new, p.Next(ok, err)
	}
}

// ParsePolicy reads "forever", "forever:<cooldown>" or "backlog".
//
// Any of them can be prefixed with "until-error:" to break on the first error,
// like "until-error:backlog".
func ParsePolicy(s string) (Policy, error) {
	typ, param, ok := strings.Cut(s, ":")
	switch typ {
	case "until-error":
		if !ok {
			return nil, fmt.Errorf("until-error policy needs a base policy: %s", s)
		}
		base, err := ParsePolicy(param)
		if err != nil {
			return nil, err
		}
		return UntilError(base), nil
	case "forever":
		if !ok || param == "" {
			return Forever(0), nil
		}
		period, err := time.ParseDuration(param)
		if err != nil {
			return nil, fmt.Errorf(`failed to parse: %s as "forever:COOLDOWN": %w`, s, err)
		}
		return Forever(period), nil
	case "backlog":
		if ok {
			return nil, fmt.Errorf("backlog policy does not take paramters: %s", s)
		}
		return Backlog(), nil
	}
	return nil, fmt.Errorf("unknown policy name: %s (should be one of -- forever|backlog|until-error)", typ)
}

type Policy interface {
	Next(updated bool, err error) loop.Next
	String() string
}

// Forever restarts immediately while there are things to do.
// Otherwise, it restarts after cooldown.
//
// Errors do not stop the loop.
func Forever(cooldown time.Duration) Policy {
	return forever(cooldown)
}

type forever time.Duration

func (f forever) String() string {
	return fmt.Sprintf("forever:%s", time.Duration(f).String())
}

func (f forever) Next(updated bool, _ error) loop.Next {
	if updated {
		return loop.Continue(0)
	}
	return loop.Continue(time.Duration(f))
}

// Backlog restarts immediately while there are things to do.
// Otherwise, it breaks.
func Backlog() Policy {
	return backlog
}

type backlogPolicy struct{}

func (backlogPolicy) String() string {
	return "backlog"
}

func (backlogPolicy) Next(updated bool, _ error) loop.Next {
	if updated {
		return loop.Continue(0)
	}
	return loop.Break(nil)
}

var backlog = backlogPolicy{}

// UntilError breaks with the error of a round, otherwise follows p.
func UntilError(p Policy) Policy {
	return untilError{base: p}
}

type untilError struct {
	base Policy
}

func (u untilError) String() string {
	return fmt.Sprintf("%s (until error)", u.base.String())
}

func (u untilError) Next(updated bool, err error) loop.Next {
	if err != nil {
		return loop.Break(err)
	}
	return u.base.Next(updated, err)
}
