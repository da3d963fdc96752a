package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}
func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// requested data is found too much.
type TooMuch struct {
	Table    string
	Identity string
	Expected int
}

var _ error = TooMuch{}

func (t TooMuch) Error() string {
	return fmt.Sprintf(
		"%s is found in %s more than %d times",
		t.Identity, t.Table, t.Expected,
	)
}

func (t TooMuch) Unwrap() error {
	return domerr.ErrTooMuch
}

// a row violates an unique constraint.
type Conflict struct {
	Table      string
	Constraint string
	Cause      error
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("conflict in %s (%s): %v", c.Table, c.Constraint, c.Cause)
}

func (c Conflict) Unwrap() []error {
	return []error{domerr.ErrConflict, c.Cause}
}

// Translate converts constraint violations into domain errors.
//
// - unique_violation is translated into Conflict (= ErrConflict).
//
// - foreign_key_violation is translated into Missing (= ErrMissing): it means a referred row does not exist.
//
// - invalid_text_representation (for example, malformed uuid) is translated into ErrInvalidArgument.
//
// Other errors are returned as they are.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	pgerr := new(pgconn.PgError)
	if !errors.As(err, &pgerr) {
		return err
	}
	switch pgerr.Code {
	case pgerrcode.UniqueViolation:
		return Conflict{Table: pgerr.TableName, Constraint: pgerr.ConstraintName, Cause: err}
	case pgerrcode.ForeignKeyViolation:
		return Missing{Table: pgerr.TableName, Identity: pgerr.Detail}
	case pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %s", domerr.ErrInvalidArgument, pgerr.Message)
	}
	return err
}
