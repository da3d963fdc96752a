package errors

import (
	"errors"
	"fmt"
)

var (
	// requested entity is not found.
	ErrMissing = errors.New("missing")

	// found more entities than expected.
	ErrTooMuch = errors.New("too much")

	// the operation conflicts with an existing entity.
	ErrConflict = errors.New("conflict")

	ErrInvalidArgument = errors.New("invalid argument")

	// replies are allowed on top-level comments only.
	ErrReplyToReply = fmt.Errorf("%w: cannot reply to a reply", ErrInvalidArgument)

	ErrSelfSubscription = fmt.Errorf("%w: cannot subscribe to yourself", ErrInvalidArgument)

	// the workflow run has been reclaimed by another worker.
	ErrLeaseExpired = errors.New("lease expired")
)
