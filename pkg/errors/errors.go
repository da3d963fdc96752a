// Package errors annotates errors with the place they pass through.
//
//	wrapped := xe.Wrap(err)
//
// The message of wrapped starts with the function, file and line where Wrap is called,
// followed by "<-" and the message of err. Wrapping at each layer gives a trail of
// where the error came from.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// Caller is a location in source code.
type Caller struct {
	Func string
	File string
	Line int
}

func (c Caller) String() string {
	return fmt.Sprintf(`@ %s "%s" l%d`, c.Func, c.File, c.Line)
}

// ErrWithCaller is an error annotated with the location it is wrapped at.
type ErrWithCaller struct {
	Caller
	note string
	err  error
}

func (e *ErrWithCaller) Error() string {
	if e.note == "" {
		return fmt.Sprintf(`%s <- %s`, e.Caller, e.err)
	}
	return fmt.Sprintf(`%s (%s) <- %s`, e.Caller, e.note, e.err)
}

func (e *ErrWithCaller) Unwrap() error {
	return e.err
}

// New creates an error with the message, annotated with the caller.
func New(text string) error {
	return wrap("", errors.New(text), 1)
}

// Wrap annotates err with the caller. It returns nil for nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return wrap("", err, 1)
}

// WrapWithNote is Wrap with an additional note.
func WrapWithNote(note string, err error) error {
	if err == nil {
		return nil
	}
	return wrap(note, err, 1)
}

func wrap(note string, err error, depth int) error {
	c := Caller{Func: "(unknown func)", File: "?", Line: -1}
	if pc, file, line, ok := runtime.Caller(depth + 1); ok {
		c.File = file
		c.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			c.Func = fn.Name()
		}
	}
	return &ErrWithCaller{Caller: c, note: note, err: err}
}
