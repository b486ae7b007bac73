package server

import (
	"errors"
	"fmt"
)

// Error carries a user facing message and a sentinel code the transport maps to a status.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// CodeOf returns the code of the outermost *Error in err's chain,
// or ErrInternalServerError when there is none.
func CodeOf(err error) error {
	var ierr *Error
	if errors.As(err, &ierr) && ierr.code != nil {
		return ierr.code
	}
	return ErrInternalServerError
}

var (
	// ErrInternalServerError is the code for failures the caller cannot fix.
	ErrInternalServerError = errors.New("internal server error")
	// ErrBadParamInput is the code for a request body, query or input row that is not valid.
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrCanceled is the code for work stopped because its context ended.
	ErrCanceled = errors.New("request canceled")
)
