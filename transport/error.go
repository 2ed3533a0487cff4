package transport

import (
	"errors"
	"fmt"
)

// ErrTransport identifies a failed outbound submission.
var ErrTransport = errors.New("transport failure")

// Error describes a failed submission.
type Error struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: POST %v: status %d: %v", ErrTransport, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%v: POST %v: %v", ErrTransport, e.URL, e.Err)
}

// Is reports whether target is ErrTransport.
func (e *Error) Is(target error) bool {
	return target == ErrTransport
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError returns err as a transport failure, wrapping it when needed.
func AsError(URL string, err error) error {
	if err == nil || errors.Is(err, ErrTransport) {
		return err
	}
	return &Error{URL: URL, Err: err}
}
