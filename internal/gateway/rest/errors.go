package rest

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrTransport = errors.New("cart api unreachable")
	ErrRejected  = errors.New("cart api rejected the request")
	ErrDecode    = errors.New("cart api returned a malformed response")
)

// Error is returned by every Client call that fails.
type Error struct {
	Op     string // fetch, write, shopping, product
	Kind   error  // ErrTransport, ErrRejected or ErrDecode
	Status int    // HTTP status for ErrRejected
	Body   string // response body for ErrRejected, truncated
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: %v: status %d: %s", e.Op, e.Kind, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: %v: status %d", e.Op, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool { return target == e.Kind }

// IsServerSide reports whether err is a transport failure or a 5xx rejection,
// i.e. a failure that counts against the circuit breaker.
func IsServerSide(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return err != nil
	}
	switch e.Kind {
	case ErrTransport:
		return true
	case ErrRejected:
		return e.Status >= 500
	default:
		return false
	}
}
