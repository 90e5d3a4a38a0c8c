package client

import (
	"errors"
	"fmt"
)

var (
	// ErrJoinRejected is matched by every non-success join response.
	ErrJoinRejected = errors.New("failed to join game")
	// ErrNetwork means the request could not be sent or completed.
	ErrNetwork = errors.New("network error")
	// ErrParse means the response body was not a JSON player list.
	ErrParse = errors.New("malformed player list")
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (%d): %s", ErrJoinRejected, e.Code, e.Body)
}

// Is reports whether target is ErrJoinRejected.
func (e *StatusError) Is(target error) bool {
	return target == ErrJoinRejected
}
