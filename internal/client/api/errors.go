package api

import (
	"errors"
	"net/http"
)

// ErrUnavailable marks transport-level failures: the request never produced
// a response. Match with errors.Is.
var ErrUnavailable = errors.New("server unavailable")

// ServerError carries a backend rejection. Message is the response body
// verbatim; the client never rewrites what the server said.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}
