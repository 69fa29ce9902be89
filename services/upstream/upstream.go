package upstream

import (
	"fmt"
	"log"
)

// Error is returned when an external system rejects or fails a call. The
// upstream status code is preserved for the boundary; the response body is
// only written to the secure log channel, never surfaced to the caller.
type Error struct {
	System     string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s returned status %d", e.System, e.StatusCode)
}

// NewError logs the full upstream detail to the secure channel and returns
// the generic error carrying only system name and status code.
func NewError(system string, statusCode int, body []byte) *Error {
	LogSecure(system, statusCode, body)
	return &Error{System: system, StatusCode: statusCode}
}

// LogSecure writes full upstream diagnostics to the restricted log channel.
// The standard log only ever sees the generic message from Error.
func LogSecure(system string, statusCode int, body []byte) {
	log.Printf("[SECURE] upstream error from %s: status=%d body=%s", system, statusCode, string(body))
}
