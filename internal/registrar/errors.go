package registrar

import (
	"fmt"
	"net/http"
)

// StatusError is a non-success registrar response, carrying the status
// code and raw body so callers can decide on recovery.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registrar returned status %d: %s", e.Code, e.Body)
}

// transient reports whether a status is worth retrying. Client errors
// never are.
func transient(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
