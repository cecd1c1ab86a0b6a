package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes callers match with errors.Is. Only ErrAuthentication
// ever changes global session state; ErrAuthorization is always handled
// locally by the calling view because the session itself remains valid.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("permission denied")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrBadRequest     = errors.New("bad request")
)

// StatusError is a non-2xx API response.
type StatusError struct {
	Code      int
	Msg       string
	RequestID string
	// Suppressed marks that the one-shot skip-logout flag was consumed
	// for this failure, so no other handler may force logout for it.
	Suppressed bool
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api request failed: %d %s: %s", e.Code, http.StatusText(e.Code), e.Msg)
	}
	return fmt.Sprintf("api request failed: %d %s", e.Code, http.StatusText(e.Code))
}

// Is maps status codes onto the failure-class sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Code == http.StatusUnauthorized
	case ErrAuthorization:
		return e.Code == http.StatusForbidden
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrConflict:
		return e.Code == http.StatusConflict
	case ErrBadRequest:
		return e.Code == http.StatusBadRequest
	}
	return false
}
