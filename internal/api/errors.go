package api

import (
	"fmt"
	"net/http"

	"github.com/dkaras/relocost/internal/common"
)

// Error is a non-2xx response from the remote service, carrying the status
// code and the human-readable message extracted from the body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Is maps well-known status codes to the shared sentinel errors, so callers
// can branch with errors.Is instead of inspecting status codes.
func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrInternal:
		return e.Status >= 500
	default:
		return false
	}
}
