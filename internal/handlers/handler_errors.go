package handlers

import (
	"net/http"

	"github.com/khatapp/khata_backend/internal/apperrors"
)

// storageFailureStatus picks the status for a service error that matched none
// of the terminal sentinels. Transient storage failures surface as 503 so
// callers know a retry may succeed; everything else is a plain 500.
func storageFailureStatus(err error) int {
	if apperrors.IsTransient(err) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
