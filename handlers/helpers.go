package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// apiError maps domain errors onto JSON responses: invalid input is the
// caller's fault (400), everything else is ours (500).
func apiError(e *core.RequestEvent, err error) error {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": vErr.Error(),
			"field": vErr.Field,
		})
	}
	return e.JSON(http.StatusInternalServerError, map[string]string{
		"error": "internal error",
	})
}
