// Package response writes JSON bodies and is the one place errors become
// HTTP statuses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps err onto its status. The cause of an internal error is passed
// through in Detail rather than swallowed.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	msg, detail := apperr.Public(err)

	body := dto.ErrorResponse{Error: kind.String(), Message: msg}
	if kind == apperr.KindInternal {
		body.Detail = detail
	}
	JSON(w, kind.Status(), body)
}

// Validation reports field-level problems as a 400.
func Validation(w http.ResponseWriter, details map[string]string) {
	JSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error:   apperr.KindBadRequest.String(),
		Message: "validation failed",
		Details: details,
	})
}
