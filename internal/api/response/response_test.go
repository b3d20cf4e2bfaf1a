package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestError_MapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", apperr.Unauthorized("unauthorized access"), http.StatusUnauthorized},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"not found", apperr.NotFound("plant not found"), http.StatusNotFound},
		{"conflict", apperr.Conflict("order already delivered"), http.StatusConflict},
		{"bad request", apperr.BadRequest("invalid id"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Error(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestError_InternalPassesCauseThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, apperr.Internal("failed to fetch customer orders", errors.New("$lookup failed")))

	body := decode(t, rr)
	assert.Equal(t, "failed to fetch customer orders", body.Message)
	assert.Equal(t, "$lookup failed", body.Detail)
}

func TestError_ClientErrorsHideCause(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, apperr.Wrap(apperr.KindNotFound, "user not found", errors.New("mongo: no documents in result")))

	body := decode(t, rr)
	assert.Equal(t, "user not found", body.Message)
	assert.Empty(t, body.Detail)
}

func TestValidation(t *testing.T) {
	rr := httptest.NewRecorder()
	Validation(rr, map[string]string{"email": "Email is required"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Email is required", body.Details["email"])
}
