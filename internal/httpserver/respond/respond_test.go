package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", fmt.Errorf("%w: username too short", domain.ErrValidation), http.StatusBadRequest, "invalid input: username too short"},
		{"conflict", fmt.Errorf("%w: user bob", domain.ErrConflict), http.StatusConflict, "already exists: user bob"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "insufficient role"},
		{"internal hides detail", errors.New("disk on fire"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body StatusResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestSuccessOmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}
