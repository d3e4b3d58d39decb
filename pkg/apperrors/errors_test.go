package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesWrappedCopies(t *testing.T) {
	wrapped := fmt.Errorf("approve: %w", ErrDonationUnavailable.WithError(errors.New("rows affected 0")))

	assert.True(t, Is(wrapped, ErrDonationUnavailable))
	assert.False(t, Is(wrapped, ErrDonationNotDeletable))
	assert.Equal(t, CodeInvalidState, CodeOf(wrapped))
}

func TestAppError_WithDetailsDoesNotMutateShared(t *testing.T) {
	withDetails := ErrDuplicateClaim.WithDetails(map[string]string{"donation_id": "d1"})

	assert.NotNil(t, withDetails.Details)
	assert.Nil(t, ErrDuplicateClaim.Details)
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternalError, CodeOf(errors.New("boom")))
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		code     ErrorCode
		hideBody bool
	}{
		{"forbidden", ErrNotCharity, http.StatusForbidden, CodeForbidden, false},
		{"invalid state", ErrClaimNotPending, http.StatusConflict, CodeInvalidState, false},
		{"conflict", ErrDuplicateClaim, http.StatusConflict, CodeConflict, false},
		{"not found", ErrClaimNotFound, http.StatusNotFound, CodeNotFound, false},
		{"validation", FieldError("content", "required"), http.StatusBadRequest, CodeValidationFailed, false},
		{"internal", errors.New("db down"), http.StatusInternalServerError, CodeInternalError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body struct {
				Error struct {
					Code    ErrorCode       `json:"code"`
					Message string          `json:"message"`
					Details json.RawMessage `json:"details"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.hideBody {
				assert.Equal(t, "Internal server error", body.Error.Message)
			}
		})
	}
}
