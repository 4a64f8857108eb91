package util

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

func TestAppErrorKinds(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("Failed to update progress", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to update progress: connection reset", err.Error())

	wrapped := fmt.Errorf("record progress: %w", NewNotFoundError("Learning path not found"))
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewValidationError("x")))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(NewUnauthorizedError("x")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("x")))
	assert.Equal(t, http.StatusConflict, StatusCode(NewConflictError("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(NewUpstreamError("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", NewValidationError("moduleId is required"), http.StatusBadRequest, "moduleId is required"},
		{"not found", NewNotFoundError("Quiz not found"), http.StatusNotFound, "Quiz not found"},
		{"store hides cause", NewStoreError("db down", errors.New("dial tcp")), http.StatusInternalServerError, "Failed to submit quiz"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Failed to submit quiz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/quizzes/1/attempt", nil)

			RespondError(c, tc.err, "Failed to submit quiz")

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Error)
		})
	}
}
