package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bg-companion-api/pkg/apperror"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
)

func newCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Set("request_id", "rid-1")
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	c, rec := newCtx()

	Success(c, http.StatusCreated, gin.H{"id": 1}, "created", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, "rid-1", body["request_id"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestError(t *testing.T) {
	c, rec := newCtx()

	Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "must be a valid email"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "invalid payload", errBody["message"])
	assert.Equal(t, map[string]any{"email": "must be a valid email"}, errBody["details"])
}

func TestAbort(t *testing.T) {
	c, rec := newCtx()

	Abort(c, http.StatusUnauthorized, "Unauthorized", nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"typed conflict", apperror.New(apperror.Conflict, "User already exists"), http.StatusConflict, "User already exists"},
		{"typed not found", apperror.New(apperror.NotFound, "Comp not found"), http.StatusNotFound, "Comp not found"},
		{"untyped", errors.New("pq: password authentication failed"), http.StatusInternalServerError, apperror.GenericMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newCtx()
			Fail(c, helpers.NewNopLogger(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.message, body["error"].(map[string]any)["message"])
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}
