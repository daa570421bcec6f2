package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "z-novel-ai-agent/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func renderAppError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	AppError(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestAppError(t *testing.T) {
	code, body := renderAppError(t, apperrors.ErrSessionNotFound.WithDetail("sid=abc"))
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(apperrors.CodeSessionNotFound), body.Error.ErrorCode)
	assert.Equal(t, "sid=abc", body.Error.Details)

	code, body = renderAppError(t, apperrors.ErrStateCorrupted.WithDetail("negative turn count"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "negative turn count", body.Error.Details)

	// 5xx 不暴露 Detail
	code, body = renderAppError(t, apperrors.ErrPublishFailed.WithDetail("redis: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	require.NotNil(t, body.Error)
	assert.Empty(t, body.Error.Details)

	code, body = renderAppError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body.Message)
	assert.Nil(t, body.Error)
}

func TestNewPageMeta(t *testing.T) {
	m := NewPageMeta(2, 10, 25)
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, 2, m.Page)
}
