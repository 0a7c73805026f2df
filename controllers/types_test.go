package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-link/api-go/apperrors"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"app error", apperrors.ErrAlreadyRated, http.StatusConflict, apperrors.CodeAlreadyRated},
		{"wrapped db error", apperrors.ErrDBError.Wrap(errors.New("conn reset")), http.StatusInternalServerError, apperrors.CodeDBError},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "conn reset", "causes stay out of responses")
		})
	}
}

func TestBadRequestHidesValidatorDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/favors/F1/ratings", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req RateRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	badRequest(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperrors.ErrInvalidParams.Message, body.Error)
	assert.Equal(t, apperrors.CodeInvalidParams, body.Code)
	assert.NotContains(t, body.Error, "Estrellas")
	require.Len(t, c.Errors, 1, "detail kept for the request log")
	assert.Contains(t, c.Errors.String(), "Estrellas")
}
