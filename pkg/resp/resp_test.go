package resp_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
)

func TestError_StatusByKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("bad dates"), http.StatusBadRequest, "bad dates"},
		{apperr.Unauthorized("who"), http.StatusUnauthorized, "who"},
		{apperr.Forbidden("blacklisted"), http.StatusForbidden, "blacklisted"},
		{apperr.NotFound("car not found"), http.StatusNotFound, "car not found"},
		{apperr.Conflict("overlap"), http.StatusConflict, "overlap"},
		{apperr.InvalidState("closed"), http.StatusConflict, "closed"},
		{errors.New("db down"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			resp.Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body struct {
				OK    bool   `json:"ok"`
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.OK)
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}
