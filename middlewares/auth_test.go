package middlewares_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/middlewares"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

const secret = "mw-secret"

type activeSet map[uint]bool

func (s activeSet) IsActive(_ context.Context, id uint) (bool, error) { return s[id], nil }

func token(t *testing.T, id uint, role entity.Role) string {
	t.Helper()
	u := &entity.User{Username: "u", Role: role}
	u.ID = id
	tok, err := utils.GenerateToken(u, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(middlewares.AuthMiddleware(secret, activeSet{1: true}))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+token(t, 2, entity.RoleCustomer)).Code, "inactive account")

	w := do(r, "Bearer "+token(t, 1, entity.RoleCustomer))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(1), body.ID)
	assert.Equal(t, "customer", body.Role)
}

func TestRequireRole(t *testing.T) {
	r := newRouter(middlewares.AuthMiddleware(secret, nil), middlewares.RequireRole(entity.RoleShop))

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+token(t, 1, entity.RoleCustomer)).Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+token(t, 2, entity.RoleShop)).Code)
}

func TestOptionalAuth(t *testing.T) {
	r := newRouter(middlewares.OptionalAuth(secret))

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer garbage").Code)
	assert.Contains(t, do(r, "Bearer "+token(t, 5, entity.RoleShop)).Body.String(), `"id":5`)
}

func TestWSAuthMiddleware_QueryToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", middlewares.WSAuthMiddleware(secret, activeSet{9: true}), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", utils.CurrentUserID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token(t, 9, entity.RoleCustomer), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token(t, 4, entity.RoleCustomer), nil))
	assert.Equal(t, http.StatusForbidden, w.Code, "inactive account")
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := newRouter(middlewares.RequestLogger(discardLogger()))

	w := do(r, "")
	assert.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middlewares.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middlewares.RequestIDHeader))
}
