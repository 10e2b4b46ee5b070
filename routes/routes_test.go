package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/configs"
	"github.com/n4mp3un9/car-rental-sub001/controllers"
	"github.com/n4mp3un9/car-rental-sub001/pkg/testutil"
	"github.com/n4mp3un9/car-rental-sub001/routes"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type api struct {
	t *testing.T
	h http.Handler
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, controllers.RegisterValidators())
	cfg := &configs.Config{
		JWTSecret:    "routes-secret",
		JWTTTL:       time.Hour,
		UploadDir:    t.TempDir(),
		CancelWindow: 2 * time.Hour,
	}
	r := gin.New()
	routes.RegisterRoutes(r, testutil.NewDB(t), cfg, nil)
	return &api{t: t, h: r}
}

func (a *api) call(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) register(username string, extra map[string]any) string {
	a.t.Helper()
	body := map[string]any{"username": username, "email": username + "@example.com", "password": "hunter22"}
	for k, v := range extra {
		body[k] = v
	}
	code, env := a.call(http.MethodPost, "/api/register", "", body)
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.Token
}

func decodeID(t *testing.T, raw json.RawMessage) uint {
	t.Helper()
	var v struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(raw, &v))
	return v.ID
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	code, env := a.call(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)
	shop := a.register("fastcars", map[string]any{"role": "shop", "shopName": "Fast Cars"})
	cust := a.register("alice", nil)

	code, env := a.call(http.MethodPost, "/api/login", "", map[string]any{"identifier": "alice@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, code, env.Error)

	// roles are enforced by route group
	code, _ = a.call(http.MethodPost, "/api/cars", cust, map[string]any{"brand": "x", "model": "y", "licensePlate": "Z", "dailyRate": 1})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.call(http.MethodGet, "/api/customer/rentals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = a.call(http.MethodPost, "/api/cars", shop, map[string]any{
		"brand": "Toyota", "model": "Yaris", "licensePlate": "AB-1", "dailyRate": 800, "insuranceRate": 100,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	carID := decodeID(t, env.Data)

	code, env = a.call(http.MethodGet, "/api/cars?sort=price_asc", "", nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Contains(t, string(env.Data), `"total":1`)

	start := utils.TruncateDay(time.Now()).AddDate(0, 0, 2).Format(utils.DateLayout)
	end := utils.TruncateDay(time.Now()).AddDate(0, 0, 4).Format(utils.DateLayout)
	booking := map[string]any{"carId": carID, "startDate": start, "endDate": end, "withInsurance": true}

	code, env = a.call(http.MethodPost, "/api/customer/rentals", cust, booking)
	require.Equal(t, http.StatusCreated, code, env.Error)
	var rental struct {
		ID           uint    `json:"ID"`
		TotalAmount  float64 `json:"totalAmount"`
		RentalStatus string  `json:"rentalStatus"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rental))
	assert.InDelta(t, 1800, rental.TotalAmount, 0.001)
	assert.Equal(t, "pending", rental.RentalStatus)

	code, _ = a.call(http.MethodPost, "/api/customer/rentals", cust, booking)
	assert.Equal(t, http.StatusConflict, code, "overlapping booking")

	code, _ = a.call(http.MethodPost, "/api/customer/rentals", cust, map[string]any{"carId": carID, "startDate": "tomorrow", "endDate": end})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.call(http.MethodPut, fmt.Sprintf("/api/shop/rentals/%d/confirm", rental.ID), shop, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Contains(t, string(env.Data), `"rentalStatus":"confirmed"`)

	code, _ = a.call(http.MethodPut, fmt.Sprintf("/api/shop/rentals/%d/complete", rental.ID), shop, nil)
	assert.Equal(t, http.StatusConflict, code, "cannot skip start")

	code, _ = a.call(http.MethodPut, fmt.Sprintf("/api/customer/rentals/%d/cancel", rental.ID), cust, map[string]any{"reason": "plans changed"})
	assert.Equal(t, http.StatusConflict, code, "confirmed rentals are not customer-cancellable")

	code, env = a.call(http.MethodGet, "/api/shop/notifications", shop, nil)
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.call(http.MethodGet, "/api/customer/rentals?status=confirmed", cust, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Contains(t, string(env.Data), `"total":1`)
}

func TestBlacklistBlocksBooking(t *testing.T) {
	a := newAPI(t)
	shop := a.register("fastcars", map[string]any{"role": "shop", "shopName": "Fast Cars"})
	cust := a.register("mallory", nil)

	code, env := a.call(http.MethodGet, "/api/me", cust, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	custID := decodeID(t, env.Data)

	code, env = a.call(http.MethodPost, "/api/cars", shop, map[string]any{"brand": "Honda", "model": "City", "licensePlate": "BL-1", "dailyRate": 700})
	require.Equal(t, http.StatusCreated, code, env.Error)
	carID := decodeID(t, env.Data)

	code, env = a.call(http.MethodPost, "/api/blacklist", shop, map[string]any{"customerId": custID, "reason": "damage"})
	require.Equal(t, http.StatusCreated, code, env.Error)

	start := utils.TruncateDay(time.Now()).AddDate(0, 0, 1).Format(utils.DateLayout)
	end := utils.TruncateDay(time.Now()).AddDate(0, 0, 2).Format(utils.DateLayout)
	code, _ = a.call(http.MethodPost, "/api/customer/rentals", cust, map[string]any{"carId": carID, "startDate": start, "endDate": end})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = a.call(http.MethodDelete, fmt.Sprintf("/api/blacklist/%d", custID), shop, nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = a.call(http.MethodPost, "/api/customer/rentals", cust, map[string]any{"carId": carID, "startDate": start, "endDate": end})
	assert.Equal(t, http.StatusCreated, code, env.Error)
}

func TestCancelReasonIsValidated(t *testing.T) {
	a := newAPI(t)
	shop := a.register("fastcars", map[string]any{"role": "shop", "shopName": "Fast Cars"})
	cust := a.register("alice", nil)

	code, env := a.call(http.MethodPost, "/api/cars", shop, map[string]any{"brand": "Mazda", "model": "2", "licensePlate": "CN-1", "dailyRate": 600})
	require.Equal(t, http.StatusCreated, code, env.Error)
	carID := decodeID(t, env.Data)

	book := func(offset int) uint {
		start := utils.TruncateDay(time.Now()).AddDate(0, 0, offset).Format(utils.DateLayout)
		end := utils.TruncateDay(time.Now()).AddDate(0, 0, offset+1).Format(utils.DateLayout)
		code, env := a.call(http.MethodPost, "/api/customer/rentals", cust, map[string]any{"carId": carID, "startDate": start, "endDate": end})
		require.Equal(t, http.StatusCreated, code, env.Error)
		return decodeID(t, env.Data)
	}
	first, second := book(1), book(3)
	long := map[string]any{"reason": strings.Repeat("x", 501)}

	code, _ = a.call(http.MethodPut, fmt.Sprintf("/api/customer/rentals/%d/cancel", first), cust, long)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.call(http.MethodPut, fmt.Sprintf("/api/shop/rentals/%d/cancel", second), shop, long)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.call(http.MethodGet, "/api/customer/rentals?status=pending", cust, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Contains(t, string(env.Data), `"total":2`)

	// the body is optional
	code, env = a.call(http.MethodPut, fmt.Sprintf("/api/customer/rentals/%d/cancel", first), cust, nil)
	assert.Equal(t, http.StatusOK, code, env.Error)
	code, env = a.call(http.MethodPut, fmt.Sprintf("/api/shop/rentals/%d/cancel", second), shop, nil)
	assert.Equal(t, http.StatusOK, code, env.Error)
}
