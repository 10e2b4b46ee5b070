package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	u := &entity.User{Username: "alice", Email: "alice@example.com", Role: entity.RoleShop}
	u.ID = 7

	tok, err := utils.GenerateToken(u, "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, entity.RoleShop, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	u := &entity.User{Username: "alice", Role: entity.RoleCustomer}
	u.ID = 1

	good, err := utils.GenerateToken(u, "s3cret", time.Hour)
	require.NoError(t, err)
	_, err = utils.ParseToken(good, "other")
	assert.Error(t, err, "wrong secret")

	expired, err := utils.GenerateToken(u, "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = utils.ParseToken(expired, "s3cret")
	assert.Error(t, err, "expired")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.Claims{UserID: 1, Role: entity.RoleCustomer}).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = utils.ParseToken(noExp, "s3cret")
	assert.Error(t, err, "missing exp")

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.Claims{
		UserID:           1,
		Role:             entity.Role("admin"),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = utils.ParseToken(badRole, "s3cret")
	assert.Error(t, err, "unknown role")

	_, err = utils.ParseToken("not.a.token", "s3cret")
	assert.Error(t, err)
}
