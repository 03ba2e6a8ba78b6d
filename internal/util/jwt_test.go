package util

import (
	"first20_backend/internal/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 42}, Email: "ann@example.com"}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Subject)
}

func TestParseJWTRejects(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "ann@example.com"}

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(valid, "other-secret")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseJWT(unsigned, "secret")
	assert.Error(t, err)
}

func TestGetUserFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetUserFromContext(c))

	c.Set(ContextUserKey, "not claims")
	assert.Nil(t, GetUserFromContext(c))

	c.Set(ContextUserKey, &Claims{UserID: 7})
	require.NotNil(t, GetUserFromContext(c))
	assert.Equal(t, uint(7), GetUserFromContext(c).UserID)
}
