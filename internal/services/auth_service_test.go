package services_test

import (
	"fmt"
	"testing"
	"time"

	"inventory/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newTestAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	return services.NewAuthService("admin", string(hash), testJWTSecret)
}

func TestAuthService_IssueToken(t *testing.T) {
	authService := newTestAuthService(t)

	// Test successful login
	token, err := authService.IssueToken("admin", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "admin", claims["sub"])

	// Test invalid credentials (wrong password)
	_, err = authService.IssueToken("admin", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Test invalid credentials (unknown operator)
	_, err = authService.IssueToken("someone", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newTestAuthService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["sub"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Signed with a different secret
	foreign, _ := token.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(foreign)
	assert.Error(t, err)

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_Operator(t *testing.T) {
	authService := newTestAuthService(t)

	issued, err := authService.IssueToken("admin", "password123")
	require.NoError(t, err)
	operator, err := authService.Operator(issued)
	require.NoError(t, err)
	assert.Equal(t, "admin", operator)

	for _, sub := range []interface{}{"intruder", 42, nil} {
		claims := jwt.MapClaims{"exp": jwt.TimeFunc().Add(time.Hour).Unix()}
		if sub != nil {
			claims["sub"] = sub
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		_, err = authService.Operator(signed)
		assert.Error(t, err, "subject %v", sub)
	}

	// A rotated operator name invalidates earlier tokens
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	rotated := services.NewAuthService("root", string(hash), testJWTSecret)
	_, err = rotated.Operator(issued)
	assert.Error(t, err)
}
