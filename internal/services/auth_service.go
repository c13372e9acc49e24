package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and checks operator tokens for mutating routes.
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService for a single operator account
// whose password is stored as a bcrypt hash.
func NewAuthService(username, passwordHash, jwtSecret string) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     24 * time.Hour,
	}
}

// IssueToken checks the operator credentials and returns a signed JWT.
func (s *AuthService) IssueToken(username, password string) (string, error) {
	if username != s.username {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Operator validates tokenString and returns the operator it was issued
// to. Tokens for any other subject are rejected.
func (s *AuthService) Operator(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub != s.username {
		return "", fmt.Errorf("invalid token: subject %q is not the operator", sub)
	}
	return sub, nil
}
