package service

import "github.com/golang-jwt/jwt/v5"

// TokenService validates access tokens issued by the external auth system.
// This core never issues tokens; it only gates admin endpoints.
type TokenService interface {
	// ValidateToken parses and verifies a signed token string.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
}
