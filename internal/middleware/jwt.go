package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the subset of token claims the API cares about.
type JWTClaims struct {
	Subject   string
	Name      string
	Issuer    string
	ExpiresAt time.Time
	Raw       map[string]any
}

// JWTValidator validates a raw bearer token and returns its claims.
type JWTValidator interface {
	Validate(tokenStr string) (*JWTClaims, error)
}

// HS256Validator validates tokens signed with a shared HMAC secret.
type HS256Validator struct {
	secret []byte
}

// NewHS256Validator returns a validator for HS256-signed tokens.
func NewHS256Validator(secret []byte) (*HS256Validator, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &HS256Validator{secret: secret}, nil
}

// Validate parses and verifies the token, returning its claims.
func (v *HS256Validator) Validate(tokenStr string) (*JWTClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	claims := &JWTClaims{Raw: mapClaims}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if iss, err := mapClaims.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}
