package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utafrali/storefront/pkg/middleware"
)

// ErrNoSecret is returned for every token when no signing secret is configured.
var ErrNoSecret = errors.New("jwt secret not configured")

// Claims are the access token claims issued by the user service.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Validator verifies HMAC-signed access tokens.
type Validator struct {
	secret []byte
	issuer string
}

// NewValidator creates a validator for tokens signed with secret. A non-empty
// issuer is enforced on every token.
func NewValidator(secret, issuer string) *Validator {
	return &Validator{secret: []byte(secret), issuer: issuer}
}

// Validate parses tokenString and returns its identity. The subject claim
// stands in for a missing user_id.
func (v *Validator) Validate(tokenString string) (*middleware.Claims, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("access token has no subject")
	}

	return &middleware.Claims{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}

// TokenValidator adapts v to the auth middleware.
func (v *Validator) TokenValidator() middleware.TokenValidator {
	return v.Validate
}
