package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the token payload the API cares about. Everything is
// single-user-scoped; the only claim the pipeline needs is the user id.
type UserClaims struct {
	UserUUID string `json:"uid"`
	jwt.RegisteredClaims
}

// UserID returns the authenticated user's id, preferring the explicit
// uid claim over the registered subject.
func (c *UserClaims) UserID() string {
	if c.UserUUID != "" {
		return c.UserUUID
	}
	return c.Subject
}

// ParseToken validates an HMAC-signed token and extracts its claims.
func ParseToken(tokenString, secret string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.UserID() == "" {
		return nil, fmt.Errorf("token carries no user id")
	}
	return claims, nil
}
