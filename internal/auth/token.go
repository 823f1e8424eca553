package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the panel reads out of the backend's bearer token.
type TokenInfo struct {
	ExpiresAt time.Time
	Role      string
}

// InspectToken decodes a JWT without checking its signature; the backend
// verifies it on every call. ok is false for anything that is not a JWT.
func InspectToken(token string) (TokenInfo, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}
	var info TokenInfo
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	info.Role = RoleOf(claims)
	return info, true
}
