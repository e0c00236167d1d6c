package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken issues an HS256 access token carrying the user id,
// username and role. Default lifetime is 24 hours, override via
// JWT_EXPIRY_HOURS.
func GenerateAccessToken(userID uint, username, role string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}

	expiry := 24 * time.Hour
	if s := os.Getenv("JWT_EXPIRY_HOURS"); s != "" {
		var h int
		if _, err := fmt.Sscanf(s, "%d", &h); err == nil && h > 0 {
			expiry = time.Duration(h) * time.Hour
		}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":       userID,
		"username": username,
		"role":     role,
		"exp":      now.Add(expiry).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"iss":      os.Getenv("JWT_ISS"),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates the token signature and
// registered claims.
func ValidateAccessToken(tokenStr string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BearerToken extracts the token from the Authorization header, falling
// back to the "token" query parameter for WebSocket upgrades where browsers
// cannot set headers.
func BearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return r.URL.Query().Get("token")
}
