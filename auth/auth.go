package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSecret = errors.New("jwt secret not set")

// serviceRoleTTL matches the multi-year lifetime of the keys the Supabase dashboard issues.
const serviceRoleTTL = 10 * 365 * 24 * time.Hour

// CreateServiceRoleKey signs a service_role key with the project JWT secret.
// It stands in for SUPABASE_KEY when only the secret is configured.
func CreateServiceRoleKey(secret string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"iss":  "supabase",
			"role": "service_role",
			"iat":  now.Unix(),
			"exp":  now.Add(serviceRoleTTL).Unix(),
		})

	return token.SignedString([]byte(secret))
}

// CreateToken signs a user access token shaped like the ones Supabase Auth issues.
func CreateToken(secret, issuer, userID, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"iss":   issuer,
			"aud":   "authenticated",
			"sub":   userID,
			"email": email,
			"role":  "authenticated",
			"iat":   now.Unix(),
			"exp":   now.Add(ttl).Unix(),
		})

	return token.SignedString([]byte(secret))
}
