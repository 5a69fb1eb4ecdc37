package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/tup-eyegrade/eyegrade-api/logger"
)

// SupabaseAudience is the aud claim Supabase Auth puts on signed-in user tokens.
const SupabaseAudience = "authenticated"

// CustomClaims carries the Supabase claims the gate needs beyond sub.
type CustomClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken verifies HS256 bearer tokens issued by Supabase Auth.
// Requests without a token pass through unverified so public routes stay open;
// RequireAuth rejects them where identity is needed.
func EnsureValidToken(supabaseURL, jwtSecret string, log *logger.Logger) (func(http.Handler) http.Handler, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(jwtSecret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		supabaseURL+"/auth/v1",
		[]string{SupabaseAudience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	log = log.With("middleware", "EnsureValidToken")
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("rejected bearer token", "error", err)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
	)

	return func(next http.Handler) http.Handler {
		return mw.CheckJWT(next)
	}, nil
}
