package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/utils"
)

const (
	UserIDHeader    = "user-id"
	UserEmailHeader = "user-email"
)

var (
	ErrMissingIdentity    = errors.New("missing identity")
	ErrDomainNotPermitted = errors.New("email domain not permitted")
)

// Gate authorizes callers by email domain. In header mode the user-id and
// user-email headers are trusted as sent; the gate proves nothing about them.
// In token mode they come from claims already verified by EnsureValidToken.
type Gate struct {
	domain    string
	tokenMode bool
	log       *logger.Logger
}

func NewGate(domain string, tokenMode bool, log *logger.Logger) *Gate {
	return &Gate{domain: domain, tokenMode: tokenMode, log: log.With("middleware", "AuthGate")}
}

// Check applies the domain policy to a claimed identity.
func (g *Gate) Check(id, email string) (utils.Identity, error) {
	if id == "" || email == "" {
		return utils.Identity{}, ErrMissingIdentity
	}
	if !strings.HasSuffix(email, g.domain) {
		return utils.Identity{}, ErrDomainNotPermitted
	}
	return utils.Identity{ID: id, Email: email}, nil
}

// RequireAuth attaches the caller's identity to the request context or rejects the request.
func (g *Gate) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, email := g.claimedIdentity(r)

		identity, err := g.Check(id, email)
		switch {
		case errors.Is(err, ErrMissingIdentity):
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		case errors.Is(err, ErrDomainNotPermitted):
			g.log.Warn("rejected email domain", "user_id", id, "email", email)
			writeError(w, http.StatusForbidden, "Restricted to "+g.domain+" accounts only")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	}
}

func (g *Gate) claimedIdentity(r *http.Request) (string, string) {
	if !g.tokenMode {
		return r.Header.Get(UserIDHeader), r.Header.Get(UserEmailHeader)
	}

	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims == nil {
		return "", ""
	}
	email := ""
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil {
		email = custom.Email
	}
	return claims.RegisteredClaims.Subject, email
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
