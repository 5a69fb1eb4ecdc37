package middleware

import (
	"context"
	"net/http"

	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/utils"
)

type accountSyncer interface {
	Sync(ctx context.Context, id, email string) (created bool, err error)
}

// AccountSync records the caller in the local accounts table so the local
// directory can resolve their email later. It must run after RequireAuth.
func AccountSync(store accountSyncer, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	log = log.With("middleware", "AccountSync")
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			created, err := store.Sync(r.Context(), identity.ID, identity.Email)
			if err != nil {
				log.Error("failed to sync account", "user_id", identity.ID, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to sync account")
				return
			}
			if created {
				log.Info("created local account", "user_id", identity.ID, "email", identity.Email)
			}

			next.ServeHTTP(w, r)
		}
	}
}
