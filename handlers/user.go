package handlers

import (
	"errors"
	"net/http"

	"github.com/tup-eyegrade/eyegrade-api/services"
	"github.com/tup-eyegrade/eyegrade-api/utils"
)

// UpdatePassword only acknowledges the request; the client changes the
// password with the identity provider directly.
func (h *APIHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password update request received."})
}

func (h *APIHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.Purger.Purge(r.Context(), user.ID)
	if err != nil {
		var purgeErr *services.PurgeError
		if errors.As(err, &purgeErr) && purgeErr.Stage == services.StageAccount {
			writeError(w, http.StatusInternalServerError, "Failed to delete user account.")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal error occurred during data cleanup")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Account successfully deleted."})
}
