package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/tup-eyegrade/eyegrade-api/models"
	"github.com/tup-eyegrade/eyegrade-api/utils"
	"gorm.io/datatypes"
)

var checkupDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseCheckupDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range checkupDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func (h *APIHandler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prescriptions, err := h.Prescriptions.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.Log.Error("failed to list prescriptions", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load prescriptions")
		return
	}

	writeJSON(w, http.StatusOK, prescriptions)
}

func (h *APIHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Left  string `json:"left"`
		Right string `json:"right"`
		Notes string `json:"notes"`
		Date  string `json:"date"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	checkup, ok := parseCheckupDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "A valid checkup date (YYYY-MM-DD) is required")
		return
	}

	prescription := models.Prescription{
		UserID:      user.ID,
		LeftEye:     req.Left,
		RightEye:    req.Right,
		Notes:       req.Notes,
		CheckupDate: datatypes.Date(checkup),
	}
	if err := h.Prescriptions.Create(r.Context(), &prescription); err != nil {
		h.Log.Error("failed to save prescription", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save prescription")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Saved successfully"})
}

// DeletePrescription removes a prescription the caller owns. An id the caller
// does not own is a no-op, not an error.
func (h *APIHandler) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Prescription ID is required")
		return
	}

	deleted, err := h.Prescriptions.Delete(r.Context(), user.ID, id)
	if err != nil {
		h.Log.Error("failed to delete prescription", "user_id", user.ID, "prescription_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete prescription")
		return
	}
	if deleted == 0 {
		h.Log.Debug("delete matched no prescription", "user_id", user.ID, "prescription_id", id)
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted successfully"})
}
