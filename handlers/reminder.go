package handlers

import (
	"net/http"
	"strings"
)

type reminderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SendReminder mails a reminder on demand. The caller supplies the recipient
// and the already formatted due date.
func (h *APIHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		NextCheckupDate string `json:"next_checkup_date"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, reminderResponse{Error: "Invalid request body"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, reminderResponse{Error: "Email is required"})
		return
	}

	if err := h.Mailer.SendReminder(r.Context(), req.Email, req.NextCheckupDate); err != nil {
		h.Log.Error("failed to send reminder", "email", req.Email, "error", err)
		writeJSON(w, http.StatusInternalServerError, reminderResponse{Error: "Failed to send reminder email."})
		return
	}

	h.Log.Info("reminder sent on request", "email", req.Email)
	writeJSON(w, http.StatusOK, reminderResponse{Success: true, Message: "Reminder email sent successfully."})
}
