package handlers

import (
	"errors"
	"net/http"

	"github.com/tup-eyegrade/eyegrade-api/models"
	"github.com/tup-eyegrade/eyegrade-api/services"
	"github.com/tup-eyegrade/eyegrade-api/utils"
)

type submitResponse struct {
	Flagged bool `json:"flagged"`
}

func (h *APIHandler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		YesCount int `json:"yesCount"`
		Total    int `json:"total"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flagged, err := services.Score(req.YesCount, req.Total)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTotal):
			writeError(w, http.StatusBadRequest, "total must be greater than zero")
		case errors.Is(err, services.ErrInvalidYesCount):
			writeError(w, http.StatusBadRequest, "yesCount must be between 0 and total")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	entry := models.AssessmentLog{
		UserID:  user.ID,
		Score:   req.YesCount,
		Total:   req.Total,
		Flagged: flagged,
	}
	if err := h.Assessments.Create(r.Context(), &entry); err != nil {
		h.Log.Error("failed to save assessment", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save assessment")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{Flagged: flagged})
}
