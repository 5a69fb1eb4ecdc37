package handlers

import "net/http"

func (h *APIHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Deck.DrawFlashcards())
}

func (h *APIHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Deck.DrawQuestions())
}
