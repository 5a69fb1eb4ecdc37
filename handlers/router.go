package handlers

import (
	"io"
	"net/http"

	"github.com/rs/cors"
	"github.com/tup-eyegrade/eyegrade-api/middleware"
)

const healthMessage = "EyeGradeTracker Backend is Running!"

type RouterConfig struct {
	Gate       *middleware.Gate
	CORSOrigin string
	// TokenMiddleware verifies bearer tokens before routing. Nil in header mode.
	TokenMiddleware func(http.Handler) http.Handler
	// AccountSync runs after the gate on protected routes. Nil when Supabase owns accounts.
	AccountSync func(http.HandlerFunc) http.HandlerFunc
}

// NewRouter registers every route and wraps the mux in CORS and, when set,
// token verification.
func NewRouter(h *APIHandler, cfg RouterConfig) http.Handler {
	protect := func(next http.HandlerFunc) http.HandlerFunc {
		if cfg.AccountSync != nil {
			next = cfg.AccountSync(next)
		}
		return cfg.Gate.RequireAuth(next)
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, healthMessage)
	})

	// Prescriptions
	mux.HandleFunc("GET /api/prescriptions", protect(h.GetPrescriptions))
	mux.HandleFunc("POST /api/prescriptions", protect(h.CreatePrescription))
	mux.HandleFunc("DELETE /api/prescriptions/{id}", protect(h.DeletePrescription))

	// Learning content
	mux.HandleFunc("GET /api/flashcards", h.GetFlashcards)
	mux.HandleFunc("GET /api/assessment", h.GetAssessment)
	mux.HandleFunc("POST /api/assessment/submit", protect(h.SubmitAssessment))

	// User
	mux.HandleFunc("PUT /api/user/password", protect(h.UpdatePassword))
	mux.HandleFunc("DELETE /api/user/delete-account", protect(h.DeleteAccount))

	// Reminders
	mux.HandleFunc("POST /api/send-reminder", protect(h.SendReminder))

	var handler http.Handler = mux
	if cfg.TokenMiddleware != nil {
		handler = cfg.TokenMiddleware(handler)
	}

	return cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.UserIDHeader, middleware.UserEmailHeader},
		MaxAge:         86400,
	}).Handler(handler)
}
