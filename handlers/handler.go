// Package handlers serves the EyeGradeTracker HTTP API.
package handlers

import (
	"context"

	"github.com/tup-eyegrade/eyegrade-api/content"
	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/mail"
	"github.com/tup-eyegrade/eyegrade-api/repositories"
)

type accountPurger interface {
	Purge(ctx context.Context, userID string) error
}

// APIHandler carries the collaborators every route needs.
type APIHandler struct {
	Prescriptions repositories.PrescriptionRepository
	Assessments   repositories.AssessmentRepository
	Purger        accountPurger
	Mailer        mail.Sender
	Deck          *content.Deck
	Log           *logger.Logger
}
