// Package services holds the account-level operations the HTTP handlers call.
package services

import (
	"context"
	"fmt"

	"github.com/tup-eyegrade/eyegrade-api/identity"
	"github.com/tup-eyegrade/eyegrade-api/logger"
)

type PurgeStage string

const (
	// StageData covers deleting assessment logs and prescriptions.
	StageData PurgeStage = "data"
	// StageAccount covers deleting the account at the identity provider.
	StageAccount PurgeStage = "account"
)

// PurgeError tells operators which stage of an account purge failed.
type PurgeError struct {
	Stage PurgeStage
	Err   error
}

func (e *PurgeError) Error() string {
	return fmt.Sprintf("account purge failed at %s stage: %v", e.Stage, e.Err)
}

func (e *PurgeError) Unwrap() error { return e.Err }

type userDataDeleter interface {
	DeleteByUser(ctx context.Context, userID string) error
}

// Transactor runs fn atomically. repositories.TxManager satisfies it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccountPurger removes everything stored for a user, then the user.
type AccountPurger struct {
	logs          userDataDeleter
	prescriptions userDataDeleter
	accounts      identity.Directory
	tx            Transactor
	log           *logger.Logger
}

// NewAccountPurger wires the purge steps. With a nil tx, finished steps stay
// done when a later step fails.
func NewAccountPurger(logs, prescriptions userDataDeleter, accounts identity.Directory, tx Transactor, log *logger.Logger) *AccountPurger {
	return &AccountPurger{
		logs:          logs,
		prescriptions: prescriptions,
		accounts:      accounts,
		tx:            tx,
		log:           log.With("service", "AccountPurger"),
	}
}

// Purge deletes assessment logs, then prescriptions, then the account, stopping at the first failure.
// Under a Transactor the account is deleted before the row deletes commit, so any failure
// leaves the rows in place.
func (p *AccountPurger) Purge(ctx context.Context, userID string) error {
	if p.tx == nil {
		return p.purge(ctx, userID)
	}
	return p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return p.purge(ctx, userID)
	})
}

func (p *AccountPurger) purge(ctx context.Context, userID string) error {
	if err := p.logs.DeleteByUser(ctx, userID); err != nil {
		p.log.Error("failed to delete assessment logs", "user_id", userID, "error", err)
		return &PurgeError{Stage: StageData, Err: err}
	}

	if err := p.prescriptions.DeleteByUser(ctx, userID); err != nil {
		p.log.Error("failed to delete prescriptions", "user_id", userID, "error", err)
		return &PurgeError{Stage: StageData, Err: err}
	}

	if err := p.accounts.DeleteAccount(ctx, userID); err != nil {
		p.log.Error("failed to delete account", "user_id", userID, "error", err)
		return &PurgeError{Stage: StageAccount, Err: err}
	}

	p.log.Info("account purged", "user_id", userID)
	return nil
}
