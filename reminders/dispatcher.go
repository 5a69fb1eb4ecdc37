package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tup-eyegrade/eyegrade-api/identity"
	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/mail"
	"github.com/tup-eyegrade/eyegrade-api/models"
	"github.com/tup-eyegrade/eyegrade-api/repositories"
)

var ErrSweepInProgress = errors.New("reminder sweep already in progress")

type prescriptionLister interface {
	ListAll(ctx context.Context) ([]models.Prescription, error)
}

type SweepResult struct {
	Scanned        int
	Overdue        int
	Sent           int
	LookupFailures int
	SendFailures   int
	Suppressed     int
}

type DispatcherConfig struct {
	Prescriptions prescriptionLister
	Directory     identity.Directory
	Mailer        mail.Sender
	// Notifications is only consulted when Dedupe is set.
	Notifications repositories.NotificationRepository
	Dedupe        bool
	Locker        Locker
	Clock         func() time.Time
	Location      *time.Location
}

// Dispatcher scans every prescription and mails the owners of overdue ones.
type Dispatcher struct {
	prescriptions prescriptionLister
	directory     identity.Directory
	mailer        mail.Sender
	notifications repositories.NotificationRepository
	dedupe        bool
	locker        Locker
	clock         func() time.Time
	loc           *time.Location
	log           *logger.Logger
}

func NewDispatcher(log *logger.Logger, cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		prescriptions: cfg.Prescriptions,
		directory:     cfg.Directory,
		mailer:        cfg.Mailer,
		notifications: cfg.Notifications,
		dedupe:        cfg.Dedupe && cfg.Notifications != nil,
		locker:        cfg.Locker,
		clock:         cfg.Clock,
		loc:           cfg.Location,
		log:           log.With("component", "ReminderDispatcher"),
	}
	if d.locker == nil {
		d.locker = &LocalLocker{}
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	if d.loc == nil {
		d.loc = time.Local
	}
	return d
}

// Sweep runs one pass over all prescriptions. Sends happen one after another;
// a failed lookup or send is logged and the pass moves on. Only a failure to
// read the prescriptions aborts it.
func (d *Dispatcher) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	release, ok, err := d.locker.TryLock(ctx)
	if err != nil {
		d.log.Error("failed to take sweep lock", "error", err)
		return res, err
	}
	if !ok {
		d.log.Debug("sweep skipped, another one is running")
		return res, ErrSweepInProgress
	}
	defer release()

	prescriptions, err := d.prescriptions.ListAll(ctx)
	if err != nil {
		d.log.Error("failed to scan prescriptions", "error", err)
		return res, err
	}
	res.Scanned = len(prescriptions)

	now := d.clock()
	for _, p := range prescriptions {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		sched := Evaluate(p.Checkup(), now, d.loc)
		if !sched.Overdue {
			continue
		}
		res.Overdue++

		if d.dedupe {
			sent, err := d.notifications.WasNotified(ctx, p.PublicID, sched.NextDue)
			if err != nil {
				d.log.Warn("failed to check reminder history, sending anyway", "prescription_id", p.PublicID, "error", err)
			} else if sent {
				res.Suppressed++
				continue
			}
		}

		email, err := d.directory.LookupEmail(ctx, p.UserID)
		if err != nil {
			res.LookupFailures++
			d.log.Error("failed to look up owner email", "user_id", p.UserID, "error", err)
			continue
		}

		due := FormatDue(sched.NextDue)
		if err := d.mailer.SendReminder(ctx, email, due); err != nil {
			res.SendFailures++
			d.log.Error("failed to send reminder", "email", email, "next_checkup", due, "error", err)
			continue
		}
		res.Sent++
		d.log.Info("reminder sent", "email", email, "next_checkup", due)

		if d.dedupe {
			if err := d.notifications.Record(ctx, p.PublicID, sched.NextDue, now); err != nil {
				d.log.Warn("failed to record reminder", "prescription_id", p.PublicID, "error", err)
			}
		}
	}

	d.log.Info("reminder sweep finished",
		"scanned", res.Scanned,
		"overdue", res.Overdue,
		"sent", res.Sent,
		"lookup_failures", res.LookupFailures,
		"send_failures", res.SendFailures,
		"suppressed", res.Suppressed,
	)
	return res, nil
}

func (r SweepResult) String() string {
	return fmt.Sprintf("scanned=%d overdue=%d sent=%d lookup_failures=%d send_failures=%d suppressed=%d",
		r.Scanned, r.Overdue, r.Sent, r.LookupFailures, r.SendFailures, r.Suppressed)
}
