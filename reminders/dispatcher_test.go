package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tup-eyegrade/eyegrade-api/identity"
	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/models"
	"gorm.io/datatypes"
)

var sweepNow = time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)

type fakeLister struct {
	prescriptions []models.Prescription
	err           error
}

func (f *fakeLister) ListAll(ctx context.Context) ([]models.Prescription, error) {
	return f.prescriptions, f.err
}

type fakeDirectory struct {
	emails map[string]string
}

func (f *fakeDirectory) LookupEmail(ctx context.Context, userID string) (string, error) {
	email, ok := f.emails[userID]
	if !ok {
		return "", identity.ErrAccountNotFound
	}
	return email, nil
}

func (f *fakeDirectory) DeleteAccount(ctx context.Context, userID string) error {
	return nil
}

type sentMail struct {
	to  string
	due string
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failFor  map[string]bool
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeMailer) SendReminder(ctx context.Context, to, due string) error {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, due: due})
	if f.failFor[to] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	return nil
}

type fakeNotifications struct {
	mu       sync.Mutex
	recorded map[string]bool
}

func (f *fakeNotifications) key(id string, due time.Time) string {
	return id + "|" + due.Format("2006-01-02")
}

func (f *fakeNotifications) WasNotified(ctx context.Context, prescriptionID string, due time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recorded[f.key(prescriptionID, due)], nil
}

func (f *fakeNotifications) Record(ctx context.Context, prescriptionID string, due, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recorded == nil {
		f.recorded = map[string]bool{}
	}
	f.recorded[f.key(prescriptionID, due)] = true
	return nil
}

func prescription(id, userID string, checkup time.Time) models.Prescription {
	return models.Prescription{PublicID: id, UserID: userID, CheckupDate: datatypes.Date(checkup)}
}

func newTestDispatcher(lister *fakeLister, dir *fakeDirectory, mailer *fakeMailer) *Dispatcher {
	return NewDispatcher(logger.NewNop(), DispatcherConfig{
		Prescriptions: lister,
		Directory:     dir,
		Mailer:        mailer,
		Clock:         func() time.Time { return sweepNow },
		Location:      time.UTC,
	})
}

func TestSweep_SendsOnlyForOverdue(t *testing.T) {
	lister := &fakeLister{prescriptions: []models.Prescription{
		prescription("p1", "u1", date(2024, time.January, 15)), // due today
		prescription("p2", "u2", date(2024, time.January, 16)), // due tomorrow
		prescription("p3", "u3", date(2023, time.May, 1)),
	}}
	dir := &fakeDirectory{emails: map[string]string{
		"u1": "ana@tup.edu.ph",
		"u2": "ben@tup.edu.ph",
		"u3": "cy@tup.edu.ph",
	}}
	mailer := &fakeMailer{}

	res, err := newTestDispatcher(lister, dir, mailer).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SweepResult{Scanned: 3, Overdue: 2, Sent: 2}, res)
	assert.Equal(t, []sentMail{
		{to: "ana@tup.edu.ph", due: "7/15/2024"},
		{to: "cy@tup.edu.ph", due: "11/1/2023"},
	}, mailer.sent)
}

func TestSweep_OneSendPerOverduePrescription(t *testing.T) {
	var prescriptions []models.Prescription
	emails := map[string]string{}
	for i := 0; i < 8; i++ {
		userID := fmt.Sprintf("u%d", i%3)
		emails[userID] = userID + "@tup.edu.ph"
		checkup := date(2023, time.January, 1)
		if i%2 == 1 {
			checkup = date(2024, time.June, 1)
		}
		prescriptions = append(prescriptions, prescription(fmt.Sprintf("p%d", i), userID, checkup))
	}
	mailer := &fakeMailer{}

	res, err := newTestDispatcher(&fakeLister{prescriptions: prescriptions}, &fakeDirectory{emails: emails}, mailer).
		Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, res.Overdue)
	assert.Equal(t, 4, res.Sent)
	assert.Len(t, mailer.sent, 4)
}

func TestSweep_NeverTwoSendsInFlight(t *testing.T) {
	var prescriptions []models.Prescription
	for i := 0; i < 5; i++ {
		prescriptions = append(prescriptions, prescription(fmt.Sprintf("p%d", i), "u1", date(2023, time.January, 1)))
	}
	mailer := &fakeMailer{delay: 5 * time.Millisecond}
	d := newTestDispatcher(&fakeLister{prescriptions: prescriptions}, &fakeDirectory{emails: map[string]string{"u1": "ana@tup.edu.ph"}}, mailer)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Sweep(context.Background())
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, mailer.maxSeen.Load())
}

func TestSweep_FailedSendDoesNotStopLaterSends(t *testing.T) {
	lister := &fakeLister{prescriptions: []models.Prescription{
		prescription("p1", "u1", date(2023, time.January, 1)),
		prescription("p2", "u2", date(2023, time.January, 1)),
		prescription("p3", "u3", date(2023, time.January, 1)),
	}}
	dir := &fakeDirectory{emails: map[string]string{
		"u1": "ana@tup.edu.ph",
		"u2": "ben@tup.edu.ph",
		"u3": "cy@tup.edu.ph",
	}}
	mailer := &fakeMailer{failFor: map[string]bool{"ana@tup.edu.ph": true}}

	res, err := newTestDispatcher(lister, dir, mailer).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.SendFailures)
	assert.Equal(t, 2, res.Sent)
	assert.Len(t, mailer.sent, 3)
}

func TestSweep_LookupFailureContinues(t *testing.T) {
	lister := &fakeLister{prescriptions: []models.Prescription{
		prescription("p1", "ghost", date(2023, time.January, 1)),
		prescription("p2", "u2", date(2023, time.January, 1)),
	}}
	dir := &fakeDirectory{emails: map[string]string{"u2": "ben@tup.edu.ph"}}
	mailer := &fakeMailer{}

	res, err := newTestDispatcher(lister, dir, mailer).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.LookupFailures)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, []sentMail{{to: "ben@tup.edu.ph", due: "7/1/2023"}}, mailer.sent)
}

func TestSweep_ScanFailureAborts(t *testing.T) {
	scanErr := errors.New("connection refused")
	mailer := &fakeMailer{}

	_, err := newTestDispatcher(&fakeLister{err: scanErr}, &fakeDirectory{}, mailer).Sweep(context.Background())

	assert.ErrorIs(t, err, scanErr)
	assert.Empty(t, mailer.sent)
}

func TestSweep_LockHeld(t *testing.T) {
	locker := &LocalLocker{}
	release, ok, err := locker.TryLock(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	defer release()

	mailer := &fakeMailer{}
	d := NewDispatcher(logger.NewNop(), DispatcherConfig{
		Prescriptions: &fakeLister{prescriptions: []models.Prescription{prescription("p1", "u1", date(2023, time.January, 1))}},
		Directory:     &fakeDirectory{emails: map[string]string{"u1": "ana@tup.edu.ph"}},
		Mailer:        mailer,
		Locker:        locker,
		Clock:         func() time.Time { return sweepNow },
	})

	_, err = d.Sweep(context.Background())

	assert.ErrorIs(t, err, ErrSweepInProgress)
	assert.Empty(t, mailer.sent)
}

func TestSweep_RepeatsWithoutDedupe(t *testing.T) {
	lister := &fakeLister{prescriptions: []models.Prescription{prescription("p1", "u1", date(2023, time.January, 1))}}
	mailer := &fakeMailer{}
	d := newTestDispatcher(lister, &fakeDirectory{emails: map[string]string{"u1": "ana@tup.edu.ph"}}, mailer)

	_, err := d.Sweep(context.Background())
	require.NoError(t, err)
	_, err = d.Sweep(context.Background())
	require.NoError(t, err)

	assert.Len(t, mailer.sent, 2)
}

func TestSweep_DedupeSuppressesRepeat(t *testing.T) {
	lister := &fakeLister{prescriptions: []models.Prescription{prescription("p1", "u1", date(2023, time.January, 1))}}
	mailer := &fakeMailer{}
	d := NewDispatcher(logger.NewNop(), DispatcherConfig{
		Prescriptions: lister,
		Directory:     &fakeDirectory{emails: map[string]string{"u1": "ana@tup.edu.ph"}},
		Mailer:        mailer,
		Notifications: &fakeNotifications{},
		Dedupe:        true,
		Clock:         func() time.Time { return sweepNow },
		Location:      time.UTC,
	})

	first, err := d.Sweep(context.Background())
	require.NoError(t, err)
	second, err := d.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Sent)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Suppressed)
	assert.Len(t, mailer.sent, 1)
}

func TestSweep_DedupeRetriesFailedSend(t *testing.T) {
	lister := &fakeLister{prescriptions: []models.Prescription{prescription("p1", "u1", date(2023, time.January, 1))}}
	mailer := &fakeMailer{failFor: map[string]bool{"ana@tup.edu.ph": true}}
	d := NewDispatcher(logger.NewNop(), DispatcherConfig{
		Prescriptions: lister,
		Directory:     &fakeDirectory{emails: map[string]string{"u1": "ana@tup.edu.ph"}},
		Mailer:        mailer,
		Notifications: &fakeNotifications{},
		Dedupe:        true,
		Clock:         func() time.Time { return sweepNow },
		Location:      time.UTC,
	})

	_, _ = d.Sweep(context.Background())
	second, err := d.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, second.Suppressed)
	assert.Len(t, mailer.sent, 2)
}
