// Package mail delivers checkup reminder emails.
package mail

import (
	"bytes"
	"context"
	"errors"
	"html/template"
)

const ReminderSubject = "Action Required: Your Eye Checkup is Overdue - EyeGradeTracker"

var ErrDisabled = errors.New("mail delivery is not configured")

// Sender delivers one reminder email. nextCheckup is already formatted for display.
type Sender interface {
	SendReminder(ctx context.Context, to, nextCheckup string) error
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: auto; border: 1px solid #ddd; padding: 20px;">
  <h2 style="color: #000000; border-bottom: 2px solid #000000; padding-bottom: 10px;">Essential Eye Checkup Reminder</h2>
  <p>Dear Valued User,</p>
  <p>This is an automated notification from <strong>EyeGradeTracker</strong> about your eye care schedule.</p>
  <p>Based on your last prescription record, your recommended 6-month checkup was due on or before:</p>
  <h3 style="color: #d9534f; background-color: #f9f9f9; padding: 10px; border-radius: 5px; text-align: center;">{{.NextCheckup}}</h3>
  <p><strong>Regular checkups matter:</strong> timely visits catch problems early, especially with the long screen hours common in academic work.</p>
  <p style="margin-top: 20px;">Please <strong>schedule an appointment</strong> with your eye care professional as soon as possible.</p>
  <hr style="border-top: 1px solid #eee; margin: 20px 0;">
  <p style="font-size: 0.9em; color: #777;"><em>Remember to add your new prescription in EyeGradeTracker after your visit.</em></p>
  <p style="font-size: 0.9em; color: #777;">Best regards,<br>Eye Grade Tracker Admin</p>
</div>
`))

// RenderReminder builds the HTML body of a reminder email.
func RenderReminder(nextCheckup string) (string, error) {
	var buf bytes.Buffer
	err := reminderTemplate.Execute(&buf, struct{ NextCheckup string }{NextCheckup: nextCheckup})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Disabled is used when no SMTP credentials are configured; every send fails.
type Disabled struct{}

func (Disabled) SendReminder(ctx context.Context, to, nextCheckup string) error {
	return ErrDisabled
}
