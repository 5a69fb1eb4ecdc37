package mail

import (
	"context"
	"fmt"
	"sync"
	"time"

	gomail "github.com/wneessen/go-mail"
	"github.com/tup-eyegrade/eyegrade-api/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender sends through an authenticated SMTP relay such as Gmail.
// Sends are serialized so the relay never sees more than one session from this process.
type SMTPSender struct {
	mu     sync.Mutex
	cfg    SMTPConfig
	client *gomail.Client
	log    *logger.Logger
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(log *logger.Logger, cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("missing EMAIL_USER or EMAIL_PASS")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPSender{cfg: cfg, client: client, log: log.With("client", "SMTPSender")}, nil
}

// Verify opens and closes one SMTP session to check host reachability and credentials.
func (s *SMTPSender) Verify(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("cannot connect to mail server: %w", err)
	}
	return s.client.Close()
}

func (s *SMTPSender) SendReminder(ctx context.Context, to, nextCheckup string) error {
	body, err := RenderReminder(nextCheckup)
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(ReminderSubject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("sending reminder", "email", to)
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}
