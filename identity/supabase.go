package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tup-eyegrade/eyegrade-api/logger"
)

// SupabaseConfig points the directory at a Supabase project's Auth admin API.
type SupabaseConfig struct {
	BaseURL        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// SupabaseDirectory implements Directory over the GoTrue admin endpoints.
type SupabaseDirectory struct {
	cfg        SupabaseConfig
	httpClient *http.Client
	log        *logger.Logger
}

var _ Directory = (*SupabaseDirectory)(nil)

func NewSupabaseDirectory(log *logger.Logger, cfg SupabaseConfig) (*SupabaseDirectory, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("missing SUPABASE_URL")
	}
	if strings.TrimSpace(cfg.ServiceRoleKey) == "" {
		return nil, fmt.Errorf("missing SUPABASE_KEY")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &SupabaseDirectory{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("client", "SupabaseDirectory"),
	}, nil
}

type adminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (d *SupabaseDirectory) LookupEmail(ctx context.Context, userID string) (string, error) {
	var user adminUser
	if err := d.do(ctx, http.MethodGet, userID, &user); err != nil {
		return "", err
	}
	if user.Email == "" {
		return "", fmt.Errorf("user %s has no email: %w", userID, ErrAccountNotFound)
	}
	return user.Email, nil
}

func (d *SupabaseDirectory) DeleteAccount(ctx context.Context, userID string) error {
	return d.do(ctx, http.MethodDelete, userID, nil)
}

func (d *SupabaseDirectory) do(ctx context.Context, method, userID string, out any) error {
	if userID == "" {
		return ErrAccountNotFound
	}
	endpoint := d.cfg.BaseURL + "/auth/v1/admin/users/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("apikey", d.cfg.ServiceRoleKey)
	req.Header.Set("Authorization", "Bearer "+d.cfg.ServiceRoleKey)
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase admin %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrAccountNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		d.log.Warn("supabase admin call failed", "method", method, "status", resp.StatusCode)
		return &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode supabase admin response: %w", err)
	}
	return nil
}

// APIError is a non-2xx answer from the Auth admin API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase admin api error (%d)", e.Status)
	}
	return fmt.Sprintf("supabase admin api error (%d): %s", e.Status, e.Message)
}

func errorMessage(body []byte) string {
	var payload struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, s := range []string{payload.Msg, payload.Message, payload.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// IsNotFound reports whether err means the account does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}
