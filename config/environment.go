// Package config loads runtime settings from the environment and opens the database.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every environment-driven setting of the API.
type Config struct {
	Port   string
	AppEnv string

	DatabaseURL string

	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string

	EmailUser string
	EmailPass string
	SMTPHost  string
	SMTPPort  int

	CORSOrigin         string
	AllowedEmailDomain string

	ReminderSchedule string
	ReminderTimezone string
	ReminderDedupe   bool

	RedisURL string

	ShutdownTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_URL", "eyegrade.db")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CORS_ORIGIN", "https://eye-grade-tracker.vercel.app")
	v.SetDefault("ALLOWED_EMAIL_DOMAIN", "@tup.edu.ph")
	v.SetDefault("REMINDER_SCHEDULE", "* * * * *")
	v.SetDefault("REMINDER_TIMEZONE", "Local")
	v.SetDefault("REMINDER_DEDUPE", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads the process environment. A .env file, if any, must already be loaded.
func Load() Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return Config{
		Port:               v.GetString("PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		DatabaseURL:        v.GetString("DB_URL"),
		SupabaseURL:        strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseKey:        v.GetString("SUPABASE_KEY"),
		SupabaseJWTSecret:  v.GetString("SUPABASE_JWT_SECRET"),
		EmailUser:          v.GetString("EMAIL_USER"),
		EmailPass:          v.GetString("EMAIL_PASS"),
		SMTPHost:           v.GetString("SMTP_HOST"),
		SMTPPort:           v.GetInt("SMTP_PORT"),
		CORSOrigin:         v.GetString("CORS_ORIGIN"),
		AllowedEmailDomain: v.GetString("ALLOWED_EMAIL_DOMAIN"),
		ReminderSchedule:   v.GetString("REMINDER_SCHEDULE"),
		ReminderTimezone:   v.GetString("REMINDER_TIMEZONE"),
		ReminderDedupe:     v.GetBool("REMINDER_DEDUPE"),
		RedisURL:           v.GetString("REDIS_URL"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

// IsDevelopment reports whether the API runs outside production.
func (c Config) IsDevelopment() bool {
	return !strings.EqualFold(c.AppEnv, "production") && !strings.EqualFold(c.AppEnv, "prod")
}

// Location resolves ReminderTimezone, falling back to the server's local zone.
func (c Config) Location() *time.Location {
	if c.ReminderTimezone == "" || strings.EqualFold(c.ReminderTimezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.ReminderTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// TokenAuth reports whether bearer tokens replace the plain identity headers.
func (c Config) TokenAuth() bool {
	return c.SupabaseJWTSecret != ""
}
