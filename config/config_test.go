package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tup-eyegrade/eyegrade-api/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_URL", "SMTP_PORT", "ALLOWED_EMAIL_DOMAIN", "REMINDER_SCHEDULE", "REMINDER_DEDUPE", "SUPABASE_JWT_SECRET"} {
		t.Setenv(key, "")
	}

	c := Load()

	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, "eyegrade.db", c.DatabaseURL)
	assert.Equal(t, "smtp.gmail.com", c.SMTPHost)
	assert.Equal(t, 587, c.SMTPPort)
	assert.Equal(t, "https://eye-grade-tracker.vercel.app", c.CORSOrigin)
	assert.Equal(t, "@tup.edu.ph", c.AllowedEmailDomain)
	assert.Equal(t, "* * * * *", c.ReminderSchedule)
	assert.False(t, c.ReminderDedupe)
	assert.False(t, c.TokenAuth())
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/eyes")
	t.Setenv("SUPABASE_URL", "https://ref.supabase.co/")
	t.Setenv("SUPABASE_JWT_SECRET", "s3cret")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("REMINDER_SCHEDULE", "@daily")
	t.Setenv("REMINDER_DEDUPE", "true")
	t.Setenv("APP_ENV", "production")

	c := Load()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "postgres://u:p@localhost:5432/eyes", c.DatabaseURL)
	assert.Equal(t, "https://ref.supabase.co", c.SupabaseURL)
	assert.Equal(t, 465, c.SMTPPort)
	assert.Equal(t, "@daily", c.ReminderSchedule)
	assert.True(t, c.ReminderDedupe)
	assert.True(t, c.TokenAuth())
	assert.False(t, c.IsDevelopment())
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, Config{}.Location())
	assert.Equal(t, time.Local, Config{ReminderTimezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", Config{ReminderTimezone: "UTC"}.Location().String())
}

func TestDialector(t *testing.T) {
	_, isPostgres := dialector("postgresql://localhost/eyes").(*postgres.Dialector)
	assert.True(t, isPostgres)
	_, isSQLite := dialector("file::memory:").(*sqlite.Dialector)
	assert.True(t, isSQLite)
}

func TestConnect_SQLiteMigrates(t *testing.T) {
	db, err := Connect(Config{DatabaseURL: "file:config_connect?mode=memory&cache=shared"}, logger.NewNop())
	require.NoError(t, err)

	for _, table := range []string{"prescriptions", "assessment_logs", "accounts", "reminder_notifications"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
