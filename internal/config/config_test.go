package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the mandatory variables and clears the optional ones.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("BOT_PASSWORD", "test_password")
	t.Setenv("DB_PASSWORD", "test_db_password")
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"REMINDER_START_HOUR", "REMINDER_END_HOUR", "PRACTICE_NEW_EVERY",
	} {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable empty",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	n, err := getEnvInt("TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	t.Setenv("TEST_INT", "")
	n, err = getEnvInt("TEST_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	t.Setenv("TEST_INT", "seven")
	_, err = getEnvInt("TEST_INT", 7)
	assert.ErrorContains(t, err, "TEST_INT")
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_WithDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "test_password", cfg.BotPassword)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "lernbot", cfg.Database.Name)
	assert.Equal(t, "lernbot", cfg.Database.User)
	assert.Equal(t, 9, cfg.Reminder.StartHour)
	assert.Equal(t, 21, cfg.Reminder.EndHour)
	assert.Equal(t, 3, cfg.Practice.NewEvery)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REMINDER_START_HOUR", "7")
	t.Setenv("REMINDER_END_HOUR", "23")
	t.Setenv("PRACTICE_NEW_EVERY", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Reminder.StartHour)
	assert.Equal(t, 23, cfg.Reminder.EndHour)
	assert.Equal(t, 5, cfg.Practice.NewEvery)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "missing bot token", key: "BOT_TOKEN", value: "", wantErr: "BOT_TOKEN"},
		{name: "missing bot password", key: "BOT_PASSWORD", value: "", wantErr: "BOT_PASSWORD"},
		{name: "missing db password", key: "DB_PASSWORD", value: "", wantErr: "DB_PASSWORD"},
		{name: "start hour out of range", key: "REMINDER_START_HOUR", value: "24", wantErr: "REMINDER_START_HOUR"},
		{name: "end hour before start", key: "REMINDER_END_HOUR", value: "3", wantErr: "REMINDER_END_HOUR"},
		{name: "start hour not a number", key: "REMINDER_START_HOUR", value: "nine", wantErr: "REMINDER_START_HOUR"},
		{name: "new every zero", key: "PRACTICE_NEW_EVERY", value: "0", wantErr: "PRACTICE_NEW_EVERY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
