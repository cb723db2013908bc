package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Reminder    ReminderConfig
	Practice    PracticeConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ReminderConfig bounds the hours (UTC, inclusive) when reminders may be sent
type ReminderConfig struct {
	StartHour int
	EndHour   int
}

// PracticeConfig tunes practice session ordering
type PracticeConfig struct {
	NewEvery int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	startHour, err := getEnvInt("REMINDER_START_HOUR", 9)
	if err != nil {
		return nil, err
	}
	endHour, err := getEnvInt("REMINDER_END_HOUR", 21)
	if err != nil {
		return nil, err
	}
	newEvery, err := getEnvInt("PRACTICE_NEW_EVERY", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "lernbot"),
			User:     getEnv("DB_USER", "lernbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Reminder: ReminderConfig{
			StartHour: startHour,
			EndHour:   endHour,
		},
		Practice: PracticeConfig{
			NewEvery: newEvery,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.BotPassword == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Reminder.StartHour < 0 || c.Reminder.StartHour > 23 {
		return fmt.Errorf("REMINDER_START_HOUR must be between 0 and 23")
	}
	if c.Reminder.EndHour < c.Reminder.StartHour || c.Reminder.EndHour > 23 {
		return fmt.Errorf("REMINDER_END_HOUR must be between REMINDER_START_HOUR and 23")
	}
	if c.Practice.NewEvery < 1 {
		return fmt.Errorf("PRACTICE_NEW_EVERY must be positive")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
