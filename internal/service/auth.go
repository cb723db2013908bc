package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"lernbot/internal/repository"

	"go.uber.org/zap"
)

// ErrWrongPassword is returned by Unlock when the password does not match
var ErrWrongPassword = errors.New("wrong password")

// AuthService gates the bot behind a shared password and holds per-user settings
type AuthService struct {
	userRepo repository.UserRepository
	password []byte
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, password string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		password: []byte(strings.TrimSpace(password)),
		logger:   logger,
	}
}

// Access registers the user on first contact and reports whether they have unlocked the bot
func (s *AuthService) Access(userID int64) (bool, error) {
	if err := s.userRepo.EnsureUserExists(userID); err != nil {
		return false, fmt.Errorf("failed to register user: %w", err)
	}

	authorized, err := s.userRepo.IsAuthorized(userID)
	if err != nil {
		return false, fmt.Errorf("failed to check access: %w", err)
	}
	return authorized, nil
}

// Unlock authorizes the user if password matches, ignoring surrounding whitespace
func (s *AuthService) Unlock(userID int64, password string) error {
	if !s.matches(password) {
		s.logger.Info("Wrong password", zap.Int64("user_id", userID))
		return ErrWrongPassword
	}

	if err := s.userRepo.AuthorizeUser(userID); err != nil {
		return fmt.Errorf("failed to authorize user: %w", err)
	}

	s.logger.Info("User authorized", zap.Int64("user_id", userID))
	return nil
}

// matches compares in constant time. An unset password matches nothing.
func (s *AuthService) matches(password string) bool {
	if len(s.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(password)), s.password) == 1
}

// SetReminders turns due-card reminders on or off for a user
func (s *AuthService) SetReminders(userID int64, enabled bool) error {
	if err := s.userRepo.SetReminders(userID, enabled); err != nil {
		return fmt.Errorf("failed to update reminders: %w", err)
	}

	s.logger.Info("Reminders updated", zap.Int64("user_id", userID), zap.Bool("enabled", enabled))
	return nil
}
