package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a bot user
type User struct {
	UserID           int64
	Authorized       bool
	RemindersEnabled bool
	CreatedAt        time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateWaitingPhrase      UserState = "waiting_phrase"
	StateWaitingTranslation UserState = "waiting_translation"
	StateWaitingCategory    UserState = "waiting_category"
	StateWaitingPassword    UserState = "waiting_password"
	StatePracticing         UserState = "practicing"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State         UserState
	CurrentPhrase string
	CurrentCardID uuid.UUID
	Filter        string // FilterAll or a category id
	MessageID     int    // For editing messages
}

// PracticeFilter returns the active practice filter, defaulting to all categories
func (s *StateData) PracticeFilter() string {
	if s == nil || s.Filter == "" {
		return FilterAll
	}
	return s.Filter
}
