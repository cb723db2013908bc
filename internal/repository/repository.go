package repository

import (
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/srs"

	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	SetReminders(userID int64, enabled bool) error
	ListReminderUsers() ([]int64, error)
}

// PhraseRepository defines phrase data operations
type PhraseRepository interface {
	Create(p *domain.Phrase) error
	GetByID(userID int64, id uuid.UUID) (*domain.Phrase, error)
	ListByUser(userID int64) ([]domain.Phrase, error)
	SaveReviewState(id uuid.UUID, state srs.State) error
	MarkSeen(userID int64, id uuid.UUID) error
	UpdateCategory(userID int64, id uuid.UUID, categoryID string) error
	Delete(userID int64, id uuid.UUID) error
	CountDue(userID int64, now time.Time) (int, error)
}

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(c *domain.Category) error
	ListByUser(userID int64) ([]domain.Category, error)
	Delete(userID int64, id string) error
}
