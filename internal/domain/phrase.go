package domain

import (
	"errors"
	"time"

	"lernbot/internal/srs"

	"github.com/google/uuid"
)

// ErrPhraseNotFound is returned when a phrase does not exist or belongs to another user
var ErrPhraseNotFound = errors.New("phrase not found")

// Phrase is a flashcard: a foreign phrase with its native translation
type Phrase struct {
	ID         uuid.UUID
	UserID     int64
	Foreign    string
	Native     string
	CategoryID string
	IsNew      bool
	Review     srs.State
	CreatedAt  time.Time
}

// Card returns the scheduler view of the phrase
func (p Phrase) Card() srs.Card {
	return srs.Card{
		ID:       p.ID.String(),
		Category: p.CategoryID,
		State:    p.Review,
	}
}

// ImportRow is a single phrase read from an import file.
// Category is the name as written in the file; CategoryID is filled in once resolved.
type ImportRow struct {
	Line       int
	Foreign    string
	Native     string
	Category   string
	CategoryID string
}
