package testutil

import (
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/srs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestPhrase creates a never-reviewed test phrase due at creation time
func NewTestPhrase(userID int64, foreign, native, categoryID string) *domain.Phrase {
	now := time.Now()
	review := srs.NewState()
	review.NextReviewAt = now
	return &domain.Phrase{
		ID:         uuid.New(),
		UserID:     userID,
		Foreign:    foreign,
		Native:     native,
		CategoryID: categoryID,
		IsNew:      true,
		Review:     review,
		CreatedAt:  now,
	}
}

// NewReviewedPhrase creates a test phrase with the given level, due at next
func NewReviewedPhrase(userID int64, foreign, categoryID string, level int, next time.Time) *domain.Phrase {
	p := NewTestPhrase(userID, foreign, foreign, categoryID)
	last := next.Add(-time.Hour)
	p.IsNew = false
	p.Review = srs.State{
		MasteryLevel:   level,
		KnowStreak:     level,
		KnowCount:      level,
		LastReviewedAt: &last,
		NextReviewAt:   next,
		IsMastered:     level == srs.MaxMasteryLevel,
	}
	return p
}
