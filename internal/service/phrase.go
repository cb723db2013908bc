package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/repository"
	"lernbot/internal/srs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidPhrase is returned when a phrase fails validation
var ErrInvalidPhrase = errors.New("invalid phrase")

// ImportResult summarizes a bulk import
type ImportResult struct {
	Created int
	Skipped int
	Errors  []string
}

// PhraseService handles card management
type PhraseService struct {
	phraseRepo repository.PhraseRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewPhraseService creates a new phrase service
func NewPhraseService(phraseRepo repository.PhraseRepository, logger *zap.Logger) *PhraseService {
	return &PhraseService{
		phraseRepo: phraseRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Add creates a new card with a fresh review state
func (s *PhraseService) Add(userID int64, foreign, native, categoryID string) (*domain.Phrase, error) {
	foreign = strings.TrimSpace(foreign)
	native = strings.TrimSpace(native)
	if foreign == "" || native == "" {
		return nil, fmt.Errorf("%w: phrase and translation cannot be empty", ErrInvalidPhrase)
	}
	if categoryID == "" || categoryID == domain.FilterAll {
		categoryID = domain.GeneralCategoryID
	}

	review := srs.NewState()
	review.NextReviewAt = s.now()

	p := &domain.Phrase{
		ID:         uuid.New(),
		UserID:     userID,
		Foreign:    foreign,
		Native:     native,
		CategoryID: categoryID,
		IsNew:      true,
		Review:     review,
	}
	if err := s.phraseRepo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to save phrase: %w", err)
	}
	return p, nil
}

// Get returns a user's phrase
func (s *PhraseService) Get(userID int64, id uuid.UUID) (*domain.Phrase, error) {
	p, err := s.phraseRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPhraseNotFound
	}
	return p, nil
}

// List returns all phrases of a user
func (s *PhraseService) List(userID int64) ([]domain.Phrase, error) {
	return s.phraseRepo.ListByUser(userID)
}

// Delete removes a phrase
func (s *PhraseService) Delete(userID int64, id uuid.UUID) error {
	return s.phraseRepo.Delete(userID, id)
}

// MoveToCategory changes the category of a phrase
func (s *PhraseService) MoveToCategory(userID int64, id uuid.UUID, categoryID string) error {
	if categoryID == "" || categoryID == domain.FilterAll {
		return fmt.Errorf("invalid category %q", categoryID)
	}
	return s.phraseRepo.UpdateCategory(userID, id, categoryID)
}

// ResetProgress puts a phrase back to its never-reviewed state.
// Used when a leech is kept for relearning.
func (s *PhraseService) ResetProgress(userID int64, id uuid.UUID) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}

	review := srs.NewState()
	review.NextReviewAt = s.now()
	if err := s.phraseRepo.SaveReviewState(id, review); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}

	s.logger.Info("Phrase progress reset",
		zap.Int64("user_id", userID),
		zap.String("phrase_id", id.String()),
	)
	return nil
}

// Import creates phrases from imported rows, skipping invalid ones
func (s *PhraseService) Import(userID int64, rows []domain.ImportRow) (*ImportResult, error) {
	result := &ImportResult{}

	for _, row := range rows {
		_, err := s.Add(userID, row.Foreign, row.Native, row.CategoryID)
		if err == nil {
			result.Created++
			continue
		}

		if !errors.Is(err, ErrInvalidPhrase) {
			return result, err
		}
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
	}

	s.logger.Info("Phrases imported",
		zap.Int64("user_id", userID),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
