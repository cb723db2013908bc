package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/repository"
	"lernbot/internal/srs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrStaleReview is returned when a review targets a card state that was already reviewed
var ErrStaleReview = errors.New("review already recorded")

// ReviewResult describes the effect of one review
type ReviewResult struct {
	Phrase *domain.Phrase
	Before srs.State
	After  srs.State
	// Leech is set when this review pushed the phrase over the leech threshold
	Leech bool
}

// PracticeService builds practice queues and records review outcomes
type PracticeService struct {
	phraseRepo repository.PhraseRepository
	logger     *zap.Logger
	newEvery   int
	now        func() time.Time

	// Per-phrase locks so concurrent callbacks for one card are applied in order
	locks   map[uuid.UUID]*phraseLock
	locksMu sync.Mutex
}

type phraseLock struct {
	mu   sync.Mutex
	refs int
}

// NewPracticeService creates a new practice service.
// newEvery is the number of due reviews shown between new cards.
func NewPracticeService(phraseRepo repository.PhraseRepository, newEvery int, logger *zap.Logger) *PracticeService {
	return &PracticeService{
		phraseRepo: phraseRepo,
		logger:     logger,
		newEvery:   newEvery,
		now:        time.Now,
		locks:      make(map[uuid.UUID]*phraseLock),
	}
}

// CategoryFilter converts a practice filter value into a scheduler filter
func CategoryFilter(filter string) srs.CategoryFilter {
	if filter == "" || filter == domain.FilterAll {
		return srs.AllCategories()
	}
	return srs.OnlyCategory(filter)
}

// Queue returns the phrases due for practice in the order they should be shown
func (s *PracticeService) Queue(userID int64, filter string, opts srs.QueueOptions) ([]domain.Phrase, error) {
	phrases, err := s.phraseRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrases: %w", err)
	}

	cards := make([]srs.Card, len(phrases))
	byID := make(map[string]domain.Phrase, len(phrases))
	for i, p := range phrases {
		cards[i] = p.Card()
		byID[cards[i].ID] = p
	}

	if opts.NewEvery == 0 {
		opts.NewEvery = s.newEvery
	}

	var queue []domain.Phrase
	for id := range srs.SelectDueQueue(cards, s.now(), CategoryFilter(filter), opts) {
		queue = append(queue, byID[id])
	}
	return queue, nil
}

// NextCard returns the first phrase of the practice queue, or nil when nothing is due
func (s *PracticeService) NextCard(userID int64, filter string) (*domain.Phrase, error) {
	queue, err := s.Queue(userID, filter, srs.QueueOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, nil
	}
	return &queue[0], nil
}

// Review applies an outcome to a phrase and stores the new state.
// version is the srs.State.Version the user was shown; a repeated submission
// for the same version returns ErrStaleReview and changes nothing.
func (s *PracticeService) Review(userID int64, id uuid.UUID, outcome srs.Outcome, version int64) (*ReviewResult, error) {
	unlock := s.lock(id)
	defer unlock()

	p, err := s.phraseRepo.GetByID(userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrase: %w", err)
	}
	if p == nil {
		return nil, domain.ErrPhraseNotFound
	}
	if p.Review.Version() != version {
		s.logger.Debug("Duplicate review ignored",
			zap.Int64("user_id", userID),
			zap.String("phrase_id", id.String()),
			zap.Int64("version", version),
		)
		return nil, ErrStaleReview
	}

	before := p.Review
	after := srs.ApplyOutcome(before, outcome, s.now())

	if err := s.phraseRepo.SaveReviewState(id, after); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	p.Review = after
	p.IsNew = false
	result := &ReviewResult{
		Phrase: p,
		Before: before,
		After:  after,
		Leech:  srs.BecameLeech(before, after),
	}

	s.logger.Info("Phrase reviewed",
		zap.Int64("user_id", userID),
		zap.String("phrase_id", id.String()),
		zap.String("outcome", string(outcome)),
		zap.Int("mastery_level", after.MasteryLevel),
		zap.Int("lapses", after.Lapses),
		zap.Time("next_review_at", after.NextReviewAt),
	)
	if result.Leech {
		s.logger.Warn("Phrase became a leech",
			zap.Int64("user_id", userID),
			zap.String("phrase_id", id.String()),
		)
	}

	return result, nil
}

// MarkSeen clears the "new" flag of a phrase
func (s *PracticeService) MarkSeen(userID int64, id uuid.UUID) error {
	return s.phraseRepo.MarkSeen(userID, id)
}

// UnmasteredCounts returns the number of unmastered phrases per category and in total
func (s *PracticeService) UnmasteredCounts(userID int64) (map[string]int, int, error) {
	phrases, err := s.phraseRepo.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int)
	total := 0
	for _, p := range phrases {
		if p.Review.IsMastered {
			continue
		}
		counts[p.CategoryID]++
		total++
	}
	return counts, total, nil
}

func (s *PracticeService) lock(id uuid.UUID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &phraseLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}
