package service

import (
	"time"

	"lernbot/internal/repository"
	"lernbot/internal/srs"

	"go.uber.org/zap"
)

// Summary is a user's learning progress at a point in time
type Summary struct {
	Total   int
	Buckets map[srs.MasteryBucket]int
	Due     int
	Leeches int
}

// StatsService handles statistics
type StatsService struct {
	phraseRepo repository.PhraseRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(phraseRepo repository.PhraseRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		phraseRepo: phraseRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary computes progress counters for a user
func (s *StatsService) Summary(userID int64) (*Summary, error) {
	phrases, err := s.phraseRepo.ListByUser(userID)
	if err != nil {
		s.logger.Error("Failed to load phrases for stats", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	now := s.now()
	sum := &Summary{
		Total:   len(phrases),
		Buckets: make(map[srs.MasteryBucket]int),
	}
	for _, p := range phrases {
		sum.Buckets[srs.Bucket(p.Review)]++
		if !p.Review.IsMastered && srs.IsDue(p.Review, now) {
			sum.Due++
		}
		if srs.IsLeech(p.Review) {
			sum.Leeches++
		}
	}
	return sum, nil
}

// DueCount returns how many unmastered phrases are due now
func (s *StatsService) DueCount(userID int64) (int, error) {
	return s.phraseRepo.CountDue(userID, s.now())
}
