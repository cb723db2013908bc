package srs

import "time"

const (
	// MaxMasteryLevel is the level at which a card counts as mastered
	MaxMasteryLevel = 5
	// LearnedThreshold is the level a failure must drop a card below to count as a lapse
	LearnedThreshold = 3
	// LeechThreshold is the lapse count a card must exceed to become a leech
	LeechThreshold = 3
)

// State is the review state of a single card
type State struct {
	MasteryLevel   int
	KnowStreak     int
	KnowCount      int
	Lapses         int
	LastReviewedAt *time.Time
	NextReviewAt   time.Time
	IsMastered     bool
}

// NewState returns the state of a card that has never been reviewed
func NewState() State {
	return State{}
}

// Reviewed reports whether the card has been reviewed at least once
func (s State) Reviewed() bool {
	return s.LastReviewedAt != nil
}

// Version identifies the last recorded review: LastReviewedAt in Unix milliseconds, 0 if never reviewed.
// A review submitted against an older version is a duplicate.
func (s State) Version() int64 {
	if s.LastReviewedAt == nil {
		return 0
	}
	return s.LastReviewedAt.UnixMilli()
}

// clone returns a copy that shares no pointers with s
func (s State) clone() State {
	out := s
	if s.LastReviewedAt != nil {
		t := *s.LastReviewedAt
		out.LastReviewedAt = &t
	}
	return out
}

// normalize clamps counters into range and recomputes derived fields
func (s State) normalize() State {
	if s.MasteryLevel < 0 {
		s.MasteryLevel = 0
	}
	if s.MasteryLevel > MaxMasteryLevel {
		s.MasteryLevel = MaxMasteryLevel
	}
	if s.KnowStreak < 0 {
		s.KnowStreak = 0
	}
	if s.KnowCount < 0 {
		s.KnowCount = 0
	}
	if s.Lapses < 0 {
		s.Lapses = 0
	}
	s.IsMastered = s.MasteryLevel == MaxMasteryLevel
	return s
}

// IsDue reports whether the card may be shown at now
func IsDue(s State, now time.Time) bool {
	return !s.NextReviewAt.After(now)
}

// IsLeech reports whether the card keeps lapsing after being learned
func IsLeech(s State) bool {
	return s.Lapses > LeechThreshold
}

// BecameLeech reports whether a transition pushed the card over the leech threshold
func BecameLeech(before, after State) bool {
	return !IsLeech(before) && IsLeech(after)
}

// MasteryBucket groups cards by learning progress
type MasteryBucket string

const (
	BucketNew      MasteryBucket = "new"
	BucketLearning MasteryBucket = "learning"
	BucketLearned  MasteryBucket = "learned"
	BucketMastered MasteryBucket = "mastered"
)

// Bucket returns the progress group of the card
func Bucket(s State) MasteryBucket {
	s = s.normalize()
	switch {
	case !s.Reviewed():
		return BucketNew
	case s.IsMastered:
		return BucketMastered
	case s.MasteryLevel >= LearnedThreshold:
		return BucketLearned
	default:
		return BucketLearning
	}
}
