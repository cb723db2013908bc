package srs

import "time"

const (
	// ForgotDelay brings a forgotten card back within the same session
	ForgotDelay = 10 * time.Minute
	// DontKnowDelay brings an unknown card back almost immediately
	DontKnowDelay = time.Minute
)

// intervals[i] is the gap after a successful review that left the card at level i+1
var intervals = [MaxMasteryLevel]time.Duration{
	4 * time.Hour,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	21 * 24 * time.Hour,
}

// Interval returns the gap before the next review for a card at the given level.
// Levels outside 1..MaxMasteryLevel are clamped.
func Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	if level > MaxMasteryLevel {
		level = MaxMasteryLevel
	}
	return intervals[level-1]
}

// ApplyOutcome returns the state that follows a review with the given outcome at now.
// The input is not modified. Unknown outcomes are handled like OutcomeDontKnow.
func ApplyOutcome(state State, outcome Outcome, now time.Time) State {
	s := state.clone().normalize()
	reviewedAt := now

	switch outcome {
	case OutcomeKnow:
		s.KnowCount++
		s.KnowStreak++
		if s.MasteryLevel < MaxMasteryLevel {
			s.MasteryLevel++
		}
		s.NextReviewAt = now.Add(Interval(s.MasteryLevel))

	case OutcomeForgot:
		s.KnowStreak = 0
		s.MasteryLevel = lapse(&s, s.MasteryLevel-1)
		s.NextReviewAt = now.Add(ForgotDelay)

	default:
		s.KnowStreak = 0
		s.MasteryLevel = lapse(&s, 0)
		s.NextReviewAt = now.Add(DontKnowDelay)
	}

	s.LastReviewedAt = &reviewedAt
	return s.normalize()
}

// lapse returns the level after a failure and counts a lapse when the card
// drops out of the learned range. A slide through several learned levels is one lapse.
func lapse(s *State, level int) int {
	level = max(level, 0)
	if s.MasteryLevel >= LearnedThreshold && level < LearnedThreshold {
		s.Lapses++
	}
	return level
}
