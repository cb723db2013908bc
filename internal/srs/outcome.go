package srs

import (
	"errors"
	"strings"
)

// Outcome is the learner's answer to a card
type Outcome string

const (
	OutcomeKnow     Outcome = "know"
	OutcomeForgot   Outcome = "forgot"
	OutcomeDontKnow Outcome = "dont_know"
)

// ErrInvalidOutcome is returned by ParseOutcome for unknown values
var ErrInvalidOutcome = errors.New("srs: invalid outcome")

// ParseOutcome converts callback or stored text into an Outcome
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomeKnow, OutcomeForgot, OutcomeDontKnow:
		return o, nil
	}
	return "", ErrInvalidOutcome
}

// IsFailure reports whether the outcome counts as a failed recall
func (o Outcome) IsFailure() bool {
	return o != OutcomeKnow
}
