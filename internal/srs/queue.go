package srs

import (
	"cmp"
	"iter"
	"slices"
	"time"
)

// DefaultNewEvery is how many due reviews are shown before each new card
const DefaultNewEvery = 3

// Card pairs a card id and category with its review state
type Card struct {
	ID       string
	Category string
	State    State
}

// CategoryFilter decides whether cards of a category take part in practice
type CategoryFilter func(category string) bool

// AllCategories accepts every category
func AllCategories() CategoryFilter {
	return func(string) bool { return true }
}

// OnlyCategory accepts a single category
func OnlyCategory(id string) CategoryFilter {
	return func(category string) bool { return category == id }
}

// EnabledCategories accepts categories not switched off in enabled.
// Categories missing from the map are accepted.
func EnabledCategories(enabled map[string]bool) CategoryFilter {
	return func(category string) bool {
		on, ok := enabled[category]
		return !ok || on
	}
}

// QueueOptions tunes SelectDueQueue
type QueueOptions struct {
	// IncludeMastered keeps mastered cards in the queue (mixed review)
	IncludeMastered bool
	// NewEvery is the number of reviews between new cards; <= 0 means DefaultNewEvery
	NewEvery int
	// Limit caps the number of ids produced; 0 means no limit
	Limit int
}

// SelectDueQueue returns the ids of cards eligible for review at now, in practice order.
//
// Reviewed cards and never-reviewed cards are each ordered by NextReviewAt (ties by id)
// and merged so that one new card follows every NewEvery reviews. The sequence is
// recomputed from cards on every iteration and never modifies the slice.
func SelectDueQueue(cards []Card, now time.Time, filter CategoryFilter, opts QueueOptions) iter.Seq[string] {
	if filter == nil {
		filter = AllCategories()
	}
	every := opts.NewEvery
	if every <= 0 {
		every = DefaultNewEvery
	}

	return func(yield func(string) bool) {
		var fresh, reviews []Card
		for _, c := range cards {
			if !IsDue(c.State, now) || !filter(c.Category) {
				continue
			}
			if c.State.normalize().IsMastered && !opts.IncludeMastered {
				continue
			}
			if c.State.Reviewed() {
				reviews = append(reviews, c)
			} else {
				fresh = append(fresh, c)
			}
		}
		slices.SortStableFunc(fresh, byDue)
		slices.SortStableFunc(reviews, byDue)

		emitted := 0
		emit := func(c Card) bool {
			if opts.Limit > 0 && emitted >= opts.Limit {
				return false
			}
			emitted++
			return yield(c.ID)
		}

		r, f := 0, 0
		for r < len(reviews) || f < len(fresh) {
			for n := 0; n < every && r < len(reviews); n++ {
				if !emit(reviews[r]) {
					return
				}
				r++
			}
			if f < len(fresh) {
				if !emit(fresh[f]) {
					return
				}
				f++
			}
		}
	}
}

func byDue(a, b Card) int {
	if c := a.State.NextReviewAt.Compare(b.State.NextReviewAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
