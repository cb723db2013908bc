package srs

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reviewedCard(id, category string, level int, next time.Time) Card {
	last := next.Add(-time.Hour)
	return Card{
		ID:       id,
		Category: category,
		State:    State{MasteryLevel: level, LastReviewedAt: &last, NextReviewAt: next}.normalize(),
	}
}

func newCard(id, category string, next time.Time) Card {
	return Card{ID: id, Category: category, State: State{NextReviewAt: next}}
}

func TestSelectDueQueue_OnlyDueCards(t *testing.T) {
	cards := []Card{
		reviewedCard("a", "general", 1, ms(500)),
		reviewedCard("b", "general", 1, ms(1500)),
	}

	ids := slices.Collect(SelectDueQueue(cards, ms(1000), AllCategories(), QueueOptions{}))

	assert.Equal(t, []string{"a"}, ids)
}

func TestSelectDueQueue_Ordering(t *testing.T) {
	now := ms(10_000)

	tests := []struct {
		name     string
		cards    []Card
		filter   CategoryFilter
		opts     QueueOptions
		expected []string
	}{
		{
			name: "reviews by due time with ties broken by id",
			cards: []Card{
				reviewedCard("c", "general", 1, ms(300)),
				reviewedCard("b", "general", 1, ms(100)),
				reviewedCard("a", "general", 1, ms(300)),
			},
			expected: []string{"b", "a", "c"},
		},
		{
			name: "new cards interleaved after every three reviews",
			cards: []Card{
				newCard("n1", "general", ms(1)),
				newCard("n2", "general", ms(2)),
				reviewedCard("r1", "general", 1, ms(10)),
				reviewedCard("r2", "general", 1, ms(20)),
				reviewedCard("r3", "general", 1, ms(30)),
				reviewedCard("r4", "general", 1, ms(40)),
			},
			expected: []string{"r1", "r2", "r3", "n1", "r4", "n2"},
		},
		{
			name: "custom ratio",
			cards: []Card{
				newCard("n1", "general", ms(1)),
				newCard("n2", "general", ms(2)),
				reviewedCard("r1", "general", 1, ms(10)),
				reviewedCard("r2", "general", 1, ms(20)),
			},
			opts:     QueueOptions{NewEvery: 1},
			expected: []string{"r1", "n1", "r2", "n2"},
		},
		{
			name: "only new cards",
			cards: []Card{
				newCard("n2", "general", ms(2)),
				newCard("n1", "general", ms(1)),
			},
			expected: []string{"n1", "n2"},
		},
		{
			name: "category filter",
			cards: []Card{
				reviewedCard("a", "food", 1, ms(10)),
				reviewedCard("b", "travel", 1, ms(20)),
				newCard("c", "food", ms(30)),
			},
			filter:   OnlyCategory("food"),
			expected: []string{"a", "c"},
		},
		{
			name: "disabled categories are skipped",
			cards: []Card{
				reviewedCard("a", "food", 1, ms(10)),
				reviewedCard("b", "travel", 1, ms(20)),
				reviewedCard("c", "verbs", 1, ms(30)),
			},
			filter:   EnabledCategories(map[string]bool{"travel": false, "food": true}),
			expected: []string{"a", "c"},
		},
		{
			name: "mastered excluded by default",
			cards: []Card{
				reviewedCard("m", "general", MaxMasteryLevel, ms(10)),
				reviewedCard("a", "general", 2, ms(20)),
			},
			expected: []string{"a"},
		},
		{
			name: "mastered included on request",
			cards: []Card{
				reviewedCard("m", "general", MaxMasteryLevel, ms(10)),
				reviewedCard("a", "general", 2, ms(20)),
			},
			opts:     QueueOptions{IncludeMastered: true},
			expected: []string{"m", "a"},
		},
		{
			name: "limit",
			cards: []Card{
				reviewedCard("a", "general", 1, ms(10)),
				reviewedCard("b", "general", 1, ms(20)),
				newCard("n", "general", ms(5)),
			},
			opts:     QueueOptions{Limit: 2},
			expected: []string{"a", "b"},
		},
		{
			name:     "empty input",
			cards:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := slices.Collect(SelectDueQueue(tt.cards, now, tt.filter, tt.opts))
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSelectDueQueue_Restartable(t *testing.T) {
	cards := []Card{
		reviewedCard("b", "general", 1, ms(20)),
		newCard("n", "general", ms(1)),
		reviewedCard("a", "general", 1, ms(10)),
	}
	original := slices.Clone(cards)

	seq := SelectDueQueue(cards, ms(1000), nil, QueueOptions{})
	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
	assert.Equal(t, original, cards)
}

func TestSelectDueQueue_StopsEarly(t *testing.T) {
	cards := []Card{
		reviewedCard("a", "general", 1, ms(10)),
		reviewedCard("b", "general", 1, ms(20)),
		reviewedCard("c", "general", 1, ms(30)),
	}

	var got []string
	for id := range SelectDueQueue(cards, ms(1000), AllCategories(), QueueOptions{}) {
		got = append(got, id)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSelectDueQueue_NeverReturnsFutureCards(t *testing.T) {
	now := ms(5000)
	var cards []Card
	for i := 0; i < 50; i++ {
		next := ms(int64(i) * 200)
		id := string(rune('A' + i%26)) + string(rune('a'+i/26))
		if i%4 == 0 {
			cards = append(cards, newCard(id, "general", next))
		} else {
			cards = append(cards, reviewedCard(id, "general", i%MaxMasteryLevel, next))
		}
	}
	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	for id := range SelectDueQueue(cards, now, AllCategories(), QueueOptions{IncludeMastered: true}) {
		assert.False(t, byID[id].State.NextReviewAt.After(now), id)
	}
}
