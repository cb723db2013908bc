package handler

import (
	"fmt"
	"testing"
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/service"
	"lernbot/internal/srs"
	"lernbot/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	return NewHandler(nil, nil, nil, nil, nil, nil, testutil.NewTestLogger())
}

func TestHandler_State(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, domain.StateIdle, h.GetState(1).State)
	assert.Equal(t, domain.FilterAll, h.GetState(1).PracticeFilter())

	id := uuid.New()
	h.SetState(1, &domain.StateData{State: domain.StatePracticing, CurrentCardID: id, Filter: "travel"})
	assert.Equal(t, id, h.GetState(1).CurrentCardID)

	h.ResetState(1)
	state := h.GetState(1)
	assert.Equal(t, domain.StateIdle, state.State)
	assert.Equal(t, uuid.Nil, state.CurrentCardID)
	assert.Equal(t, "travel", state.PracticeFilter())

	// Other users are unaffected
	assert.Equal(t, domain.FilterAll, h.GetState(2).PracticeFilter())
}

func TestFormatWait(t *testing.T) {
	tests := []struct {
		wait     time.Duration
		expected string
	}{
		{wait: 0, expected: "сейчас"},
		{wait: 30 * time.Second, expected: "сейчас"},
		{wait: time.Minute, expected: "через 1 мин"},
		{wait: 10 * time.Minute, expected: "через 10 мин"},
		{wait: 4 * time.Hour, expected: "через 4 ч"},
		{wait: 24 * time.Hour, expected: "через 1 дн"},
		{wait: 21 * 24 * time.Hour, expected: "через 21 дн"},
	}

	for _, tt := range tests {
		t.Run(tt.wait.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, formatWait(tt.wait))
		})
	}
}

func TestMasteryBadge(t *testing.T) {
	assert.Equal(t, "○○○○○", masteryBadge(srs.State{MasteryLevel: 0}))
	assert.Equal(t, "●●●○○", masteryBadge(srs.State{MasteryLevel: 3}))
	assert.Equal(t, "●●●●●", masteryBadge(srs.State{MasteryLevel: 5}))
	assert.Equal(t, "●●●●●", masteryBadge(srs.State{MasteryLevel: 9}))
}

func TestCardFront(t *testing.T) {
	p := testutil.NewTestPhrase(1, "Guten Morgen", "Доброе утро", domain.GeneralCategoryID)
	assert.Equal(t, "🆕 Guten Morgen", cardFront(p))

	p.IsNew = false
	p.Review.MasteryLevel = 2
	assert.Equal(t, "●●○○○ Guten Morgen", cardFront(p))
}

func TestReviewFeedback(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	learning := srs.ApplyOutcome(srs.NewState(), srs.OutcomeKnow, now)
	assert.Equal(t, "Следующее повторение через 4 ч", reviewFeedback(learning, now))

	mastered := srs.State{MasteryLevel: 4}
	mastered = srs.ApplyOutcome(mastered, srs.OutcomeKnow, now)
	assert.Equal(t, "🏆 Выучено! Следующее повторение через 21 дн", reviewFeedback(mastered, now))
}

func TestFilterLabel(t *testing.T) {
	assert.Equal(t, "Путешествия (4)", filterLabel("Путешествия", 4, false))
	assert.Equal(t, "✓ Все (10)", filterLabel("Все", 10, true))
}

func TestFormatSummary(t *testing.T) {
	summary := &service.Summary{
		Total: 6,
		Buckets: map[srs.MasteryBucket]int{
			srs.BucketNew:      1,
			srs.BucketLearning: 2,
			srs.BucketLearned:  2,
			srs.BucketMastered: 1,
		},
		Due: 3,
	}

	text := formatSummary(summary)
	assert.Contains(t, text, "Всего фраз: 6")
	assert.Contains(t, text, "📖 Учатся: 2")
	assert.Contains(t, text, "Ждут повторения: 3")
	assert.NotContains(t, text, "Трудные")

	summary.Leeches = 1
	assert.Contains(t, formatSummary(summary), "🐌 Трудные: 1")
}

func TestImportReport(t *testing.T) {
	assert.Equal(t, "📥 Импорт завершён\n\nДобавлено фраз: 3", importReport(3, nil))

	problems := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		problems = append(problems, fmt.Sprintf("line %d: bad", i))
	}
	report := importReport(0, problems)
	assert.Contains(t, report, "Пропущено строк: 7")
	assert.Contains(t, report, "• line 5: bad")
	assert.NotContains(t, report, "line 6")
	assert.Contains(t, report, "… и ещё 2")
}
