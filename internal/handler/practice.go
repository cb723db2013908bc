package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/service"
	"lernbot/internal/srs"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handlePractice shows the next due card for the current filter
func (h *Handler) handlePractice(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	phrase, err := h.practiceService.NextCard(userID, state.PracticeFilter())
	if err != nil {
		h.logger.Error("Failed to get next card", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	if phrase == nil {
		h.ResetState(userID)
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnAddPhrase), markup.Row(btnMainMenu))
		return h.editOrSend(c, "🎉 На сейчас всё повторено! Загляни позже или добавь новые фразы.", markup)
	}

	if phrase.IsNew {
		if err := h.practiceService.MarkSeen(userID, phrase.ID); err != nil {
			h.logger.Warn("Failed to mark phrase as seen", zap.Error(err), zap.String("phrase_id", phrase.ID.String()))
		}
	}

	h.SetState(userID, &domain.StateData{
		State:         domain.StatePracticing,
		CurrentCardID: phrase.ID,
		Filter:        state.Filter,
	})

	id := phrase.ID.String()
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(btnReveal.Text, btnReveal.Unique, id)),
		markup.Row(btnMainMenu),
	)
	return h.editOrSend(c, cardFront(phrase), markup)
}

// handleReveal shows the translation and the outcome buttons
func (h *Handler) handleReveal(c tele.Context) error {
	userID := c.Sender().ID

	phrase, ok := h.callbackPhrase(c)
	if !ok {
		return nil
	}

	id := phrase.ID.String()
	version := strconv.FormatInt(phrase.Review.Version(), 10)
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data(btnKnow.Text, btnKnow.Unique, id, version),
			markup.Data(btnForgot.Text, btnForgot.Unique, id, version),
			markup.Data(btnDontKnow.Text, btnDontKnow.Unique, id, version),
		),
		markup.Row(
			markup.Data(btnMove.Text, btnMove.Unique, id),
			markup.Data(btnDelete.Text, btnDelete.Unique, id),
		),
	)

	text := fmt.Sprintf("%s\n\n🔄 %s", cardFront(phrase), phrase.Native)
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleOutcome records know, forgot or dont_know for the card in the payload
func (h *Handler) handleOutcome(c tele.Context) error {
	userID := c.Sender().ID
	unique, payload := parseCallback(c.Callback())

	outcome, err := srs.ParseOutcome(unique)
	if err != nil {
		h.logger.Warn("Unknown outcome", zap.String("unique", unique))
		return c.Respond()
	}
	id, version, err := parseReviewPayload(payload)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неверная карточка"})
	}

	result, err := h.practiceService.Review(userID, id, outcome, version)
	if err != nil {
		if errors.Is(err, service.ErrStaleReview) {
			return c.Respond(&tele.CallbackResponse{Text: "Ответ уже учтён"})
		}
		if errors.Is(err, domain.ErrPhraseNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Карточка уже удалена"})
		}
		h.logger.Error("Failed to record review", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	if result.Leech {
		return h.showLeechPrompt(c, result)
	}

	if err := c.Respond(&tele.CallbackResponse{Text: reviewFeedback(result.After, time.Now())}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.handlePractice(c)
}

// showLeechPrompt offers to restart a phrase that keeps being forgotten
func (h *Handler) showLeechPrompt(c tele.Context, result *service.ReviewResult) error {
	id := result.Phrase.ID.String()
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(btnLeechReset.Text, btnLeechReset.Unique, id)),
		markup.Row(markup.Data(btnLeechKeep.Text, btnLeechKeep.Unique, id)),
	)

	text := fmt.Sprintf(
		"🐌 Фраза «%s» даётся тяжело: забыта уже %d раз после того, как была выучена.\n\nНачать её заново?",
		result.Phrase.Foreign, result.After.Lapses,
	)
	return h.editOrSend(c, text, markup)
}

// handleLeechReset restarts the phrase and continues practice
func (h *Handler) handleLeechReset(c tele.Context) error {
	userID := c.Sender().ID
	_, payload := parseCallback(c.Callback())

	id, err := uuid.Parse(payload)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неверная карточка"})
	}

	if err := h.phraseService.ResetProgress(userID, id); err != nil && !errors.Is(err, domain.ErrPhraseNotFound) {
		h.logger.Error("Failed to reset phrase", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}
	return h.handlePractice(c)
}

// handleDelete removes the phrase in the payload
func (h *Handler) handleDelete(c tele.Context) error {
	userID := c.Sender().ID
	_, payload := parseCallback(c.Callback())

	id, err := uuid.Parse(payload)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неверная карточка"})
	}

	if err := h.phraseService.Delete(userID, id); err != nil && !errors.Is(err, domain.ErrPhraseNotFound) {
		h.logger.Error("Failed to delete phrase", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Фраза удалена"}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.handlePractice(c)
}

// parseReviewPayload splits "<phrase id>|<state version>" from an outcome button
func parseReviewPayload(payload string) (uuid.UUID, int64, error) {
	rawID, rawVersion, ok := strings.Cut(payload, "|")
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("review payload without version: %q", payload)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, 0, err
	}
	version, err := strconv.ParseInt(rawVersion, 10, 64)
	if err != nil {
		return uuid.Nil, 0, err
	}
	return id, version, nil
}

// callbackPhrase loads the phrase whose id is the callback payload
func (h *Handler) callbackPhrase(c tele.Context) (*domain.Phrase, bool) {
	userID := c.Sender().ID
	_, payload := parseCallback(c.Callback())

	id, err := uuid.Parse(payload)
	if err != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: "Неверная карточка"})
		return nil, false
	}

	phrase, err := h.phraseService.Get(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPhraseNotFound) {
			_ = c.Respond(&tele.CallbackResponse{Text: "Карточка уже удалена"})
			return nil, false
		}
		h.logger.Error("Failed to load phrase", zap.Error(err), zap.Int64("user_id", userID))
		_ = h.respondError(c)
		return nil, false
	}
	return phrase, true
}

func cardFront(p *domain.Phrase) string {
	badge := masteryBadge(p.Review)
	if p.IsNew {
		badge = "🆕"
	}
	return fmt.Sprintf("%s %s", badge, p.Foreign)
}

// masteryBadge renders the mastery level as filled and empty dots
func masteryBadge(s srs.State) string {
	level := max(0, min(s.MasteryLevel, srs.MaxMasteryLevel))
	badge := ""
	for i := 0; i < srs.MaxMasteryLevel; i++ {
		if i < level {
			badge += "●"
		} else {
			badge += "○"
		}
	}
	return badge
}

func reviewFeedback(after srs.State, now time.Time) string {
	if after.IsMastered {
		return "🏆 Выучено! Следующее повторение " + formatWait(after.NextReviewAt.Sub(now))
	}
	return "Следующее повторение " + formatWait(after.NextReviewAt.Sub(now))
}

// formatWait renders a wait duration in the largest whole unit
func formatWait(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "сейчас"
	case d < time.Hour:
		return fmt.Sprintf("через %d мин", int(d.Round(time.Minute)/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("через %d ч", int(d.Round(time.Hour)/time.Hour))
	default:
		return fmt.Sprintf("через %d дн", int(d.Round(24*time.Hour)/(24*time.Hour)))
	}
}
