package handler

import (
	"errors"
	"fmt"
	"strings"

	"lernbot/internal/domain"
	"lernbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Unknown commands are ignored
	if strings.HasPrefix(text, "/") {
		return nil
	}

	authorized, err := h.authService.Access(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}
	if !authorized {
		return h.handlePassword(c, text)
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingTranslation:
		return h.savePhrase(c, state, text)

	case domain.StateWaitingCategory:
		return h.saveCategory(c, state, text)

	default:
		// Any other text starts a new phrase
		h.SetState(userID, &domain.StateData{
			State:         domain.StateWaitingTranslation,
			CurrentPhrase: text,
			Filter:        state.Filter,
		})
		return c.Send("Жду перевод", cancelMarkup())
	}
}

// handleAddPhrase starts the add phrase flow
func (h *Handler) handleAddPhrase(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	h.SetState(userID, &domain.StateData{
		State:  domain.StateWaitingPhrase,
		Filter: state.Filter,
	})

	return h.editOrSend(c, "✍️ Отправь фразу на изучаемом языке", cancelMarkup())
}

// savePhrase stores the pending phrase with its translation
func (h *Handler) savePhrase(c tele.Context, state *domain.StateData, native string) error {
	userID := c.Sender().ID

	// New phrases go to the category being practiced
	categoryID := domain.GeneralCategoryID
	if f := state.PracticeFilter(); f != domain.FilterAll {
		categoryID = f
	}

	phrase, err := h.phraseService.Add(userID, state.CurrentPhrase, native, categoryID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhrase) {
			return c.Send("Фраза и перевод не могут быть пустыми", cancelMarkup())
		}
		h.logger.Error("Failed to save phrase",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("Не удалось сохранить фразу. Попробуйте ещё раз.")
	}

	h.SetState(userID, &domain.StateData{
		State:  domain.StateWaitingPhrase,
		Filter: state.Filter,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(btnMove.Text, btnMove.Unique, phrase.ID.String())),
		markup.Row(btnMainMenu),
	)
	return c.Send(
		fmt.Sprintf("✅ Сохранено: %s — %s\n\nМожешь отправить следующую фразу", phrase.Foreign, phrase.Native),
		markup,
	)
}
