package handler

import (
	"errors"
	"fmt"

	"lernbot/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleCategories lists categories with the number of phrases still to learn
func (h *Handler) handleCategories(c tele.Context) error {
	userID := c.Sender().ID

	categories, err := h.categoryService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	counts, total, err := h.practiceService.UnmasteredCounts(userID)
	if err != nil {
		h.logger.Error("Failed to count unmastered phrases", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	current := h.GetState(userID).PracticeFilter()
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{
		markup.Row(markup.Data(filterLabel("Все", total, current == domain.FilterAll), btnFilter.Unique, domain.FilterAll)),
	}
	var selected *domain.Category
	for i, cat := range categories {
		label := filterLabel(cat.Name, counts[cat.ID], current == cat.ID)
		rows = append(rows, markup.Row(markup.Data(label, btnFilter.Unique, cat.ID)))
		if current == cat.ID {
			selected = &categories[i]
		}
	}
	rows = append(rows, markup.Row(btnNewCategory))
	if selected != nil && selected.ID != domain.GeneralCategoryID {
		text := fmt.Sprintf("🗑 Удалить «%s»", selected.Name)
		rows = append(rows, markup.Row(markup.Data(text, btnDelCategory.Unique, selected.ID)))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.editOrSend(c, "📂 Выбери категорию для тренировки:", markup)
}

func filterLabel(name string, count int, selected bool) string {
	label := fmt.Sprintf("%s (%d)", name, count)
	if selected {
		label = "✓ " + label
	}
	return label
}

// handleFilter sets the practice filter and starts practice
func (h *Handler) handleFilter(c tele.Context) error {
	userID := c.Sender().ID
	_, filter := parseCallback(c.Callback())
	if filter == "" {
		filter = domain.FilterAll
	}

	h.SetState(userID, &domain.StateData{
		State:  domain.StateIdle,
		Filter: filter,
	})
	h.logger.Info("Practice filter changed", zap.Int64("user_id", userID), zap.String("filter", filter))

	return h.handlePractice(c)
}

// handleNewCategory asks for the name of a new category
func (h *Handler) handleNewCategory(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	h.SetState(userID, &domain.StateData{
		State:  domain.StateWaitingCategory,
		Filter: state.Filter,
	})

	return h.editOrSend(c, "Как назовём категорию?", cancelMarkup())
}

// saveCategory creates a category from the user's message
func (h *Handler) saveCategory(c tele.Context, state *domain.StateData, name string) error {
	userID := c.Sender().ID

	category, err := h.categoryService.Create(userID, name, false)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return c.Send("Такая категория уже есть. Попробуй другое название.", cancelMarkup())
		}
		h.logger.Warn("Failed to create category", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Не получилось создать категорию: "+err.Error(), cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State:  domain.StateIdle,
		Filter: state.Filter,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🧠 Тренировать", btnFilter.Unique, category.ID)),
		markup.Row(btnCategories),
	)
	return c.Send(fmt.Sprintf("✅ Категория «%s» создана", category.Name), markup)
}

// handleMove lets the user pick a new category for the phrase in the payload
func (h *Handler) handleMove(c tele.Context) error {
	userID := c.Sender().ID
	_, payload := parseCallback(c.Callback())

	id, err := uuid.Parse(payload)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неверная карточка"})
	}

	categories, err := h.categoryService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	// The phrase id does not fit next to a category id in callback data
	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:         state.State,
		CurrentCardID: id,
		Filter:        state.Filter,
	})

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(categories)+1)
	for _, cat := range categories {
		rows = append(rows, markup.Row(markup.Data(cat.Name, btnMoveTo.Unique, cat.ID)))
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)

	return h.editOrSend(c, "📁 Куда перенести фразу?", markup)
}

// handleMoveTo moves the remembered phrase into the chosen category
func (h *Handler) handleMoveTo(c tele.Context) error {
	userID := c.Sender().ID
	_, categoryID := parseCallback(c.Callback())
	state := h.GetState(userID)

	if state.CurrentCardID == uuid.Nil {
		return c.Respond(&tele.CallbackResponse{Text: "Сначала выбери фразу"})
	}

	if err := h.phraseService.MoveToCategory(userID, state.CurrentCardID, categoryID); err != nil {
		if errors.Is(err, domain.ErrPhraseNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Карточка уже удалена"})
		}
		h.logger.Error("Failed to move phrase", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Перенесено"}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	if state.State == domain.StatePracticing {
		return h.handlePractice(c)
	}
	h.ResetState(userID)
	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}

// handleDeleteCategory removes a category; its phrases move to the general one
func (h *Handler) handleDeleteCategory(c tele.Context) error {
	userID := c.Sender().ID
	_, categoryID := parseCallback(c.Callback())

	if err := h.categoryService.Delete(userID, categoryID); err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		h.logger.Error("Failed to delete category", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	h.logger.Info("Category deleted", zap.Int64("user_id", userID), zap.String("category_id", categoryID))
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, Filter: domain.FilterAll})

	if err := c.Respond(&tele.CallbackResponse{Text: "Категория удалена, фразы перенесены в «Общее»"}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.handleCategories(c)
}
