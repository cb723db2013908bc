package handler

import (
	"sync"

	"lernbot/internal/domain"
	"lernbot/internal/middleware"
	"lernbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	authService     *service.AuthService
	phraseService   *service.PhraseService
	practiceService *service.PracticeService
	categoryService *service.CategoryService
	statsService    *service.StatsService
	logger          *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	phraseService *service.PhraseService,
	practiceService *service.PracticeService,
	categoryService *service.CategoryService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		authService:     authService,
		phraseService:   phraseService,
		practiceService: practiceService,
		categoryService: categoryService,
		statsService:    statsService,
		logger:          logger,
		states:          make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers.
// /start and plain text stay open so unauthorized users can enter the password.
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	auth := h.bot.Group()
	auth.Use(middleware.AuthMiddleware(h.authService, h.logger))

	// Commands
	auth.Handle("/practice", h.handlePractice)
	auth.Handle("/add", h.handleAddPhrase)
	auth.Handle("/categories", h.handleCategories)
	auth.Handle("/stats", h.handleStats)

	// Menu buttons
	auth.Handle(&btnPractice, h.handlePractice)
	auth.Handle(&btnAddPhrase, h.handleAddPhrase)
	auth.Handle(&btnCategories, h.handleCategories)
	auth.Handle(&btnStats, h.handleStats)
	auth.Handle(&btnCancel, h.handleCancel)
	auth.Handle(&btnMainMenu, h.handleStart)

	// Practice
	auth.Handle(&btnReveal, h.handleReveal)
	auth.Handle(&btnKnow, h.handleOutcome)
	auth.Handle(&btnForgot, h.handleOutcome)
	auth.Handle(&btnDontKnow, h.handleOutcome)
	auth.Handle(&btnLeechReset, h.handleLeechReset)
	auth.Handle(&btnLeechKeep, h.handlePractice)
	auth.Handle(&btnDelete, h.handleDelete)
	auth.Handle(&btnMove, h.handleMove)
	auth.Handle(&btnMoveTo, h.handleMoveTo)

	// Categories
	auth.Handle(&btnFilter, h.handleFilter)
	auth.Handle(&btnNewCategory, h.handleNewCategory)
	auth.Handle(&btnDelCategory, h.handleDeleteCategory)

	// Settings
	auth.Handle(&btnRemindersOn, h.handleReminders)
	auth.Handle(&btnRemindersOff, h.handleReminders)

	// Import
	auth.Handle(tele.OnDocument, h.handleDocument)

	// Generic callback handler for data that did not match a button
	auth.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, keeping the practice filter
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{
		State:  domain.StateIdle,
		Filter: h.GetState(userID).Filter,
	})
}

// Inline keyboard buttons
var (
	btnPractice = tele.Btn{
		Unique: "practice",
		Text:   "🧠 Тренировка",
	}
	btnAddPhrase = tele.Btn{
		Unique: "add_phrase",
		Text:   "➕ Добавить фразу",
	}
	btnCategories = tele.Btn{
		Unique: "categories",
		Text:   "📂 Категории",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Прогресс",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Отменить",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Главное меню",
	}

	// Data-carrying buttons; payload is set per message
	btnReveal       = tele.Btn{Unique: "reveal", Text: "👀 Показать перевод"}
	btnKnow         = tele.Btn{Unique: "know", Text: "✅ Знаю"}
	btnForgot       = tele.Btn{Unique: "forgot", Text: "🤔 Забыл"}
	btnDontKnow     = tele.Btn{Unique: "dont_know", Text: "❌ Не знаю"}
	btnLeechReset   = tele.Btn{Unique: "leech_reset", Text: "🔁 Начать заново"}
	btnLeechKeep    = tele.Btn{Unique: "leech_keep", Text: "➡️ Оставить как есть"}
	btnDelete       = tele.Btn{Unique: "delete", Text: "🗑 Удалить"}
	btnMove         = tele.Btn{Unique: "move", Text: "📁 В категорию"}
	btnMoveTo       = tele.Btn{Unique: "move_to"}
	btnFilter       = tele.Btn{Unique: "filter"}
	btnNewCategory  = tele.Btn{Unique: "new_category", Text: "➕ Новая категория"}
	btnDelCategory  = tele.Btn{Unique: "del_category"}
	btnRemindersOn  = tele.Btn{Unique: "reminders_on", Text: "🔔 Включить напоминания"}
	btnRemindersOff = tele.Btn{Unique: "reminders_off", Text: "🔕 Выключить напоминания"}
)

const (
	mainMenuText = "🏠 Главное меню\n\nВыберите действие:"
	errorText    = "Произошла ошибка. Попробуйте позже."
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnPractice),
		menu.Row(btnAddPhrase),
		menu.Row(btnCategories, btnStats),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
