package handler

import (
	"errors"

	"lernbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const passwordPrompt = "Привет! Чтобы начать учить фразы, введи пароль:"

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	authorized, err := h.authService.Access(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	h.ResetState(userID)
	if !authorized {
		return c.Send(passwordPrompt)
	}

	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}

// handlePassword checks the password of a not yet authorized user
func (h *Handler) handlePassword(c tele.Context, password string) error {
	userID := c.Sender().ID

	if err := h.authService.Unlock(userID, password); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return c.Send("Неверный пароль")
		}
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(errorText)
	}

	h.ResetState(userID)
	return c.Send("✅ Доступ разрешён!\n\n"+mainMenuText, mainMenuMarkup())
}
