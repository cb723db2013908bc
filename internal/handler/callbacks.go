package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallback returns the button unique and its payload.
// Raw data of the form "\funique|payload" is split when telebot did not do it.
func parseCallback(cb *tele.Callback) (unique, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cleanCallbackData(cb.Data)
	}
	unique, payload, _ = strings.Cut(cleanCallbackData(cb.Data), "|")
	return unique, payload
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Another callback already edited the message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Debug("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the message behind a callback, or sends a new one for commands
func (h *Handler) editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	userID := c.Sender().ID
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}

	// The callback may already have been answered with a toast
	if err := c.Respond(); err != nil {
		h.logger.Debug("Failed to acknowledge callback", zap.Error(err))
	}
	return nil
}

// respondError reports a generic failure on callbacks and messages alike
func (h *Handler) respondError(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}
	return c.Send(errorText)
}

// handleCallback handles callbacks that did not match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, payload := parseCallback(callback)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
		zap.String("data_raw", callback.Data),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch unique {
	case btnPractice.Unique, btnLeechKeep.Unique:
		return h.handlePractice(c)
	case btnAddPhrase.Unique:
		return h.handleAddPhrase(c)
	case btnCategories.Unique:
		return h.handleCategories(c)
	case btnStats.Unique:
		return h.handleStats(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
	)
	return c.Respond()
}
