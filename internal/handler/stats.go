package handler

import (
	"fmt"
	"strings"

	"lernbot/internal/service"
	"lernbot/internal/srs"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStats shows the learning progress summary
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	summary, err := h.statsService.Summary(userID)
	if err != nil {
		return h.respondError(c)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnPractice),
		markup.Row(btnRemindersOn, btnRemindersOff),
		markup.Row(btnMainMenu),
	)
	return h.editOrSend(c, formatSummary(summary), markup)
}

func formatSummary(s *service.Summary) string {
	var b strings.Builder
	b.WriteString("📊 Твой прогресс\n\n")
	fmt.Fprintf(&b, "Всего фраз: %d\n", s.Total)
	fmt.Fprintf(&b, "🆕 Новые: %d\n", s.Buckets[srs.BucketNew])
	fmt.Fprintf(&b, "📖 Учатся: %d\n", s.Buckets[srs.BucketLearning])
	fmt.Fprintf(&b, "📗 Выучены: %d\n", s.Buckets[srs.BucketLearned])
	fmt.Fprintf(&b, "🏆 Освоены: %d\n", s.Buckets[srs.BucketMastered])
	fmt.Fprintf(&b, "\n⏰ Ждут повторения: %d", s.Due)
	if s.Leeches > 0 {
		fmt.Fprintf(&b, "\n🐌 Трудные: %d", s.Leeches)
	}
	return b.String()
}

// handleReminders turns daily reminders on or off
func (h *Handler) handleReminders(c tele.Context) error {
	userID := c.Sender().ID
	unique, _ := parseCallback(c.Callback())
	enabled := unique == btnRemindersOn.Unique

	if err := h.authService.SetReminders(userID, enabled); err != nil {
		h.logger.Error("Failed to update reminders", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondError(c)
	}

	text := "🔕 Напоминания выключены"
	if enabled {
		text = "🔔 Напоминания включены"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

// SendReminder notifies a user that phrases are waiting for review
func (h *Handler) SendReminder(userID int64, due int) error {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnPractice))

	text := fmt.Sprintf("⏰ Пора повторить! Фраз ждут повторения: %d", due)
	if _, err := h.bot.Send(tele.ChatID(userID), text, markup); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
