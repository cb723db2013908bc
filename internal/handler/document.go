package handler

import (
	"errors"
	"fmt"
	"strings"

	"lernbot/internal/importer"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// maxReportedErrors caps how many bad rows are listed back to the user
const maxReportedErrors = 5

// handleDocument imports phrases from an uploaded .xlsx or .csv file
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	reader, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download document", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Не удалось скачать файл. Попробуйте ещё раз.")
	}
	defer reader.Close()

	rows, rowErrs, err := importer.Parse(doc.FileName, reader, importer.DefaultConfig())
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			return c.Send("Поддерживаются только файлы .xlsx и .csv")
		}
		h.logger.Warn("Failed to parse document",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("file_name", doc.FileName),
		)
		return c.Send("Не удалось прочитать файл. Проверь формат: фраза, перевод, категория.")
	}

	// Resolve category names once per file
	resolved := make(map[string]string)
	for i := range rows {
		name := rows[i].Category
		id, ok := resolved[name]
		if !ok {
			id, err = h.categoryService.Ensure(userID, name)
			if err != nil {
				h.logger.Error("Failed to ensure category", zap.Error(err), zap.String("category", name))
				return c.Send(errorText)
			}
			resolved[name] = id
		}
		rows[i].CategoryID = id
	}

	result, err := h.phraseService.Import(userID, rows)
	if err != nil {
		h.logger.Error("Failed to import phrases", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(fmt.Sprintf("Импорт прерван. Добавлено фраз: %d", result.Created))
	}

	problems := make([]string, 0, len(rowErrs)+len(result.Errors))
	for _, e := range rowErrs {
		problems = append(problems, e.Error())
	}
	problems = append(problems, result.Errors...)

	return c.Send(importReport(result.Created, problems), mainMenuMarkup())
}

func importReport(created int, problems []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📥 Импорт завершён\n\nДобавлено фраз: %d", created)
	if len(problems) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\nПропущено строк: %d", len(problems))
	for i, p := range problems {
		if i == maxReportedErrors {
			fmt.Fprintf(&b, "\n… и ещё %d", len(problems)-maxReportedErrors)
			break
		}
		b.WriteString("\n• " + p)
	}
	return b.String()
}
