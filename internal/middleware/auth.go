package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Authorizer checks whether a Telegram user may use the bot
type Authorizer interface {
	Access(userID int64) (bool, error)
}

// AuthMiddleware creates authentication middleware.
// Unauthorized users are asked for the password instead of reaching the handler.
func AuthMiddleware(auth Authorizer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			userID := sender.ID

			authorized, err := auth.Access(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reply(c, "Произошла ошибка. Попробуйте позже.")
			}

			if !authorized {
				logger.Debug("Unauthorized request", zap.Int64("user_id", userID))
				return reply(c, "Сначала введи пароль. Нажми /start, если потерялся.")
			}

			return next(c)
		}
	}
}

// reply answers callbacks with a toast and messages with a new message
func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
