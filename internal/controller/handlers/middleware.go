package handlers

import (
	"context"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser возвращает пользователя, регистрируя его, если он ещё не нажимал /start
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	from := update.Message.From
	user, err := h.sessionService.GetByTelegramID(ctx, from.ID)
	if err == nil && user == nil {
		user, err = h.sessionService.RegisterUser(ctx, from.ID, from.Username, from.FirstName, from.LastName, from.LanguageCode)
	}

	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Something went wrong. Please try again later.")
		return nil, false
	}

	return user, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение с клавиатурой и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
