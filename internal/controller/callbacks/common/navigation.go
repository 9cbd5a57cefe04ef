package common

import (
	"context"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		// Диалог прерываем, выбор на экране врача сбрасываем
		hc.ClearState()

		text, kb := BuildMainMenu(hc.User)
		if err := hc.EditMessage(text, kb); err != nil {
			HandleError(hc, err, "back_to_main")
			return
		}
		hc.Answer("")
	})
}

// HandleLogin запускает диалог входа из кнопки
func HandleLogin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	if hc.Message == nil || h.HandleLogin == nil {
		hc.AnswerAlert(ErrorMessage(ErrNoMessage))
		return
	}

	h.HandleLogin(ctx, b, hc.ChatID, &callback.From)
	hc.Answer("")
}
