package common

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	User       *model.User
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadUser загружает пользователя в контекст
func (hc *HandlerContext) LoadUser() error {
	user, err := hc.Handler.SessionService.GetByTelegramID(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hc.User = user
	return nil
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	// Фото (неделя врача) нельзя превратить в текст, отправляем новое сообщение
	if len(hc.Message.Photo) > 0 {
		_ = hc.DeleteMessage()
		return hc.SendMessage(text, keyboard)
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	// "message is not modified" - не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// DeleteMessage удаляет сообщение
func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})

	return err
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.SendMessage(hc.Ctx, params)
	return err
}

// SendPhoto отправляет PNG с подписью
func (hc *HandlerContext) SendPhoto(filename string, data []byte, caption string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendPhotoParams{
		ChatID:    hc.ChatID,
		Photo:     &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.SendPhoto(hc.Ctx, params)
	return err
}

// ClearState очищает состояние пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает состояние пользователя
func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

// SetData устанавливает данные в state
func (hc *HandlerContext) SetData(key string, value any) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

// GetString получает строку из state
func (hc *HandlerContext) GetString(key string) (string, bool) {
	return hc.Handler.StateManager.GetString(hc.TelegramID, key)
}

// GetInt получает число из state
func (hc *HandlerContext) GetInt(key string) (int, bool) {
	return hc.Handler.StateManager.GetInt(hc.TelegramID, key)
}

// DeleteData удаляет ключи из state
func (hc *HandlerContext) DeleteData(keys ...string) {
	hc.Handler.StateManager.DeleteData(hc.TelegramID, keys...)
}
