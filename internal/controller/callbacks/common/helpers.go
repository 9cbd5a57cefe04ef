package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseArgs отрезает префикс и возвращает ровно n аргументов.
// Например: ParseArgs("doc_day:abc:3", "doc_day:", 2) -> ["abc", "3"]
func ParseArgs(data, prefix string, n int) ([]string, error) {
	if !strings.HasPrefix(data, prefix) {
		return nil, ErrInvalidFormat
	}
	args := strings.Split(strings.TrimPrefix(data, prefix), ":")
	if len(args) != n {
		return nil, ErrInvalidFormat
	}
	for _, a := range args {
		if a == "" {
			return nil, ErrInvalidFormat
		}
	}
	return args, nil
}

// ParseInt разбирает числовой аргумент callback
func ParseInt(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return n, nil
}
