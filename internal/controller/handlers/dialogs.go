package handlers

import (
	"context"
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/patient"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}
	h.StartLogin(ctx, b, update.Message.Chat.ID, update.Message.From)
}

// StartLogin начинает диалог входа: сначала email, потом пароль
func (h *Handlers) StartLogin(ctx context.Context, b *bot.Bot, chatID int64, from *models.User) {
	telegramID := from.ID

	h.logger.Info("Starting login dialog", zap.Int64("telegram_id", telegramID))

	h.stateManager.SetState(telegramID, state.StateLoginEmail)
	h.stateManager.DeleteData(telegramID, state.KeyLoginEmail)

	h.sendMessage(ctx, b, chatID,
		"🔑 <b>Login</b>\n\n"+
			"Step 1 of 2: send the email of your clinic account.\n\n"+
			"Use /cancel to stop.", nil)
}

// handleLoginEmailStep обрабатывает ввод email
func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if len(email) > EmailMaxLength || !emailRegex.MatchString(email) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ This does not look like an email.\n\nTry again or send /cancel:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyLoginEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"Step 2 of 2: send your password.\n\n"+
			"The message with the password will be deleted right away.", nil)
}

// handleLoginPasswordStep обрабатывает ввод пароля и выполняет вход
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// Пароль не должен оставаться в чате
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	}); err != nil {
		h.logger.Warn("Failed to delete password message", zap.Error(err))
	}

	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		h.sendError(ctx, b, chatID, "❌ Invalid password length.\n\nTry again or send /cancel:")
		return
	}

	email, ok := h.stateManager.GetString(telegramID, state.KeyLoginEmail)
	if !ok {
		h.logger.Error("Missing email for login", zap.Int64("telegram_id", telegramID))
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendError(ctx, b, chatID, "❌ Login data is lost. Start again with /login")
		return
	}

	err := h.sessionService.Login(ctx, telegramID, email, password)
	if errors.Is(err, service.ErrEmptyCredentials) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nTry again or send /cancel:")
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	h.stateManager.DeleteData(telegramID, state.KeyLoginEmail)

	if err != nil {
		h.logger.Warn("Login failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nUse /login to try again.")
		return
	}

	h.logger.Info("User logged in", zap.Int64("telegram_id", telegramID))

	// Возвращаем к врачу, с экрана которого пришли
	if doctorID, ok := h.stateManager.GetString(telegramID, state.KeyAfterLogin); ok {
		h.stateManager.DeleteData(telegramID, state.KeyAfterLogin)
		text, kb, err := patient.DoctorScreen(ctx, h.screens, telegramID, doctorID)
		if err == nil {
			h.sendMessage(ctx, b, chatID, "✅ Logged in as "+html.EscapeString(email)+"\n\n"+text, kb)
			return
		}
		h.logger.Warn("Failed to render doctor after login", zap.String("doctor_id", doctorID), zap.Error(err))
	}

	user, err := h.sessionService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.sendMessage(ctx, b, chatID, "✅ Logged in as "+html.EscapeString(email), nil)
		return
	}
	text, kb := common.BuildMainMenu(user)
	h.sendMessage(ctx, b, chatID, "✅ Logged in as "+html.EscapeString(email)+"\n\n"+text, kb)
}
