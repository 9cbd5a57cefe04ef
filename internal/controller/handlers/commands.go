package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/patient"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From

	// Регистрируем пользователя, сессия бэкенда сохраняется
	user, err := h.sessionService.RegisterUser(
		ctx,
		from.ID,
		from.Username,
		from.FirstName,
		from.LastName,
		from.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Registration failed. Please try again later.")
		return
	}

	h.stateManager.ClearState(from.ID)

	menu, kb := common.BuildMainMenu(user)
	text := fmt.Sprintf("👋 Hello, %s!\n\nBook appointments with trusted doctors right from Telegram.\n\n%s",
		html.EscapeString(user.FirstName), menu)

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>Help</b>\n\n" +
		"/start - Start the bot\n" +
		"/doctors - Browse doctors and book a slot\n" +
		"/myappointments - Your appointments: pay or cancel\n" +
		"/login - Login with your clinic account\n" +
		"/logout - Logout\n" +
		"/cancel - Cancel the current dialog\n" +
		"/help - Show this help\n\n" +
		"To book, open a doctor, pick a day and a time slot, then press \"Book an appointment\"."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleDoctors обрабатывает команду /doctors
func (h *Handlers) HandleDoctors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	if err := h.doctorService.Ensure(ctx); err != nil {
		h.logger.Error("Failed to load doctors", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := patient.DoctorList(h.screens, common.AllSpecialities, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyAppointments обрабатывает команду /myappointments
func (h *Handlers) HandleMyAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	text, kb, err := patient.AppointmentsScreen(ctx, h.screens, user.TelegramID, 0)
	if err != nil {
		h.logger.Error("Failed to list appointments",
			zap.Int64("telegram_id", user.TelegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.stateManager.SetData(user.TelegramID, state.KeyAppointmentsPage, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if !user.IsLoggedIn() {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "You are not logged in.", nil)
		return
	}

	if err := h.sessionService.Logout(ctx, user.TelegramID); err != nil {
		h.logger.Error("Failed to logout", zap.Int64("telegram_id", user.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(user.TelegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 You have been logged out.", nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.", nil)
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	h.stateManager.DeleteData(telegramID, state.KeyLoginEmail, state.KeyAfterLogin)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Cancelled.\n\nUse /help to see available commands.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Текст может быть паролем, в лог не пишем
	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		return
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
