package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/patient"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Навигация =====
	case data == common.CallbackBackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == common.CallbackLogin:
		common.HandleLogin(ctx, b, callback, h)
	case data == common.CallbackNoop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Врачи =====
	case data == common.CallbackSpecialities:
		patient.HandleSpecialities(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackDoctorsPage):
		patient.HandleDoctorsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackDoctor):
		patient.HandleDoctor(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackDoctorDay):
		patient.HandleDoctorDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackDoctorSlot):
		patient.HandleDoctorSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackDoctorBook):
		patient.HandleBook(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackDoctorWeek):
		patient.HandleWeekView(ctx, b, callback, h)

	// ===== Мои записи =====
	case strings.HasPrefix(data, common.CallbackAppointments):
		patient.HandleAppointmentsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackCancelConfirm):
		patient.HandleCancelConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackCancelAsk):
		patient.HandleCancelAsk(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackAppointmentPay):
		patient.HandlePay(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown command")
		return
	}

	h.Logger.Debug("Callback routed", zap.String("data", data))
}
