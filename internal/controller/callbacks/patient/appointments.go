package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAppointmentsPage показывает страницу записей: appointments:<page>
func HandleAppointmentsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackAppointments, 1)
	if err != nil {
		common.HandleError(hc, err, "appointments")
		return
	}
	page, err := common.ParseInt(args[0])
	if err != nil {
		common.HandleError(hc, err, "appointments")
		return
	}

	if err := ShowAppointments(hc, page, ""); err != nil {
		common.HandleError(hc, err, "appointments")
		return
	}
	hc.Answer("")
}

// ShowAppointments перерисовывает сообщение списком записей. notice выводится над списком
func ShowAppointments(hc *common.HandlerContext, page int, notice string) error {
	text, kb, err := AppointmentsScreen(hc.Ctx, hc.Handler, hc.TelegramID, page)
	if err != nil {
		return err
	}
	hc.SetData(state.KeyAppointmentsPage, page)
	if notice != "" {
		text = notice + "\n\n" + text
	}
	return hc.EditMessage(text, kb)
}

// AppointmentsScreen строит экран "мои записи". Без входа показывается приглашение войти
func AppointmentsScreen(ctx context.Context, h *callbacktypes.Handler, telegramID int64, page int) (string, *models.InlineKeyboardMarkup, error) {
	items, err := h.AppointmentService.List(ctx, telegramID, h.CurrentTime())
	if errors.Is(err, service.ErrNotLoggedIn) {
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🔑 Login", common.CallbackLogin)).
			AddBackToMainButton().
			Build()
		return "📋 <b>My appointments</b>\n\nLogin to see your appointments.", kb, nil
	}
	if err != nil {
		return "", nil, err
	}

	text, kb := common.BuildAppointmentsScreen(common.AppointmentsView{
		Items:          items,
		Page:           page,
		PaymentEnabled: h.PaymentService != nil && h.PaymentService.Available(),
		CurrencySymbol: h.CurrencySymbol,
	})
	return text, kb, nil
}

// HandleCancelAsk спрашивает подтверждение отмены: appt_cancel:<id>
func HandleCancelAsk(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackCancelAsk, 1)
	if err != nil {
		common.HandleError(hc, err, "cancel_ask")
		return
	}

	item, err := h.AppointmentService.Get(ctx, hc.TelegramID, args[0], h.CurrentTime())
	if err != nil {
		common.HandleError(hc, err, "cancel_ask")
		return
	}
	if !item.Status.Allows(model.AppointmentActionCancel) {
		hc.AnswerAlert(fmt.Sprintf("This appointment is %s", formatting.GetAppointmentStatusDisplay(item.Status).Text))
		return
	}

	page, _ := hc.GetInt(state.KeyAppointmentsPage)
	text, kb := common.BuildCancelConfirmScreen(*item, page)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "cancel_ask")
		return
	}
	hc.Answer("")
}

// HandleCancelConfirm отменяет запись: appt_cancel_yes:<id>
func HandleCancelConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackCancelConfirm, 1)
	if err != nil {
		common.HandleError(hc, err, "cancel_confirm")
		return
	}

	page, _ := hc.GetInt(state.KeyAppointmentsPage)

	message, err := cancelAppointment(ctx, h, hc.TelegramID, args[0])
	if errors.Is(err, common.ErrNotCancellable) {
		// Подтверждение из старого сообщения: запись успела пройти или отмениться
		if showErr := ShowAppointments(hc, page, ""); showErr != nil {
			h.Logger.Warn("Failed to redraw appointments", zap.Error(showErr))
		}
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}
	if err != nil {
		common.HandleError(hc, err, "cancel_confirm")
		return
	}

	h.Logger.Info("Appointment cancelled",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("appointment_id", args[0]))

	hc.Answer("✅ " + message)

	if err := ShowAppointments(hc, page, ""); err != nil {
		common.HandleError(hc, err, "cancel_confirm")
	}
}

// cancelAppointment отменяет запись, если её статус всё ещё это позволяет
func cancelAppointment(ctx context.Context, h *callbacktypes.Handler, telegramID int64, appointmentID string) (string, error) {
	item, err := h.AppointmentService.Get(ctx, telegramID, appointmentID, h.CurrentTime())
	if err != nil {
		return "", err
	}
	if !item.Status.Allows(model.AppointmentActionCancel) {
		return "", common.ErrNotCancellable
	}
	return h.AppointmentService.Cancel(ctx, telegramID, appointmentID)
}

// HandlePay создаёт ссылку на оплату: appt_pay:<id>
func HandlePay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackAppointmentPay, 1)
	if err != nil {
		common.HandleError(hc, err, "pay")
		return
	}

	if h.PaymentService == nil {
		hc.AnswerAlert(common.ErrorMessage(service.ErrPaymentUnavailable))
		return
	}

	url, err := h.PaymentService.CreateCheckout(ctx, hc.TelegramID, args[0], h.CurrentTime())
	if err != nil {
		common.HandleError(hc, err, "pay")
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.URLButton("💳 Pay online", url)).Build()
	if err := hc.SendMessage("💳 Follow the link to pay for your appointment.", kb); err != nil {
		common.HandleError(hc, err, "pay")
		return
	}
	hc.Answer("")
}
