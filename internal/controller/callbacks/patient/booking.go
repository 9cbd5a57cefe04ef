package patient

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBook отправляет запись на выбранный слот: doc_book:<id>
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackDoctorBook, 1)
	if err != nil {
		common.HandleError(hc, err, "book")
		return
	}
	doctorID := args[0]

	message, slotTime, err := bookSelection(ctx, h, hc.TelegramID, doctorID)

	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		hc.SetData(state.KeyAfterLogin, doctorID)
		hc.AnswerAlert(common.ErrorMessage(err))
		kb := keyboard.NewBuilder().Row(keyboard.Button("🔑 Login", common.CallbackLogin)).Build()
		if sendErr := hc.SendMessage("🔑 Login to book appointment", kb); sendErr != nil {
			h.Logger.Error("Failed to send login prompt", zap.Error(sendErr))
		}
		return
	case errors.Is(err, service.ErrNoSlotSelected):
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	case errors.Is(err, common.ErrSlotUnavailable):
		// Выбор устарел: время сбрасывается, экран показывает актуальные слоты
		hc.DeleteData(state.KeySlotTime, state.KeySlotDate)
		redrawDoctor(hc, doctorID)
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	case err != nil:
		// Выбор остаётся, пользователь может попробовать другой слот
		common.HandleError(hc, err, "book")
		return
	}

	h.Logger.Info("Appointment booked",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("doctor_id", doctorID),
		zap.String("slot_time", slotTime))

	hc.DeleteData(state.KeyDoctorID, state.KeySlotIndex, state.KeySlotTime, state.KeySlotDate)
	hc.Answer("✅ " + message)

	if err := ShowAppointments(hc, 0, "✅ "+html.EscapeString(message)); err != nil {
		common.HandleError(hc, err, "book")
	}
}

// bookSelection отправляет сохранённый выбор пользователя.
// День пересчитывается от текущего времени, поэтому перед отправкой проверяется,
// что под тем же индексом всё ещё тот же день и выбранное время в нём свободно.
func bookSelection(ctx context.Context, h *callbacktypes.Handler, telegramID int64, doctorID string) (string, string, error) {
	if err := h.DoctorService.Ensure(ctx); err != nil {
		return "", "", err
	}

	week, err := h.DoctorService.Week(doctorID, h.CurrentTime())
	if err != nil {
		return "", "", err
	}

	dayIdx, slotTime := selection(h, telegramID, doctorID)
	day := week.Day(dayIdx)

	if slotTime != "" {
		chosenDate, _ := h.StateManager.GetString(telegramID, state.KeySlotDate)
		if _, ok := day.Find(slotTime); !ok || model.FormatSlotDate(day[0].Datetime) != chosenDate {
			h.Logger.Info("Stale slot selection",
				zap.Int64("telegram_id", telegramID),
				zap.String("doctor_id", doctorID),
				zap.String("slot_date", chosenDate),
				zap.String("slot_time", slotTime))
			return "", slotTime, common.ErrSlotUnavailable
		}
	}

	message, err := h.BookingService.BookAppointment(ctx, telegramID, service.BookingRequest{
		DoctorID: doctorID,
		Day:      day,
		SlotTime: slotTime,
	})
	return message, slotTime, err
}

// HandleWeekView отправляет картинку недели врача: doc_week:<id>
func HandleWeekView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackDoctorWeek, 1)
	if err != nil {
		common.HandleError(hc, err, "week_view")
		return
	}
	doctorID := args[0]

	if err := h.DoctorService.Ensure(ctx); err != nil {
		common.HandleError(hc, err, "week_view")
		return
	}

	doctor, err := h.DoctorService.Doctor(doctorID)
	if err != nil {
		common.HandleError(hc, err, "week_view")
		return
	}

	now := h.CurrentTime()
	week, err := h.DoctorService.Week(doctorID, now)
	if err != nil {
		common.HandleError(hc, err, "week_view")
		return
	}

	cells := common.BuildWeekCells(week, doctor.SlotsBooked, h.DoctorService.Generator(), now)
	image, err := common.GenerateWeekImage(doctor.Name, cells, now)
	if err != nil {
		common.HandleError(hc, err, "week_view")
		return
	}

	free := 0
	for _, day := range week {
		free += len(day)
	}

	caption := fmt.Sprintf("🗓 <b>%s</b>\n%d free slots in the next 7 days", html.EscapeString(doctor.Name), free)
	kb := keyboard.NewBuilder().AddBackButton("Back to doctor", common.DoctorData(doctorID)).Build()

	if err := hc.SendPhoto("week.png", image, caption, kb); err != nil {
		common.HandleError(hc, err, "week_view")
		return
	}
	hc.Answer("")
}
