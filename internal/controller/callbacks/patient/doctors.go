package patient

import (
	"context"
	"errors"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/slots"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSpecialities показывает список специальностей
func HandleSpecialities(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if err := h.DoctorService.Ensure(ctx); err != nil {
		common.HandleError(hc, err, "specialities")
		return
	}

	text, kb := common.BuildSpecialitiesScreen(h.DoctorService.Specialities())
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "specialities")
		return
	}
	hc.Answer("")
}

// HandleDoctorsPage показывает страницу врачей: doctors_page:<speciality>:<page>
func HandleDoctorsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackDoctorsPage, 2)
	if err != nil {
		common.HandleError(hc, err, "doctors_page")
		return
	}
	specIdx, err := common.ParseInt(args[0])
	if err != nil {
		common.HandleError(hc, err, "doctors_page")
		return
	}
	page, err := common.ParseInt(args[1])
	if err != nil {
		common.HandleError(hc, err, "doctors_page")
		return
	}

	if err := h.DoctorService.Ensure(ctx); err != nil {
		common.HandleError(hc, err, "doctors_page")
		return
	}

	text, kb := DoctorList(h, specIdx, page)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "doctors_page")
		return
	}
	hc.Answer("")
}

// DoctorList строит экран врачей по индексу специальности (AllSpecialities - все врачи)
func DoctorList(h *callbacktypes.Handler, specIdx, page int) (string, *models.InlineKeyboardMarkup) {
	specialities := h.DoctorService.Specialities()
	if specIdx >= 0 && specIdx < len(specialities) {
		speciality := specialities[specIdx]
		return common.BuildDoctorListScreen(h.DoctorService.BySpeciality(speciality), speciality, specIdx, page)
	}
	return common.BuildDoctorListScreen(h.DoctorService.List(), "All doctors", common.AllSpecialities, page)
}

// HandleDoctor открывает профиль врача: doctor:<id>
func HandleDoctor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackDoctor, 1)
	if err != nil {
		common.HandleError(hc, err, "doctor")
		return
	}
	doctorID := args[0]

	// Другой врач - выбор начинается с сегодняшнего дня
	if current, _ := hc.GetString(state.KeyDoctorID); current != doctorID {
		selectDay(hc, doctorID, 0)
	}

	if err := ShowDoctor(hc, doctorID); err != nil {
		common.HandleError(hc, err, "doctor")
		return
	}
	hc.Answer("")
}

// HandleDoctorDay выбирает день: doc_day:<id>:<day>
func HandleDoctorDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackDoctorDay, 2)
	if err != nil {
		common.HandleError(hc, err, "doctor_day")
		return
	}
	day, err := parseDay(args[1])
	if err != nil {
		common.HandleError(hc, err, "doctor_day")
		return
	}

	selectDay(hc, args[0], day)

	if err := ShowDoctor(hc, args[0]); err != nil {
		common.HandleError(hc, err, "doctor_day")
		return
	}
	hc.Answer("")
}

// HandleDoctorSlot выбирает время: doc_slot:<id>:<day>:<HHMM>
func HandleDoctorSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseArgs(callback.Data, common.CallbackDoctorSlot, 3)
	if err != nil {
		common.HandleError(hc, err, "doctor_slot")
		return
	}
	doctorID, hhmm := args[0], args[2]
	day, err := parseDay(args[1])
	if err != nil {
		common.HandleError(hc, err, "doctor_slot")
		return
	}

	slot, err := chooseSlot(hc, doctorID, day, hhmm)
	if errors.Is(err, common.ErrSlotUnavailable) {
		// Слот успели занять или он уже в прошлом
		redrawDoctor(hc, doctorID)
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}
	if err != nil {
		common.HandleError(hc, err, "doctor_slot")
		return
	}

	if err := ShowDoctor(hc, doctorID); err != nil {
		common.HandleError(hc, err, "doctor_slot")
		return
	}
	hc.Answer(slot.Time)
}

// chooseSlot запоминает выбранное время вместе с ключом даты дня
func chooseSlot(hc *common.HandlerContext, doctorID string, day int, hhmm string) (model.Slot, error) {
	h := hc.Handler
	if err := h.DoctorService.Ensure(hc.Ctx); err != nil {
		return model.Slot{}, err
	}

	week, err := h.DoctorService.Week(doctorID, h.CurrentTime())
	if err != nil {
		return model.Slot{}, err
	}

	selectDay(hc, doctorID, day)

	daySlots := week.Day(day)
	slot, ok := findSlot(daySlots, hhmm)
	if !ok {
		return model.Slot{}, common.ErrSlotUnavailable
	}
	hc.SetData(state.KeySlotTime, slot.Time)
	hc.SetData(state.KeySlotDate, model.FormatSlotDate(daySlots[0].Datetime))
	return slot, nil
}

// redrawDoctor перерисовывает экран врача, ошибка только логируется
func redrawDoctor(hc *common.HandlerContext, doctorID string) {
	if err := ShowDoctor(hc, doctorID); err != nil {
		hc.Handler.Logger.Warn("Failed to redraw doctor screen",
			zap.String("doctor_id", doctorID),
			zap.Error(err))
	}
}

// ShowDoctor перерисовывает экран врача с текущим выбором пользователя
func ShowDoctor(hc *common.HandlerContext, doctorID string) error {
	text, kb, err := DoctorScreen(hc.Ctx, hc.Handler, hc.TelegramID, doctorID)
	if err != nil {
		return err
	}
	return hc.EditMessage(text, kb)
}

// DoctorScreen строит экран врача для пользователя
func DoctorScreen(ctx context.Context, h *callbacktypes.Handler, telegramID int64, doctorID string) (string, *models.InlineKeyboardMarkup, error) {
	if err := h.DoctorService.Ensure(ctx); err != nil {
		return "", nil, err
	}

	doctor, err := h.DoctorService.Doctor(doctorID)
	if err != nil {
		return "", nil, err
	}

	now := h.CurrentTime()
	week, err := h.DoctorService.Week(doctorID, now)
	if err != nil {
		return "", nil, err
	}

	day, slotTime := selection(h, telegramID, doctorID)

	h.Logger.Debug("Rendering doctor screen",
		zap.String("doctor_id", doctorID),
		zap.Int("day", day),
		zap.String("slot_time", slotTime))

	text, kb := common.BuildDoctorScreen(common.DoctorView{
		Doctor:         doctor,
		Week:           week,
		Today:          now,
		SelectedDay:    day,
		SelectedTime:   slotTime,
		Related:        h.DoctorService.Related(doctorID),
		CurrencySymbol: h.CurrencySymbol,
	})
	return text, kb, nil
}

// selection возвращает выбранные день и время, если они относятся к этому врачу
func selection(h *callbacktypes.Handler, telegramID int64, doctorID string) (int, string) {
	if current, _ := h.StateManager.GetString(telegramID, state.KeyDoctorID); current != doctorID {
		return 0, ""
	}
	day, _ := h.StateManager.GetInt(telegramID, state.KeySlotIndex)
	slotTime, _ := h.StateManager.GetString(telegramID, state.KeySlotTime)
	return day, slotTime
}

// selectDay запоминает врача и день, выбранное время сбрасывается
func selectDay(hc *common.HandlerContext, doctorID string, day int) {
	hc.SetData(state.KeyDoctorID, doctorID)
	hc.SetData(state.KeySlotIndex, day)
	hc.DeleteData(state.KeySlotTime, state.KeySlotDate)
}

func parseDay(arg string) (int, error) {
	day, err := common.ParseInt(arg)
	if err != nil {
		return 0, err
	}
	if day < 0 || day >= slots.DaysAhead {
		return 0, common.ErrInvalidFormat
	}
	return day, nil
}

func findSlot(day model.DaySlots, hhmm string) (model.Slot, bool) {
	for _, s := range day {
		if formatting.SlotCallbackTime(s.Datetime) == hhmm {
			return s, true
		}
	}
	return model.Slot{}, false
}
