package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/appointment_bot/internal/backend"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"go.uber.org/zap"
)

// SessionAccessor отдаёт токен сессии пользователя
type SessionAccessor interface {
	Token(ctx context.Context, telegramID int64) (string, error)
}

// DoctorProvider перезагружает данные врачей после изменения записей
type DoctorProvider interface {
	Refresh(ctx context.Context) error
}

// AppointmentAPI - операции бэкенда с записями пациента (реализуется backend.Client)
type AppointmentAPI interface {
	BookAppointment(ctx context.Context, token string, req backend.BookRequest) (string, error)
	ListAppointments(ctx context.Context, token string) ([]model.Appointment, error)
	CancelAppointment(ctx context.Context, token, appointmentID string) (string, error)
}

// BookingRequest is the user's current selection on the doctor screen
type BookingRequest struct {
	DoctorID string
	// Day - слоты выбранного дня
	Day model.DaySlots
	// SlotTime - выбранное отображаемое время
	SlotTime string
}

type BookingService struct {
	sessions SessionAccessor
	api      AppointmentAPI
	doctors  DoctorProvider
	logger   *zap.Logger
}

func NewBookingService(sessions SessionAccessor, api AppointmentAPI, doctors DoctorProvider, logger *zap.Logger) *BookingService {
	return &BookingService{
		sessions: sessions,
		api:      api,
		doctors:  doctors,
		logger:   logger,
	}
}

// BookAppointment submits the selection to the backend and returns its message.
//
// Дата записи берётся из первого слота выбранного дня, а не из самого выбранного слота.
func (s *BookingService) BookAppointment(ctx context.Context, telegramID int64, req BookingRequest) (string, error) {
	token, err := s.sessions.Token(ctx, telegramID)
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}

	if req.SlotTime == "" || len(req.Day) == 0 {
		return "", ErrNoSlotSelected
	}

	slotDate := model.FormatSlotDate(req.Day[0].Datetime)

	message, err := s.api.BookAppointment(ctx, token, backend.BookRequest{
		DoctorID: req.DoctorID,
		SlotDate: slotDate,
		SlotTime: req.SlotTime,
	})
	if err != nil {
		s.logger.Warn("Booking rejected",
			zap.Int64("telegram_id", telegramID),
			zap.String("doctor_id", req.DoctorID),
			zap.String("slot_date", slotDate),
			zap.String("slot_time", req.SlotTime),
			zap.Error(err),
		)
		return "", fmt.Errorf("book appointment: %w", err)
	}

	s.logger.Info("Appointment booked",
		zap.Int64("telegram_id", telegramID),
		zap.String("doctor_id", req.DoctorID),
		zap.String("slot_date", slotDate),
		zap.String("slot_time", req.SlotTime),
	)

	// запись уже создана, ошибка обновления врачей не должна её отменять
	if err := s.doctors.Refresh(ctx); err != nil {
		s.logger.Warn("Failed to refresh doctors after booking", zap.Error(err))
	}

	return message, nil
}
