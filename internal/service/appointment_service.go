package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"go.uber.org/zap"
)

// AppointmentView is an appointment together with its status at the time of listing
type AppointmentView struct {
	model.Appointment
	Status model.AppointmentStatus
}

type AppointmentService struct {
	sessions SessionAccessor
	api      AppointmentAPI
	doctors  DoctorProvider
	logger   *zap.Logger
}

func NewAppointmentService(sessions SessionAccessor, api AppointmentAPI, doctors DoctorProvider, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		sessions: sessions,
		api:      api,
		doctors:  doctors,
		logger:   logger,
	}
}

// List возвращает записи пользователя, новые первыми
func (s *AppointmentService) List(ctx context.Context, telegramID int64, now time.Time) ([]AppointmentView, error) {
	token, err := s.token(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	items, err := s.api.ListAppointments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	views := make([]AppointmentView, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		views = append(views, AppointmentView{
			Appointment: items[i],
			Status:      model.Classify(&items[i], now),
		})
	}

	return views, nil
}

// Get находит запись пользователя по ID
func (s *AppointmentService) Get(ctx context.Context, telegramID int64, appointmentID string, now time.Time) (*AppointmentView, error) {
	views, err := s.List(ctx, telegramID, now)
	if err != nil {
		return nil, err
	}

	for i := range views {
		if views[i].ID == appointmentID {
			return &views[i], nil
		}
	}

	return nil, ErrAppointmentNotFound
}

// Cancel отменяет запись и обновляет данные врачей
func (s *AppointmentService) Cancel(ctx context.Context, telegramID int64, appointmentID string) (string, error) {
	token, err := s.token(ctx, telegramID)
	if err != nil {
		return "", err
	}

	message, err := s.api.CancelAppointment(ctx, token, appointmentID)
	if err != nil {
		s.logger.Warn("Cancellation rejected",
			zap.Int64("telegram_id", telegramID),
			zap.String("appointment_id", appointmentID),
			zap.Error(err),
		)
		return "", fmt.Errorf("cancel appointment: %w", err)
	}

	s.logger.Info("Appointment cancelled",
		zap.Int64("telegram_id", telegramID),
		zap.String("appointment_id", appointmentID),
	)

	if err := s.doctors.Refresh(ctx); err != nil {
		s.logger.Warn("Failed to refresh doctors after cancellation", zap.Error(err))
	}

	return message, nil
}

func (s *AppointmentService) token(ctx context.Context, telegramID int64) (string, error) {
	token, err := s.sessions.Token(ctx, telegramID)
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}
