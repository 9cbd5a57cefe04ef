package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value any)
	GetData(telegramID int64, key string) (any, bool)
	DeleteData(telegramID int64, keys ...string)
	GetString(telegramID int64, key string) (string, bool)
	GetInt(telegramID int64, key string) (int, bool)
	GetAllData(telegramID int64) map[string]any
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	SessionService     *service.SessionService
	DoctorService      *service.DoctorService
	BookingService     *service.BookingService
	AppointmentService *service.AppointmentService
	PaymentService     *service.PaymentService
	StateManager       StateManager
	Logger             *zap.Logger

	// Location - часовой пояс клиники, CurrencySymbol - символ валюты в ценах
	Location       *time.Location
	CurrencySymbol string
	// Now подменяется в тестах
	Now func() time.Time

	// Функции-хэндлеры из основного контроллера
	HandleLogin func(ctx context.Context, b *bot.Bot, chatID int64, from *models.User)
}

// CurrentTime возвращает текущее время в часовом поясе клиники
func (h *Handler) CurrentTime() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	if h.Location == nil {
		return now()
	}
	return now().In(h.Location)
}
