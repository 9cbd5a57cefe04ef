package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/appointment_bot/internal/backend"
	"github.com/Freeeeeet/appointment_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")

	// ErrSlotUnavailable - выбранный слот занят, прошёл или день сменился
	ErrSlotUnavailable = errors.New("slot is no longer available")
	// ErrNotCancellable - запись уже отменена, завершена или прошла
	ErrNotCancellable = errors.New("appointment cannot be cancelled")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Ошибки бэкенда показываются текстом, который прислал бэкенд
func ErrorMessage(err error) string {
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ User not found. Use /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Failed to process the message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	case errors.Is(err, ErrSlotUnavailable):
		return "⚠️ This slot is no longer available"
	case errors.Is(err, ErrNotCancellable):
		return "⚠️ This appointment can no longer be cancelled"
	case errors.Is(err, service.ErrNotLoggedIn):
		return "⚠️ Login to book appointment"
	case errors.Is(err, service.ErrNoSlotSelected):
		return "⚠️ Please select a time slot"
	case errors.Is(err, service.ErrDoctorNotFound):
		return "❌ Doctor not found"
	case errors.Is(err, service.ErrAppointmentNotFound):
		return "❌ Appointment not found"
	case errors.Is(err, service.ErrNotPayable):
		return "❌ This appointment cannot be paid"
	case errors.Is(err, service.ErrPaymentUnavailable):
		return "❌ Online payment is not available"
	case errors.Is(err, service.ErrEmptyCredentials):
		return "❌ Email and password are required"
	case errors.As(err, &apiErr):
		return "❌ " + backend.ErrorMessage(apiErr)
	default:
		return "❌ Something went wrong"
	}
}

// IsMessageNotModifiedError проверяет ошибку Telegram о неизменённом сообщении
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
