package service

import "errors"

var (
	// ErrNotLoggedIn - у пользователя нет токена бэкенда
	ErrNotLoggedIn = errors.New("login to book appointment")
	// ErrNoSlotSelected - время слота не выбрано
	ErrNoSlotSelected = errors.New("please select a time slot")
	// ErrNotPayable - запись нельзя оплатить в текущем статусе
	ErrNotPayable = errors.New("appointment cannot be paid")
	// ErrPaymentUnavailable - онлайн-оплата не настроена
	ErrPaymentUnavailable = errors.New("online payment is not available")
	// ErrDoctorNotFound - врача нет в загруженном списке
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrAppointmentNotFound - записи нет среди записей пользователя
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrEmptyCredentials - email или пароль не введены
	ErrEmptyCredentials = errors.New("email and password are required")
)
