package model

import "time"

// AppointmentStatus is derived from an appointment and the current time, never stored
type AppointmentStatus string

const (
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusExpired   AppointmentStatus = "expired"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
)

// AppointmentAction is a user action offered for an appointment
type AppointmentAction string

const (
	AppointmentActionPay    AppointmentAction = "pay"
	AppointmentActionCancel AppointmentAction = "cancel"
)

// Classify derives the display status of an appointment.
// Checks run in priority order: cancelled, completed, expired, scheduled.
// A slot date or time that cannot be parsed is never treated as expired.
func Classify(a *Appointment, now time.Time) AppointmentStatus {
	switch {
	case a.Cancelled:
		return AppointmentStatusCancelled
	case a.IsCompleted:
		return AppointmentStatusCompleted
	}

	startsAt, err := a.StartsAt(now.Location())
	if err == nil && startsAt.Before(now) {
		return AppointmentStatusExpired
	}

	return AppointmentStatusScheduled
}

// Actions returns the actions allowed in this status
func (s AppointmentStatus) Actions() []AppointmentAction {
	if s == AppointmentStatusScheduled {
		return []AppointmentAction{AppointmentActionPay, AppointmentActionCancel}
	}
	return nil
}

// Allows checks if the action is allowed in this status
func (s AppointmentStatus) Allows(action AppointmentAction) bool {
	for _, a := range s.Actions() {
		if a == action {
			return true
		}
	}
	return false
}
