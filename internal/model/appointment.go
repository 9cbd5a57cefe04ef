package model

import "time"

// Appointment is a booking record as returned by /api/user/appointments.
// The client never mutates it, cancellation goes through the backend.
type Appointment struct {
	ID          string  `json:"_id"`
	UserID      string  `json:"userId"`
	DoctorID    string  `json:"docId"`
	SlotDate    string  `json:"slotDate"` // D_M_YYYY
	SlotTime    string  `json:"slotTime"` // 10:30 AM
	DoctorInfo  Doctor  `json:"docData"`
	Amount      float64 `json:"amount"`
	Date        int64   `json:"date"` // unix millis, момент создания записи
	Cancelled   bool    `json:"cancelled"`
	Payment     bool    `json:"payment"`
	IsCompleted bool    `json:"isCompleted"`
}

// StartsAt returns the appointment start in loc
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return SlotTimestamp(a.SlotDate, a.SlotTime, loc)
}

// Price returns the amount to pay, falling back to the doctor fee
func (a *Appointment) Price() float64 {
	if a.Amount > 0 {
		return a.Amount
	}
	return a.DoctorInfo.Fees
}
