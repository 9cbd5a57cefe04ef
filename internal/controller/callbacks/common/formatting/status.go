package formatting

import "github.com/Freeeeeet/appointment_bot/internal/model"

// AppointmentStatusDisplay представляет отображение статуса записи
type AppointmentStatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса записи
func GetAppointmentStatusDisplay(status model.AppointmentStatus) AppointmentStatusDisplay {
	displays := map[model.AppointmentStatus]AppointmentStatusDisplay{
		model.AppointmentStatusCancelled: {"❌", "Cancelled"},
		model.AppointmentStatusCompleted: {"✔️", "Completed"},
		model.AppointmentStatusExpired:   {"⌛", "Expired"},
		model.AppointmentStatusScheduled: {"🟢", "Scheduled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return AppointmentStatusDisplay{"❓", "Unknown"}
}

// String склеивает emoji и текст
func (d AppointmentStatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}
