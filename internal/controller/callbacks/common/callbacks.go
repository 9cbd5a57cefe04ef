package common

import "fmt"

// Префиксы callback data. Всё, что после префикса, - аргументы через ":"
const (
	CallbackDoctor         = "doctor:"          // doctor:<id>
	CallbackDoctorDay      = "doc_day:"         // doc_day:<id>:<day>
	CallbackDoctorSlot     = "doc_slot:"        // doc_slot:<id>:<day>:<HHMM>
	CallbackDoctorBook     = "doc_book:"        // doc_book:<id>
	CallbackDoctorWeek     = "doc_week:"        // doc_week:<id>
	CallbackDoctorsPage    = "doctors_page:"    // doctors_page:<speciality>:<page>
	CallbackAppointments   = "appointments:"    // appointments:<page>
	CallbackAppointmentPay = "appt_pay:"        // appt_pay:<id>
	CallbackCancelAsk      = "appt_cancel:"     // appt_cancel:<id>
	CallbackCancelConfirm  = "appt_cancel_yes:" // appt_cancel_yes:<id>
	CallbackSpecialities   = "specialities"
	CallbackLogin          = "login"
	CallbackBackToMain     = "back_to_main"
	CallbackNoop           = "noop"

	// AllSpecialities - список врачей без фильтра по специальности
	AllSpecialities = -1
)

func DoctorData(doctorID string) string {
	return CallbackDoctor + doctorID
}

func DoctorDayData(doctorID string, day int) string {
	return fmt.Sprintf("%s%s:%d", CallbackDoctorDay, doctorID, day)
}

func DoctorSlotData(doctorID string, day int, hhmm string) string {
	return fmt.Sprintf("%s%s:%d:%s", CallbackDoctorSlot, doctorID, day, hhmm)
}

func DoctorsPageData(speciality, page int) string {
	return fmt.Sprintf("%s%d:%d", CallbackDoctorsPage, speciality, page)
}

func AppointmentsPageData(page int) string {
	return fmt.Sprintf("%s%d", CallbackAppointments, page)
}
