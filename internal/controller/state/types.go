package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Диалог входа в аккаунт клиники
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"
)

// Ключи данных пользователя
const (
	// Выбор на экране врача
	KeyDoctorID  = "doctor_id"
	KeySlotIndex = "slot_index"
	KeySlotTime  = "slot_time"
	// KeySlotDate - ключ D_M_YYYY дня, на котором выбрано время
	KeySlotDate = "slot_date"

	// Текущая страница "мои записи"
	KeyAppointmentsPage = "appointments_page"

	// Диалог входа
	KeyLoginEmail = "login_email"
	// KeyAfterLogin - врач, к которому вернуться после входа
	KeyAfterLogin = "after_login_doctor"
)

// UserData хранит временные данные пользователя
type UserData struct {
	State UserState
	Data  map[string]any
}
