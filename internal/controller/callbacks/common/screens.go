package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

const (
	DoctorsPerPage      = 8
	AppointmentsPerPage = 5
	dayButtonsPerRow    = 4
	slotButtonsPerRow   = 3
)

// BuildMainMenu формирует главное меню
func BuildMainMenu(user *model.User) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🏥 <b>Main menu</b>\n\n")
	if user.IsLoggedIn() {
		sb.WriteString(fmt.Sprintf("You are logged in as %s\n\n", html.EscapeString(user.Email)))
	} else {
		sb.WriteString("You are not logged in. Use /login to book appointments.\n\n")
	}
	sb.WriteString("Commands:\n" +
		"/doctors - Browse doctors\n" +
		"/myappointments - My appointments\n" +
		"/login - Login to your account\n" +
		"/logout - Logout\n" +
		"/help - Help")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("👨‍⚕️ All doctors", DoctorsPageData(AllSpecialities, 0))).
		Row(keyboard.Button("🩺 Specialities", CallbackSpecialities)).
		Row(keyboard.Button("📋 My appointments", AppointmentsPageData(0)))
	if !user.IsLoggedIn() {
		kb.Row(keyboard.Button("🔑 Login", CallbackLogin))
	}

	return sb.String(), kb.Build()
}

// BuildSpecialitiesScreen формирует список специальностей
func BuildSpecialitiesScreen(specialities []string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	for i, s := range specialities {
		kb.Row(keyboard.Button(s, DoctorsPageData(i, 0)))
	}
	kb.Row(keyboard.Button("👨‍⚕️ All doctors", DoctorsPageData(AllSpecialities, 0)))
	kb.AddBackToMainButton()

	return "🩺 <b>Browse through the doctors speciality</b>", kb.Build()
}

// BuildDoctorListScreen формирует страницу списка врачей
func BuildDoctorListScreen(doctors []model.Doctor, title string, speciality, page int) (string, *models.InlineKeyboardMarkup) {
	if len(doctors) == 0 {
		kb := keyboard.NewBuilder().
			AddBackButton("Specialities", CallbackSpecialities).
			Build()
		return fmt.Sprintf("👨‍⚕️ <b>%s</b>\n\nNo doctors found.", html.EscapeString(title)), kb
	}

	start, end, page, pages := keyboard.PageBounds(len(doctors), DoctorsPerPage, page)

	kb := keyboard.NewBuilder()
	for _, d := range doctors[start:end] {
		kb.Row(keyboard.Button(fmt.Sprintf("%s %s · %s", availabilityDot(d.Available), d.Name, d.Speciality), DoctorData(d.ID)))
	}
	kb.AddPagination(fmt.Sprintf("%s%d:", CallbackDoctorsPage, speciality), page, pages)
	kb.AddBackButton("Specialities", CallbackSpecialities)

	text := fmt.Sprintf("👨‍⚕️ <b>%s</b>\n\n%d %s",
		html.EscapeString(title), len(doctors), formatting.Pluralize(len(doctors), "doctor", "doctors"))

	return text, kb.Build()
}

// DoctorView - данные экрана врача
type DoctorView struct {
	Doctor         model.Doctor
	Week           model.WeekSlots
	Today          time.Time
	SelectedDay    int
	SelectedTime   string
	Related        []model.Doctor
	CurrencySymbol string
}

// BuildDoctorScreen формирует профиль врача с выбором дня и слота
func BuildDoctorScreen(v DoctorView) (string, *models.InlineKeyboardMarkup) {
	d := v.Doctor

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👨‍⚕️ <b>%s</b> %s\n", html.EscapeString(d.Name), availabilityBadge(d.Available)))
	sb.WriteString(fmt.Sprintf("%s - %s", html.EscapeString(d.Degree), html.EscapeString(d.Speciality)))
	if d.Experience != "" {
		sb.WriteString(fmt.Sprintf(" · %s", html.EscapeString(d.Experience)))
	}
	sb.WriteString("\n")
	if d.About != "" {
		sb.WriteString(fmt.Sprintf("\n<i>%s</i>\n", html.EscapeString(d.About)))
	}
	sb.WriteString(fmt.Sprintf("\n💰 Appointment fee: <b>%s</b>\n", formatting.FormatPrice(v.CurrencySymbol, d.Fees)))
	if addr := formatAddress(d.Address); addr != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", html.EscapeString(addr)))
	}

	sb.WriteString("\n<b>Booking slots</b>\n")

	kb := keyboard.NewBuilder()

	if len(v.Week) == 0 {
		sb.WriteString("Slots are not available yet.")
	} else {
		day := v.Week.Day(v.SelectedDay)
		selectedDate := v.Today.AddDate(0, 0, v.SelectedDay)
		sb.WriteString(fmt.Sprintf("📅 %s: ", formatting.FormatDayLong(selectedDate)))
		switch {
		case len(day) == 0:
			sb.WriteString("no free slots")
		case v.SelectedTime != "":
			sb.WriteString(fmt.Sprintf("selected <b>%s</b>", html.EscapeString(v.SelectedTime)))
		default:
			sb.WriteString(fmt.Sprintf("%d free %s", len(day), formatting.Pluralize(len(day), "slot", "slots")))
		}

		dayButtons := make([]models.InlineKeyboardButton, 0, len(v.Week))
		for i := range v.Week {
			label := formatting.FormatDayButton(v.Today.AddDate(0, 0, i))
			if i == v.SelectedDay {
				label = "• " + label + " •"
			}
			dayButtons = append(dayButtons, keyboard.Button(label, DoctorDayData(d.ID, i)))
		}
		kb.Grid(dayButtons, dayButtonsPerRow)

		slotButtons := make([]models.InlineKeyboardButton, 0, len(day))
		for _, s := range day {
			label := s.Time
			if s.Time == v.SelectedTime {
				label = "✅ " + label
			}
			slotButtons = append(slotButtons, keyboard.Button(label, DoctorSlotData(d.ID, v.SelectedDay, formatting.SlotCallbackTime(s.Datetime))))
		}
		kb.Grid(slotButtons, slotButtonsPerRow)

		kb.Row(keyboard.Button("📝 Book an appointment", CallbackDoctorBook+d.ID))
		kb.Row(keyboard.Button("🗓 Week view", CallbackDoctorWeek+d.ID))
	}

	if len(v.Related) > 0 {
		sb.WriteString("\n\n<b>Related doctors</b>")
		for _, r := range v.Related {
			kb.Row(keyboard.Button(fmt.Sprintf("%s %s", availabilityDot(r.Available), r.Name), DoctorData(r.ID)))
		}
	}

	kb.AddBackButton("Doctors", DoctorsPageData(AllSpecialities, 0))

	return sb.String(), kb.Build()
}

// AppointmentsView - данные экрана "мои записи"
type AppointmentsView struct {
	Items          []service.AppointmentView
	Page           int
	PaymentEnabled bool
	CurrencySymbol string
}

// BuildAppointmentsScreen формирует страницу списка записей
func BuildAppointmentsScreen(v AppointmentsView) (string, *models.InlineKeyboardMarkup) {
	if len(v.Items) == 0 {
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("👨‍⚕️ Find a doctor", DoctorsPageData(AllSpecialities, 0))).
			AddBackToMainButton().
			Build()
		return "📋 <b>My appointments</b>\n\nYou have no appointments yet.", kb
	}

	start, end, page, pages := keyboard.PageBounds(len(v.Items), AppointmentsPerPage, v.Page)

	var sb strings.Builder
	sb.WriteString("📋 <b>My appointments</b>\n")

	kb := keyboard.NewBuilder()
	for i, item := range v.Items[start:end] {
		sb.WriteString("\n")
		sb.WriteString(formatAppointmentCard(start+i+1, item, v.CurrencySymbol))

		var actions []models.InlineKeyboardButton
		if item.Status.Allows(model.AppointmentActionPay) && v.PaymentEnabled && !item.Payment {
			actions = append(actions, keyboard.Button(fmt.Sprintf("💳 Pay #%d", start+i+1), CallbackAppointmentPay+item.ID))
		}
		if item.Status.Allows(model.AppointmentActionCancel) {
			actions = append(actions, keyboard.Button(fmt.Sprintf("✖️ Cancel #%d", start+i+1), CallbackCancelAsk+item.ID))
		}
		kb.Row(actions...)
	}

	kb.AddPagination(CallbackAppointments, page, pages)
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildCancelConfirmScreen формирует подтверждение отмены записи
func BuildCancelConfirmScreen(item service.AppointmentView, page int) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("❓ <b>Cancel this appointment?</b>\n\n👨‍⚕️ %s\n📅 %s | %s",
		html.EscapeString(item.DoctorInfo.Name),
		formatting.FormatSlotDate(item.SlotDate),
		html.EscapeString(item.SlotTime))

	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelButtons("Cancel appointment", CallbackCancelConfirm+item.ID, AppointmentsPageData(page))...).
		Build()

	return text, kb
}

func formatAppointmentCard(n int, item service.AppointmentView, currency string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%d. %s</b>\n", n, html.EscapeString(item.DoctorInfo.Name)))
	if item.DoctorInfo.Speciality != "" {
		sb.WriteString(fmt.Sprintf("%s\n", html.EscapeString(item.DoctorInfo.Speciality)))
	}
	if addr := formatAddress(item.DoctorInfo.Address); addr != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", html.EscapeString(addr)))
	}
	sb.WriteString(fmt.Sprintf("📅 %s | %s\n", formatting.FormatSlotDate(item.SlotDate), html.EscapeString(item.SlotTime)))
	sb.WriteString(fmt.Sprintf("💰 %s", formatting.FormatPrice(currency, item.Price())))
	if item.Payment {
		sb.WriteString(" · 💳 Paid")
	}
	sb.WriteString("\n")
	sb.WriteString(formatting.GetAppointmentStatusDisplay(item.Status).String())
	sb.WriteString("\n")
	return sb.String()
}

func formatAddress(a model.Address) string {
	parts := make([]string, 0, 2)
	for _, line := range []string{a.Line1, a.Line2} {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ", ")
}

func availabilityBadge(available bool) string {
	if available {
		return "🟢 Available"
	}
	return "⚪ Not available"
}

func availabilityDot(available bool) string {
	if available {
		return "🟢"
	}
	return "⚪"
}
