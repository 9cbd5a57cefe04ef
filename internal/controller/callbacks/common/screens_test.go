package common

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/Freeeeeet/appointment_bot/internal/slots"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbackData(kb *models.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			data = append(data, b.CallbackData)
		}
	}
	return data
}

func hasButton(kb *models.InlineKeyboardMarkup, data string) bool {
	for _, d := range callbackData(kb) {
		if d == data {
			return true
		}
	}
	return false
}

func TestBuildMainMenu(t *testing.T) {
	_, kb := BuildMainMenu(&model.User{})
	assert.True(t, hasButton(kb, CallbackLogin))

	text, kb := BuildMainMenu(&model.User{Email: "pat@example.com", Token: "jwt"})
	assert.Contains(t, text, "pat@example.com")
	assert.False(t, hasButton(kb, CallbackLogin))
	assert.True(t, hasButton(kb, "appointments:0"))
}

func TestBuildDoctorListScreenPagination(t *testing.T) {
	doctors := make([]model.Doctor, 10)
	for i := range doctors {
		doctors[i] = model.Doctor{ID: string(rune('a' + i)), Name: "Dr", Speciality: "Dermatologist"}
	}

	_, kb := BuildDoctorListScreen(doctors, "Dermatologist", 2, 1)
	assert.True(t, hasButton(kb, "doctor:i"))
	assert.True(t, hasButton(kb, "doctor:j"))
	assert.False(t, hasButton(kb, "doctor:a"))
	assert.True(t, hasButton(kb, "doctors_page:2:0"))

	text, _ := BuildDoctorListScreen(nil, "Neurologist", 0, 0)
	assert.Contains(t, text, "No doctors found")
}

func TestBuildDoctorScreen(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	doctor := model.Doctor{
		ID:          "d1",
		Name:        "Dr. Richard James",
		Speciality:  "General physician",
		Degree:      "MBBS",
		Fees:        50,
		Available:   true,
		SlotsBooked: model.BookedSlotIndex{},
	}
	week := slots.NewGenerator().Generate(doctor.SlotsBooked, now)

	text, kb := BuildDoctorScreen(DoctorView{
		Doctor:         doctor,
		Week:           week,
		Today:          now,
		SelectedDay:    1,
		SelectedTime:   "04:00 PM",
		Related:        []model.Doctor{{ID: "d3", Name: "Dr. Sarah Patel"}},
		CurrencySymbol: "$",
	})

	assert.Contains(t, text, "$50")
	assert.Contains(t, text, "Wed, 6 Mar")
	assert.Contains(t, text, "selected <b>04:00 PM</b>")
	assert.True(t, hasButton(kb, "doc_day:d1:6"))
	assert.True(t, hasButton(kb, "doc_slot:d1:1:1600"))
	assert.True(t, hasButton(kb, "doc_book:d1"))
	assert.True(t, hasButton(kb, "doctor:d3"))

	var marked bool
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.Text == "✅ 04:00 PM" {
				marked = true
			}
		}
	}
	assert.True(t, marked)

	for _, data := range callbackData(kb) {
		assert.LessOrEqual(t, len(data), 64, data)
	}
}

func TestBuildDoctorScreenWithoutSlots(t *testing.T) {
	text, kb := BuildDoctorScreen(DoctorView{Doctor: model.Doctor{ID: "d4", Name: "Dr. Lee"}})

	assert.Contains(t, text, "Slots are not available yet")
	assert.False(t, hasButton(kb, "doc_book:d4"))
}

func TestBuildAppointmentsScreen(t *testing.T) {
	items := []service.AppointmentView{
		{Appointment: model.Appointment{ID: "a1", SlotDate: "7_3_2024", SlotTime: "04:00 PM", Amount: 50, DoctorInfo: model.Doctor{Name: "Dr. Richard James"}}, Status: model.AppointmentStatusScheduled},
		{Appointment: model.Appointment{ID: "a2", SlotDate: "1_3_2024", SlotTime: "10:00 AM", Cancelled: true}, Status: model.AppointmentStatusCancelled},
		{Appointment: model.Appointment{ID: "a3", SlotDate: "8_3_2024", SlotTime: "10:00 AM", Payment: true}, Status: model.AppointmentStatusScheduled},
	}

	text, kb := BuildAppointmentsScreen(AppointmentsView{Items: items, PaymentEnabled: true, CurrencySymbol: "$"})

	assert.Contains(t, text, "7 Mar 2024 | 04:00 PM")
	assert.Contains(t, text, "❌ Cancelled")
	assert.Equal(t, 2, strings.Count(text, "🟢 Scheduled"))
	assert.Contains(t, text, "💳 Paid")

	assert.True(t, hasButton(kb, "appt_pay:a1"))
	assert.True(t, hasButton(kb, "appt_cancel:a1"))
	assert.False(t, hasButton(kb, "appt_cancel:a2"))
	assert.False(t, hasButton(kb, "appt_pay:a3"))
	assert.True(t, hasButton(kb, "appt_cancel:a3"))

	_, kb = BuildAppointmentsScreen(AppointmentsView{Items: items})
	assert.False(t, hasButton(kb, "appt_pay:a1"))
}

func TestBuildAppointmentsScreenEmpty(t *testing.T) {
	text, _ := BuildAppointmentsScreen(AppointmentsView{})
	assert.Contains(t, text, "no appointments")
}

func TestBuildCancelConfirmScreen(t *testing.T) {
	item := service.AppointmentView{Appointment: model.Appointment{ID: "a1", SlotDate: "7_3_2024", SlotTime: "04:00 PM"}}

	text, kb := BuildCancelConfirmScreen(item, 2)
	require.Contains(t, text, "7 Mar 2024")
	assert.Equal(t, []string{"appt_cancel_yes:a1", "appointments:2"}, callbackData(kb))
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs("doc_slot:d1:3:1630", CallbackDoctorSlot, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "3", "1630"}, args)

	_, err = ParseArgs("doc_slot:d1:3", CallbackDoctorSlot, 3)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseArgs("doctor::", CallbackDoctor, 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseInt("x")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
