package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatSlotDate(t *testing.T) {
	assert.Equal(t, "5 Mar 2024", FormatSlotDate("5_3_2024"))
	assert.Equal(t, "31 Dec 2024", FormatSlotDate("31_12_2024"))
	assert.Equal(t, "garbage", FormatSlotDate("garbage"))
}

func TestFormatDay(t *testing.T) {
	day := time.Date(2024, time.March, 5, 16, 30, 0, 0, time.UTC)

	assert.Equal(t, "Tue 5", FormatDayButton(day))
	assert.Equal(t, "Tue, 5 Mar", FormatDayLong(day))
	assert.Equal(t, "1630", SlotCallbackTime(day))
	assert.Equal(t, "0900", SlotCallbackTime(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "March", GetMonthName(time.March))
	assert.Equal(t, "", GetMonthName(0))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$50", FormatPrice("$", 50))
	assert.Equal(t, "$49.99", FormatPrice("$", 49.99))
	assert.Equal(t, "€0", FormatPrice("€", 0))
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "🟢 Scheduled", GetAppointmentStatusDisplay(model.AppointmentStatusScheduled).String())
	assert.Equal(t, "❌ Cancelled", GetAppointmentStatusDisplay(model.AppointmentStatusCancelled).String())
	assert.Equal(t, "Unknown", GetAppointmentStatusDisplay("bogus").Text)
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "appointment", Pluralize(1, "appointment", "appointments"))
	assert.Equal(t, "appointments", Pluralize(0, "appointment", "appointments"))
	assert.Equal(t, "appointments", Pluralize(3, "appointment", "appointments"))
}
