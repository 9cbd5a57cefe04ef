package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
)

var monthShortNames = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatSlotDate переводит ключ D_M_YYYY в "5 Mar 2024".
// Нераспознанный ключ возвращается как есть.
func FormatSlotDate(slotDate string) string {
	t, err := model.ParseSlotDate(slotDate, time.UTC)
	if err != nil {
		return slotDate
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthShortNames[t.Month()], t.Year())
}

// FormatDayButton форматирует день для кнопки выбора: "Tue 5"
func FormatDayButton(t time.Time) string {
	return fmt.Sprintf("%s %d", GetWeekdayShort(t.Weekday()), t.Day())
}

// FormatDayLong форматирует день для текста: "Tue, 5 Mar"
func FormatDayLong(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", GetWeekdayShort(t.Weekday()), t.Day(), monthShortNames[t.Month()])
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца
func GetMonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return month.String()
}

// SlotCallbackTime кодирует время слота для callback data: 16:30 -> "1630"
func SlotCallbackTime(t time.Time) string {
	return fmt.Sprintf("%02d%02d", t.Hour(), t.Minute())
}
