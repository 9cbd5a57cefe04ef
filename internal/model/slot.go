package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BookedSlotIndex maps a slot date key (D_M_YYYY) to the display times already booked on that day
type BookedSlotIndex map[string][]string

// IsBooked checks if the given display time is booked on the given day
func (idx BookedSlotIndex) IsBooked(dateKey, slotTime string) bool {
	times, ok := idx[dateKey]
	if !ok {
		return false
	}
	for _, t := range times {
		if t == slotTime {
			return true
		}
	}
	return false
}

// Slot is one offerable half-hour window
type Slot struct {
	Datetime time.Time `json:"datetime"`
	Time     string    `json:"time"`
}

// DaySlots is the ordered list of bookable slots of one calendar day, may be empty
type DaySlots []Slot

// Find возвращает слот с указанным отображаемым временем
func (d DaySlots) Find(slotTime string) (Slot, bool) {
	for _, s := range d {
		if s.Time == slotTime {
			return s, true
		}
	}
	return Slot{}, false
}

// WeekSlots holds seven DaySlots, index 0 is today
type WeekSlots []DaySlots

// Day возвращает слоты дня по индексу (nil если индекс вне диапазона)
func (w WeekSlots) Day(index int) DaySlots {
	if index < 0 || index >= len(w) {
		return nil
	}
	return w[index]
}

// FormatSlotDate строит ключ дня в формате D_M_YYYY без ведущих нулей
func FormatSlotDate(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

// ParseSlotDate разбирает ключ D_M_YYYY в полночь указанной зоны
func ParseSlotDate(key string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid slot date %q", key)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid slot date %q: %w", key, err)
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// time.Date нормализует 31_2 в март, такие ключи отбрасываем
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid slot date %q: out of range", key)
	}

	return t, nil
}

// ParseSlotTime разбирает отображаемое время слота ("10:00 AM", "4:30 pm", "16:30")
// и возвращает часы и минуты
func ParseSlotTime(s string) (hour, minute int, err error) {
	value := strings.ToUpper(strings.TrimSpace(s))

	for _, layout := range []string{"3:04 PM", "3:04PM", "15:04"} {
		t, parseErr := time.Parse(layout, value)
		if parseErr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}

	return 0, 0, fmt.Errorf("invalid slot time %q", s)
}

// SlotTimestamp собирает момент начала слота из ключа дня и времени
func SlotTimestamp(slotDate, slotTime string, loc *time.Location) (time.Time, error) {
	day, err := ParseSlotDate(slotDate, loc)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, err := ParseSlotTime(slotTime)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}
