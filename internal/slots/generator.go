// Package slots builds the bookable half-hour calendar of a doctor for the coming week.
package slots

import (
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
)

const (
	// DaysAhead is the number of calendar days offered, today included
	DaysAhead = 7
	// OpeningHour and ClosingHour bound the working day
	OpeningHour = 10
	ClosingHour = 21
	// Step is the length of one slot
	Step = 30 * time.Minute

	// DefaultTimeLayout renders times the way the web client stores them ("04:00 PM")
	DefaultTimeLayout = "03:04 PM"
)

// Generator строит календарь свободных слотов.
// Нулевое значение готово к работе и использует DefaultTimeLayout.
type Generator struct {
	timeLayout string
}

// Option настраивает Generator
type Option func(*Generator)

// WithTimeLayout задаёт layout отображаемого времени (например "3:04 PM" для часов без ведущего нуля).
// Должен совпадать с тем, что хранит бэкенд в slots_booked, иначе занятые слоты будут видны как свободные.
func WithTimeLayout(layout string) Option {
	return func(g *Generator) {
		if layout != "" {
			g.timeLayout = layout
		}
	}
}

// NewGenerator создаёт генератор слотов
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{timeLayout: DefaultTimeLayout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TimeLayout возвращает layout отображаемого времени
func (g *Generator) TimeLayout() string {
	if g == nil || g.timeLayout == "" {
		return DefaultTimeLayout
	}
	return g.timeLayout
}

// FormatTime рендерит время слота так же, как оно хранится в slots_booked
func (g *Generator) FormatTime(t time.Time) string {
	return t.Format(g.TimeLayout())
}

// Generate returns DaysAhead days of free slots starting from now's day.
// A nil index means bookings are not loaded yet and yields no days at all.
func (g *Generator) Generate(booked model.BookedSlotIndex, now time.Time) model.WeekSlots {
	if booked == nil {
		return nil
	}

	week := make(model.WeekSlots, 0, DaysAhead)
	for i := 0; i < DaysAhead; i++ {
		week = append(week, g.generateDay(booked, now, i))
	}
	return week
}

// generateDay строит слоты дня со смещением offset от now
func (g *Generator) generateDay(booked model.BookedSlotIndex, now time.Time, offset int) model.DaySlots {
	day := now.AddDate(0, 0, offset)
	end := time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, day.Location())

	current := OpeningBound(now, offset)

	slots := make(model.DaySlots, 0)
	for current.Before(end) {
		slotTime := g.FormatTime(current)
		slotDate := model.FormatSlotDate(current)

		if !booked.IsBooked(slotDate, slotTime) {
			slots = append(slots, model.Slot{Datetime: current, Time: slotTime})
		}

		current = current.Add(Step)
	}

	return slots
}

// OpeningBound returns the first candidate slot of the day at offset from now.
//
// Для сегодняшнего дня час сдвигается на следующий (если сейчас позже 10:00),
// а минуты берутся 30 если текущие минуты > 30, иначе 0. Это не округление вверх
// до ближайшего получаса: в 15:20 первый слот будет 16:00, в 15:45 уже 16:30.
// Поведение совпадает с веб-клиентом, не исправлять без согласования.
func OpeningBound(now time.Time, offset int) time.Time {
	day := now.AddDate(0, 0, offset)

	if offset > 0 {
		return time.Date(day.Year(), day.Month(), day.Day(), OpeningHour, 0, 0, 0, day.Location())
	}

	hour := OpeningHour
	if now.Hour() > OpeningHour {
		hour = now.Hour() + 1
	}

	minute := 0
	if now.Minute() > 30 {
		minute = 30
	}

	// hour может быть 24: time.Date перенесёт на следующие сутки и день окажется пустым
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
