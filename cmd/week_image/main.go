package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/slots"
)

// Рисует неделю врача на тестовых бронированиях и сохраняет PNG
func main() {
	output := flag.String("o", "week.png", "output file")
	layout := flag.String("layout", slots.DefaultTimeLayout, "slot time layout")
	flag.Parse()

	now := time.Now()
	gen := slots.NewGenerator(slots.WithTimeLayout(*layout))

	// Тестовые бронирования на ближайшие дни
	booked := model.BookedSlotIndex{}
	for i := 0; i < slots.DaysAhead; i += 2 {
		day := now.AddDate(0, 0, i)
		key := model.FormatSlotDate(day)
		for _, hour := range []int{11, 14, 18} {
			booked[key] = append(booked[key], gen.FormatTime(time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())))
		}
	}

	week := gen.Generate(booked, now)
	imageData, err := common.GenerateWeekImage("Dr. Richard James", common.BuildWeekCells(week, booked, gen, now), now)
	if err != nil {
		fmt.Printf("Failed to render image: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, imageData, 0644); err != nil {
		fmt.Printf("Failed to save file: %v\n", err)
		os.Exit(1)
	}

	free := 0
	for _, day := range week {
		free += len(day)
	}

	fmt.Printf("✅ Image saved to %s\n", *output)
	fmt.Printf("📅 Period: %s - %s\n", now.Format("02.01.2006"), now.AddDate(0, 0, slots.DaysAhead-1).Format("02.01.2006"))
	fmt.Printf("📊 Free slots: %d\n", free)
}
