package common

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/slots"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 110
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	slotBorderRadius = 6.0
	shadowOffset     = 2.0
	slotsPerHour     = 2
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 18.0
	slotTimeFontSize   = 14.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{95, 111, 255, 60}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{228, 228, 228, 255}

	slotFreeColor        = color.RGBA{133, 193, 85, 220}
	slotBookedColor      = color.RGBA{255, 182, 193, 255}
	slotUnavailableColor = color.RGBA{205, 205, 205, 160}
	slotTextColor        = color.RGBA{20, 24, 28, 230}
	slotBookedTextColor  = color.RGBA{120, 40, 50, 255}
	slotShadowColor      = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{90, 95, 100, 220}
	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// CellState - состояние получасовой ячейки сетки
type CellState int

const (
	CellUnavailable CellState = iota
	CellFree
	CellBooked
)

// WeekCell - одна ячейка недели врача
type WeekCell struct {
	Start time.Time
	Label string
	State CellState
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsMu.Lock()
	cached, ok := cachedFonts[style]
	if !ok {
		data := goregular.TTF
		if style == FontStyleBold {
			data = gobold.TTF
		}
		parsed, err := opentype.Parse(data)
		if err == nil {
			cachedFonts[style] = parsed
			cached = parsed
		}
	}
	fontsMu.Unlock()

	if cached != nil {
		face, err := opentype.NewFace(cached, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	// fallback к встроенному шрифту
	dc.SetFontFace(basicfont.Face7x13)
}

// BuildWeekCells раскладывает рабочие часы на 7 дней с состоянием каждой ячейки.
// Свободные ячейки берутся из week, занятые - из индекса бронирований, остальное недоступно
func BuildWeekCells(week model.WeekSlots, booked model.BookedSlotIndex, gen *slots.Generator, now time.Time) [][]WeekCell {
	days := make([][]WeekCell, slots.DaysAhead)
	for i := range days {
		date := now.AddDate(0, 0, i)
		key := model.FormatSlotDate(date)
		cur := time.Date(date.Year(), date.Month(), date.Day(), slots.OpeningHour, 0, 0, 0, date.Location())
		closing := time.Date(date.Year(), date.Month(), date.Day(), slots.ClosingHour, 0, 0, 0, date.Location())

		for cur.Before(closing) {
			label := gen.FormatTime(cur)
			state := CellUnavailable
			if _, ok := week.Day(i).Find(label); ok {
				state = CellFree
			} else if booked.IsBooked(key, label) {
				state = CellBooked
			}
			days[i] = append(days[i], WeekCell{Start: cur, Label: label, State: state})
			cur = cur.Add(slots.Step)
		}
	}
	return days
}

// GenerateWeekImage рисует неделю врача: дни по колонкам, получасовые слоты по строкам
func GenerateWeekImage(doctorName string, cells [][]WeekCell, now time.Time) ([]byte, error) {
	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / slots.DaysAhead
	dayHeight := imageHeight - headerHeight
	totalHours := slots.ClosingHour - slots.OpeningHour
	cellHeight := float64(dayHeight) / float64(totalHours*slotsPerHour)

	drawHeader(dc, doctorName, now)
	drawHourLabels(dc, totalHours, cellHeight)

	for dayIndex := 0; dayIndex < slots.DaysAhead; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex)
		drawDayHeader(dc, now.AddDate(0, 0, dayIndex), x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, totalHours, cellHeight)

		if dayIndex < len(cells) {
			for row, cell := range cells[dayIndex] {
				drawCell(dc, cell, x, y+float64(row)*cellHeight, dayWidth, cellHeight)
			}
		}
	}

	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с именем врача и месяцем
func drawHeader(dc *gg.Context, doctorName string, now time.Time) {
	end := now.AddDate(0, 0, slots.DaysAhead-1)
	title := formatting.GetMonthName(now.Month())
	if end.Month() != now.Month() {
		title += " - " + formatting.GetMonthName(end.Month())
	}
	if doctorName != "" {
		title = doctorName + " · " + title
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, 20, float64(headerHeight)/5, 0, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, totalHours int, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleDefault)
	dc.SetColor(hourLabelColor)

	for h := 0; h <= totalHours; h++ {
		y := float64(headerHeight) + float64(h*slotsPerHour)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(slots.OpeningHour+h), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня, сегодняшний день подсвечен
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	switch {
	case dayIndex == 0:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует день недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(formatting.FormatDayButton(date), x+float64(dayWidth)/2, y-12, 0.5, 0)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth, totalHours int, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for h := 0; h <= totalHours; h++ {
		hy := y + float64(h*slotsPerHour)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawCell рисует одну получасовую ячейку
func drawCell(dc *gg.Context, cell WeekCell, x, y float64, dayWidth int, cellHeight float64) {
	fill := getCellColor(cell.State)
	w := float64(dayWidth) - float64(dayPaddingX*2)
	h := cellHeight - 4

	if cell.State != CellUnavailable {
		dc.SetColor(slotShadowColor)
		dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, y+2+shadowOffset, w, h, slotBorderRadius)
		dc.Fill()
	}

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, y+2, w, h, slotBorderRadius)
	dc.Fill()

	if cell.State == CellUnavailable {
		return
	}

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, y+2, w, h, slotBorderRadius)
	dc.Stroke()

	txtColor := slotTextColor
	if cell.State == CellBooked {
		txtColor = slotBookedTextColor
	}
	loadFont(dc, slotTimeFontSize, FontStyleDefault)
	dc.SetColor(txtColor)
	dc.DrawStringAnchored(cell.Label, x+dayPaddingX+8, y+2+h/2, 0, 0.35)
}

// getCellColor возвращает цвет ячейки по её состоянию
func getCellColor(state CellState) color.RGBA {
	switch state {
	case CellFree:
		return slotFreeColor
	case CellBooked:
		return slotBookedColor
	default:
		return slotUnavailableColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + slots.DaysAhead*dayWidth + 10)
	legendY := float64(imageHeight) - 120.0

	loadFont(dc, legendItemFontSize, FontStyleBold)
	dc.SetColor(legendTextColor)
	dc.DrawStringAnchored("Legend", legendX, legendY, 0, 0.5)

	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Free", slotFreeColor},
		{"Booked", slotBookedColor},
		{"Unavailable", slotUnavailableColor},
	}

	boxW := 20.0
	boxH := 14.0
	liY := legendY + 22

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, FontStyleDefault)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
