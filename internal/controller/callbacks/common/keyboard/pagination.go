package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "appointments:")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		"noop",
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// PageBounds возвращает границы страницы page для total элементов по perPage,
// номер страницы приводится к допустимому диапазону
func PageBounds(total, perPage, page int) (start, end, current, pages int) {
	if perPage <= 0 {
		perPage = 1
	}
	pages = (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}
	start = page * perPage
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end, page, pages
}
