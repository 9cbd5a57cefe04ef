package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	buttons := make([]models.InlineKeyboardButton, 0, 7)
	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		buttons = append(buttons, Button(text, text))
	}

	kb := NewBuilder().Grid(buttons, 3).Build()
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[2], 1)
	assert.Equal(t, "g", kb.InlineKeyboard[2][0].CallbackData)
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("appointments:", 0, 1))

	first := PaginationButtons("appointments:", 0, 3)
	require.Len(t, first, 2)
	assert.Equal(t, "noop", first[0].CallbackData)
	assert.Equal(t, "appointments:1", first[1].CallbackData)

	middle := PaginationButtons("appointments:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "appointments:0", middle[0].CallbackData)
	assert.Equal(t, "📄 2/3", middle[1].Text)
}

func TestPageBounds(t *testing.T) {
	start, end, page, pages := PageBounds(12, 5, 2)
	assert.Equal(t, []int{10, 12, 2, 3}, []int{start, end, page, pages})

	start, end, page, pages = PageBounds(12, 5, 9)
	assert.Equal(t, []int{10, 12, 2, 3}, []int{start, end, page, pages})

	start, end, page, pages = PageBounds(0, 5, 0)
	assert.Equal(t, []int{0, 0, 0, 1}, []int{start, end, page, pages})
}
