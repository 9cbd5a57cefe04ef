package keyboard

import "github.com/go-telegram/bot/models"

// BackButton создаёт кнопку "Назад"
func BackButton(text, callbackData string) models.InlineKeyboardButton {
	if text == "" {
		text = "Back"
	}
	return Button("⬅️ "+text, callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", "back_to_main")
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmText, confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("✅ "+confirmText, confirmCallback),
		Button("⬅️ Keep it", cancelCallback),
	}
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(text, callbackData string) *Builder {
	return b.Row(BackButton(text, callbackData))
}

// AddBackToMainButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}
