package handlers

// Константы валидации диалога входа
const (
	EmailMaxLength    = 254
	PasswordMinLength = 1
	PasswordMaxLength = 128
)
