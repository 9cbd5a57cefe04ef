package model

import "time"

type User struct {
	ID            int64      `json:"id"`
	TelegramID    int64      `json:"telegram_id"`
	Username      string     `json:"username"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	LanguageCode  string     `json:"language_code"`
	Email         string     `json:"email"`           // email, под которым вошли в бэкенд
	Token         string     `json:"-"`               // токен сессии бэкенда, пусто если не залогинен
	TokenIssuedAt *time.Time `json:"token_issued_at"` // когда получен токен
	CreatedAt     time.Time  `json:"created_at"`
}

// IsLoggedIn checks if the user has a backend session
func (u *User) IsLoggedIn() bool {
	return u != nil && u.Token != ""
}
