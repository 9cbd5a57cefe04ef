package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/Freeeeeet/appointment_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound возвращается при обновлении несуществующего пользователя
var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, telegram_id, username, first_name, last_name, language_code, email, token, token_issued_at, created_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя, при повторном /start обновляет профиль
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, language_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    language_code = EXCLUDED.language_code
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	var user model.User
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.LanguageCode,
		&user.Email,
		&user.Token,
		&user.TokenIssuedAt,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// SaveSession сохраняет токен бэкенда после успешного входа
func (r *UserRepository) SaveSession(ctx context.Context, telegramID int64, email, token string, issuedAt time.Time) error {
	query := `
		UPDATE users
		SET email = $1, token = $2, token_issued_at = $3
		WHERE telegram_id = $4
	`

	affected, err := r.ExecAffected(ctx, query, email, token, issuedAt, telegramID)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ClearSession удаляет токен (выход или токен отвергнут бэкендом)
func (r *UserRepository) ClearSession(ctx context.Context, telegramID int64) error {
	query := `
		UPDATE users
		SET token = '', token_issued_at = NULL
		WHERE telegram_id = $1
	`

	if _, err := r.ExecAffected(ctx, query, telegramID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
