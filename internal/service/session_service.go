package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"go.uber.org/zap"
)

// UserStore хранит пользователей бота и их токены (реализуется repository.UserRepository)
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	SaveSession(ctx context.Context, telegramID int64, email, token string, issuedAt time.Time) error
	ClearSession(ctx context.Context, telegramID int64) error
}

// Authenticator обменивает email и пароль на токен бэкенда
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// SessionService registers bot users and keeps their backend session token.
// Token issuance stays with the backend.
type SessionService struct {
	users  UserStore
	auth   Authenticator
	logger *zap.Logger
}

func NewSessionService(users UserStore, auth Authenticator, logger *zap.Logger) *SessionService {
	return &SessionService{
		users:  users,
		auth:   auth,
		logger: logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *SessionService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.User, error) {
	user := &model.User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		LanguageCode: languageCode,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	// перечитываем, чтобы не потерять сохранённую сессию
	stored, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if stored != nil {
		user = stored
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *SessionService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

// Login входит в бэкенд и сохраняет токен
func (s *SessionService) Login(ctx context.Context, telegramID int64, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return fmt.Errorf("login: %w", err)
	}

	if err := s.users.SaveSession(ctx, telegramID, email, token, time.Now()); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
	)

	return nil
}

// Logout забывает токен пользователя
func (s *SessionService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.users.ClearSession(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Token returns the stored session token, empty if the user is not logged in
func (s *SessionService) Token(ctx context.Context, telegramID int64) (string, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.Token, nil
}
