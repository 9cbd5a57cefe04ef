package common

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// WithUser создаёт HandlerContext и загружает пользователя
// При ошибке автоматически отвечает пользователю
func WithUser(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadUser(); err != nil {
		h.Logger.Error("Failed to load user",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// RateLimiter ограничивает число апдейтов от одного пользователя
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	perMin   int
	logger   *zap.Logger
}

// NewRateLimiter создаёт лимитер на perMinute апдейтов в минуту с таким же burst
func NewRateLimiter(perMinute int, logger *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{
		limiters: make(map[int64]*rate.Limiter),
		perMin:   perMinute,
		logger:   logger,
	}
}

func (rl *RateLimiter) limiter(telegramID int64) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[telegramID]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMin)), rl.perMin)
		rl.limiters[telegramID] = limiter
	}
	return limiter
}

// Allow проверяет, можно ли обработать апдейт пользователя
func (rl *RateLimiter) Allow(telegramID int64) bool {
	return rl.limiter(telegramID).Allow()
}

// Middleware возвращает bot.Middleware, который отбрасывает лишние апдейты
func (rl *RateLimiter) Middleware() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			telegramID := updateSenderID(update)
			if telegramID == 0 || rl.Allow(telegramID) {
				next(ctx, b, update)
				return
			}

			rl.logger.Warn("Rate limit exceeded", zap.Int64("telegram_id", telegramID))
			if update.CallbackQuery != nil {
				AnswerCallbackAlert(ctx, b, update.CallbackQuery.ID, "⏳ Too many requests. Try again in a minute.")
			}
		}
	}
}

func updateSenderID(update *models.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}
