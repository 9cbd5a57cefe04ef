package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// Dependencies - сервисы и настройки для callback handlers
type Dependencies struct {
	SessionService     *service.SessionService
	DoctorService      *service.DoctorService
	BookingService     *service.BookingService
	AppointmentService *service.AppointmentService
	PaymentService     *service.PaymentService
	StateManager       callbacktypes.StateManager
	Logger             *zap.Logger
	Location           *time.Location
	CurrencySymbol     string
	HandleLogin        func(ctx context.Context, b *bot.Bot, chatID int64, from *models.User)
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(deps Dependencies) *Handler {
	inner := &callbacktypes.Handler{
		SessionService:     deps.SessionService,
		DoctorService:      deps.DoctorService,
		BookingService:     deps.BookingService,
		AppointmentService: deps.AppointmentService,
		PaymentService:     deps.PaymentService,
		StateManager:       deps.StateManager,
		Logger:             deps.Logger,
		Location:           deps.Location,
		CurrencySymbol:     deps.CurrencySymbol,
		HandleLogin:        deps.HandleLogin,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
