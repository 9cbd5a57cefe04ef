package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/appointment_bot/internal/controller/handlers"
	"github.com/Freeeeeet/appointment_bot/internal/controller/state"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services - сервисы, с которыми работает бот
type Services struct {
	Sessions     *service.SessionService
	Doctors      *service.DoctorService
	Booking      *service.BookingService
	Appointments *service.AppointmentService
	Payments     *service.PaymentService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	location *time.Location,
	currencySymbol string,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(callbacks.Dependencies{
		SessionService:     services.Sessions,
		DoctorService:      services.Doctors,
		BookingService:     services.Booking,
		AppointmentService: services.Appointments,
		PaymentService:     services.Payments,
		StateManager:       state.NewAdapter(stateManager),
		Logger:             logger,
		Location:           location,
		CurrencySymbol:     currencySymbol,
	})

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		services.Sessions,
		services.Doctors,
		stateManager,
		callbackHandler.Handler,
		logger,
	)

	// Кнопка "Login" запускает тот же диалог, что и /login
	callbackHandler.HandleLogin = cmdHandlers.StartLogin

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/doctors", bot.MatchTypeExact, c.handlers.HandleDoctors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myappointments", bot.MatchTypeExact, c.handlers.HandleMyAppointments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start the bot"},
		{Command: "doctors", Description: "👨‍⚕️ Browse doctors"},
		{Command: "myappointments", Description: "📋 My appointments"},
		{Command: "login", Description: "🔑 Login"},
		{Command: "logout", Description: "🚪 Logout"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
