package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/appointment_bot/internal/app"
	"github.com/Freeeeeet/appointment_bot/internal/backend"
	"github.com/Freeeeeet/appointment_bot/internal/config"
	"github.com/Freeeeeet/appointment_bot/internal/controller"
	"github.com/Freeeeeet/appointment_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/appointment_bot/internal/repository"
	"github.com/Freeeeeet/appointment_bot/internal/service"
	"github.com/Freeeeeet/appointment_bot/internal/slots"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting appointment bot",
		"environment", cfg.Environment,
		"backend_url", cfg.BackendURL,
		"timezone", cfg.Location.String(),
		"payments_enabled", cfg.PaymentsEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// База данных и миграции
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		return err
	}
	defer migrator.Close()

	// Бэкенд клиники
	api, err := backend.NewClient(cfg.BackendURL, logger.Named("backend"))
	if err != nil {
		return err
	}

	// Сервисы
	generator := slots.NewGenerator(slots.WithTimeLayout(cfg.SlotTimeLayout))
	doctors := service.NewDoctorService(api, generator, logger.Named("doctors"))
	sessions := service.NewSessionService(repository.NewUserRepository(pool), api, logger.Named("sessions"))
	booking := service.NewBookingService(sessions, api, doctors, logger.Named("booking"))
	appointments := service.NewAppointmentService(sessions, api, doctors, logger.Named("appointments"))
	payments := service.NewPaymentService(
		service.NewStripeCheckout(cfg.StripeSecretKey),
		appointments,
		service.PaymentConfig{
			Currency:   cfg.Currency,
			SuccessURL: cfg.PaymentSuccessURL,
			CancelURL:  cfg.PaymentCancelURL,
		},
		logger.Named("payments"),
	)

	// Telegram бот
	limiter := common.NewRateLimiter(cfg.RateLimitPerMinute, logger)
	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(limiter.Middleware()),
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram error", zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, controller.Services{
		Sessions:     sessions,
		Doctors:      doctors,
		Booking:      booking,
		Appointments: appointments,
		Payments:     payments,
	}, cfg.Location, cfg.CurrencySymbol, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично
		logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	// Фоновое обновление врачей
	scheduler := app.NewScheduler(doctors, cfg.DoctorsRefreshInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	return botController.Start(ctx)
}
