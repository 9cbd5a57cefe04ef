package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// CheckoutCreator создаёт Stripe Checkout Session (реализуется session.Client из stripe-go)
type CheckoutCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// AppointmentFinder находит запись пользователя вместе с её статусом
type AppointmentFinder interface {
	Get(ctx context.Context, telegramID int64, appointmentID string, now time.Time) (*AppointmentView, error)
}

// PaymentConfig - параметры Checkout
type PaymentConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// NewStripeCheckout returns the Stripe checkout client for the key, nil when no key is configured
func NewStripeCheckout(secretKey string) CheckoutCreator {
	if secretKey == "" {
		return nil
	}
	return client.New(secretKey, nil).CheckoutSessions
}

type PaymentService struct {
	checkout     CheckoutCreator
	appointments AppointmentFinder
	cfg          PaymentConfig
	logger       *zap.Logger
}

func NewPaymentService(checkout CheckoutCreator, appointments AppointmentFinder, cfg PaymentConfig, logger *zap.Logger) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &PaymentService{
		checkout:     checkout,
		appointments: appointments,
		cfg:          cfg,
		logger:       logger,
	}
}

// Available reports whether online payment is configured
func (s *PaymentService) Available() bool {
	return s.checkout != nil
}

// CreateCheckout создаёт сессию оплаты записи и возвращает ссылку на неё.
// Оплатить можно только запланированную и ещё не оплаченную запись.
func (s *PaymentService) CreateCheckout(ctx context.Context, telegramID int64, appointmentID string, now time.Time) (string, error) {
	if !s.Available() {
		return "", ErrPaymentUnavailable
	}

	view, err := s.appointments.Get(ctx, telegramID, appointmentID, now)
	if err != nil {
		return "", err
	}

	if !view.Status.Allows(model.AppointmentActionPay) || view.Payment {
		return "", ErrNotPayable
	}

	amount := int64(math.Round(view.Price() * 100))
	if amount <= 0 {
		return "", ErrNotPayable
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(view.ID),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(s.cfg.Currency)),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName(view)),
						Description: stripe.String(view.SlotDate + " " + view.SlotTime),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("appointmentId", view.ID)
	params.AddMetadata("telegramId", strconv.FormatInt(telegramID, 10))

	session, err := s.checkout.New(params)
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.Int64("telegram_id", telegramID),
			zap.String("appointment_id", appointmentID),
			zap.Error(err),
		)
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("Checkout session created",
		zap.Int64("telegram_id", telegramID),
		zap.String("appointment_id", appointmentID),
		zap.String("session_id", session.ID),
	)

	return session.URL, nil
}

func productName(view *AppointmentView) string {
	if view.DoctorInfo.Name == "" {
		return "Appointment"
	}
	return "Appointment with " + view.DoctorInfo.Name
}
