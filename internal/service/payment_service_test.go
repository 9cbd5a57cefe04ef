package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPayment(checkout CheckoutCreator, appointments []model.Appointment) *PaymentService {
	api := &fakeAPI{appointments: appointments}
	finder := NewAppointmentService(&fakeSessions{tokens: map[int64]string{telegramID: "tok"}}, api, &fakeRefresher{}, zap.NewNop())
	return NewPaymentService(checkout, finder, PaymentConfig{
		Currency:   "USD",
		SuccessURL: "https://clinic.example/paid",
		CancelURL:  "https://clinic.example/my-appointments",
	}, zap.NewNop())
}

var paymentNow = time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

func TestCreateCheckout(t *testing.T) {
	checkout := &fakeCheckout{}
	svc := newPayment(checkout, []model.Appointment{
		{ID: "a4", SlotDate: "7_3_2024", SlotTime: "04:00 PM", DoctorInfo: model.Doctor{Name: "Dr. Richard James", Fees: 49.99}},
	})

	url, err := svc.CreateCheckout(context.Background(), telegramID, "a4", paymentNow)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", url)

	p := checkout.params
	require.NotNil(t, p)
	assert.Equal(t, "payment", *p.Mode)
	assert.Equal(t, "a4", *p.ClientReferenceID)
	assert.Equal(t, "a4", p.Metadata["appointmentId"])
	require.Len(t, p.LineItems, 1)
	assert.Equal(t, int64(4999), *p.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "usd", *p.LineItems[0].PriceData.Currency)
	assert.Equal(t, "Appointment with Dr. Richard James", *p.LineItems[0].PriceData.ProductData.Name)
}

func TestCreateCheckoutRejectsNonScheduled(t *testing.T) {
	checkout := &fakeCheckout{}
	svc := newPayment(checkout, []model.Appointment{
		{ID: "cancelled", SlotDate: "7_3_2024", SlotTime: "04:00 PM", Amount: 50, Cancelled: true},
		{ID: "expired", SlotDate: "1_1_2020", SlotTime: "10:00 AM", Amount: 50},
		{ID: "paid", SlotDate: "7_3_2024", SlotTime: "04:00 PM", Amount: 50, Payment: true},
		{ID: "free", SlotDate: "7_3_2024", SlotTime: "04:00 PM"},
	})

	for _, id := range []string{"cancelled", "expired", "paid", "free"} {
		_, err := svc.CreateCheckout(context.Background(), telegramID, id, paymentNow)
		assert.ErrorIs(t, err, ErrNotPayable, id)
	}
	assert.Nil(t, checkout.params)
}

func TestCreateCheckoutUnavailable(t *testing.T) {
	svc := newPayment(nil, nil)
	assert.False(t, svc.Available())

	_, err := svc.CreateCheckout(context.Background(), telegramID, "a4", paymentNow)
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Nil(t, NewStripeCheckout(""))
}

func TestCreateCheckoutStripeError(t *testing.T) {
	checkout := &fakeCheckout{err: errors.New("stripe down")}
	svc := newPayment(checkout, []model.Appointment{
		{ID: "a4", SlotDate: "7_3_2024", SlotTime: "04:00 PM", Amount: 50},
	})

	_, err := svc.CreateCheckout(context.Background(), telegramID, "a4", paymentNow)
	assert.ErrorContains(t, err, "stripe down")
}
