package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/backend"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/stripe/stripe-go/v76"
)

type fakeSessions struct {
	tokens map[int64]string
	err    error
}

func (f *fakeSessions) Token(_ context.Context, telegramID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.tokens[telegramID], nil
}

type fakeAPI struct {
	mu sync.Mutex

	booked       []backend.BookRequest
	bookTokens   []string
	bookErr      error
	appointments []model.Appointment
	listErr      error
	cancelled    []string
	cancelErr    error
	calls        int
}

func (f *fakeAPI) BookAppointment(_ context.Context, token string, req backend.BookRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.bookErr != nil {
		return "", f.bookErr
	}
	f.booked = append(f.booked, req)
	f.bookTokens = append(f.bookTokens, token)
	return "Appointment Booked", nil
}

func (f *fakeAPI) ListAppointments(_ context.Context, _ string) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Appointment, len(f.appointments))
	copy(out, f.appointments)
	return out, nil
}

func (f *fakeAPI) CancelAppointment(_ context.Context, _ string, appointmentID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.cancelErr != nil {
		return "", f.cancelErr
	}
	f.cancelled = append(f.cancelled, appointmentID)
	return "Appointment Cancelled", nil
}

type fakeRefresher struct {
	refreshed int
	err       error
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.refreshed++
	return f.err
}

type fakeDoctorSource struct {
	doctors []model.Doctor
	err     error
	calls   int
}

func (f *fakeDoctorSource) ListDoctors(context.Context) ([]model.Doctor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doctors, nil
}

type fakeUserStore struct {
	users map[int64]*model.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if existing, ok := f.users[user.TelegramID]; ok {
		existing.Username = user.Username
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.LanguageCode = user.LanguageCode
		user.ID = existing.ID
		return nil
	}
	user.ID = int64(len(f.users) + 1)
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.TelegramID] = &stored
	return nil
}

func (f *fakeUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[telegramID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) SaveSession(_ context.Context, telegramID int64, email, token string, issuedAt time.Time) error {
	u, ok := f.users[telegramID]
	if !ok {
		return errors.New("user not found")
	}
	u.Email = email
	u.Token = token
	u.TokenIssuedAt = &issuedAt
	return nil
}

func (f *fakeUserStore) ClearSession(_ context.Context, telegramID int64) error {
	if u, ok := f.users[telegramID]; ok {
		u.Token = ""
		u.TokenIssuedAt = nil
	}
	return nil
}

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(context.Context, string, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakeCheckout struct {
	params *stripe.CheckoutSessionParams
	err    error
}

func (f *fakeCheckout) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil
}
