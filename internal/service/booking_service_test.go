package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/backend"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const telegramID int64 = 42

func day(d int) model.DaySlots {
	base := time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC)
	return model.DaySlots{
		{Datetime: base, Time: "10:00 AM"},
		{Datetime: base.Add(30 * time.Minute), Time: "10:30 AM"},
	}
}

func newBooking(tokens map[int64]string) (*BookingService, *fakeAPI, *fakeRefresher) {
	api := &fakeAPI{}
	refresher := &fakeRefresher{}
	svc := NewBookingService(&fakeSessions{tokens: tokens}, api, refresher, zap.NewNop())
	return svc, api, refresher
}

func TestBookAppointmentRequiresLogin(t *testing.T) {
	svc, api, refresher := newBooking(nil)

	_, err := svc.BookAppointment(context.Background(), telegramID, BookingRequest{
		DoctorID: "doc1",
		Day:      day(5),
		SlotTime: "10:00 AM",
	})

	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, api.calls)
	assert.Zero(t, refresher.refreshed)
}

func TestBookAppointmentRequiresSlot(t *testing.T) {
	svc, api, _ := newBooking(map[int64]string{telegramID: "tok"})

	_, err := svc.BookAppointment(context.Background(), telegramID, BookingRequest{DoctorID: "doc1", Day: day(5)})
	assert.ErrorIs(t, err, ErrNoSlotSelected)

	_, err = svc.BookAppointment(context.Background(), telegramID, BookingRequest{DoctorID: "doc1", SlotTime: "10:00 AM"})
	assert.ErrorIs(t, err, ErrNoSlotSelected)

	assert.Zero(t, api.calls)
}

func TestBookAppointmentSendsDateOfFirstSlot(t *testing.T) {
	svc, api, refresher := newBooking(map[int64]string{telegramID: "tok"})

	msg, err := svc.BookAppointment(context.Background(), telegramID, BookingRequest{
		DoctorID: "doc1",
		Day:      day(5),
		SlotTime: "10:30 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, "Appointment Booked", msg)

	require.Len(t, api.booked, 1)
	assert.Equal(t, backend.BookRequest{DoctorID: "doc1", SlotDate: "5_3_2024", SlotTime: "10:30 AM"}, api.booked[0])
	assert.Equal(t, []string{"tok"}, api.bookTokens)
	assert.Equal(t, 1, refresher.refreshed)
}

func TestBookAppointmentBackendRejects(t *testing.T) {
	svc, api, refresher := newBooking(map[int64]string{telegramID: "tok"})
	api.bookErr = &backend.APIError{Message: "Slot Not Available"}

	_, err := svc.BookAppointment(context.Background(), telegramID, BookingRequest{
		DoctorID: "doc1",
		Day:      day(5),
		SlotTime: "10:00 AM",
	})
	require.Error(t, err)
	assert.Equal(t, "Slot Not Available", backend.ErrorMessage(err))
	assert.Equal(t, 1, api.calls)
	assert.Zero(t, refresher.refreshed)
}

func TestBookAppointmentRefreshFailureKeepsSuccess(t *testing.T) {
	svc, _, refresher := newBooking(map[int64]string{telegramID: "tok"})
	refresher.err = errors.New("backend down")

	_, err := svc.BookAppointment(context.Background(), telegramID, BookingRequest{
		DoctorID: "doc1",
		Day:      day(5),
		SlotTime: "10:00 AM",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, refresher.refreshed)
}

func TestBookAppointmentSessionError(t *testing.T) {
	api := &fakeAPI{}
	svc := NewBookingService(&fakeSessions{err: errors.New("db down")}, api, &fakeRefresher{}, zap.NewNop())

	_, err := svc.BookAppointment(context.Background(), telegramID, BookingRequest{Day: day(5), SlotTime: "10:00 AM"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, api.calls)
}
