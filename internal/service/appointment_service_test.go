package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_bot/internal/backend"
	"github.com/Freeeeeet/appointment_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "a1", SlotDate: "1_1_2020", SlotTime: "10:00 AM"},
		{ID: "a2", SlotDate: "6_3_2024", SlotTime: "11:00 AM", Cancelled: true},
		{ID: "a3", SlotDate: "2_3_2024", SlotTime: "10:00 AM", IsCompleted: true},
		{ID: "a4", SlotDate: "7_3_2024", SlotTime: "04:00 PM", Amount: 50},
	}
}

func TestAppointmentListNewestFirstWithStatus(t *testing.T) {
	api := &fakeAPI{appointments: sampleAppointments()}
	svc := NewAppointmentService(&fakeSessions{tokens: map[int64]string{telegramID: "tok"}}, api, &fakeRefresher{}, zap.NewNop())

	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	views, err := svc.List(context.Background(), telegramID, now)
	require.NoError(t, err)
	require.Len(t, views, 4)

	ids := make([]string, 0, len(views))
	statuses := make([]model.AppointmentStatus, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
		statuses = append(statuses, v.Status)
	}

	assert.Equal(t, []string{"a4", "a3", "a2", "a1"}, ids)
	assert.Equal(t, []model.AppointmentStatus{
		model.AppointmentStatusScheduled,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusExpired,
	}, statuses)
}

func TestAppointmentListRequiresLogin(t *testing.T) {
	api := &fakeAPI{}
	svc := NewAppointmentService(&fakeSessions{}, api, &fakeRefresher{}, zap.NewNop())

	_, err := svc.List(context.Background(), telegramID, time.Now())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, api.calls)
}

func TestAppointmentGet(t *testing.T) {
	api := &fakeAPI{appointments: sampleAppointments()}
	svc := NewAppointmentService(&fakeSessions{tokens: map[int64]string{telegramID: "tok"}}, api, &fakeRefresher{}, zap.NewNop())
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	view, err := svc.Get(context.Background(), telegramID, "a4", now)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, view.Status)

	_, err = svc.Get(context.Background(), telegramID, "missing", now)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentCancel(t *testing.T) {
	api := &fakeAPI{}
	refresher := &fakeRefresher{}
	svc := NewAppointmentService(&fakeSessions{tokens: map[int64]string{telegramID: "tok"}}, api, refresher, zap.NewNop())

	msg, err := svc.Cancel(context.Background(), telegramID, "a4")
	require.NoError(t, err)
	assert.Equal(t, "Appointment Cancelled", msg)
	assert.Equal(t, []string{"a4"}, api.cancelled)
	assert.Equal(t, 1, refresher.refreshed)
}

func TestAppointmentCancelRejected(t *testing.T) {
	api := &fakeAPI{cancelErr: &backend.APIError{Message: "Unauthorized action"}}
	refresher := &fakeRefresher{}
	svc := NewAppointmentService(&fakeSessions{tokens: map[int64]string{telegramID: "tok"}}, api, refresher, zap.NewNop())

	_, err := svc.Cancel(context.Background(), telegramID, "a4")
	require.Error(t, err)
	assert.Equal(t, "Unauthorized action", backend.ErrorMessage(err))
	assert.Zero(t, refresher.refreshed)
}
