package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Freeeeeet/appointment_bot/internal/model"
)

// BookRequest is the body of /api/user/book-appointment
type BookRequest struct {
	DoctorID string `json:"docId"`
	SlotDate string `json:"slotDate"`
	SlotTime string `json:"slotTime"`
}

type doctorsResponse struct {
	envelope
	Doctors []model.Doctor `json:"doctors"`
}

type loginResponse struct {
	envelope
	Token string `json:"token"`
}

type appointmentsResponse struct {
	envelope
	Appointments []model.Appointment `json:"appointments"`
}

// ListDoctors загружает всех врачей вместе с их занятыми слотами
func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	var resp doctorsResponse
	if err := c.do(ctx, http.MethodGet, "/api/doctor/list", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

// Login exchanges patient credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/login", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("backend returned empty token")
	}
	return resp.Token, nil
}

// BookAppointment отправляет запрос на запись и возвращает сообщение бэкенда
func (c *Client) BookAppointment(ctx context.Context, token string, req BookRequest) (string, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/user/book-appointment", token, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListAppointments returns the patient's appointments in backend order (oldest first)
func (c *Client) ListAppointments(ctx context.Context, token string) ([]model.Appointment, error) {
	var resp appointmentsResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/appointments", token, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

// CancelAppointment отменяет запись и возвращает сообщение бэкенда
func (c *Client) CancelAppointment(ctx context.Context, token, appointmentID string) (string, error) {
	body := map[string]string{"appointmentId": appointmentID}

	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/user/cancel-appointment", token, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
