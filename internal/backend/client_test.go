package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", zap.NewNop())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClientValidatesURL(t *testing.T) {
	for _, bad := range []string{"", "   ", "ftp://clinic", "clinic.local"} {
		_, err := NewClient(bad, nil)
		assert.Error(t, err, bad)
	}

	c, err := NewClient("https://clinic.example/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://clinic.example", c.baseURL)
}

func TestBookAppointmentSendsPayloadAndHeaders(t *testing.T) {
	var got BookRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/book-appointment", r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get(TokenHeader))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Appointment Booked"})
	})

	msg, err := c.BookAppointment(context.Background(), "tok-1", BookRequest{
		DoctorID: "doc1",
		SlotDate: "5_3_2024",
		SlotTime: "04:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "Appointment Booked", msg)
	assert.Equal(t, BookRequest{DoctorID: "doc1", SlotDate: "5_3_2024", SlotTime: "04:00 PM"}, got)
}

func TestBookAppointmentSuccessFalse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Slot Not Available"})
	})

	_, err := c.BookAppointment(context.Background(), "tok", BookRequest{DoctorID: "doc1"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Slot Not Available", apiErr.Message)
	assert.Equal(t, "Slot Not Available", ErrorMessage(err))
}

func TestErrorStatusUsesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Not Authorized Login Again"})
	})

	_, err := c.ListAppointments(context.Background(), "expired")
	require.Error(t, err)
	assert.Equal(t, "Not Authorized Login Again", ErrorMessage(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestErrorStatusWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListDoctors(context.Background())
	require.Error(t, err)
	assert.Equal(t, "backend returned status 502", ErrorMessage(err))
}

func TestTransportErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(srv.URL, nil)
	require.NoError(t, err)
	srv.Close()

	_, err = c.ListDoctors(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, err.Error(), ErrorMessage(err))
	assert.Contains(t, ErrorMessage(err), "/api/doctor/list")
}

func TestListDoctorsDecodesBookedSlots(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get(TokenHeader))

		_, _ = w.Write([]byte(`{"success":true,"doctors":[{"_id":"d1","name":"Dr. Richard James","speciality":"General physician","fees":50,"available":true,"address":{"line1":"17th Cross","line2":"Richmond"},"slots_booked":{"5_3_2024":["10:00 AM"]}},{"_id":"d2","name":"Dr. Emily Larson","slots_booked":{}}]}`))
	})

	doctors, err := c.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	assert.Equal(t, "d1", doctors[0].ID)
	assert.Equal(t, 50.0, doctors[0].Fees)
	assert.Equal(t, "Richmond", doctors[0].Address.Line2)
	assert.True(t, doctors[0].SlotsBooked.IsBooked("5_3_2024", "10:00 AM"))
	assert.NotNil(t, doctors[1].SlotsBooked)
	assert.Empty(t, doctors[1].SlotsBooked)
}

func TestListAppointments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/appointments", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"appointments":[{"_id":"a1","docId":"d1","slotDate":"1_1_2020","slotTime":"10:00 AM","cancelled":true,"isCompleted":false,"amount":50,"docData":{"name":"Dr. Richard James"}}]}`))
	})

	items, err := c.ListAppointments(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ID)
	assert.True(t, items[0].Cancelled)
	assert.Equal(t, "Dr. Richard James", items[0].DoctorInfo.Name)
}

func TestCancelAppointment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a1", body["appointmentId"])
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Appointment Cancelled"})
	})

	msg, err := c.CancelAppointment(context.Background(), "tok", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Appointment Cancelled", msg)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "jwt-token"})
	})

	token, err := c.Login(context.Background(), "p@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	_, err = c.Login(context.Background(), "p@example.com", "wrong")
	assert.Equal(t, "Invalid credentials", ErrorMessage(err))
}

func TestErrorMessageNil(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
}
