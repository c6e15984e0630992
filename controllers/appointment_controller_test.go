package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

func validAppointmentForm() models.AppointmentRequest {
	return models.AppointmentRequest{
		Name:    "Alex Kim",
		Email:   "alex@example.com",
		Phone:   "555-0101",
		Date:    "2025-04-15",
		Time:    "10:00 AM",
		Dentist: "Dr. Jane Lee",
		Reason:  "Cleaning",
	}
}

func newTestAppointmentController(t *testing.T, repo *stubAppointmentRepo, gen *stubGenerator) *AppointmentController {
	facts := testFacts()
	svc := services.NewAppointmentService(repo, gen, facts, logger.NewTestLogger(t))
	return NewAppointmentController(svc, facts)
}

func TestScheduleAppointment_Created(t *testing.T) {
	ac := newTestAppointmentController(t, &stubAppointmentRepo{}, &stubGenerator{err: errors.New("timeout")})

	w := performJSON(t, ac.ScheduleAppointment, http.MethodPost, "/", validAppointmentForm())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.AppointmentConfirmation
	decode(t, w, &resp)
	assert.False(t, resp.Generated)
	assert.Contains(t, resp.Confirmation, "Tuesday, April 15, 2025")
	assert.Equal(t, "2025-04-15", resp.Appointment.Date)
}

func TestScheduleAppointment_Errors(t *testing.T) {
	t.Run("persistence failure", func(t *testing.T) {
		ac := newTestAppointmentController(t, &stubAppointmentRepo{err: errors.New("no primary")}, &stubGenerator{text: "ok"})
		w := performJSON(t, ac.ScheduleAppointment, http.MethodPost, "/", validAppointmentForm())
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		ac := newTestAppointmentController(t, &stubAppointmentRepo{}, &stubGenerator{text: "ok"})
		form := validAppointmentForm()
		form.Date = "soon"
		w := performJSON(t, ac.ScheduleAppointment, http.MethodPost, "/", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		ac := newTestAppointmentController(t, &stubAppointmentRepo{}, &stubGenerator{text: "ok"})
		form := validAppointmentForm()
		form.Email = "not-an-email"
		w := performJSON(t, ac.ScheduleAppointment, http.MethodPost, "/", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetAppointmentOptions(t *testing.T) {
	ac := newTestAppointmentController(t, &stubAppointmentRepo{}, &stubGenerator{})

	w := performJSON(t, ac.GetOptions, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AppointmentOptions
	decode(t, w, &resp)
	assert.Equal(t, []string{"Dr. Jane Lee", "Dr. Omar Haddad"}, resp.Dentists)
	assert.Equal(t, models.AppointmentTimeSlots, resp.TimeSlots)
	assert.Equal(t, models.AppointmentReasons, resp.Reasons)
}
