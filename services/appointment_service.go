package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/metrics"
	"dental-chatbot-backend/models"
)

const (
	dateLayout        = "2006-01-02"
	displayDateLayout = "Monday, January 2, 2006"

	DefaultConfirmationMaxTokens = 350

	confirmationSystemPrompt = "You are SmileSmartAssistant, a friendly dental clinic assistant. Write a short, warm confirmation message for a newly booked dental appointment. Mention the dentist, date, time and reason, and tell the patient that a confirmation email has been sent to their email address. Offer help with rescheduling. Do not invent details that are not provided."
)

// Specialties used to pick related doctors for the confirmation prompt.
// Only these two mappings exist; every reason other than a checkup maps to orthodontics.
const (
	checkupReason          = "Regular Checkup"
	checkupSpecialty       = "Endodontics"
	defaultReasonSpecialty = "Orthodontics"
)

// AppointmentRepository persists bookings.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
}

// Notifier delivers the confirmation text to the patient.
type Notifier interface {
	SendConfirmation(ctx context.Context, appt *models.Appointment, message string) error
}

type AppointmentService struct {
	repo        AppointmentRepository
	generator   Generator
	facts       *FactStore
	notifier    Notifier
	temperature float64
	maxTokens   int
	location    *time.Location
	now         func() time.Time
	timeout     time.Duration
	log         logger.Logger
}

type AppointmentServiceOption func(*AppointmentService)

func WithNotifier(n Notifier) AppointmentServiceOption {
	return func(s *AppointmentService) { s.notifier = n }
}

func WithLocation(loc *time.Location) AppointmentServiceOption {
	return func(s *AppointmentService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithClock(now func() time.Time) AppointmentServiceOption {
	return func(s *AppointmentService) { s.now = now }
}

// WithScheduleTimeout bounds a whole booking: persistence, confirmation and
// notification.
func WithScheduleTimeout(d time.Duration) AppointmentServiceOption {
	return func(s *AppointmentService) { s.timeout = d }
}

func WithConfirmationTokens(maxTokens int) AppointmentServiceOption {
	return func(s *AppointmentService) {
		if maxTokens > 0 {
			s.maxTokens = maxTokens
		}
	}
}

func NewAppointmentService(repo AppointmentRepository, generator Generator, facts *FactStore, log logger.Logger, opts ...AppointmentServiceOption) *AppointmentService {
	s := &AppointmentService{
		repo:        repo,
		generator:   generator,
		facts:       facts,
		temperature: DefaultTemperature,
		maxTokens:   DefaultConfirmationMaxTokens,
		location:    time.Local,
		now:         time.Now,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule saves the booking and returns a confirmation. Only a persistence
// failure is reported as an error; a failed confirmation uses a template.
func (s *AppointmentService) Schedule(ctx context.Context, form models.AppointmentRequest) (*models.AppointmentConfirmation, error) {
	date, err := s.NormalizeDate(form.Date)
	if err != nil {
		metrics.Appointments.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	appt := &models.Appointment{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Date:    date,
		Time:    strings.TrimSpace(form.Time),
		Dentist: strings.TrimSpace(form.Dentist),
		Reason:  strings.TrimSpace(form.Reason),
	}

	if err := s.repo.Insert(ctx, appt); err != nil {
		metrics.Appointments.WithLabelValues("persist_failed").Inc()
		s.log.Error("failed to save appointment", map[string]interface{}{
			"dentist": appt.Dentist,
			"date":    appt.Date,
			"error":   err,
		})
		return nil, fmt.Errorf("%w: %v", ErrPersistAppointment, err)
	}
	metrics.Appointments.WithLabelValues("booked").Inc()

	confirmation := &models.AppointmentConfirmation{Appointment: appt}

	start := time.Now()
	text, err := s.generator.Complete(ctx, CompletionRequest{
		SystemPrompt: confirmationSystemPrompt,
		UserMessage:  s.confirmationPrompt(appt),
		Temperature:  s.temperature,
		MaxTokens:    s.maxTokens,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		metrics.GenerationDuration.WithLabelValues("confirmation", "error").Observe(time.Since(start).Seconds())
		s.log.Warn("confirmation generation failed, using template", map[string]interface{}{
			"error": err,
		})
		confirmation.Confirmation = FallbackConfirmation(appt)
	} else {
		metrics.GenerationDuration.WithLabelValues("confirmation", "ok").Observe(time.Since(start).Seconds())
		confirmation.Confirmation = strings.TrimSpace(text)
		confirmation.Generated = true
	}

	if s.notifier != nil {
		if err := s.notifier.SendConfirmation(ctx, appt, confirmation.Confirmation); err != nil {
			s.log.Warn("failed to send confirmation email", map[string]interface{}{
				"email": appt.Email,
				"error": err,
			})
		}
	}

	return confirmation, nil
}

// NormalizeDate converts the submitted date into YYYY-MM-DD. Empty input means today.
func (s *AppointmentService) NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now().In(s.location).Format(dateLayout), nil
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.Format(dateLayout), nil
	}
	// offsets are kept as sent so the calendar date matches what the patient picked
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "01/02/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// SpecialtyForReason picks the specialty whose doctors are listed in the
// confirmation prompt.
func SpecialtyForReason(reason string) string {
	if reason == checkupReason {
		return checkupSpecialty
	}
	return defaultReasonSpecialty
}

func (s *AppointmentService) confirmationPrompt(appt *models.Appointment) string {
	var b strings.Builder
	b.WriteString("Generate a confirmation message for this dental appointment:\n")
	fmt.Fprintf(&b, "Patient Name: %s\n", appt.Name)
	fmt.Fprintf(&b, "Email: %s\n", appt.Email)
	fmt.Fprintf(&b, "Phone: %s\n", appt.Phone)
	fmt.Fprintf(&b, "Date: %s\n", formatDisplayDate(appt.Date))
	fmt.Fprintf(&b, "Time: %s\n", appt.Time)
	fmt.Fprintf(&b, "Dentist: %s\n", appt.Dentist)
	fmt.Fprintf(&b, "Reason: %s\n", appt.Reason)

	if s.facts != nil {
		specialty := SpecialtyForReason(appt.Reason)
		if doctors := s.facts.DoctorsBySpecialty(specialty); len(doctors) > 0 {
			fmt.Fprintf(&b, "Other %s specialists: %s\n", specialty, strings.Join(doctors, ", "))
		}
		if days := s.facts.AvailableDays(appt.Dentist); len(days) > 0 {
			fmt.Fprintf(&b, "%s is available on: %s\n", appt.Dentist, strings.Join(days, ", "))
		}
	}
	return b.String()
}

// FallbackConfirmation is the templated confirmation used when generation fails.
func FallbackConfirmation(appt *models.Appointment) string {
	return fmt.Sprintf(
		"Great! Your appointment with %s has been scheduled for %s at %s for %s. A confirmation email has been sent to %s. If you need to reschedule or have any questions, just let me know!",
		appt.Dentist, formatDisplayDate(appt.Date), appt.Time, appt.Reason, appt.Email,
	)
}

func formatDisplayDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayDateLayout)
}
