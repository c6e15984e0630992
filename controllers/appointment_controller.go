package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

type AppointmentController struct {
	appointmentService *services.AppointmentService
	facts              *services.FactStore
}

func NewAppointmentController(appointmentService *services.AppointmentService, facts *services.FactStore) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
		facts:              facts,
	}
}

// ScheduleAppointment books an appointment and returns its confirmation
func (ac *AppointmentController) ScheduleAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid appointment request",
			"details": err.Error(),
		})
		return
	}

	confirmation, err := ac.appointmentService.Schedule(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid appointment date",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to schedule appointment",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

// GetOptions returns the values offered by the booking form
func (ac *AppointmentController) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.AppointmentOptions{
		Dentists:  ac.facts.DentistNames(),
		TimeSlots: models.AppointmentTimeSlots,
		Reasons:   models.AppointmentReasons,
	})
}
