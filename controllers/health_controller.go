package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AppointmentCounter reports how many bookings are stored.
type AppointmentCounter interface {
	Count(ctx context.Context) (int64, error)
}

type HealthController struct {
	ping          func(ctx context.Context) error
	appointments  AppointmentCounter
	vectorBackend string
	aiProvider    string
}

func NewHealthController(ping func(ctx context.Context) error, appointments AppointmentCounter, vectorBackend, aiProvider string) *HealthController {
	return &HealthController{
		ping:          ping,
		appointments:  appointments,
		vectorBackend: vectorBackend,
		aiProvider:    aiProvider,
	}
}

// Check reports database health and the stored appointment count
func (hc *HealthController) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status, dbStatus := http.StatusOK, "ok"
	if err := hc.ping(ctx); err != nil {
		status, dbStatus = http.StatusServiceUnavailable, err.Error()
	}

	body := gin.H{
		"status":         http.StatusText(status),
		"timestamp":      time.Now(),
		"database":       dbStatus,
		"vector_backend": hc.vectorBackend,
		"ai_provider":    hc.aiProvider,
	}
	if status == http.StatusOK && hc.appointments != nil {
		if n, err := hc.appointments.Count(ctx); err == nil {
			body["appointments"] = n
		} else {
			body["appointments_error"] = err.Error()
		}
	}
	c.JSON(status, body)
}
