package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dental-chatbot-backend/services"
)

type ClinicController struct {
	facts *services.FactStore
}

func NewClinicController(facts *services.FactStore) *ClinicController {
	return &ClinicController{facts: facts}
}

// ListDentists returns dentist display names, optionally filtered by specialty
func (cc *ClinicController) ListDentists(c *gin.Context) {
	var dentists []string
	if specialty := strings.TrimSpace(c.Query("specialty")); specialty != "" {
		dentists = cc.facts.DoctorsBySpecialty(specialty)
	} else {
		dentists = cc.facts.DentistNames()
	}
	if dentists == nil {
		dentists = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"dentists": dentists,
		"count":    len(dentists),
	})
}

// GetAvailability returns the working days of one dentist
func (cc *ClinicController) GetAvailability(c *gin.Context) {
	dentist := strings.TrimSpace(c.Query("dentist"))
	if dentist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dentist is required"})
		return
	}

	days := cc.facts.AvailableDays(dentist)
	if days == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dentist not found", "dentist": dentist})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dentist": dentist, "days": days})
}

// CheckInsurance reports whether a provider is currently accepted
func (cc *ClinicController) CheckInsurance(c *gin.Context) {
	provider := strings.TrimSpace(c.Query("provider"))
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"valid":    cc.facts.IsInsuranceValid(provider),
	})
}
