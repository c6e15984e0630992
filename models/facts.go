package models

import (
	"fmt"
	"strings"
)

// FAQ is a question/answer row from faqs.csv.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f FAQ) Text() string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", f.Question, f.Answer)
}

// Doctor is a row from doctors.csv. DaysAvailable is the raw comma-separated list.
type Doctor struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
	DaysAvailable  string `json:"days_available"`
	DoctorID       string `json:"doctor_id,omitempty"`
	Email          string `json:"email,omitempty"`
	Gender         string `json:"gender,omitempty"`
	ContactInfo    string `json:"contact_info,omitempty"`
	HospitalID     string `json:"hospital_id,omitempty"`
}

// DisplayName is the form used by the booking widget, e.g. "Dr. Jane Lee".
func (d Doctor) DisplayName() string {
	return fmt.Sprintf("Dr. %s %s", d.FirstName, d.LastName)
}

func (d Doctor) Text() string {
	return fmt.Sprintf("%s, Specialization: %s, Available: %s", d.DisplayName(), d.Specialization, d.DaysAvailable)
}

// Days splits DaysAvailable into trimmed day names.
func (d Doctor) Days() []string {
	if strings.TrimSpace(d.DaysAvailable) == "" {
		return nil
	}
	parts := strings.Split(d.DaysAvailable, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			days = append(days, p)
		}
	}
	return days
}

type Hospital struct {
	HospitalID       string `json:"hospital_id,omitempty"`
	Name             string `json:"hospital_name"`
	BranchLocation   string `json:"branch_location"`
	Address          string `json:"address"`
	OpenHours        string `json:"open_hours"`
	UrgentCare       string `json:"urgent_care"`
	Email            string `json:"email,omitempty"`
	ContactInfo      string `json:"contact_info,omitempty"`
	DoctorsAvailable string `json:"doctors_available,omitempty"`
}

func (h Hospital) Text() string {
	return fmt.Sprintf("Hospital: %s, Location: %s, Address: %s, Hours: %s, Urgent Care: %s",
		h.Name, h.BranchLocation, h.Address, h.OpenHours, h.UrgentCare)
}

// InsuranceStatusActive is the status value that marks a record as valid.
const InsuranceStatusActive = "Yes"

type Insurance struct {
	ProviderName string `json:"provider_name"`
	CoverageType string `json:"coverage_type"`
	Status       string `json:"insurance_status"`
	InsuranceID  string `json:"insurance_id,omitempty"`
	MemberID     string `json:"insurance_member_id,omitempty"`
	PolicyID     string `json:"policy_id,omitempty"`
	ValidFrom    string `json:"valid_from,omitempty"`
	ValidTo      string `json:"valid_to,omitempty"`
	PatientID    string `json:"patient_id,omitempty"`
}

func (i Insurance) Text() string {
	return fmt.Sprintf("Provider: %s, Type: %s, Status: %s", i.ProviderName, i.CoverageType, i.Status)
}

func (i Insurance) IsActive() bool {
	return i.Status == InsuranceStatusActive
}
