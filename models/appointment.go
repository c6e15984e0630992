package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment is written once when a booking is accepted and never updated.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string             `bson:"time" json:"time"`
	Dentist   string             `bson:"dentist" json:"dentist"`
	Reason    string             `bson:"reason" json:"reason"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// AppointmentRequest is the booking form as submitted by the widget.
type AppointmentRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Date    string `json:"date"`
	Time    string `json:"time" binding:"required"`
	Dentist string `json:"dentist" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

type AppointmentConfirmation struct {
	Appointment  *Appointment `json:"appointment"`
	Confirmation string       `json:"confirmation"`
	Generated    bool         `json:"generated"`
}

// AppointmentOptions feeds the booking form selects.
type AppointmentOptions struct {
	Dentists  []string `json:"dentists"`
	TimeSlots []string `json:"time_slots"`
	Reasons   []string `json:"reasons"`
}

var AppointmentTimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
}

var AppointmentReasons = []string{
	"Regular Checkup",
	"Cleaning",
	"Tooth Pain",
	"Filling",
	"Root Canal",
	"Crown",
	"Extraction",
	"Consultation",
	"Other",
}
