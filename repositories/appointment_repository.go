package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"dental-chatbot-backend/models"
)

// AppointmentRepository appends bookings to a Mongo collection.
type AppointmentRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewAppointmentRepository(db *mongo.Database, collection string) *AppointmentRepository {
	return &AppointmentRepository{
		collection: db.Collection(collection),
		now:        time.Now,
	}
}

// Insert assigns ID and CreatedAt and writes the appointment.
func (r *AppointmentRepository) Insert(ctx context.Context, appt *models.Appointment) error {
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = r.now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}
