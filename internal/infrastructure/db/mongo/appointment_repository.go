package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const appointmentsCollection = "appointment_requests"

type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type appointmentDoc struct {
	ID            string `bson:"id"`
	Name          string `bson:"name"`
	Email         string `bson:"email,omitempty"`
	Phone         string `bson:"phone"`
	PreferredDate string `bson:"preferred_date,omitempty"`
	PreferredTime string `bson:"preferred_time,omitempty"`
	Notes         string `bson:"notes,omitempty"`
	Status        string `bson:"status"`
	CreatedAt     string `bson:"created_at"`
	UpdatedAt     string `bson:"update_at"`
}

func (r *AppointmentRepository) Insert(ctx context.Context, a *domain.AppointmentRequest) error {
	if _, err := r.coll.InsertOne(ctx, appointmentToDoc(a)); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.AppointmentRequest, error) {
	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return docToAppointment(&doc), nil
}

func (r *AppointmentRepository) List(ctx context.Context, status domain.AppointmentStatus) ([]*domain.AppointmentRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.AppointmentRequest
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		out = append(out, docToAppointment(&doc))
	}
	return out, cur.Err()
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.AppointmentRequest) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": a.ID}, appointmentToDoc(a))
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) (*domain.AppointmentRequest, error) {
	var doc appointmentDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete appointment: %w", err)
	}
	return docToAppointment(&doc), nil
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return int(n), nil
}

func appointmentToDoc(a *domain.AppointmentRequest) *appointmentDoc {
	return &appointmentDoc{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		PreferredDate: a.PreferredDate,
		PreferredTime: a.PreferredTime,
		Notes:         a.Notes,
		Status:        string(a.Status),
		CreatedAt:     isoOrEmpty(a.CreatedAt),
		UpdatedAt:     isoOrEmpty(a.UpdatedAt),
	}
}

func docToAppointment(d *appointmentDoc) *domain.AppointmentRequest {
	return &domain.AppointmentRequest{
		ID:            d.ID,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		PreferredDate: d.PreferredDate,
		PreferredTime: d.PreferredTime,
		Notes:         d.Notes,
		Status:        domain.AppointmentStatus(d.Status),
		CreatedAt:     parseISO(d.CreatedAt),
		UpdatedAt:     parseISO(d.UpdatedAt),
	}
}
