package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const testimonialsCollection = "testimonials"

type TestimonialRepository struct {
	coll *mongo.Collection
}

func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{coll: db.Collection(testimonialsCollection)}
}

type testimonialDoc struct {
	ID                string `bson:"id"`
	PatientName       string `bson:"patient_name"`
	Age               int    `bson:"age,omitempty"`
	Category          string `bson:"category"`
	Quote             string `bson:"quote"`
	OutcomeLabel      string `bson:"outcome_label,omitempty"`
	TreatmentDuration string `bson:"treatment_duration,omitempty"`
	Published         bool   `bson:"published"`
	CreatedAt         string `bson:"created_at"`
	UpdatedAt         string `bson:"update_at"`
}

func (r *TestimonialRepository) Insert(ctx context.Context, t *domain.Testimonial) error {
	if _, err := r.coll.InsertOne(ctx, testimonialToDoc(t)); err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*domain.Testimonial, error) {
	var doc testimonialDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find testimonial: %w", err)
	}
	return docToTestimonial(&doc), nil
}

func (r *TestimonialRepository) List(ctx context.Context, publishedOnly bool) ([]*domain.Testimonial, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	sort := bson.D{{Key: "created_at", Value: -1}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Testimonial
	for cur.Next(ctx) {
		var doc testimonialDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode testimonial: %w", err)
		}
		out = append(out, docToTestimonial(&doc))
	}
	return out, cur.Err()
}

func (r *TestimonialRepository) Update(ctx context.Context, t *domain.Testimonial) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": t.ID}, testimonialToDoc(t))
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) (*domain.Testimonial, error) {
	var doc testimonialDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete testimonial: %w", err)
	}
	return docToTestimonial(&doc), nil
}

func testimonialToDoc(t *domain.Testimonial) *testimonialDoc {
	return &testimonialDoc{
		ID:                t.ID,
		PatientName:       t.PatientName,
		Age:               t.Age,
		Category:          t.Category,
		Quote:             t.Quote,
		OutcomeLabel:      t.OutcomeLabel,
		TreatmentDuration: t.TreatmentDuration,
		Published:         t.Published,
		CreatedAt:         isoOrEmpty(t.CreatedAt),
		UpdatedAt:         isoOrEmpty(t.UpdatedAt),
	}
}

func docToTestimonial(d *testimonialDoc) *domain.Testimonial {
	return &domain.Testimonial{
		ID:                d.ID,
		PatientName:       d.PatientName,
		Age:               d.Age,
		Category:          d.Category,
		Quote:             d.Quote,
		OutcomeLabel:      d.OutcomeLabel,
		TreatmentDuration: d.TreatmentDuration,
		Published:         d.Published,
		CreatedAt:         parseISO(d.CreatedAt),
		UpdatedAt:         parseISO(d.UpdatedAt),
	}
}
