package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const inquiriesCollection = "contact_inquiries"

type InquiryRepository struct {
	coll *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{coll: db.Collection(inquiriesCollection)}
}

type inquiryDoc struct {
	ID        string `bson:"id"`
	Name      string `bson:"name"`
	Email     string `bson:"email,omitempty"`
	Phone     string `bson:"phone,omitempty"`
	Source    string `bson:"source,omitempty"`
	Message   string `bson:"message"`
	Status    string `bson:"status"`
	CreatedAt string `bson:"created_at"`
	UpdatedAt string `bson:"update_at"`
}

func (r *InquiryRepository) Insert(ctx context.Context, i *domain.ContactInquiry) error {
	if _, err := r.coll.InsertOne(ctx, inquiryToDoc(i)); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.ContactInquiry, error) {
	var doc inquiryDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return docToInquiry(&doc), nil
}

func (r *InquiryRepository) List(ctx context.Context, status domain.InquiryStatus) ([]*domain.ContactInquiry, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ContactInquiry
	for cur.Next(ctx) {
		var doc inquiryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode inquiry: %w", err)
		}
		out = append(out, docToInquiry(&doc))
	}
	return out, cur.Err()
}

func (r *InquiryRepository) Update(ctx context.Context, i *domain.ContactInquiry) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": i.ID}, inquiryToDoc(i))
	if err != nil {
		return fmt.Errorf("update inquiry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id string) (*domain.ContactInquiry, error) {
	var doc inquiryDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete inquiry: %w", err)
	}
	return docToInquiry(&doc), nil
}

func (r *InquiryRepository) CountByStatus(ctx context.Context, status domain.InquiryStatus) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return int(n), nil
}

func inquiryToDoc(i *domain.ContactInquiry) *inquiryDoc {
	return &inquiryDoc{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Phone:     i.Phone,
		Source:    i.Source,
		Message:   i.Message,
		Status:    string(i.Status),
		CreatedAt: isoOrEmpty(i.CreatedAt),
		UpdatedAt: isoOrEmpty(i.UpdatedAt),
	}
}

func docToInquiry(d *inquiryDoc) *domain.ContactInquiry {
	return &domain.ContactInquiry{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Source:    d.Source,
		Message:   d.Message,
		Status:    domain.InquiryStatus(d.Status),
		CreatedAt: parseISO(d.CreatedAt),
		UpdatedAt: parseISO(d.UpdatedAt),
	}
}
