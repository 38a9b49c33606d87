package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const feedbackCollection = "feedback"

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(feedbackCollection)}
}

type feedbackDoc struct {
	ID        string `bson:"id"`
	Name      string `bson:"name"`
	Email     string `bson:"email,omitempty"`
	Rating    int    `bson:"rating"`
	Message   string `bson:"message"`
	Status    string `bson:"status"`
	CreatedAt string `bson:"created_at"`
	UpdatedAt string `bson:"update_at"`
}

func (r *FeedbackRepository) Insert(ctx context.Context, f *domain.Feedback) error {
	if _, err := r.coll.InsertOne(ctx, feedbackToDoc(f)); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	var doc feedbackDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return docToFeedback(&doc), nil
}

func (r *FeedbackRepository) List(ctx context.Context, status domain.FeedbackStatus) ([]*domain.Feedback, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Feedback
	for cur.Next(ctx) {
		var doc feedbackDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, docToFeedback(&doc))
	}
	return out, cur.Err()
}

func (r *FeedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": f.ID}, feedbackToDoc(f))
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) (*domain.Feedback, error) {
	var doc feedbackDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete feedback: %w", err)
	}
	return docToFeedback(&doc), nil
}

func (r *FeedbackRepository) CountByStatus(ctx context.Context, status domain.FeedbackStatus) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return int(n), nil
}

func feedbackToDoc(f *domain.Feedback) *feedbackDoc {
	return &feedbackDoc{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Rating:    f.Rating,
		Message:   f.Message,
		Status:    string(f.Status),
		CreatedAt: isoOrEmpty(f.CreatedAt),
		UpdatedAt: isoOrEmpty(f.UpdatedAt),
	}
}

func docToFeedback(d *feedbackDoc) *domain.Feedback {
	return &domain.Feedback{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Rating:    d.Rating,
		Message:   d.Message,
		Status:    domain.FeedbackStatus(d.Status),
		CreatedAt: parseISO(d.CreatedAt),
		UpdatedAt: parseISO(d.UpdatedAt),
	}
}
