package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const programsCollection = "care_programs"

type ProgramRepository struct {
	coll *mongo.Collection
}

func NewProgramRepository(db *mongo.Database) *ProgramRepository {
	return &ProgramRepository{coll: db.Collection(programsCollection)}
}

// EnsureIndexes creates the unique slug index.
func (r *ProgramRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("program indexes: %w", err)
	}
	return nil
}

type programDoc struct {
	ID        string `bson:"id"`
	Slug      string `bson:"slug"`
	Title     string `bson:"title"`
	Summary   string `bson:"summary,omitempty"`
	Body      string `bson:"body,omitempty"`
	Published bool   `bson:"published"`
	SortOrder int    `bson:"sort_order"`
	CreatedAt string `bson:"created_at"`
	UpdatedAt string `bson:"update_at"`
}

func (r *ProgramRepository) Insert(ctx context.Context, p *domain.CareProgram) error {
	if _, err := r.coll.InsertOne(ctx, programToDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*domain.CareProgram, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *ProgramRepository) FindBySlug(ctx context.Context, slug string) (*domain.CareProgram, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *ProgramRepository) findOne(ctx context.Context, filter bson.M) (*domain.CareProgram, error) {
	var doc programDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find program: %w", err)
	}
	return docToProgram(&doc), nil
}

func (r *ProgramRepository) List(ctx context.Context, publishedOnly bool) ([]*domain.CareProgram, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	sort := bson.D{{Key: "sort_order", Value: 1}, {Key: "created_at", Value: 1}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.CareProgram
	for cur.Next(ctx) {
		var doc programDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode program: %w", err)
		}
		out = append(out, docToProgram(&doc))
	}
	return out, cur.Err()
}

func (r *ProgramRepository) Update(ctx context.Context, p *domain.CareProgram) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, programToDoc(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("update program: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) (*domain.CareProgram, error) {
	var doc programDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete program: %w", err)
	}
	return docToProgram(&doc), nil
}

func programToDoc(p *domain.CareProgram) *programDoc {
	return &programDoc{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Body:      p.Body,
		Published: p.Published,
		SortOrder: p.SortOrder,
		CreatedAt: isoOrEmpty(p.CreatedAt),
		UpdatedAt: isoOrEmpty(p.UpdatedAt),
	}
}

func docToProgram(d *programDoc) *domain.CareProgram {
	return &domain.CareProgram{
		ID:        d.ID,
		Slug:      d.Slug,
		Title:     d.Title,
		Summary:   d.Summary,
		Body:      d.Body,
		Published: d.Published,
		SortOrder: d.SortOrder,
		CreatedAt: parseISO(d.CreatedAt),
		UpdatedAt: parseISO(d.UpdatedAt),
	}
}
