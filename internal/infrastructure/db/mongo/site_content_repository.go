package mongo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const siteContentCollection = "site_content"

// SiteContentRepository stores one document per content section. Values
// are kept as JSON text so free-form sections survive round trips
// unchanged.
type SiteContentRepository struct {
	coll *mongo.Collection
}

func NewSiteContentRepository(db *mongo.Database) *SiteContentRepository {
	return &SiteContentRepository{coll: db.Collection(siteContentCollection)}
}

// EnsureIndexes creates the unique section index.
func (r *SiteContentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "section", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("site content indexes: %w", err)
	}
	return nil
}

type siteContentDoc struct {
	Section   string `bson:"section"`
	Value     string `bson:"value"`
	UpdatedAt string `bson:"update_at"`
}

func (r *SiteContentRepository) GetSection(ctx context.Context, section string) (json.RawMessage, error) {
	var doc siteContentDoc
	if err := r.coll.FindOne(ctx, bson.M{"section": section}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find content section: %w", err)
	}
	return json.RawMessage(doc.Value), nil
}

func (r *SiteContentRepository) SetSection(ctx context.Context, section string, value json.RawMessage) error {
	doc := siteContentDoc{
		Section:   section,
		Value:     string(value),
		UpdatedAt: isoOrEmpty(time.Now().UTC()),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"section": section}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set content section: %w", err)
	}
	return nil
}

func (r *SiteContentRepository) DeleteSection(ctx context.Context, section string) (json.RawMessage, error) {
	var doc siteContentDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"section": section}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete content section: %w", err)
	}
	return json.RawMessage(doc.Value), nil
}

func (r *SiteContentRepository) ListSections(ctx context.Context) (map[string]json.RawMessage, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list content sections: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]json.RawMessage)
	for cur.Next(ctx) {
		var doc siteContentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode content section: %w", err)
		}
		out[doc.Section] = json.RawMessage(doc.Value)
	}
	return out, cur.Err()
}
