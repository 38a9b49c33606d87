package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
)

const settingsCollection = "settings"

type SettingRepository struct {
	coll *mongo.Collection
}

func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{coll: db.Collection(settingsCollection)}
}

// EnsureIndexes creates the unique key index.
func (r *SettingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("setting indexes: %w", err)
	}
	return nil
}

type settingDoc struct {
	ID          string `bson:"id"`
	Key         string `bson:"key"`
	Value       string `bson:"value"`
	Description string `bson:"description,omitempty"`
	CreatedAt   string `bson:"created_at"`
	UpdatedAt   string `bson:"update_at"`
}

func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*domain.Setting, error) {
	var doc settingDoc
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find setting: %w", err)
	}
	return docToSetting(&doc), nil
}

func (r *SettingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Setting
	for cur.Next(ctx) {
		var doc settingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode setting: %w", err)
		}
		out = append(out, docToSetting(&doc))
	}
	return out, cur.Err()
}

func (r *SettingRepository) Insert(ctx context.Context, s *domain.Setting) error {
	if _, err := r.coll.InsertOne(ctx, settingToDoc(s)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrKeyTaken
		}
		return fmt.Errorf("insert setting: %w", err)
	}
	return nil
}

func (r *SettingRepository) Update(ctx context.Context, s *domain.Setting) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": s.ID}, settingToDoc(s))
	if err != nil {
		return fmt.Errorf("update setting: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SettingRepository) Delete(ctx context.Context, key string) (*domain.Setting, error) {
	var doc settingDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete setting: %w", err)
	}
	return docToSetting(&doc), nil
}

func settingToDoc(s *domain.Setting) *settingDoc {
	return &settingDoc{
		ID:          s.ID,
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		CreatedAt:   isoOrEmpty(s.CreatedAt),
		UpdatedAt:   isoOrEmpty(s.UpdatedAt),
	}
}

func docToSetting(d *settingDoc) *domain.Setting {
	return &domain.Setting{
		ID:          d.ID,
		Key:         d.Key,
		Value:       d.Value,
		Description: d.Description,
		CreatedAt:   parseISO(d.CreatedAt),
		UpdatedAt:   parseISO(d.UpdatedAt),
	}
}
