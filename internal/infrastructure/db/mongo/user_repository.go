package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/ports"
)

const adminUsersCollection = "admin_users"

// AdminUserRepository persists admin accounts. Timestamps are stored as
// ISO-8601 strings for compatibility with the records written by the
// previous revision of the admin tooling.
type AdminUserRepository struct {
	coll *mongo.Collection
}

func NewAdminUserRepository(db *mongo.Database) *AdminUserRepository {
	return &AdminUserRepository{coll: db.Collection(adminUsersCollection)}
}

// EnsureIndexes creates the unique id and email indexes. Email uniqueness
// is what makes bootstrap provisioning race-safe.
func (r *AdminUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("admin user indexes: %w", err)
	}
	return nil
}

type adminUserDoc struct {
	ID           string                     `bson:"id"`
	Name         string                     `bson:"name"`
	Email        string                     `bson:"email"`
	PasswordHash string                     `bson:"password_hash"`
	Role         string                     `bson:"role"`
	IsActive     bool                       `bson:"is_active"`
	Permissions  map[domain.Permission]bool `bson:"permissions,omitempty"`
	TokenVersion int                        `bson:"token_version"`
	LastLoginAt  string                     `bson:"last_login_at,omitempty"`
	CreatedAt    string                     `bson:"created_at"`
	UpdatedAt    string                     `bson:"update_at"`
}

func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminUserRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *AdminUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.AdminUser, error) {
	var doc adminUserDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find admin user: %w", err)
	}
	return docToUser(&doc), nil
}

func (r *AdminUserRepository) List(ctx context.Context) ([]*domain.AdminUser, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.AdminUser
	for cur.Next(ctx) {
		var doc adminUserDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode admin user: %w", err)
		}
		users = append(users, docToUser(&doc))
	}
	return users, cur.Err()
}

func (r *AdminUserRepository) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	if _, err := r.coll.InsertOne(ctx, userToDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert admin user: %w", err)
	}
	return user, nil
}

func (r *AdminUserRepository) UpdateFields(ctx context.Context, id string, fields ports.UserFields) error {
	set := bson.M{}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.PasswordHash != nil {
		set["password_hash"] = *fields.PasswordHash
	}
	if fields.Role != nil {
		set["role"] = string(*fields.Role)
	}
	if fields.IsActive != nil {
		set["is_active"] = *fields.IsActive
	}
	if fields.Permissions != nil {
		set["permissions"] = *fields.Permissions
	}
	if fields.TokenVersion != nil {
		set["token_version"] = *fields.TokenVersion
	}
	if fields.LastLoginAt != nil {
		set["last_login_at"] = fields.LastLoginAt.UTC().Format(time.RFC3339)
	}
	if fields.UpdatedAt != nil {
		set["update_at"] = fields.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("update admin user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AdminUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete admin user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func userToDoc(u *domain.AdminUser) *adminUserDoc {
	return &adminUserDoc{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		Permissions:  u.Permissions,
		TokenVersion: u.TokenVersion,
		LastLoginAt:  isoOrEmpty(u.LastLoginAt),
		CreatedAt:    isoOrEmpty(u.CreatedAt),
		UpdatedAt:    isoOrEmpty(u.UpdatedAt),
	}
}

func docToUser(d *adminUserDoc) *domain.AdminUser {
	return &domain.AdminUser{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		IsActive:     d.IsActive,
		Permissions:  d.Permissions,
		TokenVersion: d.TokenVersion,
		LastLoginAt:  parseISO(d.LastLoginAt),
		CreatedAt:    parseISO(d.CreatedAt),
		UpdatedAt:    parseISO(d.UpdatedAt),
	}
}

func isoOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseISO(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
