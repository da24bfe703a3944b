package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

const collectionRoles = "roles"

var _ ports.RoleRepository = (*RoleRepository)(nil)

// RoleRepository stores permission ids only. Name uniqueness is enforced by a
// unique index on the lower-cased name.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

type roleDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	NameLower   string    `bson:"name_lower"`
	Description string    `bson:"description"`
	Permissions []string  `bson:"permissions"`
	IsActive    bool      `bson:"is_active"`
	UserCount   int       `bson:"user_count"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toRoleDoc(r *domain.Role) roleDoc {
	return roleDoc{
		ID:          r.ID,
		Name:        r.Name,
		NameLower:   nameKey(r.Name),
		Description: r.Description,
		Permissions: r.PermissionIDs(),
		IsActive:    r.IsActive,
		UserCount:   r.UserCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (d roleDoc) toDomain() *domain.Role {
	return &domain.Role{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Permissions: domain.FilterPermissions(d.Permissions),
		IsActive:    d.IsActive,
		UserCount:   d.UserCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// List returns every role ordered by name.
func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name_lower", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []roleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]*domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, d.toDomain())
	}
	return roles, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name_lower": nameKey(name)})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d roleDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return d.toDomain(), nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toRoleDoc(role)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRoleConflict
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// Update replaces every mutable field. userCount is owned by SetUserCount.
func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d := toRoleDoc(role)
	res, err := r.col.UpdateByID(ctx, d.ID, bson.M{"$set": bson.M{
		"name":        d.Name,
		"name_lower":  d.NameLower,
		"description": d.Description,
		"permissions": d.Permissions,
		"is_active":   d.IsActive,
		"updated_at":  d.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRoleConflict
		}
		return fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) SetUserCount(ctx context.Context, id string, count int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"user_count": count}})
	if err != nil {
		return fmt.Errorf("set user count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("role indexes: %w", err)
	}
	return nil
}
