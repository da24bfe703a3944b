package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

const collectionTenants = "tenants"

var _ ports.TenantRepository = (*TenantRepository)(nil)

type TenantRepository struct {
	col *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{col: db.Collection(collectionTenants)}
}

type tenantDoc struct {
	ID        string         `bson:"_id"`
	Name      string         `bson:"name"`
	Subdomain string         `bson:"subdomain"`
	Settings  map[string]any `bson:"settings,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

func (d tenantDoc) toDomain() *domain.Tenant {
	return &domain.Tenant{
		ID:        d.ID,
		Name:      d.Name,
		Subdomain: d.Subdomain,
		Settings:  d.Settings,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d tenantDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return d.toDomain(), nil
}

// Upsert matches on subdomain; tenant.ID is updated to the stored id.
func (r *TenantRepository) Upsert(ctx context.Context, tenant *domain.Tenant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":       tenant.Name,
			"settings":   tenant.Settings,
			"updated_at": tenant.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        tenant.ID,
			"created_at": tenant.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored tenantDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"subdomain": tenant.Subdomain}, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("upsert tenant: %w", err)
	}
	tenant.ID = stored.ID
	return nil
}

func (r *TenantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subdomain", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("tenant indexes: %w", err)
	}
	return nil
}
