package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPackageRepository implements domain.PackageRepository
type MongoPackageRepository struct {
	collection *mongo.Collection
}

// NewMongoPackageRepository creates a new package repository
func NewMongoPackageRepository(db *mongo.Database) *MongoPackageRepository {
	return &MongoPackageRepository{collection: db.Collection("packages")}
}

func (r *MongoPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	now := time.Now().UTC()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	if pkg.ID == "" {
		pkg.ID = ulid.Make().String()
	}
	// duration is stored canonical so every consumer computes the same
	// end dates
	pkg.Duration = domain.ParsePlanDuration(string(pkg.Duration))

	if _, err := r.collection.InsertOne(ctx, pkg); err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *MongoPackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	var pkg domain.Package
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func (r *MongoPackageRepository) GetActivePackages(ctx context.Context) ([]*domain.Package, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list active packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*domain.Package
	for cursor.Next(ctx) {
		var pkg domain.Package
		if err := cursor.Decode(&pkg); err != nil {
			return nil, err
		}
		packages = append(packages, &pkg)
	}
	return packages, nil
}

func (r *MongoPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	pkg.UpdatedAt = time.Now().UTC()
	pkg.Duration = domain.ParsePlanDuration(string(pkg.Duration))

	update := bson.M{
		"$set": bson.M{
			"name":           pkg.Name,
			"price":          pkg.Price,
			"duration":       pkg.Duration,
			"enrollment_fee": pkg.EnrollmentFee,
			"is_active":      pkg.Active,
			"updated_at":     pkg.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pkg.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoPackageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
