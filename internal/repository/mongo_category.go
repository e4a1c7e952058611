package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCategoryRepository implements domain.CategoryRepository
type MongoCategoryRepository struct {
	collection *mongo.Collection
}

func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{collection: db.Collection("categories")}
}

func (r *MongoCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	category.CreatedAt = time.Now().UTC()
	if category.ID == "" {
		category.ID = ulid.Make().String()
	}

	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *MongoCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *MongoCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	for cursor.Next(ctx) {
		var category domain.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *MongoCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	update := bson.M{"$set": bson.M{"name": category.Name}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": category.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
