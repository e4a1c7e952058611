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

// MongoSaleRepository implements domain.SaleRepository
type MongoSaleRepository struct {
	collection *mongo.Collection
}

func NewMongoSaleRepository(db *mongo.Database) *MongoSaleRepository {
	coll := db.Collection("sales")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
	})

	return &MongoSaleRepository{collection: coll}
}

func (r *MongoSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	sale.CreatedAt = time.Now().UTC()
	if sale.ID == "" {
		sale.ID = ulid.Make().String()
	}

	if _, err := r.collection.InsertOne(ctx, sale); err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *MongoSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sale); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sale, nil
}

func (r *MongoSaleRepository) List(ctx context.Context, page, size int) (*domain.SalePage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*domain.Sale{}
	for cursor.Next(ctx) {
		var sale domain.Sale
		if err := cursor.Decode(&sale); err != nil {
			return nil, err
		}
		items = append(items, &sale)
	}

	return &domain.SalePage{Items: items, Total: total, Page: page, Size: size}, nil
}
