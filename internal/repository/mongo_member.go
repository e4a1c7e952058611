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

// MongoMemberRepository implements domain.MemberRepository
type MongoMemberRepository struct {
	collection *mongo.Collection
}

func NewMongoMemberRepository(db *mongo.Database) *MongoMemberRepository {
	coll := db.Collection("members")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	})

	return &MongoMemberRepository{collection: coll}
}

func (r *MongoMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.ID == "" {
		member.ID = ulid.Make().String()
	}

	if _, err := r.collection.InsertOne(ctx, member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *MongoMemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	var member domain.Member
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

func (r *MongoMemberRepository) List(ctx context.Context, page, size int) (*domain.MemberPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*domain.Member{}
	for cursor.Next(ctx) {
		var member domain.Member
		if err := cursor.Decode(&member); err != nil {
			return nil, err
		}
		items = append(items, &member)
	}

	return &domain.MemberPage{Items: items, Total: total, Page: page, Size: size}, nil
}

func (r *MongoMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	member.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"first_name": member.FirstName,
			"last_name":  member.LastName,
			"phone":      member.Phone,
			"email":      member.Email,
			"address":    member.Address,
			"birth_date": member.BirthDate,
			"gender":     member.Gender,
			"notes":      member.Notes,
			"photo_url":  member.PhotoURL,
			"updated_at": member.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": member.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoMemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
