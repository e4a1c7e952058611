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

// MongoMembershipRepository implements domain.MembershipRepository
type MongoMembershipRepository struct {
	collection *mongo.Collection
}

func NewMongoMembershipRepository(db *mongo.Database) *MongoMembershipRepository {
	coll := db.Collection("memberships")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "end_date", Value: -1}}},
	})

	return &MongoMembershipRepository{collection: coll}
}

func (r *MongoMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	membership.CreatedAt = time.Now().UTC()
	if membership.ID == "" {
		membership.ID = ulid.Make().String()
	}

	if _, err := r.collection.InsertOne(ctx, membership); err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

func (r *MongoMembershipRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	var membership domain.Membership
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&membership); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &membership, nil
}

func (r *MongoMembershipRepository) GetByMember(ctx context.Context, memberID string, page, size int) (*domain.MembershipPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	filter := bson.M{"member_id": memberID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count memberships: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*domain.Membership{}
	for cursor.Next(ctx) {
		var membership domain.Membership
		if err := cursor.Decode(&membership); err != nil {
			return nil, err
		}
		items = append(items, &membership)
	}

	return &domain.MembershipPage{Items: items, Total: total, Page: page, Size: size}, nil
}

// GetActiveByMember returns memberships whose end date has not passed
// before today. Ones expiring today are included: the check-in screen
// still shows them, classified as blocked.
func (r *MongoMembershipRepository) GetActiveByMember(ctx context.Context, memberID string, today time.Time) ([]*domain.Membership, error) {
	filter := bson.M{
		"member_id": memberID,
		"end_date":  bson.M{"$gte": domain.Midnight(today)},
	}

	opts := options.Find().SetSort(bson.D{{Key: "end_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}
	defer cursor.Close(ctx)

	memberships := []*domain.Membership{}
	for cursor.Next(ctx) {
		var membership domain.Membership
		if err := cursor.Decode(&membership); err != nil {
			return nil, err
		}
		memberships = append(memberships, &membership)
	}
	return memberships, nil
}

func (r *MongoMembershipRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
