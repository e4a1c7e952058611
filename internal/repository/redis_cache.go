package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	admissionKeyPrefix = "admission:"
)

// RedisCacheRepository implements domain.CacheRepository using Redis
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis cache repository
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client}
}

// admissionKey embeds the calendar day so a summary computed before
// midnight is unreachable after it.
func admissionKey(memberID string, day time.Time) string {
	return admissionKeyPrefix + day.Format("2006-01-02") + ":" + memberID
}

// GetAdmissionSummary retrieves the cached check-in summary for a member
// as of the given day. A cache miss returns (nil, nil).
func (r *RedisCacheRepository) GetAdmissionSummary(ctx context.Context, memberID string, day time.Time) (*domain.AdmissionSummary, error) {
	data, err := r.client.Get(ctx, admissionKey(memberID, day)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached admission summary: %w", err)
	}

	var summary domain.AdmissionSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached admission summary: %w", err)
	}
	return &summary, nil
}

// SetAdmissionSummary caches the check-in summary with TTL
func (r *RedisCacheRepository) SetAdmissionSummary(ctx context.Context, memberID string, day time.Time, summary *domain.AdmissionSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal admission summary: %w", err)
	}

	if err := r.client.Set(ctx, admissionKey(memberID, day), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache admission summary: %w", err)
	}
	return nil
}

// InvalidateMember drops every cached admission summary for a member,
// called after an enrollment or renewal changes their standing.
func (r *RedisCacheRepository) InvalidateMember(ctx context.Context, memberID string) error {
	iter := r.client.Scan(ctx, 0, admissionKeyPrefix+"*:"+memberID, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return nil
}
