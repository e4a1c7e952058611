package domain

import (
	"context"
	"time"
)

// CacheRepository caches derived read views. Admission summaries are
// keyed by calendar day so a cached classification can never leak across
// midnight.
type CacheRepository interface {
	GetAdmissionSummary(ctx context.Context, memberID string, day time.Time) (*AdmissionSummary, error)
	SetAdmissionSummary(ctx context.Context, memberID string, day time.Time, summary *AdmissionSummary, ttl time.Duration) error
	InvalidateMember(ctx context.Context, memberID string) error
}
