package service

import (
	"context"
	"testing"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmissionService_CheckIn(t *testing.T) {
	today := time.Date(2025, time.March, 10, 14, 45, 0, 0, time.UTC)
	member := &domain.Member{ID: "m1", FirstName: "Ana", LastName: "Rojas"}

	membershipRepo := &fakeMembershipRepo{memberships: []*domain.Membership{{
		ID:       "ms1",
		MemberID: "m1",
		EndDate:  time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
	}}}
	cache := newFakeCacheRepo()

	svc := NewAdmissionService(newFakeMemberRepo(member), membershipRepo, cache)

	got, err := svc.CheckIn(context.Background(), "m1", today)
	require.NoError(t, err)

	assert.Equal(t, "Ana Rojas", got.Member.FullName())
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), got.Date)
	assert.True(t, got.Summary.IsAdmitted)
	require.Len(t, got.Summary.Cards, 1)
	assert.Equal(t, domain.SignalClear, got.Summary.Cards[0].Signal)

	cached, _ := cache.GetAdmissionSummary(context.Background(), "m1", got.Date)
	require.NotNil(t, cached, "check-in should populate the day cache")
}

func TestAdmissionService_CheckInBlockedWhenNothingActive(t *testing.T) {
	svc := NewAdmissionService(
		newFakeMemberRepo(&domain.Member{ID: "m1"}),
		&fakeMembershipRepo{},
		newFakeCacheRepo(),
	)

	got, err := svc.CheckIn(context.Background(), "m1", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.False(t, got.Summary.IsAdmitted)
	assert.Empty(t, got.Summary.Cards)
	assert.Nil(t, got.Summary.NextDueDate)
}

func TestAdmissionService_CheckInServesCachedSummary(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	cache := newFakeCacheRepo()
	warned := &domain.AdmissionSummary{IsAdmitted: true}
	require.NoError(t, cache.SetAdmissionSummary(context.Background(), "m1", today, warned, AdmissionCacheTTL))

	// the membership repo would report nothing active; a cache hit must
	// keep it out of the picture entirely
	svc := NewAdmissionService(
		newFakeMemberRepo(&domain.Member{ID: "m1"}),
		&fakeMembershipRepo{},
		cache,
	)

	got, err := svc.CheckIn(context.Background(), "m1", today)
	require.NoError(t, err)
	assert.True(t, got.Summary.IsAdmitted)
}

func TestAdmissionService_CheckInUnknownMember(t *testing.T) {
	svc := NewAdmissionService(newFakeMemberRepo(), &fakeMembershipRepo{}, newFakeCacheRepo())

	_, err := svc.CheckIn(context.Background(), "ghost", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdmissionService_CheckInWithoutCache(t *testing.T) {
	svc := NewAdmissionService(
		newFakeMemberRepo(&domain.Member{ID: "m1"}),
		&fakeMembershipRepo{},
		nil,
	)

	got, err := svc.CheckIn(context.Background(), "m1", time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, got.Summary.IsAdmitted)
}
