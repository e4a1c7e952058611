package service

import (
	"context"
	"testing"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyPackage() *domain.Package {
	return &domain.Package{
		ID:            "pkg-monthly",
		Name:          "Monthly",
		Price:         350,
		Duration:      domain.DurationOneMonth,
		EnrollmentFee: 100,
		Active:        true,
	}
}

func TestMembershipService_Enroll(t *testing.T) {
	member := &domain.Member{ID: "m1", FirstName: "Ana", LastName: "Rojas"}
	memberRepo := newFakeMemberRepo(member)
	pkgRepo := newFakePackageRepo(monthlyPackage())
	membershipRepo := &fakeMembershipRepo{}
	cache := newFakeCacheRepo()

	svc := NewMembershipService(memberRepo, pkgRepo, membershipRepo, cache)

	start := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	got, err := svc.Enroll(context.Background(), MembershipRequest{
		MemberID:      "m1",
		PackageID:     "pkg-monthly",
		StartDate:     start,
		Discount:      50,
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MovementEnrollment, got.Movement)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), got.StartDate, "start date should be stripped to midnight")
	assert.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), got.EndDate)
	// 350 + 100 fee - 50 discount
	assert.Equal(t, 400.0, got.Total)
	assert.Equal(t, "Monthly", got.Package.Name, "package snapshot travels with the record")

	require.Len(t, membershipRepo.memberships, 1)
	assert.Equal(t, []string{"m1"}, cache.dropped, "enrollment must drop the member's cached standing")
}

func TestMembershipService_RenewWaivesFee(t *testing.T) {
	memberRepo := newFakeMemberRepo(&domain.Member{ID: "m1"})
	pkgRepo := newFakePackageRepo(monthlyPackage())
	membershipRepo := &fakeMembershipRepo{}

	svc := NewMembershipService(memberRepo, pkgRepo, membershipRepo, newFakeCacheRepo())

	got, err := svc.Renew(context.Background(), MembershipRequest{
		MemberID:      "m1",
		PackageID:     "pkg-monthly",
		StartDate:     time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentCard,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MovementRenewal, got.Movement)
	assert.Equal(t, 350.0, got.Total, "renewal pays package price only, no enrollment fee")
}

func TestMembershipService_RenewStacksFromActiveEnd(t *testing.T) {
	memberRepo := newFakeMemberRepo(&domain.Member{ID: "m1"})
	pkgRepo := newFakePackageRepo(monthlyPackage())

	activeEnd := domain.Midnight(time.Now().UTC()).AddDate(0, 0, 10)
	membershipRepo := &fakeMembershipRepo{memberships: []*domain.Membership{{
		ID:       "prev",
		MemberID: "m1",
		EndDate:  activeEnd,
	}}}

	svc := NewMembershipService(memberRepo, pkgRepo, membershipRepo, newFakeCacheRepo())

	got, err := svc.Renew(context.Background(), MembershipRequest{
		MemberID:      "m1",
		PackageID:     "pkg-monthly",
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, activeEnd, got.StartDate, "early renewal starts where the active membership ends")
	assert.Equal(t, activeEnd.AddDate(0, 1, 0), got.EndDate)
}

func TestMembershipService_RenewLapsedStartsToday(t *testing.T) {
	memberRepo := newFakeMemberRepo(&domain.Member{ID: "m1"})
	pkgRepo := newFakePackageRepo(monthlyPackage())
	membershipRepo := &fakeMembershipRepo{} // nothing active

	svc := NewMembershipService(memberRepo, pkgRepo, membershipRepo, newFakeCacheRepo())

	got, err := svc.Renew(context.Background(), MembershipRequest{
		MemberID:      "m1",
		PackageID:     "pkg-monthly",
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Midnight(time.Now().UTC()), got.StartDate)
}

func TestMembershipService_Validation(t *testing.T) {
	memberRepo := newFakeMemberRepo(&domain.Member{ID: "m1"})
	inactive := monthlyPackage()
	inactive.ID = "pkg-retired"
	inactive.Active = false
	pkgRepo := newFakePackageRepo(monthlyPackage(), inactive)

	svc := NewMembershipService(memberRepo, pkgRepo, &fakeMembershipRepo{}, newFakeCacheRepo())
	ctx := context.Background()

	_, err := svc.Enroll(ctx, MembershipRequest{MemberID: "m1", PackageID: "pkg-monthly", PaymentMethod: "BARTER"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = svc.Enroll(ctx, MembershipRequest{MemberID: "m1", PackageID: "pkg-monthly", Discount: -1, PaymentMethod: domain.PaymentCash})
	assert.ErrorIs(t, err, ErrNegativeDiscount)

	_, err = svc.Enroll(ctx, MembershipRequest{MemberID: "ghost", PackageID: "pkg-monthly", PaymentMethod: domain.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Enroll(ctx, MembershipRequest{MemberID: "m1", PackageID: "pkg-retired", PaymentMethod: domain.PaymentCash})
	assert.ErrorIs(t, err, ErrInactivePackage)
}

func TestMembershipService_RemoveInvalidatesCache(t *testing.T) {
	memberRepo := newFakeMemberRepo(&domain.Member{ID: "m1"})
	membershipRepo := &fakeMembershipRepo{memberships: []*domain.Membership{{
		ID:       "ms1",
		MemberID: "m1",
		EndDate:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}}}
	cache := newFakeCacheRepo()

	svc := NewMembershipService(memberRepo, newFakePackageRepo(), membershipRepo, cache)

	require.NoError(t, svc.Remove(context.Background(), "ms1"))
	assert.Empty(t, membershipRepo.memberships)
	assert.Equal(t, []string{"m1"}, cache.dropped)

	assert.ErrorIs(t, svc.Remove(context.Background(), "ms1"), domain.ErrNotFound)
}
