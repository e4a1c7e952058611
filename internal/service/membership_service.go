package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
)

// Membership flow errors
var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNegativeDiscount     = errors.New("discount cannot be negative")
	ErrInactivePackage      = errors.New("package is not active")
)

// MembershipRequest carries an enrollment or renewal submitted from the
// front desk. StartDate defaults to today; Discount defaults to zero.
// EndDate and Total are never accepted from the client: they are derived
// here so every screen agrees on them.
type MembershipRequest struct {
	MemberID      string    `json:"member_id"`
	PackageID     string    `json:"package_id"`
	StartDate     time.Time `json:"start_date"`
	Discount      float64   `json:"discount"`
	PaymentMethod string    `json:"payment_method"`
}

// MembershipService handles the enrollment and renewal lifecycle
type MembershipService struct {
	memberRepo     domain.MemberRepository
	pkgRepo        domain.PackageRepository
	membershipRepo domain.MembershipRepository
	cacheRepo      domain.CacheRepository
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	memberRepo domain.MemberRepository,
	pkgRepo domain.PackageRepository,
	membershipRepo domain.MembershipRepository,
	cacheRepo domain.CacheRepository,
) *MembershipService {
	return &MembershipService{
		memberRepo:     memberRepo,
		pkgRepo:        pkgRepo,
		membershipRepo: membershipRepo,
		cacheRepo:      cacheRepo,
	}
}

// Enroll records a first-time membership for a member.
func (s *MembershipService) Enroll(ctx context.Context, req MembershipRequest) (*domain.Membership, error) {
	return s.create(ctx, req, domain.MovementEnrollment)
}

// Renew records a renewal. When no start date is given the renewal
// stacks: it starts where the member's latest active membership ends, so
// renewing early never costs paid days. Lapsed members start today.
func (s *MembershipService) Renew(ctx context.Context, req MembershipRequest) (*domain.Membership, error) {
	if req.StartDate.IsZero() {
		start, err := s.renewalStart(ctx, req.MemberID)
		if err != nil {
			return nil, err
		}
		req.StartDate = start
	}
	return s.create(ctx, req, domain.MovementRenewal)
}

func (s *MembershipService) renewalStart(ctx context.Context, memberID string) (time.Time, error) {
	now := time.Now().UTC()
	active, err := s.membershipRepo.GetActiveByMember(ctx, memberID, now)
	if err != nil {
		return time.Time{}, err
	}

	start := now
	for _, m := range active {
		if m.EndDate.After(start) {
			start = m.EndDate
		}
	}
	return start, nil
}

func (s *MembershipService) create(ctx context.Context, req MembershipRequest, movement string) (*domain.Membership, error) {
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if req.Discount < 0 {
		return nil, ErrNegativeDiscount
	}

	if _, err := s.memberRepo.GetByID(ctx, req.MemberID); err != nil {
		return nil, fmt.Errorf("member lookup: %w", err)
	}

	pkg, err := s.pkgRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("package lookup: %w", err)
	}
	if !pkg.Active {
		return nil, ErrInactivePackage
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now().UTC()
	}
	start = domain.Midnight(start)

	// enrollment fee is charged on first sign-up only
	fee := pkg.EnrollmentFee
	if movement == domain.MovementRenewal {
		fee = 0
	}

	membership := &domain.Membership{
		MemberID:      req.MemberID,
		Package:       *pkg,
		StartDate:     start,
		EndDate:       domain.ComputeEndDate(start, pkg.Duration),
		Movement:      movement,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Total:         domain.ComputeTotal(pkg.Price, req.Discount, fee),
	}

	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	// the member's standing changed; stale check-in summaries must go
	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateMember(ctx, req.MemberID); err != nil {
			log.Printf("[Membership] failed to invalidate admission cache for %s: %v", req.MemberID, err)
		}
	}

	return membership, nil
}

// History returns a page of a member's membership records, newest first.
func (s *MembershipService) History(ctx context.Context, memberID string, page, size int) (*domain.MembershipPage, error) {
	return s.membershipRepo.GetByMember(ctx, memberID, page, size)
}

// Active returns the member's memberships still running as of today.
func (s *MembershipService) Active(ctx context.Context, memberID string) ([]*domain.Membership, error) {
	return s.membershipRepo.GetActiveByMember(ctx, memberID, time.Now().UTC())
}

// Remove deletes a membership record and drops the member's cached
// check-in standing.
func (s *MembershipService) Remove(ctx context.Context, id string) error {
	membership, err := s.membershipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.membershipRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateMember(ctx, membership.MemberID); err != nil {
			log.Printf("[Membership] failed to invalidate admission cache for %s: %v", membership.MemberID, err)
		}
	}
	return nil
}
