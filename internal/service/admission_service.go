package service

import (
	"context"
	"log"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"golang.org/x/sync/errgroup"
)

// AdmissionCacheTTL bounds how long a check-in summary is reused. The
// cache key also carries the calendar day, so a summary can never
// outlive the date it was computed for.
const AdmissionCacheTTL = 10 * time.Minute

// CheckInResult is what the attendance screen renders for one member.
type CheckInResult struct {
	Member  *domain.Member          `json:"member"`
	Summary domain.AdmissionSummary `json:"summary"`
	Date    time.Time               `json:"date"`
}

// AdmissionService derives the traffic-light standing for check-in
type AdmissionService struct {
	memberRepo     domain.MemberRepository
	membershipRepo domain.MembershipRepository
	cacheRepo      domain.CacheRepository
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(
	memberRepo domain.MemberRepository,
	membershipRepo domain.MembershipRepository,
	cacheRepo domain.CacheRepository,
) *AdmissionService {
	return &AdmissionService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		cacheRepo:      cacheRepo,
	}
}

// CheckIn looks up a member and classifies each of their memberships
// against today. The member record and membership list are fetched in
// parallel; the derived summary is cached for the rest of the shift
// window but never across midnight.
func (s *AdmissionService) CheckIn(ctx context.Context, memberID string, today time.Time) (*CheckInResult, error) {
	today = domain.Midnight(today)

	var cached *domain.AdmissionSummary
	if s.cacheRepo != nil {
		if c, err := s.cacheRepo.GetAdmissionSummary(ctx, memberID, today); err == nil {
			cached = c
		}
	}

	var (
		member      *domain.Member
		memberships []*domain.Membership
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		member, err = s.memberRepo.GetByID(gctx, memberID)
		return err
	})
	if cached == nil {
		g.Go(func() error {
			var err error
			memberships, err = s.membershipRepo.GetActiveByMember(gctx, memberID, today)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cached != nil {
		return &CheckInResult{Member: member, Summary: *cached, Date: today}, nil
	}

	summary := domain.Summarize(memberships, today)

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetAdmissionSummary(ctx, memberID, today, &summary, AdmissionCacheTTL); err != nil {
			log.Printf("[Admission] failed to cache summary for %s: %v", memberID, err)
		}
	}

	return &CheckInResult{Member: member, Summary: summary, Date: today}, nil
}
