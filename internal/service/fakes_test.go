package service

import (
	"context"
	"sync"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/oklog/ulid/v2"
)

// in-memory repositories for service tests

type fakeMemberRepo struct {
	members map[string]*domain.Member
}

func newFakeMemberRepo(members ...*domain.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{members: map[string]*domain.Member{}}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	r.members[m.ID] = m
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMemberRepo) List(_ context.Context, page, size int) (*domain.MemberPage, error) {
	items := make([]*domain.Member, 0, len(r.members))
	for _, m := range r.members {
		items = append(items, m)
	}
	return &domain.MemberPage{Items: items, Total: int64(len(items)), Page: page, Size: size}, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, m *domain.Member) error {
	if _, ok := r.members[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.members[m.ID] = m
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

type fakePackageRepo struct {
	packages map[string]*domain.Package
}

func newFakePackageRepo(packages ...*domain.Package) *fakePackageRepo {
	r := &fakePackageRepo{packages: map[string]*domain.Package{}}
	for _, p := range packages {
		r.packages[p.ID] = p
	}
	return r
}

func (r *fakePackageRepo) Create(_ context.Context, p *domain.Package) error {
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	r.packages[p.ID] = p
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id string) (*domain.Package, error) {
	if p, ok := r.packages[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakePackageRepo) GetActivePackages(_ context.Context) ([]*domain.Package, error) {
	var out []*domain.Package
	for _, p := range r.packages {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) Update(_ context.Context, p *domain.Package) error {
	if _, ok := r.packages[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.packages[p.ID] = p
	return nil
}

func (r *fakePackageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.packages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.packages, id)
	return nil
}

type fakeMembershipRepo struct {
	memberships []*domain.Membership
}

func (r *fakeMembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	m.CreatedAt = time.Now().UTC()
	r.memberships = append(r.memberships, m)
	return nil
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, id string) (*domain.Membership, error) {
	for _, m := range r.memberships {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMembershipRepo) GetByMember(_ context.Context, memberID string, page, size int) (*domain.MembershipPage, error) {
	items := []*domain.Membership{}
	for _, m := range r.memberships {
		if m.MemberID == memberID {
			items = append(items, m)
		}
	}
	return &domain.MembershipPage{Items: items, Total: int64(len(items)), Page: page, Size: size}, nil
}

func (r *fakeMembershipRepo) GetActiveByMember(_ context.Context, memberID string, today time.Time) ([]*domain.Membership, error) {
	items := []*domain.Membership{}
	for _, m := range r.memberships {
		if m.MemberID == memberID && !m.EndDate.Before(domain.Midnight(today)) {
			items = append(items, m)
		}
	}
	return items, nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.memberships {
		if m.ID == id {
			r.memberships = append(r.memberships[:i], r.memberships[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.AdmissionSummary
	dropped []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string]*domain.AdmissionSummary{}}
}

func cacheKey(memberID string, day time.Time) string {
	return day.Format("2006-01-02") + ":" + memberID
}

func (r *fakeCacheRepo) GetAdmissionSummary(_ context.Context, memberID string, day time.Time) (*domain.AdmissionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[cacheKey(memberID, day)], nil
}

func (r *fakeCacheRepo) SetAdmissionSummary(_ context.Context, memberID string, day time.Time, summary *domain.AdmissionSummary, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[cacheKey(memberID, day)] = summary
	return nil
}

func (r *fakeCacheRepo) InvalidateMember(_ context.Context, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.entries {
		if len(key) > 11 && key[11:] == memberID {
			delete(r.entries, key)
		}
	}
	r.dropped = append(r.dropped, memberID)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	// failDecrementFor forces an out-of-stock failure on one product to
	// exercise checkout compensation
	failDecrementFor string
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCategory(_ context.Context, categoryID string) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SearchByName(_ context.Context, _ string) ([]*domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if id == r.failDecrementFor || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) RestoreStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

type fakeSaleRepo struct {
	sales   []*domain.Sale
	failing bool
}

func (r *fakeSaleRepo) Create(_ context.Context, s *domain.Sale) error {
	if r.failing {
		return context.DeadlineExceeded
	}
	if s.ID == "" {
		s.ID = ulid.Make().String()
	}
	r.sales = append(r.sales, s)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*domain.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSaleRepo) List(_ context.Context, page, size int) (*domain.SalePage, error) {
	return &domain.SalePage{Items: r.sales, Total: int64(len(r.sales)), Page: page, Size: size}, nil
}
