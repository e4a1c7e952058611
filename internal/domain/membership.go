package domain

import (
	"context"
	"time"
)

// Movement kinds for a membership record
const (
	MovementEnrollment = "ENROLLMENT"
	MovementRenewal    = "RENEWAL"
)

// Payment methods accepted at the front desk
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
	PaymentCard     = "CARD"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentTransfer || m == PaymentCard
}

// Membership records one enrollment or renewal of a member on a package.
// EndDate is always derived from StartDate and the package duration via
// ComputeEndDate, and Total from the package price, enrollment fee and
// discount via ComputeTotal; neither is ever edited independently.
type Membership struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	MemberID      string    `bson:"member_id,omitempty" json:"member_id"`
	Package       Package   `bson:"package,omitempty" json:"package"`
	StartDate     time.Time `bson:"start_date,omitempty" json:"start_date"`
	EndDate       time.Time `bson:"end_date,omitempty" json:"end_date"`
	Movement      string    `bson:"movement,omitempty" json:"movement"`
	PaymentMethod string    `bson:"payment_method,omitempty" json:"payment_method"`
	Discount      float64   `bson:"discount,omitempty" json:"discount"`
	Total         float64   `bson:"total,omitempty" json:"total"`
	CreatedAt     time.Time `bson:"created_at,omitempty" json:"created_at"`
}

// EndDatePtr returns the end date for classification, nil when unset.
func (m *Membership) EndDatePtr() *time.Time {
	if m == nil || m.EndDate.IsZero() {
		return nil
	}
	end := m.EndDate
	return &end
}

// MembershipPage is one page of a member's membership history.
type MembershipPage struct {
	Items []*Membership `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

// MembershipRepository defines operations for managing memberships
type MembershipRepository interface {
	Create(ctx context.Context, membership *Membership) error
	GetByID(ctx context.Context, id string) (*Membership, error)
	GetByMember(ctx context.Context, memberID string, page, size int) (*MembershipPage, error)
	GetActiveByMember(ctx context.Context, memberID string, today time.Time) ([]*Membership, error)
	Delete(ctx context.Context, id string) error
}
