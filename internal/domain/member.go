package domain

import (
	"context"
	"time"
)

// Gender values accepted on member records
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Member represents a gym member
type Member struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	FirstName string    `bson:"first_name,omitempty" json:"first_name"`
	LastName  string    `bson:"last_name,omitempty" json:"last_name"`
	Phone     string    `bson:"phone,omitempty" json:"phone"`
	Email     string    `bson:"email,omitempty" json:"email"`
	Address   string    `bson:"address,omitempty" json:"address"`
	BirthDate time.Time `bson:"birth_date,omitempty" json:"birth_date"`
	Gender    string    `bson:"gender,omitempty" json:"gender"`
	Notes     string    `bson:"notes,omitempty" json:"notes"`
	PhotoURL  string    `bson:"photo_url,omitempty" json:"photo_url"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at"`
}

// FullName returns the display name for receipts and the check-in screen.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// MemberPage is one page of the member directory.
type MemberPage struct {
	Items []*Member `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}

// MemberRepository defines operations for managing members
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, page, size int) (*MemberPage, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id string) error
}
