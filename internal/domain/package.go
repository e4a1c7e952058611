package domain

import (
	"context"
	"time"
)

// Package represents a purchasable membership plan
type Package struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	Name          string       `bson:"name,omitempty" json:"name"`
	Price         float64      `bson:"price,omitempty" json:"price"`
	Duration      PlanDuration `bson:"duration,omitempty" json:"duration"`
	EnrollmentFee float64      `bson:"enrollment_fee,omitempty" json:"enrollment_fee"`
	Active        bool         `bson:"is_active,omitempty" json:"is_active"`
	CreatedAt     time.Time    `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at,omitempty" json:"updated_at"`
}

// PackageRepository defines operations for managing packages
type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id string) (*Package, error)
	GetActivePackages(ctx context.Context) ([]*Package, error)
	Update(ctx context.Context, pkg *Package) error
	Delete(ctx context.Context, id string) error
}
