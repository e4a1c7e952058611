package domain

import (
	"context"
	"time"
)

// Category groups products on the point-of-sale screen
type Category struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name,omitempty" json:"name"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at"`
}

// CategoryRepository defines operations for managing categories
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

// Product is a sellable item with stock on hand
type Product struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Name          string    `bson:"name,omitempty" json:"name"`
	Code          string    `bson:"code,omitempty" json:"code"`
	PurchasePrice float64   `bson:"purchase_price,omitempty" json:"purchase_price"`
	SalePrice     float64   `bson:"sale_price,omitempty" json:"sale_price"`
	Stock         int       `bson:"stock" json:"stock"`
	CategoryID    string    `bson:"category_id,omitempty" json:"category_id"`
	CreatedAt     time.Time `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updated_at"`
}

// ProductRepository defines operations for managing products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Product, error)
	GetByCategory(ctx context.Context, categoryID string) ([]*Product, error)
	SearchByName(ctx context.Context, term string) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	// DecrementStock subtracts qty from the product's stock only when at
	// least qty units remain; it returns ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id string, qty int) error
	// RestoreStock puts qty units back, used to compensate a partially
	// applied checkout and when a sale is voided.
	RestoreStock(ctx context.Context, id string, qty int) error
	Delete(ctx context.Context, id string) error
}
