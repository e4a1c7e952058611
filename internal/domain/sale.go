package domain

import (
	"context"
	"time"
)

// SaleLine is one committed line of a sale
type SaleLine struct {
	ProductID string  `bson:"product_id,omitempty" json:"product_id"`
	Name      string  `bson:"name,omitempty" json:"name"`
	Quantity  int     `bson:"quantity,omitempty" json:"quantity"`
	UnitPrice float64 `bson:"unit_price,omitempty" json:"unit_price"`
	Subtotal  float64 `bson:"subtotal,omitempty" json:"subtotal"`
}

// Sale is a completed point-of-sale transaction
type Sale struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Date          time.Time  `bson:"date,omitempty" json:"date"`
	Total         float64    `bson:"total,omitempty" json:"total"`
	PaymentMethod string     `bson:"payment_method,omitempty" json:"payment_method"`
	Lines         []SaleLine `bson:"lines,omitempty" json:"lines"`
	CreatedAt     time.Time  `bson:"created_at,omitempty" json:"created_at"`
}

// SalePage is one page of the sales history.
type SalePage struct {
	Items []*Sale `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Size  int     `json:"size"`
}

// SaleRepository defines operations for managing sales
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, page, size int) (*SalePage, error)
}
