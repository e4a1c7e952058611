package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/domain"
)

// Checkout errors
var (
	ErrEmptySale      = errors.New("sale has no lines")
	ErrBadLine        = errors.New("sale line has invalid quantity")
	ErrDuplicateLines = errors.New("sale has duplicate lines for one product")
)

// SalesService turns a checkout payload into a committed sale
type SalesService struct {
	productRepo domain.ProductRepository
	saleRepo    domain.SaleRepository
}

// NewSalesService creates a new SalesService
func NewSalesService(productRepo domain.ProductRepository, saleRepo domain.SaleRepository) *SalesService {
	return &SalesService{productRepo: productRepo, saleRepo: saleRepo}
}

// Checkout validates the payload against current stock, decrements stock
// per line, and records the sale. Prices and subtotals are recomputed
// from the product records, never trusted from the client. If a line's
// stock ran out between the cart and the till, the typed insufficient-
// stock error reports how many units remain and any stock already taken
// by this checkout is restored, so a failed sale changes nothing.
func (s *SalesService) Checkout(ctx context.Context, payload domain.CheckoutPayload) (*domain.Sale, error) {
	if len(payload.Lines) == 0 {
		return nil, ErrEmptySale
	}
	if !domain.ValidPaymentMethod(payload.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	ids := make([]string, 0, len(payload.Lines))
	seen := make(map[string]bool, len(payload.Lines))
	for _, line := range payload.Lines {
		if line.Quantity < 1 {
			return nil, ErrBadLine
		}
		if seen[line.ProductID] {
			return nil, ErrDuplicateLines
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var saleLines []domain.SaleLine
	var total float64
	for _, line := range payload.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
		}
		if line.Quantity > product.Stock {
			return nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Stock,
			}
		}

		subtotal := domain.Round2(float64(line.Quantity) * product.SalePrice)
		total += float64(line.Quantity) * product.SalePrice
		saleLines = append(saleLines, domain.SaleLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.SalePrice,
			Subtotal:  subtotal,
		})
	}

	// take the stock line by line; the guarded decrement is what makes
	// this safe against a concurrent till
	taken := make([]domain.SaleLine, 0, len(saleLines))
	for _, line := range saleLines {
		if err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.restore(ctx, taken)
			if errors.Is(err, domain.ErrInsufficientStock) {
				// re-read so the message reports what is left right now,
				// not the snapshot this checkout started from
				available := 0
				if current, ferr := s.productRepo.GetByID(ctx, line.ProductID); ferr == nil {
					available = current.Stock
				}
				return nil, &domain.InsufficientStockError{
					ProductID: line.ProductID,
					Name:      line.Name,
					Available: available,
				}
			}
			return nil, err
		}
		taken = append(taken, line)
	}

	sale := &domain.Sale{
		Date:          time.Now().UTC(),
		Total:         domain.Round2(total),
		PaymentMethod: payload.PaymentMethod,
		Lines:         saleLines,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.restore(ctx, taken)
		return nil, err
	}

	return sale, nil
}

// restore puts back stock taken by a checkout that could not complete.
func (s *SalesService) restore(ctx context.Context, taken []domain.SaleLine) {
	for _, line := range taken {
		if err := s.productRepo.RestoreStock(ctx, line.ProductID, line.Quantity); err != nil {
			log.Printf("[Sales] failed to restore %d units of %s: %v", line.Quantity, line.ProductID, err)
		}
	}
}

// GetSale returns one sale by ID.
func (s *SalesService) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// ListSales returns a page of the sales history, newest first.
func (s *SalesService) ListSales(ctx context.Context, page, size int) (*domain.SalePage, error) {
	return s.saleRepo.List(ctx, page, size)
}
