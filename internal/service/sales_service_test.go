package service

import (
	"context"
	"testing"

	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tillProducts() []*domain.Product {
	return []*domain.Product{
		{ID: "p-water", Name: "Water 600ml", SalePrice: 15, Stock: 3},
		{ID: "p-shake", Name: "Protein Shake", SalePrice: 65.50, Stock: 5},
		{ID: "p-towel", Name: "Gym Towel", SalePrice: 120, Stock: 0},
	}
}

func TestSalesService_Checkout(t *testing.T) {
	productRepo := newFakeProductRepo(tillProducts()...)
	saleRepo := &fakeSaleRepo{}
	svc := NewSalesService(productRepo, saleRepo)

	sale, err := svc.Checkout(context.Background(), domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCash,
		Lines: []domain.CheckoutLine{
			{ProductID: "p-water", Quantity: 2},
			{ProductID: "p-shake", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 2*15 + 65.50, recomputed from the product records
	assert.Equal(t, 95.50, sale.Total)
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, "Water 600ml", sale.Lines[0].Name)
	assert.Equal(t, 30.0, sale.Lines[0].Subtotal)
	assert.Equal(t, 65.50, sale.Lines[1].UnitPrice)

	assert.Equal(t, 1, productRepo.stock("p-water"))
	assert.Equal(t, 4, productRepo.stock("p-shake"))
	require.Len(t, saleRepo.sales, 1)
}

func TestSalesService_CheckoutValidation(t *testing.T) {
	svc := NewSalesService(newFakeProductRepo(tillProducts()...), &fakeSaleRepo{})
	ctx := context.Background()

	_, err := svc.Checkout(ctx, domain.CheckoutPayload{PaymentMethod: domain.PaymentCash})
	assert.ErrorIs(t, err, ErrEmptySale)

	_, err = svc.Checkout(ctx, domain.CheckoutPayload{
		PaymentMethod: "IOU",
		Lines:         []domain.CheckoutLine{{ProductID: "p-water", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = svc.Checkout(ctx, domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCash,
		Lines:         []domain.CheckoutLine{{ProductID: "p-water", Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrBadLine)

	_, err = svc.Checkout(ctx, domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCash,
		Lines: []domain.CheckoutLine{
			{ProductID: "p-water", Quantity: 1},
			{ProductID: "p-water", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateLines)

	_, err = svc.Checkout(ctx, domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCash,
		Lines:         []domain.CheckoutLine{{ProductID: "ghost", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSalesService_CheckoutOverStock(t *testing.T) {
	productRepo := newFakeProductRepo(tillProducts()...)
	svc := NewSalesService(productRepo, &fakeSaleRepo{})

	_, err := svc.Checkout(context.Background(), domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCash,
		Lines:         []domain.CheckoutLine{{ProductID: "p-water", Quantity: 5}},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p-water", stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 3, productRepo.stock("p-water"), "failed checkout must not touch stock")
}

func TestSalesService_CheckoutCompensatesPartialDecrement(t *testing.T) {
	productRepo := newFakeProductRepo(tillProducts()...)
	productRepo.failDecrementFor = "p-shake"
	svc := NewSalesService(productRepo, &fakeSaleRepo{})

	_, err := svc.Checkout(context.Background(), domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCard,
		Lines: []domain.CheckoutLine{
			{ProductID: "p-water", Quantity: 2},
			{ProductID: "p-shake", Quantity: 1},
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p-shake", stockErr.ProductID)
	assert.Equal(t, 3, productRepo.stock("p-water"), "stock taken before the failure must be restored")
}

func TestSalesService_CheckoutRestoresWhenSaveFails(t *testing.T) {
	productRepo := newFakeProductRepo(tillProducts()...)
	svc := NewSalesService(productRepo, &fakeSaleRepo{failing: true})

	_, err := svc.Checkout(context.Background(), domain.CheckoutPayload{
		PaymentMethod: domain.PaymentCash,
		Lines:         []domain.CheckoutLine{{ProductID: "p-water", Quantity: 2}},
	})

	require.Error(t, err)
	assert.Equal(t, 3, productRepo.stock("p-water"))
}
