package domain

import (
	"errors"
	"fmt"
)

// Cart operation failures. These are preconditions, not faults: every
// rejected operation leaves the cart exactly as it was.
var (
	ErrUnknownProduct   = errors.New("product not in catalog")
	ErrProductNoStock   = errors.New("product has no stock on hand")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNoLineSelected   = errors.New("no cart line selected")
	ErrNoPendingProduct = errors.New("no product selected")
	ErrNoMoreStock      = errors.New("no more stock available")
	ErrEmptyCart        = errors.New("cart is empty")
)

// InsufficientStockError reports how many units are actually available so
// the caller can show an exact message.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d in stock for %q", e.Available, e.Name)
}

// CatalogItem is the read-only product snapshot the cart reserves against.
type CatalogItem struct {
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	StockOnHand int     `json:"stock_on_hand"`
}

// Catalog maps product ID to its snapshot. The cart never fetches or
// refreshes it; staleness is the caller's responsibility.
type Catalog map[string]CatalogItem

// CartLine is one product entry in an in-progress sale. A cart holds at
// most one line per product; repeated adds accumulate into it.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Cart manages a sale in progress: an ordered list of lines, a selected
// line, and a pending product selection for the next add. It is the
// till-side collaborator: a front-desk client builds the cart, then
// submits CheckoutPayload to the sales endpoint, where stock is checked
// and decremented against the database. It is not safe for concurrent
// mutation; the caller serializes operations.
type Cart struct {
	catalog  Catalog
	lines    []CartLine
	selected int    // index into lines, -1 when none
	pending  string // product ID picked for the next AddSelected
}

// NewCart creates an empty cart over the given catalog snapshot.
func NewCart(catalog Catalog) *Cart {
	return &Cart{catalog: catalog, selected: -1}
}

// ReplaceCatalog swaps in a fresh catalog snapshot, e.g. after the caller
// re-fetched products. Lines already in the cart are kept as-is.
func (c *Cart) ReplaceCatalog(catalog Catalog) {
	c.catalog = catalog
}

// Lines returns a copy of the current cart lines in order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// SelectedIndex returns the selected line index, or -1 when none.
func (c *Cart) SelectedIndex() int {
	return c.selected
}

// Select marks a product as the pending choice for the next AddSelected.
// Products with no stock on hand cannot be selected.
func (c *Cart) Select(productID string) error {
	item, ok := c.catalog[productID]
	if !ok {
		return ErrUnknownProduct
	}
	if item.StockOnHand <= 0 {
		return ErrProductNoStock
	}
	c.pending = productID
	return nil
}

// StockReserved is the quantity of a product currently held across cart
// lines, not yet committed to a sale.
func (c *Cart) StockReserved(productID string) int {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// StockAvailable is the stock on hand minus what the cart already holds,
// floored at zero.
func (c *Cart) StockAvailable(productID string) int {
	available := c.catalog[productID].StockOnHand - c.StockReserved(productID)
	if available < 0 {
		return 0
	}
	return available
}

// AddSelected adds qty units of the pending product. If a line for the
// product exists its quantity accumulates, otherwise a new line is
// appended; either way that line becomes the selected one. Requesting
// more than the available stock fails with InsufficientStockError and
// mutates nothing.
func (c *Cart) AddSelected(qty int) error {
	if c.pending == "" {
		return ErrNoPendingProduct
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}

	item, ok := c.catalog[c.pending]
	if !ok {
		return ErrUnknownProduct
	}
	if available := c.StockAvailable(c.pending); qty > available {
		return &InsufficientStockError{ProductID: c.pending, Name: item.Name, Available: available}
	}

	for i := range c.lines {
		if c.lines[i].ProductID == c.pending {
			c.lines[i].Quantity += qty
			c.selected = i
			return nil
		}
	}

	c.lines = append(c.lines, CartLine{
		ProductID: c.pending,
		Name:      item.Name,
		Quantity:  qty,
		UnitPrice: item.UnitPrice,
	})
	c.selected = len(c.lines) - 1
	return nil
}

// SelectLine points the selection at an existing line.
func (c *Cart) SelectLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrNoLineSelected
	}
	c.selected = index
	return nil
}

// IncrementSelected raises the selected line's quantity by one as long as
// the cart would not reserve more than the stock on hand.
func (c *Cart) IncrementSelected() error {
	if c.selected < 0 {
		return ErrNoLineSelected
	}
	line := &c.lines[c.selected]
	if c.StockReserved(line.ProductID) >= c.catalog[line.ProductID].StockOnHand {
		return ErrNoMoreStock
	}
	line.Quantity++
	return nil
}

// DecrementSelected lowers the selected line's quantity by one, floored
// at 1. The line is never removed implicitly.
func (c *Cart) DecrementSelected() error {
	if c.selected < 0 {
		return ErrNoLineSelected
	}
	if c.lines[c.selected].Quantity > 1 {
		c.lines[c.selected].Quantity--
	}
	return nil
}

// RemoveSelected deletes the selected line and clears the selection.
func (c *Cart) RemoveSelected() error {
	if c.selected < 0 {
		return ErrNoLineSelected
	}
	c.lines = append(c.lines[:c.selected], c.lines[c.selected+1:]...)
	c.selected = -1
	return nil
}

// Total is the running sum over all lines, rounded to cents. It is
// recomputed on every call, never cached.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return Round2(total)
}

// Reset clears all lines and selections, used on cancel and after a
// confirmed checkout.
func (c *Cart) Reset() {
	c.lines = nil
	c.selected = -1
	c.pending = ""
}

// CheckoutLine is one line of the payload handed to the sales endpoint.
type CheckoutLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CheckoutPayload is the finalized cart handed to sale creation.
type CheckoutPayload struct {
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	Lines         []CheckoutLine `json:"lines"`
}

// Checkout produces the payload for the sale-creation endpoint. It fails
// on an empty cart and does not clear the cart: the caller resets it only
// after the sale is confirmed, so a failed submission can be retried.
func (c *Cart) Checkout(paymentMethod string) (*CheckoutPayload, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	payload := &CheckoutPayload{
		Total:         c.Total(),
		PaymentMethod: paymentMethod,
		Lines:         make([]CheckoutLine, 0, len(c.lines)),
	}
	for _, line := range c.lines {
		payload.Lines = append(payload.Lines, CheckoutLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Subtotal:  Round2(float64(line.Quantity) * line.UnitPrice),
		})
	}
	return payload, nil
}
