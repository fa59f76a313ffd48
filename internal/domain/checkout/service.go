// internal/domain/checkout/service.go
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/sales-order-backend/internal/domain/cart"
	"github.com/your-org/sales-order-backend/internal/domain/catalog"
	"github.com/your-org/sales-order-backend/internal/domain/customer"
	"github.com/your-org/sales-order-backend/internal/domain/order"
	"github.com/your-org/sales-order-backend/internal/domain/pricing"
	"github.com/your-org/sales-order-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service orchestrates checkout: it resolves the selection against the
// customer's active cart, gates on the customer profile, and runs the
// all-or-nothing order-creation transaction.
type Service struct {
	db              *gorm.DB
	cartService     *cart.Service
	customerService *customer.Service
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cartService *cart.Service, customerService *customer.Service) *Service {
	return &Service{
		db:              db,
		cartService:     cartService,
		customerService: customerService,
	}
}

// CheckoutRequest selects the cart lines a preview or confirm call targets.
// Cart-line ids take precedence over item ids when both are given.
type CheckoutRequest struct {
	CartItemIDs []uint `json:"cart_item_ids,omitempty"`
	ItemIDs     []uint `json:"item_ids,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CheckoutLine is the client-facing projection of one selected line
type CheckoutLine struct {
	CartItemID uint   `json:"cart_item_id"`
	ItemID     uint   `json:"item_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
}

// PreviewWarnings carries non-fatal issues detected during preview
type PreviewWarnings struct {
	MissingFields []string `json:"missing_fields,omitempty"`
}

// PreviewResponse is the draft order view. The order number is advisory and
// not persisted; confirm generates a fresh one.
type PreviewResponse struct {
	OrderNumber string            `json:"order_number"`
	Status      order.OrderStatus `json:"status"`
	OrderDate   time.Time         `json:"order_date"`
	Items       []CheckoutLine    `json:"items"`
	TotalAmount int64             `json:"total_amount"`
	Pricing     pricing.Quote     `json:"pricing"`
	Notes       string            `json:"notes,omitempty"`
	Warnings    *PreviewWarnings  `json:"warnings,omitempty"`
}

// ConfirmResponse is the created order plus a projection carrying the
// human-readable line names, which the order rows themselves do not store.
type ConfirmResponse struct {
	Order *order.Order   `json:"order"`
	Items []CheckoutLine `json:"items"`
}

// resolvedLine pairs a selected cart line with its catalog item
type resolvedLine struct {
	line cart.CartItem
	item *catalog.Item
}

// PreviewCheckout computes the draft order for a selection. Profile
// incompleteness is downgraded to a warning so the client always gets
// totals; nothing is written.
func (s *Service) PreviewCheckout(customerID uint, req *CheckoutRequest) (*PreviewResponse, error) {
	cust, err := s.customerService.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}

	_, resolved, err := s.resolveSelection(customerID, req)
	if err != nil {
		return nil, err
	}

	lines, totalAmount := buildCheckoutLines(resolved)
	quote := pricing.BestOf(pricingLines(resolved), cust.DiscountPercent)

	now := time.Now().UTC()
	response := &PreviewResponse{
		OrderNumber: order.GenerateOrderNumber(now),
		Status:      order.OrderStatusPending,
		OrderDate:   now,
		Items:       lines,
		TotalAmount: totalAmount,
		Pricing:     quote,
		Notes:       req.Notes,
	}

	if missing := cust.MissingProfileFields(); len(missing) > 0 {
		response.Warnings = &PreviewWarnings{MissingFields: missing}
	}

	return response, nil
}

// ConfirmCheckout converts the selection into a persisted order inside one
// transaction: order header, order lines, deletion of exactly the selected
// cart lines, and a cart touch. Any failure rolls the whole thing back.
//
// Item availability is not re-validated here; the transaction trusts the
// cart snapshot. Stock races between add-to-cart and confirm are accepted.
func (s *Service) ConfirmCheckout(customerID, userID uint, req *CheckoutRequest) (*ConfirmResponse, error) {
	cust, err := s.customerService.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}

	if missing := cust.MissingProfileFields(); len(missing) > 0 {
		return nil, &apperrors.ProfileIncompleteError{MissingFields: missing}
	}

	activeCart, resolved, err := s.resolveSelection(customerID, req)
	if err != nil {
		return nil, err
	}

	lines, totalAmount := buildCheckoutLines(resolved)

	now := time.Now().UTC()
	address := addressSnapshot(cust)
	newOrder := order.Order{
		OrderNumber:     order.GenerateOrderNumber(now),
		CustomerID:      customerID,
		UserID:          userID,
		Status:          order.OrderStatusPending,
		TotalAmount:     totalAmount,
		FinalAmount:     totalAmount,
		ShippingAddress: address,
		BillingAddress:  address,
		Notes:           req.Notes,
		OrderDate:       now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]order.OrderItem, len(resolved))
		for i, sel := range resolved {
			orderItems[i] = order.OrderItem{
				OrderID:    newOrder.ID,
				ItemID:     sel.line.ItemID,
				Quantity:   sel.line.Quantity,
				UnitPrice:  lines[i].UnitPrice,
				TotalPrice: lines[i].TotalPrice,
			}
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		// Delete exactly the selected lines; unselected lines stay in the
		// cart for a later checkout and the cart remains active.
		lineIDs := make([]uint, len(resolved))
		for i, sel := range resolved {
			lineIDs[i] = sel.line.ID
		}
		err := tx.Where("id IN ? AND cart_id = ?", lineIDs, activeCart.ID).
			Delete(&cart.CartItem{}).Error
		if err != nil {
			return fmt.Errorf("failed to remove checked-out cart lines: %w", err)
		}

		return cart.TouchCart(tx, activeCart.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Order-number collision. Not retried in place: the whole
			// transaction aborted and the caller retries with a fresh number.
			return nil, fmt.Errorf("order number collision, retry checkout: %w", apperrors.ErrStorageUnavailable)
		}
		return nil, err
	}

	newOrder.Items = nil
	if err := s.db.Preload("Items").First(&newOrder, newOrder.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}

	return &ConfirmResponse{
		Order: &newOrder,
		Items: lines,
	}, nil
}

// resolveSelection maps the request's ids to concrete cart lines of the
// customer's active cart. Ids that match nothing, or rows belonging to
// another cart, are silently excluded so stale client selections stay
// harmless. An empty resolved set is a checkout-level failure.
func (s *Service) resolveSelection(customerID uint, req *CheckoutRequest) (*cart.Cart, []resolvedLine, error) {
	activeCart, err := s.cartService.FindActiveCart(customerID)
	if err != nil {
		return nil, nil, err
	}

	allLines, items, err := s.cartService.LinesWithItems(activeCart.ID)
	if err != nil {
		return nil, nil, err
	}

	var resolved []resolvedLine
	switch {
	case len(req.CartItemIDs) > 0:
		wanted := toIDSet(req.CartItemIDs)
		for _, line := range allLines {
			if wanted[line.ID] {
				resolved = append(resolved, resolvedLine{line: line, item: items[line.ItemID]})
			}
		}
	case len(req.ItemIDs) > 0:
		wanted := toIDSet(req.ItemIDs)
		for _, line := range allLines {
			if wanted[line.ItemID] {
				resolved = append(resolved, resolvedLine{line: line, item: items[line.ItemID]})
			}
		}
	}

	if len(resolved) == 0 {
		return nil, nil, apperrors.NotFound("matching cart items for selection")
	}

	return activeCart, resolved, nil
}

// buildCheckoutLines computes per-line totals and the grand total. The unit
// price prefers the cart-line snapshot and falls back to the current item
// price when the snapshot is missing.
func buildCheckoutLines(resolved []resolvedLine) ([]CheckoutLine, int64) {
	lines := make([]CheckoutLine, len(resolved))
	var total int64

	for i, sel := range resolved {
		unitPrice := sel.line.UnitPrice
		if unitPrice <= 0 && sel.item != nil {
			unitPrice = sel.item.Price
		}
		linetotal := unitPrice * int64(sel.line.Quantity)

		lines[i] = CheckoutLine{
			CartItemID: sel.line.ID,
			ItemID:     sel.line.ItemID,
			Quantity:   sel.line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: linetotal,
		}
		if sel.item != nil {
			lines[i].Code = sel.item.Code
			lines[i].Name = sel.item.Name
		}
		total += linetotal
	}

	return lines, total
}

func pricingLines(resolved []resolvedLine) []pricing.LineItem {
	lines := make([]pricing.LineItem, len(resolved))
	for i, sel := range resolved {
		unitPrice := sel.line.UnitPrice
		var discounted *int64
		if sel.item != nil {
			if unitPrice <= 0 {
				unitPrice = sel.item.Price
			}
			discounted = sel.item.DiscountPrice
		}
		lines[i] = pricing.LineItem{
			BaseUnitPrice:       unitPrice,
			DiscountedUnitPrice: discounted,
			Quantity:            sel.line.Quantity,
		}
	}
	return lines
}

func addressSnapshot(cust *customer.Customer) order.AddressSnapshot {
	return order.AddressSnapshot{
		Name:       cust.Name,
		Street:     cust.Street,
		City:       cust.City,
		PostalCode: cust.PostalCode,
		Country:    cust.Country,
		Phone:      cust.Phone1,
		Email:      cust.Email1,
	}
}

func toIDSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
