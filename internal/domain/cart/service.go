// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/sales-order-backend/internal/domain/catalog"
	"github.com/your-org/sales-order-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles cart business logic
type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
}

// NewService creates a new cart service
func NewService(db *gorm.DB, catalogService *catalog.Service) *Service {
	return &Service{
		db:      db,
		catalog: catalogService,
	}
}

// CartLineResponse represents a cart line with its item summary
type CartLineResponse struct {
	ID        uint             `json:"id"`
	Quantity  int              `json:"quantity"`
	UnitPrice int64            `json:"unit_price"`
	AddedAt   time.Time        `json:"added_at"`
	Item      *catalog.Summary `json:"item,omitempty"`
}

// CartInfo is the cart header projection
type CartInfo struct {
	ID          uint       `json:"id"`
	CustomerID  uint       `json:"customer_id"`
	Status      CartStatus `json:"status"`
	LastUpdated time.Time  `json:"last_updated"`
	ItemCount   int        `json:"item_count"`
}

// CartResponse represents the active cart with its lines
type CartResponse struct {
	Cart  CartInfo           `json:"cart"`
	Items []CartLineResponse `json:"items"`
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a quantity update request
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetActiveCart returns the customer's active cart and its lines, newest
// first. An empty active cart is created if none exists yet.
func (s *Service) GetActiveCart(customerID uint) (*CartResponse, error) {
	activeCart, err := s.getOrCreateActiveCart(customerID)
	if err != nil {
		return nil, err
	}

	lines, err := s.loadLines(activeCart.ID)
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		Cart: CartInfo{
			ID:          activeCart.ID,
			CustomerID:  activeCart.CustomerID,
			Status:      activeCart.Status,
			LastUpdated: activeCart.LastUpdated,
			ItemCount:   len(lines),
		},
		Items: lines,
	}, nil
}

// AddItem adds an item to the customer's active cart. If a line for the item
// already exists the quantities are merged and the stored unit price is
// refreshed to the item's current price. The requested total is validated
// against the item's available quantity at call time.
func (s *Service) AddItem(customerID, itemID uint, quantity int) (*CartResponse, error) {
	if quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}

	item, err := s.catalog.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	activeCart, err := s.getOrCreateActiveCart(customerID)
	if err != nil {
		return nil, err
	}

	var existing CartItem
	result := s.db.Where("cart_id = ? AND item_id = ?", activeCart.ID, itemID).First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if item.Quantity < quantity {
			return nil, &apperrors.InsufficientStockError{
				ItemName:  item.Name,
				Available: item.Quantity,
				Requested: quantity,
			}
		}

		line := CartItem{
			CartID:    activeCart.ID,
			ItemID:    itemID,
			Quantity:  quantity,
			UnitPrice: item.Price,
			AddedAt:   time.Now().UTC(),
		}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart line: %w", err)
		}
	} else if result.Error != nil {
		return nil, fmt.Errorf("failed to look up cart line: %w", result.Error)
	} else {
		newQuantity := existing.Quantity + quantity
		if item.Quantity < newQuantity {
			return nil, &apperrors.InsufficientStockError{
				ItemName:  item.Name,
				Available: item.Quantity,
				Requested: newQuantity,
			}
		}

		existing.Quantity = newQuantity
		existing.UnitPrice = item.Price // Re-snapshot in case the price changed
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart line: %w", err)
		}
	}

	if err := s.touchCart(activeCart.ID); err != nil {
		return nil, err
	}

	return s.GetActiveCart(customerID)
}

// UpdateItemQuantity sets the quantity of a cart line belonging to the
// customer's active cart. The new quantity is validated against the line's
// item availability.
func (s *Service) UpdateItemQuantity(customerID, cartItemID uint, quantity int) (*CartResponse, error) {
	if quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}

	line, err := s.findCustomerLine(customerID, cartItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.catalog.GetItem(line.ItemID)
	if err != nil {
		return nil, err
	}

	if item.Quantity < quantity {
		return nil, &apperrors.InsufficientStockError{
			ItemName:  item.Name,
			Available: item.Quantity,
			Requested: quantity,
		}
	}

	if err := s.db.Model(line).Update("quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}

	if err := s.touchCart(line.CartID); err != nil {
		return nil, err
	}

	return s.GetActiveCart(customerID)
}

// RemoveItem deletes a cart line from the customer's active cart
func (s *Service) RemoveItem(customerID, cartItemID uint) (*CartResponse, error) {
	line, err := s.findCustomerLine(customerID, cartItemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(&CartItem{}, line.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete cart line: %w", err)
	}

	if err := s.touchCart(line.CartID); err != nil {
		return nil, err
	}

	return s.GetActiveCart(customerID)
}

// ClearCart deletes all lines of the customer's active cart
func (s *Service) ClearCart(customerID uint) error {
	activeCart, err := s.findActiveCart(customerID)
	if err != nil {
		return err
	}

	if err := s.db.Where("cart_id = ?", activeCart.ID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return s.touchCart(activeCart.ID)
}

// ConvertCart marks the customer's active cart as converted, freezing it
// without creating an order. This is distinct from checkout confirmation,
// which drains the selected lines and keeps the cart active.
func (s *Service) ConvertCart(customerID uint) (*Cart, error) {
	activeCart, err := s.findActiveCart(customerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":       CartStatusConverted,
		"last_updated": time.Now().UTC(),
	}
	if err := s.db.Model(activeCart).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to convert cart: %w", err)
	}

	return activeCart, nil
}

// FindActiveCart returns the customer's active cart without creating one.
// Callers that need get-or-create semantics use GetActiveCart.
func (s *Service) FindActiveCart(customerID uint) (*Cart, error) {
	return s.findActiveCart(customerID)
}

// LinesWithItems returns the given cart's lines joined with their items.
func (s *Service) LinesWithItems(cartID uint) ([]CartItem, map[uint]*catalog.Item, error) {
	var lines []CartItem
	err := s.db.Where("cart_id = ?", cartID).Order("added_at DESC").Find(&lines).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart lines: %w", err)
	}

	if len(lines) == 0 {
		return lines, map[uint]*catalog.Item{}, nil
	}

	itemIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.ItemID)
	}

	items, err := s.catalog.GetItems(itemIDs)
	if err != nil {
		return nil, nil, err
	}
	return lines, items, nil
}

// TouchCart bumps the cart's last_updated timestamp. Exposed for the
// checkout transaction, which touches the cart through its own tx handle.
func TouchCart(db *gorm.DB, cartID uint) error {
	err := db.Model(&Cart{}).Where("id = ?", cartID).
		Update("last_updated", time.Now().UTC()).Error
	if err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}

// Private helper methods

// getOrCreateActiveCart is race-safe: the insert carries ON CONFLICT DO
// NOTHING against the partial unique active-cart index, so two concurrent
// first interactions end up reading the same row.
func (s *Service) getOrCreateActiveCart(customerID uint) (*Cart, error) {
	newCart := Cart{
		CustomerID:  customerID,
		Status:      CartStatusActive,
		LastUpdated: time.Now().UTC(),
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&newCart).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return s.findActiveCart(customerID)
}

func (s *Service) findActiveCart(customerID uint) (*Cart, error) {
	var activeCart Cart
	err := s.db.Where("customer_id = ? AND status = ?", customerID, CartStatusActive).
		First(&activeCart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("active cart")
		}
		return nil, fmt.Errorf("failed to retrieve active cart: %w", err)
	}
	return &activeCart, nil
}

// findCustomerLine scopes a cart line lookup to the customer's active cart so
// one customer can never mutate another's lines.
func (s *Service) findCustomerLine(customerID, cartItemID uint) (*CartItem, error) {
	activeCart, err := s.findActiveCart(customerID)
	if err != nil {
		return nil, err
	}

	var line CartItem
	err = s.db.Where("id = ? AND cart_id = ?", cartItemID, activeCart.ID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item")
		}
		return nil, fmt.Errorf("failed to retrieve cart line: %w", err)
	}
	return &line, nil
}

func (s *Service) touchCart(cartID uint) error {
	return TouchCart(s.db, cartID)
}

func (s *Service) loadLines(cartID uint) ([]CartLineResponse, error) {
	lines, items, err := s.LinesWithItems(cartID)
	if err != nil {
		return nil, err
	}

	responses := make([]CartLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = CartLineResponse{
			ID:        line.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			AddedAt:   line.AddedAt,
		}
		if item, ok := items[line.ItemID]; ok {
			summary := item.Summarize()
			responses[i].Item = &summary
		}
	}
	return responses, nil
}
