// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartStatus represents the cart lifecycle state
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
)

// Cart is the single shopping cart a customer accumulates lines in. At most
// one active cart exists per customer; the constraint is a partial unique
// index on (customer_id) WHERE status = 'active', created in the migration.
type Cart struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CustomerID  uint       `gorm:"not null;index" json:"customer_id"`
	Status      CartStatus `gorm:"not null;size:20;default:'active'" json:"status"`
	LastUpdated time.Time  `gorm:"not null" json:"last_updated"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CartItem is one (item, quantity, price-snapshot) line within a cart. The
// unit price is re-taken from the catalog on every add, not frozen at first
// add. Quantity is at least 1; removal is the only way to zero a line.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_item" json:"cart_id"`
	ItemID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_item" json:"item_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	AddedAt   time.Time `gorm:"not null" json:"added_at"`
}

// TableName overrides
func (Cart) TableName() string     { return "carts" }
func (CartItem) TableName() string { return "cart_items" }
