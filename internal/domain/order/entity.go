// internal/domain/order/entity.go
package order

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the immutable-after-creation order header. Amounts are in cents.
// The address fields are a snapshot of the customer profile at confirmation
// time; later profile edits never alter historical orders.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	CustomerID  uint        `gorm:"not null;index" json:"customer_id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"` // Actor who placed the order; differs from the customer for assisted orders
	Status      OrderStatus `gorm:"not null;size:20;default:'pending'" json:"status"`

	TotalAmount int64 `gorm:"not null" json:"total_amount"`
	FinalAmount int64 `gorm:"not null" json:"final_amount"`

	ShippingAddress AddressSnapshot `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  AddressSnapshot `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`

	Notes     string    `gorm:"type:text" json:"notes"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is an immutable order line, created in bulk alongside its order.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ItemID     uint      `gorm:"not null;index" json:"item_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"unit_price"`
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * UnitPrice
	CreatedAt  time.Time `json:"created_at"`
}

// AddressSnapshot is the frozen shipping/billing address embedded in an order
type AddressSnapshot struct {
	Name       string `gorm:"size:255" json:"name"`
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`
	Phone      string `gorm:"size:30" json:"phone"`
	Email      string `gorm:"size:255" json:"email"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber builds an order number for the given date.
// Format: ORD-YYYYMMDD-XXXX with a random 4-digit suffix. Uniqueness is
// enforced by the orders.order_number constraint, not pre-checked here; a
// collision aborts the confirm transaction and the caller retries.
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", at.Format("20060102"), rand.Intn(10000))
}

// GetFormattedTotal returns the final amount as a float
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.FinalAmount) / 100
}
