// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a catalog entry. Prices are in cents. The order core reads
// price and availability here but never mutates stock; reservation lives in
// the warehouse system.
type Item struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null;size:100" json:"code"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	DiscountPrice *int64         `json:"discount_price,omitempty"` // Per-product discounted unit price, if any
	Quantity      int            `gorm:"not null;default:0" json:"quantity"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "items"
}

// EffectiveDiscountPrice returns the discounted unit price when one is set
// and valid. Negative values are treated as absent.
func (i *Item) EffectiveDiscountPrice() (int64, bool) {
	if i.DiscountPrice == nil || *i.DiscountPrice < 0 {
		return 0, false
	}
	return *i.DiscountPrice, true
}

// Summary is the item projection embedded in cart and checkout responses.
type Summary struct {
	ID            uint   `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discount_price,omitempty"`
	Quantity      int    `json:"quantity"`
}

// Summarize builds the client-facing projection of an item.
func (i *Item) Summarize() Summary {
	return Summary{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		Description:   i.Description,
		Price:         i.Price,
		DiscountPrice: i.DiscountPrice,
		Quantity:      i.Quantity,
	}
}
