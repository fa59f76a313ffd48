// internal/domain/customer/entity.go
package customer

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Customer represents a B2B customer account. It is created and maintained by
// the back-office system; this core only reads it.
type Customer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	Street          string         `gorm:"size:255" json:"street"`
	City            string         `gorm:"size:100" json:"city"`
	PostalCode      string         `gorm:"size:20" json:"postal_code"`
	Country         string         `gorm:"size:100" json:"country"`
	Phone1          string         `gorm:"size:30" json:"phone1"`
	Phone2          string         `gorm:"size:30" json:"phone2"`
	Email1          string         `gorm:"size:255" json:"email1"`
	Email2          string         `gorm:"size:255" json:"email2"`
	DiscountPercent float64        `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}

// requiredProfileFields maps checkout-required fields to the labels shown to
// the client when they are missing.
var requiredProfileFields = []struct {
	label string
	value func(*Customer) string
}{
	{"Name", func(c *Customer) string { return c.Name }},
	{"Street", func(c *Customer) string { return c.Street }},
	{"City", func(c *Customer) string { return c.City }},
	{"Postal Code", func(c *Customer) string { return c.PostalCode }},
	{"Country", func(c *Customer) string { return c.Country }},
	{"Phone", func(c *Customer) string { return c.Phone1 }},
	{"Email 1", func(c *Customer) string { return c.Email1 }},
}

// MissingProfileFields returns the labels of checkout-required profile fields
// that are empty. Preview treats a non-empty result as a warning, confirm as a
// hard failure; both call sites share this one check.
func (c *Customer) MissingProfileFields() []string {
	var missing []string
	for _, field := range requiredProfileFields {
		if strings.TrimSpace(field.value(c)) == "" {
			missing = append(missing, field.label)
		}
	}
	return missing
}

// HasCompleteProfile reports whether the customer can confirm a checkout.
func (c *Customer) HasCompleteProfile() bool {
	return len(c.MissingProfileFields()) == 0
}
