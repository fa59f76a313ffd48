// internal/domain/customer/entity_test.go
package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeCustomer() *Customer {
	return &Customer{
		Name:       "Acme Wholesale GmbH",
		Street:     "Industriestraße 12",
		City:       "Hamburg",
		PostalCode: "20095",
		Country:    "Germany",
		Phone1:     "+49 40 1234567",
		Email1:     "orders@acme-wholesale.example",
	}
}

func TestMissingProfileFields_CompleteProfile(t *testing.T) {
	c := completeCustomer()

	assert.Empty(t, c.MissingProfileFields())
	assert.True(t, c.HasCompleteProfile())
}

func TestMissingProfileFields_ReportsLabels(t *testing.T) {
	c := completeCustomer()
	c.Street = ""
	c.PostalCode = ""
	c.Email1 = ""

	missing := c.MissingProfileFields()

	assert.Equal(t, []string{"Street", "Postal Code", "Email 1"}, missing)
	assert.False(t, c.HasCompleteProfile())
}

func TestMissingProfileFields_WhitespaceCountsAsEmpty(t *testing.T) {
	c := completeCustomer()
	c.Phone1 = "   "

	assert.Equal(t, []string{"Phone"}, c.MissingProfileFields())
}

func TestMissingProfileFields_SecondaryContactsNotRequired(t *testing.T) {
	// Phone2 and Email2 are optional; only the primary contact gates checkout.
	c := completeCustomer()
	c.Phone2 = ""
	c.Email2 = ""

	assert.True(t, c.HasCompleteProfile())
}

func TestMissingProfileFields_EmptyCustomer(t *testing.T) {
	c := &Customer{}

	missing := c.MissingProfileFields()

	assert.Equal(t, []string{"Name", "Street", "City", "Postal Code", "Country", "Phone", "Email 1"}, missing)
}
