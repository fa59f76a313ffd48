// internal/domain/customer/service.go
package customer

import (
	"errors"
	"fmt"

	"github.com/your-org/sales-order-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service provides read access to customer accounts
type Service struct {
	db *gorm.DB
}

// NewService creates a new customer service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetCustomer retrieves a customer by id
func (s *Service) GetCustomer(customerID uint) (*Customer, error) {
	var cust Customer
	if err := s.db.First(&cust, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("customer")
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	return &cust, nil
}
