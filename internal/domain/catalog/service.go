// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/sales-order-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service is the read-only stock ledger view used by the order core.
// Availability returned here is an advisory snapshot; nothing is reserved.
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetItem retrieves an active catalog item by id
func (s *Service) GetItem(itemID uint) (*Item, error) {
	var item Item
	err := s.db.Where("id = ? AND is_active = ?", itemID, true).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item")
		}
		return nil, fmt.Errorf("failed to retrieve item: %w", err)
	}
	return &item, nil
}

// GetItems retrieves active items by id, keyed for joining against cart lines.
func (s *Service) GetItems(itemIDs []uint) (map[uint]*Item, error) {
	var items []Item
	err := s.db.Where("id IN ? AND is_active = ?", itemIDs, true).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}

	byID := make(map[uint]*Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return byID, nil
}
