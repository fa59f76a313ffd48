// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sales-order-backend/internal/domain/catalog"
	"github.com/your-org/sales-order-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&catalog.Item{}, &Cart{}, &CartItem{}))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_customer_active
		ON carts (customer_id) WHERE status = 'active'`).Error)

	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewService(db, catalog.NewService(db)), db
}

func seedItem(t *testing.T, db *gorm.DB, item catalog.Item) catalog.Item {
	t.Helper()
	item.IsActive = true
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestGetActiveCart_CreatesAndReuses(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.GetActiveCart(42)
	require.NoError(t, err)
	assert.NotZero(t, first.Cart.ID)
	assert.Equal(t, uint(42), first.Cart.CustomerID)
	assert.Equal(t, CartStatusActive, first.Cart.Status)
	assert.Empty(t, first.Items)

	second, err := svc.GetActiveCart(42)
	require.NoError(t, err)
	assert.Equal(t, first.Cart.ID, second.Cart.ID)
}

func TestGetActiveCart_SeparateCartsPerCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.GetActiveCart(1)
	require.NoError(t, err)
	b, err := svc.GetActiveCart(2)
	require.NoError(t, err)

	assert.NotEqual(t, a.Cart.ID, b.Cart.ID)
}

func TestAddItem_CreatesLine(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "PAL-EUR-01", Name: "Euro Pallet", Price: 1250, Quantity: 500})

	resp, err := svc.AddItem(1, item.ID, 3)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, int64(1250), resp.Items[0].UnitPrice)
	assert.Equal(t, 1, resp.Cart.ItemCount)
	require.NotNil(t, resp.Items[0].Item)
	assert.Equal(t, "PAL-EUR-01", resp.Items[0].Item.Code)
}

func TestAddItem_MergesQuantitiesAndResnapshotsPrice(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "BOX-M-20", Name: "Shipping Box M", Price: 2400, Quantity: 100})

	_, err := svc.AddItem(1, item.ID, 2)
	require.NoError(t, err)

	// Price changes between adds; the merged line takes the current price.
	require.NoError(t, db.Model(&catalog.Item{}).Where("id = ?", item.ID).Update("price", 2500).Error)

	resp, err := svc.AddItem(1, item.ID, 3)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, int64(2500), resp.Items[0].UnitPrice)
}

func TestAddItem_InsufficientStock(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "WRAP-23", Name: "Stretch Wrap", Price: 799, Quantity: 5})

	_, err := svc.AddItem(1, item.ID, 6)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Stretch Wrap", stockErr.ItemName)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	// Nothing was written.
	resp, err := svc.GetActiveCart(1)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestAddItem_MergeExceedingStockRejected(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "WRAP-23", Name: "Stretch Wrap", Price: 799, Quantity: 5})

	_, err := svc.AddItem(1, item.ID, 3)
	require.NoError(t, err)

	_, err = svc.AddItem(1, item.ID, 3)

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)

	// The existing line keeps its quantity.
	resp, err := svc.GetActiveCart(1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
}

func TestAddItem_QuantityBelowOne(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "TAPE-48", Name: "Packing Tape", Price: 189, Quantity: 10})

	_, err := svc.AddItem(1, item.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(1, item.ID, -2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAddItem_UnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(1, 999, 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddItem_InactiveItem(t *testing.T) {
	svc, db := newTestService(t)
	item := catalog.Item{Code: "OLD-01", Name: "Retired", Price: 100, Quantity: 10, IsActive: false}
	require.NoError(t, db.Create(&item).Error)

	_, err := svc.AddItem(1, item.ID, 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateItemQuantity_SetsQuantity(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "TAPE-48", Name: "Packing Tape", Price: 189, Quantity: 10})

	added, err := svc.AddItem(1, item.ID, 2)
	require.NoError(t, err)

	resp, err := svc.UpdateItemQuantity(1, added.Items[0].ID, 7)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 7, resp.Items[0].Quantity)
}

func TestUpdateItemQuantity_StockGate(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "WRAP-23", Name: "Stretch Wrap", Price: 799, Quantity: 5})

	added, err := svc.AddItem(1, item.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(1, added.Items[0].ID, 9)

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
}

func TestUpdateItemQuantity_QuantityBelowOne(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateItemQuantity(1, 1, 0)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateItemQuantity_UnknownLine(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetActiveCart(1)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(1, 999, 2)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateItemQuantity_OtherCustomersLine(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "TAPE-48", Name: "Packing Tape", Price: 189, Quantity: 10})

	added, err := svc.AddItem(1, item.ID, 2)
	require.NoError(t, err)

	_, err = svc.GetActiveCart(2)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(2, added.Items[0].ID, 5)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, db := newTestService(t)
	tape := seedItem(t, db, catalog.Item{Code: "TAPE-48", Name: "Packing Tape", Price: 189, Quantity: 10})
	wrap := seedItem(t, db, catalog.Item{Code: "WRAP-23", Name: "Stretch Wrap", Price: 799, Quantity: 10})

	_, err := svc.AddItem(1, tape.ID, 2)
	require.NoError(t, err)
	added, err := svc.AddItem(1, wrap.ID, 1)
	require.NoError(t, err)

	var wrapLineID uint
	for _, line := range added.Items {
		if line.Item != nil && line.Item.Code == "WRAP-23" {
			wrapLineID = line.ID
		}
	}
	require.NotZero(t, wrapLineID)

	resp, err := svc.RemoveItem(1, wrapLineID)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "TAPE-48", resp.Items[0].Item.Code)
}

func TestClearCart(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "TAPE-48", Name: "Packing Tape", Price: 189, Quantity: 10})

	_, err := svc.AddItem(1, item.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(1))

	resp, err := svc.GetActiveCart(1)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestClearCart_NoActiveCart(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.ClearCart(1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConvertCart_FreezesCart(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, catalog.Item{Code: "TAPE-48", Name: "Packing Tape", Price: 189, Quantity: 10})

	added, err := svc.AddItem(1, item.ID, 2)
	require.NoError(t, err)

	converted, err := svc.ConvertCart(1)
	require.NoError(t, err)
	assert.Equal(t, added.Cart.ID, converted.ID)

	var stored Cart
	require.NoError(t, db.First(&stored, converted.ID).Error)
	assert.Equal(t, CartStatusConverted, stored.Status)

	// A converted cart is out of the way; the next interaction starts fresh.
	_, err = svc.FindActiveCart(1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	fresh, err := svc.GetActiveCart(1)
	require.NoError(t, err)
	assert.NotEqual(t, converted.ID, fresh.Cart.ID)
	assert.Empty(t, fresh.Items)
}

func TestConvertCart_NoActiveCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ConvertCart(1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
