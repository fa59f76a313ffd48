// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/sales-order-backend/internal/domain/cart"
	"github.com/your-org/sales-order-backend/internal/domain/catalog"
	"github.com/your-org/sales-order-backend/internal/domain/customer"
	"github.com/your-org/sales-order-backend/internal/domain/order"
	"github.com/your-org/sales-order-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: read models first, then carts, then orders
	models := []interface{}{
		&user.User{},
		&customer.Customer{},
		&catalog.Item{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the constraint indexes gorm tags cannot express.
// The partial unique index is what makes the cart get-or-create race-safe:
// two concurrent inserts for the same customer cannot both land an active row.
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating database indexes...")

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_customer_active
			ON carts (customer_id) WHERE status = 'active'`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_date
			ON orders (customer_id, order_date DESC)`,
	}

	for _, stmt := range indexes {
		if err := m.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created")
	return nil
}

// SeedInitialData seeds sample customers and items for development
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	if err := m.seedUsers(); err != nil {
		return err
	}
	if err := m.seedCustomers(); err != nil {
		return err
	}
	if err := m.seedItems(); err != nil {
		return err
	}

	log.Println("✅ Initial data seeded")
	return nil
}

func (m *Migration) seedUsers() error {
	var count int64
	m.db.Model(&user.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	salesUser := user.User{
		Email:      "sales@example.com",
		Password:   string(hash),
		FirstName:  "Sales",
		LastName:   "Desk",
		IsEmployee: true,
		IsActive:   true,
	}
	if err := m.db.Create(&salesUser).Error; err != nil {
		return fmt.Errorf("failed to seed sales user: %w", err)
	}
	return nil
}

func (m *Migration) seedCustomers() error {
	var count int64
	m.db.Model(&customer.Customer{}).Count(&count)
	if count > 0 {
		return nil
	}

	customers := []customer.Customer{
		{
			Name:            "Acme Wholesale GmbH",
			Street:          "Industriestraße 12",
			City:            "Hamburg",
			PostalCode:      "20095",
			Country:         "Germany",
			Phone1:          "+49 40 1234567",
			Email1:          "orders@acme-wholesale.example",
			DiscountPercent: 15,
			IsActive:        true,
		},
		{
			Name:     "Northwind Retail Ltd", // Incomplete profile on purpose
			City:     "Leeds",
			Country:  "United Kingdom",
			IsActive: true,
		},
	}

	for _, c := range customers {
		if err := m.db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", c.Name, err)
		}
	}
	return nil
}

func (m *Migration) seedItems() error {
	var count int64
	m.db.Model(&catalog.Item{}).Count(&count)
	if count > 0 {
		return nil
	}

	discounted := func(p int64) *int64 { return &p }

	items := []catalog.Item{
		{Code: "PAL-EUR-01", Name: "Euro Pallet", Description: "Standard EUR/EPAL pallet", Price: 1250, Quantity: 500, IsActive: true},
		{Code: "BOX-M-20", Name: "Shipping Box M (20 pack)", Description: "400x300x200mm double wall", Price: 2400, DiscountPrice: discounted(2150), Quantity: 120, IsActive: true},
		{Code: "TAPE-48", Name: "Packing Tape 48mm", Description: "Brown PP tape, 66m roll", Price: 189, Quantity: 1000, IsActive: true},
		{Code: "WRAP-23", Name: "Stretch Wrap 23µ", Description: "500mm x 300m hand roll", Price: 799, DiscountPrice: discounted(699), Quantity: 5, IsActive: true},
	}

	for _, item := range items {
		if err := m.db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to seed item %s: %w", item.Code, err)
		}
	}
	return nil
}

// GetTableInfo logs row counts for the core tables
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "customers", "items", "carts", "cart_items", "orders", "order_items"}
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("Table %s: error counting rows: %v", table, err)
			continue
		}
		log.Printf("Table %s: %d rows", table, count)
	}
}
