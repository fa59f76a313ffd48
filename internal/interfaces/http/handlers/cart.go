// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sales-order-backend/internal/config"
	"github.com/your-org/sales-order-backend/internal/domain/cart"
	"github.com/your-org/sales-order-backend/internal/domain/catalog"
	"github.com/your-org/sales-order-backend/internal/interfaces/http/middleware"
	"github.com/your-org/sales-order-backend/internal/interfaces/http/response"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, catalog.NewService(db)),
		config:      cfg,
	}
}

// GetCart handles GET /cart/:customerId
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, ok := middleware.RequireCustomerParam(c)
	if !ok {
		return
	}

	cartResponse, err := h.cartService.GetActiveCart(customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cartResponse)
}

// AddItem handles POST /cart/:customerId/items
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := middleware.RequireCustomerParam(c)
	if !ok {
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{
			"message": "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.AddItem(customerID, req.ItemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart successfully", cartResponse)
}

// UpdateCartItem handles PUT /cart/items/:cartItemId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}

	cartItemID, ok := parseIDParam(c, "cartItemId")
	if !ok {
		return
	}

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{
			"message": "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.UpdateItemQuantity(customerID, cartItemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item updated successfully", cartResponse)
}

// RemoveCartItem handles DELETE /cart/items/:cartItemId
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}

	cartItemID, ok := parseIDParam(c, "cartItemId")
	if !ok {
		return
	}

	cartResponse, err := h.cartService.RemoveItem(customerID, cartItemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from cart successfully", cartResponse)
}

// ClearCart handles DELETE /cart/:customerId/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	customerID, ok := middleware.RequireCustomerParam(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(customerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared successfully", nil)
}

// ConvertCart handles POST /cart/:customerId/convert
func (h *CartHandler) ConvertCart(c *gin.Context) {
	customerID, ok := middleware.RequireCustomerParam(c)
	if !ok {
		return
	}

	converted, err := h.cartService.ConvertCart(customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart converted successfully", converted)
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return uint(value), true
}
