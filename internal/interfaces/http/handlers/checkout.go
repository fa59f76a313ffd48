// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sales-order-backend/internal/config"
	"github.com/your-org/sales-order-backend/internal/domain/cart"
	"github.com/your-org/sales-order-backend/internal/domain/catalog"
	"github.com/your-org/sales-order-backend/internal/domain/checkout"
	"github.com/your-org/sales-order-backend/internal/domain/customer"
	"github.com/your-org/sales-order-backend/internal/interfaces/http/middleware"
	"github.com/your-org/sales-order-backend/internal/interfaces/http/response"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, cfg *config.Config) *CheckoutHandler {
	cartService := cart.NewService(db, catalog.NewService(db))
	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, cartService, customer.NewService(db)),
		config:          cfg,
	}
}

// PreviewCheckout handles POST /checkout/:customerId/preview
func (h *CheckoutHandler) PreviewCheckout(c *gin.Context) {
	customerID, ok := middleware.RequireCustomerParam(c)
	if !ok {
		return
	}

	var req checkout.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{
			"message": "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	preview, err := h.checkoutService.PreviewCheckout(customerID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout preview generated", preview)
}

// ConfirmCheckout handles POST /checkout/:customerId/confirm
func (h *CheckoutHandler) ConfirmCheckout(c *gin.Context) {
	customerID, ok := middleware.RequireCustomerParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}

	var req checkout.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{
			"message": "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	confirmed, err := h.checkoutService.ConfirmCheckout(customerID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", confirmed)
}
