// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/sales-order-backend/internal/config"
	"github.com/your-org/sales-order-backend/internal/interfaces/http/handlers"
	"github.com/your-org/sales-order-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes. Every route runs under the authenticated
// customer context; the :customerId path segments exist for client routing
// symmetry but mutations always resolve the customer from the token.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)

	authenticated := rg.Group("")
	authenticated.Use(middleware.AuthMiddleware(cfg))

	cartRoutes := authenticated.Group("/cart")
	{
		cartRoutes.GET("/:customerId", cartHandler.GetCart)
		cartRoutes.POST("/:customerId/items", cartHandler.AddItem)
		cartRoutes.PUT("/items/:cartItemId", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:cartItemId", cartHandler.RemoveCartItem)
		cartRoutes.DELETE("/:customerId/clear", cartHandler.ClearCart)
		cartRoutes.POST("/:customerId/convert", cartHandler.ConvertCart)
	}

	checkoutRoutes := authenticated.Group("/checkout")
	{
		checkoutRoutes.POST("/:customerId/preview", checkoutHandler.PreviewCheckout)
		checkoutRoutes.POST("/:customerId/confirm", checkoutHandler.ConfirmCheckout)
	}

	orderRoutes := authenticated.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.ListOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.GET("/number/:orderNumber", orderHandler.GetOrderByNumber)
	}
}
