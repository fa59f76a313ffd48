// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sales-order-backend/internal/config"
	"github.com/your-org/sales-order-backend/internal/pkg/auth"
)

// AuthMiddleware creates JWT authentication middleware. The validated claims
// supply the customer identity every cart and checkout operation is scoped
// to; path parameters are never the source of truth for mutations.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("customer_id", claims.CustomerID)
		c.Set("user_email", claims.Email)
		c.Set("is_employee", claims.IsEmployee)

		c.Next()
	}
}

// GetCustomerIDFromContext extracts the authenticated customer id
func GetCustomerIDFromContext(c *gin.Context) (uint, bool) {
	customerID, exists := c.Get("customer_id")
	if !exists {
		return 0, false
	}
	return customerID.(uint), true
}

// GetUserIDFromContext extracts the acting user id
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// RequireCustomerParam resolves the authenticated customer id and rejects
// requests whose :customerId path segment names a different customer.
// Employees may act for any customer named in the path.
func RequireCustomerParam(c *gin.Context) (uint, bool) {
	customerID, ok := GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authentication required",
		})
		c.Abort()
		return 0, false
	}

	param := c.Param("customerId")
	if param == "" {
		return customerID, true
	}

	pathID, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid customer id",
		})
		c.Abort()
		return 0, false
	}

	if isEmployee, _ := c.Get("is_employee"); isEmployee == true {
		return uint(pathID), true
	}

	if uint(pathID) != customerID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Customer mismatch",
		})
		c.Abort()
		return 0, false
	}

	return customerID, true
}
