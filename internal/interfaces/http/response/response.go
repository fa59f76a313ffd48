// internal/interfaces/http/response/response.go
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sales-order-backend/internal/pkg/apperrors"
)

// Envelope is the uniform JSON response shape for every endpoint
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// OK writes a 200 response
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 response
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// BadRequest writes a 400 response
func BadRequest(c *gin.Context, err interface{}) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err})
}

// Error maps a service error onto the HTTP failure taxonomy: 404 for missing
// cart/line/item/customer, 400 for validation/stock/profile failures, 503
// when storage is unreachable, 500 otherwise.
func Error(c *gin.Context, err error) {
	var profileErr *apperrors.ProfileIncompleteError
	if errors.As(err, &profileErr) {
		c.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Error: gin.H{
				"message":        profileErr.Error(),
				"missing_fields": profileErr.MissingFields,
			},
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrInsufficientStock):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, Envelope{Success: false, Error: err.Error()})
}
