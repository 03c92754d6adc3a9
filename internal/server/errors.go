package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/subtrack/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/subtrack/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/subtrack/internal/payment/domain"
	subscriptiondomain "github.com/smallbiznis/subtrack/internal/subscription/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware maps domain errors onto HTTP statuses after the
// handler chain runs.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isNotFound(err):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case isInvalidInput(err):
		return http.StatusBadRequest, errorPayload{Type: "invalid_input", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal error"}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, customerdomain.ErrNotFound) ||
		errors.Is(err, catalogdomain.ErrNotFound) ||
		errors.Is(err, subscriptiondomain.ErrNotFound) ||
		errors.Is(err, invoicedomain.ErrNotFound)
}

func isInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, customerdomain.ErrInvalidName) ||
		errors.Is(err, customerdomain.ErrInvalidEmail) ||
		errors.Is(err, customerdomain.ErrInvalidID) ||
		errors.Is(err, catalogdomain.ErrInvalidName) ||
		errors.Is(err, catalogdomain.ErrInvalidID) ||
		errors.Is(err, subscriptiondomain.ErrInvalidID) ||
		errors.Is(err, subscriptiondomain.ErrInvalidCustomerID) ||
		errors.Is(err, subscriptiondomain.ErrInvalidServiceID) ||
		errors.Is(err, invoicedomain.ErrInvalidID) ||
		errors.Is(err, invoicedomain.ErrInvalidSubscriptionID) ||
		errors.Is(err, invoicedomain.ErrInvalidAmount) ||
		errors.Is(err, paymentdomain.ErrInvalidInvoiceID) ||
		errors.Is(err, paymentdomain.ErrInvalidAmount) ||
		errors.Is(err, paymentdomain.ErrInvalidMethod)
}
