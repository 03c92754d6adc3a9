package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/smallbiznis/subtrack/internal/subscription/domain"
)

type createSubscriptionRequest struct {
	CustomerID string `json:"customer_id"`
	ServiceID  string `json:"service_id"`
}

func (s *Server) CreateSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.subscriptionSvc.Create(c.Request.Context(), subscriptiondomain.CreateSubscriptionRequest{
		CustomerID: strings.TrimSpace(req.CustomerID),
		ServiceID:  strings.TrimSpace(req.ServiceID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListSubscriptions returns the full snapshot, or only active ones when
// status=active is passed.
func (s *Server) ListSubscriptions(c *gin.Context) {
	var (
		resp []subscriptiondomain.Subscription
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(c.Query("status"))) {
	case "active":
		resp, err = s.subscriptionSvc.ListActive(c.Request.Context())
	case "":
		resp, err = s.subscriptionSvc.List(c.Request.Context())
	default:
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CancelSubscription reports the soft outcome with 200 regardless of whether
// a transition happened; only a malformed id is an error.
func (s *Server) CancelSubscription(c *gin.Context) {
	resp, err := s.subscriptionSvc.Cancel(c.Request.Context(), subscriptiondomain.CancelSubscriptionRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
