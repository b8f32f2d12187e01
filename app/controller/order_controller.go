package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/service"
)

// OrderController handles HTTP requests for orders
type OrderController struct {
	admin  *service.OrderAdmin
	logger *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(admin *service.OrderAdmin, logger *zap.Logger) *OrderController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderController{
		admin:  admin,
		logger: logger,
	}
}

// GetOrder handles GET /orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID := c.Param("id")
	order, err := oc.admin.Get(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, oc.logger, err, orderID)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /admin/orders
// Query parameters: status (optional: pending, paid, processing, delivered, cancelled)
// Example response:
// {"orders": [{"id": "8c1e...", "status": "paid", "total": 600, "paymentId": "pay_41d2...", ...}]}
func (oc *OrderController) ListOrders(c *gin.Context) {
	var status models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseOrderStatus(raw)
		if err != nil {
			writeError(c, oc.logger, err, "")
			return
		}
		status = parsed
	}

	orders, err := oc.admin.List(c.Request.Context(), status)
	if err != nil {
		writeError(c, oc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders})
}

// Summary handles GET /admin/orders/summary
// Example response:
// {"counts": {"pending": 1, "paid": 2, "processing": 0, "delivered": 4, "cancelled": 1}, "revenue": 150000, "formattedRevenue": "₹1,50,000"}
func (oc *OrderController) Summary(c *gin.Context) {
	summary, err := oc.admin.Summary(c.Request.Context())
	if err != nil {
		writeError(c, oc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateStatus handles PATCH /admin/orders/:id/status
// Example request:
// PATCH /admin/orders/8c1e.../status
// {"status": "processing"}
// Example response: the updated order
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(c, oc.logger, err, orderID)
		return
	}

	order, err := oc.admin.UpdateStatus(c.Request.Context(), orderID, status)
	if err != nil {
		writeError(c, oc.logger, err, orderID)
		return
	}
	c.JSON(http.StatusOK, order)
}
