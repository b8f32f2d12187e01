package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/service"
)

// CheckoutController handles HTTP requests for placing orders
type CheckoutController struct {
	registry *service.CartRegistry
	logger   *zap.Logger
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(registry *service.CartRegistry, logger *zap.Logger) *CheckoutController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutController{
		registry: registry,
		logger:   logger,
	}
}

// Checkout handles POST /checkout
// Example request:
// POST /checkout
// {
//   "customer": {"name": "Meena", "phone": "9876543210", "address": "12 North Car St", "city": "Madurai", "pincode": "625001"},
//   "latitude": 9.9252,
//   "longitude": 78.1198,
//   "paymentMethod": "upi"
// }
// Example response:
// {"orderId": "8c1e...", "paymentId": "pay_41d2...", "total": 600, "status": "paid"}
// A declined payment answers 402 with the cancelled order id:
// {"error": "payment declined by bank", "kind": "PAYMENT_DECLINED", "orderId": "8c1e..."}
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, ok := cc.registry.Peek(c.GetString(SessionIDKey))
	if !ok {
		writeError(c, cc.logger, models.ValidationError("cart is empty"), "")
		return
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(c, cc.logger, err, "")
		return
	}

	result, err := session.Checkout.Checkout(c.Request.Context(), req.Customer.Info(), geolocationFor(req), method)
	if err != nil {
		writeError(c, cc.logger, err, result.OrderID)
		return
	}

	cc.logger.Info("order placed",
		zap.String("order_id", result.OrderID),
		zap.String("payment_id", result.PaymentID),
		zap.String("method", string(method)))
	c.JSON(http.StatusCreated, result)
}

// geolocationFor turns the position captured by the browser into a provider.
// nil means the client sent neither a position nor a reason.
func geolocationFor(req models.CheckoutRequest) service.GeolocationProvider {
	if req.Latitude != nil && req.Longitude != nil {
		return service.StaticPosition{Position: models.Position{Latitude: *req.Latitude, Longitude: *req.Longitude}}
	}
	if req.GeoError != "" {
		return service.FailedPosition{Code: models.GeoErrorCode(req.GeoError)}
	}
	return nil
}
