package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"pookadai/models"
)

// CheckoutCoordinator runs cart -> order -> payment -> clear for one cart.
// It rejects a second checkout while one is processing.
type CheckoutCoordinator struct {
	cart       *CartStore
	orders     *OrderStore
	payments   *PaymentSimulator
	logger     *zap.Logger
	mu         sync.Mutex
	processing bool
}

// NewCheckoutCoordinator creates a coordinator for cart
func NewCheckoutCoordinator(cart *CartStore, orders *OrderStore, payments *PaymentSimulator, logger *zap.Logger) *CheckoutCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutCoordinator{
		cart:     cart,
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// Checkout places an order for the current cart and pays for it with method.
// On success the ordered lines are removed from the cart. On failure the cart is left intact so the
// customer can retry; when an order was already created the result carries its
// id and cancelled status alongside the error.
func (c *CheckoutCoordinator) Checkout(ctx context.Context, customer models.CustomerInfo, geo GeolocationProvider, method models.PaymentMethod) (models.CheckoutResult, error) {
	if !c.start() {
		return models.CheckoutResult{}, models.ConcurrentOperationError("checkout is already in progress")
	}
	defer c.stop()

	if _, err := models.ParsePaymentMethod(string(method)); err != nil {
		return models.CheckoutResult{}, err
	}

	lines, total := c.cart.Checkout()
	if len(lines) == 0 {
		return models.CheckoutResult{}, models.ValidationError("cart is empty")
	}

	if geo == nil {
		return models.CheckoutResult{}, models.ValidationError("delivery location is required")
	}
	position, err := geo.GetCurrentPosition(ctx)
	if err != nil {
		c.logger.Info("checkout blocked: no delivery location", zap.Error(err))
		if geoErr := models.AsGeoError(err); geoErr != nil {
			return models.CheckoutResult{}, &models.StoreError{Kind: models.KindValidation, Message: "delivery location is required", Cause: geoErr}
		}
		return models.CheckoutResult{}, models.InternalError("geolocation failed", err)
	}
	customer = customer.WithPosition(position)
	if err := customer.Validate(); err != nil {
		return models.CheckoutResult{}, err
	}

	orderID, err := c.orders.CreateOrder(ctx, lines, customer, total)
	if err != nil {
		return models.CheckoutResult{}, err
	}

	payment, err := c.payments.Authorize(ctx, orderID, method)
	if err != nil {
		result := models.CheckoutResult{OrderID: orderID, Total: total}
		if order, getErr := c.orders.GetByID(orderID); getErr == nil {
			result.Status = order.Status
		}
		c.logger.Warn("checkout failed",
			zap.String("order_id", orderID),
			zap.String("kind", models.KindOf(err).String()),
			zap.Error(err))
		return result, err
	}

	c.cart.RemoveOrdered(lines)
	c.logger.Info("checkout completed",
		zap.String("order_id", orderID),
		zap.String("payment_id", payment.PaymentID),
		zap.Int64("total", total))

	return models.CheckoutResult{
		OrderID:   orderID,
		PaymentID: payment.PaymentID,
		Total:     total,
		Status:    models.OrderStatusPaid,
	}, nil
}

// Processing reports whether a checkout is running
func (c *CheckoutCoordinator) Processing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

func (c *CheckoutCoordinator) start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processing {
		return false
	}
	c.processing = true
	return true
}

func (c *CheckoutCoordinator) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processing = false
}

// StaticPosition is a GeolocationProvider for a position already captured by the client
type StaticPosition struct {
	Position models.Position
}

func (s StaticPosition) GetCurrentPosition(context.Context) (models.Position, error) {
	return s.Position, nil
}

// FailedPosition is a GeolocationProvider for a client that could not capture a position
type FailedPosition struct {
	Code models.GeoErrorCode
}

func (f FailedPosition) GetCurrentPosition(context.Context) (models.Position, error) {
	return models.Position{}, &models.GeoError{Code: f.Code}
}
