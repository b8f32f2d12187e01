package service

import (
	"context"

	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/utils"
)

// OrderAdmin exposes the order store to the owner panel.
// Status progression beyond what the payment simulator does requires the owner role.
type OrderAdmin struct {
	orders   *OrderStore
	identity IdentityProvider
	logger   *zap.Logger
}

// NewOrderAdmin creates a new OrderAdmin
func NewOrderAdmin(orders *OrderStore, identity IdentityProvider, logger *zap.Logger) *OrderAdmin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderAdmin{
		orders:   orders,
		identity: identity,
		logger:   logger,
	}
}

// UpdateStatus changes an order status on behalf of the owner
func (a *OrderAdmin) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	if err := requireOwner(ctx, a.identity, "change order status"); err != nil {
		a.logger.Warn("order status change refused", zap.String("order_id", orderID), zap.Error(err))
		return models.Order{}, err
	}
	return a.orders.UpdateStatus(ctx, orderID, status)
}

// List returns all orders, or only those in status when status is non-empty
func (a *OrderAdmin) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if err := requireOwner(ctx, a.identity, "list orders"); err != nil {
		return nil, err
	}
	if status == "" {
		return a.orders.ListAll(), nil
	}
	return a.orders.ListByStatus(status), nil
}

// Summary returns per-status counts and revenue
func (a *OrderAdmin) Summary(ctx context.Context) (models.OrderSummary, error) {
	if err := requireOwner(ctx, a.identity, "view the order summary"); err != nil {
		return models.OrderSummary{}, err
	}
	summary := a.orders.Summary()
	summary.FormattedRevenue = utils.FormatINR(summary.Revenue)
	return summary, nil
}

// Get returns one order. The owner may read any order; a customer only the
// orders placed from their own session. Other orders are reported as not found.
func (a *OrderAdmin) Get(ctx context.Context, orderID string) (models.Order, error) {
	role, err := a.identity.CurrentRole(ctx)
	if err != nil {
		return models.Order{}, models.InternalError("identity lookup failed", err)
	}
	if role == models.RoleOwner {
		return a.orders.GetByID(orderID)
	}

	order, err := a.orders.GetForSession(orderID, SessionFromContext(ctx))
	if err != nil {
		a.logger.Debug("order read refused", zap.String("order_id", orderID))
		return models.Order{}, err
	}
	return order, nil
}
