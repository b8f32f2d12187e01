package service

import (
	"context"

	"pookadai/models"
)

// CatalogProvider resolves products for the cart at add time
type CatalogProvider interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
}

// IdentityProvider reports the role of the current caller
type IdentityProvider interface {
	CurrentRole(ctx context.Context) (models.Role, error)
}

// GeolocationProvider captures the delivery position. Failures are *models.GeoError
// (permission denied, unavailable, timeout).
type GeolocationProvider interface {
	GetCurrentPosition(ctx context.Context) (models.Position, error)
}

// Notifier receives order creation and status changes for out-of-band messaging.
// Delivery is fire-and-forget: a returned error is logged and never rolls back state.
type Notifier interface {
	Notify(ctx context.Context, event models.OrderEvent) error
}
