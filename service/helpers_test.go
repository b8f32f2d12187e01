package service

import (
	"context"
	"errors"
	"sync"

	"pookadai/models"
)

type fakeCatalog map[string]models.Product

func (f fakeCatalog) GetProduct(_ context.Context, id string) (models.Product, error) {
	p, ok := f[id]
	if !ok {
		return models.Product{}, models.NotFoundError("product %s not found", id)
	}
	return p, nil
}

func flowerCatalog() fakeCatalog {
	return fakeCatalog{
		"p1": {ID: "p1", NameEN: "Jasmine garland", NameTA: "மல்லிகை மாலை", Category: "garland", Price: 150, Available: true, TiedLength: "1 muzham"},
		"p2": {ID: "p2", NameEN: "Rose bouquet", Category: "bouquet", Price: 300, Available: true},
		"p3": {ID: "p3", NameEN: "Lotus", NameTA: "தாமரை", Category: "loose", Price: 40, Available: false},
	}
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Meena",
		Phone:   "9876543210",
		Address: "12 North Car St",
		City:    "Madurai",
		Pincode: "625001",
	}.WithPosition(models.Position{Latitude: 9.9252, Longitude: 78.1198})
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.OrderEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event models.OrderEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) Events() []models.OrderEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.OrderEvent, len(n.events))
	copy(out, n.events)
	return out
}

var errBrokerDown = errors.New("broker down")

// stallingNotifier blocks every delivery until release is closed or the
// delivery context ends
type stallingNotifier struct {
	release chan struct{}
	calls   chan models.OrderEvent
}

func newStallingNotifier() *stallingNotifier {
	return &stallingNotifier{
		release: make(chan struct{}),
		calls:   make(chan models.OrderEvent, 16),
	}
}

func (n *stallingNotifier) Notify(ctx context.Context, event models.OrderEvent) error {
	n.calls <- event
	select {
	case <-n.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type staticIdentity models.Role

func (s staticIdentity) CurrentRole(context.Context) (models.Role, error) {
	return models.Role(s), nil
}

type failingIdentity struct{}

func (failingIdentity) CurrentRole(context.Context) (models.Role, error) {
	return "", errors.New("identity service unavailable")
}

// newPendingOrder creates a pending order for one line of p1 x2
func newPendingOrder(ctx context.Context, orders *OrderStore) (string, error) {
	lines := []models.CartLine{{ProductID: "p1", DisplayName: "Jasmine garland", UnitPrice: 150, Quantity: 2}}
	return orders.CreateOrder(ctx, lines, validCustomer(), 300)
}
