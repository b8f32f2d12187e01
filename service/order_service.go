package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pookadai/models"
)

// Notification delivery defaults
const (
	DefaultNotifyTimeout   = 10 * time.Second
	DefaultNotifyQueueSize = 256
)

// OrderStore exclusively owns the order collection. Orders are created once per
// checkout attempt and afterwards only change status; they are never deleted.
//
// Notifications are queued and delivered in order by a single goroutine, so a
// slow notifier never holds up an order operation. When the queue is full the
// event is dropped and logged.
type OrderStore struct {
	mu       sync.RWMutex
	orders   map[string]*models.Order
	sequence []string          // ids in creation order
	sessions map[string]string // order id -> shopper session that placed it
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string

	notifyTimeout time.Duration
	queueSize     int
	queueMu       sync.RWMutex
	queue         chan models.OrderEvent
	queueClosed   bool
	delivered     chan struct{}
}

// OrderStoreOption customizes an OrderStore
type OrderStoreOption func(*OrderStore)

// WithClock overrides the time source used for CreatedAt/UpdatedAt
func WithClock(now func() time.Time) OrderStoreOption {
	return func(s *OrderStore) { s.now = now }
}

// WithIDGenerator overrides order id generation
func WithIDGenerator(newID func() string) OrderStoreOption {
	return func(s *OrderStore) { s.newID = newID }
}

// WithNotifyTimeout bounds each notifier call
func WithNotifyTimeout(timeout time.Duration) OrderStoreOption {
	return func(s *OrderStore) { s.notifyTimeout = timeout }
}

// WithNotifyQueueSize sets how many undelivered notifications may wait
func WithNotifyQueueSize(size int) OrderStoreOption {
	return func(s *OrderStore) { s.queueSize = size }
}

// NewOrderStore creates an empty order store. notifier may be nil; otherwise
// a delivery goroutine runs until Close.
func NewOrderStore(notifier Notifier, logger *zap.Logger, opts ...OrderStoreOption) *OrderStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &OrderStore{
		orders:        make(map[string]*models.Order),
		sessions:      make(map[string]string),
		notifier:      notifier,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         func() string { return uuid.NewString() },
		notifyTimeout: DefaultNotifyTimeout,
		queueSize:     DefaultNotifyQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.queueSize <= 0 {
		s.queueSize = DefaultNotifyQueueSize
	}
	if notifier != nil {
		s.queue = make(chan models.OrderEvent, s.queueSize)
		s.delivered = make(chan struct{})
		go s.deliver()
	}
	return s
}

// CreateOrder places a pending order for the cart snapshot and returns its id.
// The snapshot is copied, so later cart changes do not affect the order.
// The shopper session carried by ctx, if any, is recorded as the order's owner.
func (s *OrderStore) CreateOrder(ctx context.Context, items []models.CartLine, customer models.CustomerInfo, total int64) (string, error) {
	if len(items) == 0 {
		return "", models.ValidationError("cart is empty")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return "", models.ValidationError("item %s has non-positive quantity", item.ProductID)
		}
		if item.UnitPrice < 0 {
			return "", models.ValidationError("item %s has a negative price", item.ProductID)
		}
	}
	if expected := models.SumLines(items); expected != total {
		return "", models.ValidationError("total %d does not match cart total %d", total, expected)
	}
	if err := customer.Validate(); err != nil {
		return "", err
	}

	now := s.now()
	order := models.Order{
		ID:        s.newID(),
		Items:     cloneLines(items),
		Customer:  customer,
		Total:     total,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}.Clone()

	s.mu.Lock()
	if _, exists := s.orders[order.ID]; exists {
		s.mu.Unlock()
		return "", models.InternalError("order id collision", nil)
	}
	s.orders[order.ID] = &order
	s.sequence = append(s.sequence, order.ID)
	if sessionID := SessionFromContext(ctx); sessionID != "" {
		s.sessions[order.ID] = sessionID
	}
	created := order.Clone()
	s.mu.Unlock()

	s.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.Int64("total", created.Total),
		zap.Int("items", len(created.Items)))

	s.notify(models.OrderEvent{
		Type:       models.OrderEventCreated,
		OrderID:    created.ID,
		Status:     created.Status,
		Total:      created.Total,
		Phone:      created.Customer.Phone,
		Name:       created.Customer.Name,
		OccurredAt: now,
	})
	return created.ID, nil
}

// UpdateStatus moves an order along the transition table. Moving to paid this way
// records an owner-entered payment and assigns a manual payment id.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, newStatus models.OrderStatus) (models.Order, error) {
	if !newStatus.IsValid() {
		return models.Order{}, models.ValidationError("unknown order status %q", newStatus)
	}
	paymentID := ""
	if newStatus == models.OrderStatusPaid {
		paymentID = "manual_" + uuid.NewString()
	}
	return s.transition(orderID, newStatus, paymentID)
}

// RecordPayment moves a pending order to paid with the gateway payment id
func (s *OrderStore) RecordPayment(ctx context.Context, orderID, paymentID string) (models.Order, error) {
	if paymentID == "" {
		return models.Order{}, models.ValidationError("paymentId is required")
	}
	return s.transition(orderID, models.OrderStatusPaid, paymentID)
}

func (s *OrderStore) transition(orderID string, next models.OrderStatus, paymentID string) (models.Order, error) {
	s.mu.Lock()
	order, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return models.Order{}, models.NotFoundError("order %s not found", orderID)
	}
	prev := order.Status
	if !prev.CanTransitionTo(next) {
		s.mu.Unlock()
		s.logger.Warn("rejected order transition",
			zap.String("order_id", orderID),
			zap.String("from", prev.String()),
			zap.String("to", next.String()))
		return models.Order{}, models.InvalidTransitionError(prev, next)
	}
	order.Status = next
	if paymentID != "" {
		order.PaymentID = paymentID
	}
	order.UpdatedAt = s.now()
	updated := order.Clone()
	s.mu.Unlock()

	s.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("from", prev.String()),
		zap.String("to", next.String()))

	s.notify(models.OrderEvent{
		Type:       models.OrderEventStatusChanged,
		OrderID:    updated.ID,
		Status:     updated.Status,
		PrevStatus: prev,
		Total:      updated.Total,
		Phone:      updated.Customer.Phone,
		Name:       updated.Customer.Name,
		PaymentID:  updated.PaymentID,
		OccurredAt: updated.UpdatedAt,
	})
	return updated, nil
}

// GetByID returns a copy of the order
func (s *OrderStore) GetByID(orderID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, models.NotFoundError("order %s not found", orderID)
	}
	return order.Clone(), nil
}

// GetForSession returns the order only when it was placed by sessionID
func (s *OrderStore) GetForSession(orderID, sessionID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok || sessionID == "" || s.sessions[orderID] != sessionID {
		return models.Order{}, models.NotFoundError("order %s not found", orderID)
	}
	return order.Clone(), nil
}

// ListAll returns every order, most recent first
func (s *OrderStore) ListAll() []models.Order {
	return s.list(func(models.Order) bool { return true })
}

// ListByStatus returns the orders in status, most recent first
func (s *OrderStore) ListByStatus(status models.OrderStatus) []models.Order {
	return s.list(func(o models.Order) bool { return o.Status == status })
}

func (s *OrderStore) list(keep func(models.Order) bool) []models.Order {
	s.mu.RLock()
	orders := make([]models.Order, 0, len(s.sequence))
	// newest insertion first so equal timestamps keep that order after the stable sort
	for i := len(s.sequence) - 1; i >= 0; i-- {
		order := s.orders[s.sequence[i]]
		if keep(*order) {
			orders = append(orders, order.Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// Summary counts orders per status and sums revenue of paid-or-later orders
func (s *OrderStore) Summary() models.OrderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := models.OrderSummary{Counts: make(map[models.OrderStatus]int)}
	for _, status := range models.AllOrderStatuses() {
		summary.Counts[status] = 0
	}
	for _, order := range s.orders {
		summary.Counts[order.Status]++
		if order.Status.HasPayment() {
			summary.Revenue += order.Total
		}
	}
	return summary
}

// Snapshot returns the serializable state of the store, in creation order
func (s *OrderStore) Snapshot() models.OrderSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.sequence))
	for _, id := range s.sequence {
		orders = append(orders, s.orders[id].Clone())
	}
	sessions := make(map[string]string, len(s.sessions))
	for id, sessionID := range s.sessions {
		sessions[id] = sessionID
	}
	return models.OrderSnapshot{Orders: orders, Sessions: sessions}
}

// Restore replaces the store state with snapshot. Orders with an unknown status
// or a duplicate id are rejected.
func (s *OrderStore) Restore(snapshot models.OrderSnapshot) error {
	orders := make(map[string]*models.Order, len(snapshot.Orders))
	sequence := make([]string, 0, len(snapshot.Orders))
	for _, o := range snapshot.Orders {
		if o.ID == "" {
			return models.ValidationError("snapshot order without id")
		}
		if !o.Status.IsValid() {
			return models.ValidationError("snapshot order %s has unknown status %q", o.ID, o.Status)
		}
		if _, dup := orders[o.ID]; dup {
			return models.ValidationError("snapshot has duplicate order %s", o.ID)
		}
		order := o.Clone()
		orders[order.ID] = &order
		sequence = append(sequence, order.ID)
	}

	sessions := make(map[string]string, len(snapshot.Sessions))
	for id, sessionID := range snapshot.Sessions {
		if _, ok := orders[id]; ok && sessionID != "" {
			sessions[id] = sessionID
		}
	}

	s.mu.Lock()
	s.orders = orders
	s.sequence = sequence
	s.sessions = sessions
	s.mu.Unlock()

	s.logger.Info("order store restored", zap.Int("orders", len(sequence)))
	return nil
}

// Close stops accepting notifications and waits for the queued ones to be
// delivered, for at most one notify timeout
func (s *OrderStore) Close() error {
	if s.queue == nil {
		return nil
	}
	s.queueMu.Lock()
	if !s.queueClosed {
		s.queueClosed = true
		close(s.queue)
	}
	s.queueMu.Unlock()

	select {
	case <-s.delivered:
		return nil
	case <-time.After(s.notifyTimeout):
		return errors.New("timed out delivering order notifications")
	}
}

func (s *OrderStore) notify(event models.OrderEvent) {
	if s.queue == nil {
		return
	}
	s.queueMu.RLock()
	defer s.queueMu.RUnlock()
	if s.queueClosed {
		s.logger.Warn("order notification dropped: store closed", zap.String("order_id", event.OrderID))
		return
	}
	select {
	case s.queue <- event:
	default:
		s.logger.Warn("order notification dropped: queue full",
			zap.String("order_id", event.OrderID),
			zap.String("event", string(event.Type)))
	}
}

func (s *OrderStore) deliver() {
	defer close(s.delivered)
	for event := range s.queue {
		s.send(event)
	}
}

func (s *OrderStore) send(event models.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("order notification failed",
			zap.String("order_id", event.OrderID),
			zap.String("event", string(event.Type)),
			zap.Error(err))
	}
}
