package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pookadai/models"
)

// Payment simulation defaults
const (
	DefaultPaymentMinDelay    = 1 * time.Second
	DefaultPaymentMaxDelay    = 3 * time.Second
	DefaultPaymentTimeout     = 15 * time.Second
	DefaultPaymentSuccessRate = 0.9
)

// PaymentDecider decides whether the simulated gateway approves a payment
type PaymentDecider interface {
	Decide(ctx context.Context, order models.Order, method models.PaymentMethod) (approved bool, reason string)
}

// RandomDecider approves with probability SuccessRate
type RandomDecider struct {
	SuccessRate float64
}

func (d RandomDecider) Decide(_ context.Context, _ models.Order, _ models.PaymentMethod) (bool, string) {
	if rand.Float64() < d.SuccessRate {
		return true, ""
	}
	return false, "payment declined by bank"
}

// FixedDecider always returns the same outcome
type FixedDecider struct {
	Approve bool
	Reason  string
}

func (d FixedDecider) Decide(_ context.Context, _ models.Order, _ models.PaymentMethod) (bool, string) {
	if d.Approve {
		return true, ""
	}
	if d.Reason == "" {
		return false, "payment declined"
	}
	return false, d.Reason
}

// DelayFunc returns how long the next simulated authorization takes
type DelayFunc func() time.Duration

// UniformDelay returns delays spread uniformly over [min, max]
func UniformDelay(min, max time.Duration) DelayFunc {
	if max < min {
		min, max = max, min
	}
	return func() time.Duration {
		if max == min {
			return min
		}
		return min + rand.N(max-min+1)
	}
}

// FixedDelay always returns d
func FixedDelay(d time.Duration) DelayFunc {
	return func() time.Duration { return d }
}

// PaymentSimulator authorizes order payments against a simulated gateway.
// At most one authorization per order may be outstanding.
type PaymentSimulator struct {
	orders   *OrderStore
	decider  PaymentDecider
	delay    DelayFunc
	timeout  time.Duration
	logger   *zap.Logger
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// PaymentOption customizes a PaymentSimulator
type PaymentOption func(*PaymentSimulator)

// WithDecider sets the approval strategy
func WithDecider(decider PaymentDecider) PaymentOption {
	return func(p *PaymentSimulator) { p.decider = decider }
}

// WithDelay sets the simulated processing delay
func WithDelay(delay DelayFunc) PaymentOption {
	return func(p *PaymentSimulator) { p.delay = delay }
}

// WithTimeout sets the hard deadline after which an authorization is treated as failed
func WithTimeout(timeout time.Duration) PaymentOption {
	return func(p *PaymentSimulator) { p.timeout = timeout }
}

// NewPaymentSimulator creates a simulator with a 1-3s delay, a 15s deadline and
// 90% approval unless overridden
func NewPaymentSimulator(orders *OrderStore, logger *zap.Logger, opts ...PaymentOption) *PaymentSimulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PaymentSimulator{
		orders:   orders,
		decider:  RandomDecider{SuccessRate: DefaultPaymentSuccessRate},
		delay:    UniformDelay(DefaultPaymentMinDelay, DefaultPaymentMaxDelay),
		timeout:  DefaultPaymentTimeout,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Authorize charges the order total with method. It suspends for the simulated
// gateway delay, then moves the order pending -> paid on approval or
// pending -> cancelled on decline or deadline. The caller's cancellation does not
// abort an authorization once started.
func (p *PaymentSimulator) Authorize(ctx context.Context, orderID string, method models.PaymentMethod) (models.PaymentResult, error) {
	if _, err := models.ParsePaymentMethod(string(method)); err != nil {
		return models.PaymentResult{}, err
	}

	order, err := p.begin(orderID)
	if err != nil {
		return models.PaymentResult{}, err
	}
	defer p.finish(orderID)

	logger := p.logger.With(zap.String("order_id", orderID), zap.String("method", string(method)))
	logger.Info("payment authorization started", zap.Int64("amount", order.Total))

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	approved, reason := p.await(runCtx, order, method)
	if !approved {
		logger.Warn("payment authorization failed", zap.String("reason", reason))
		if _, err := p.orders.UpdateStatus(runCtx, orderID, models.OrderStatusCancelled); err != nil {
			logger.Warn("could not cancel order after failed payment", zap.Error(err))
		}
		return models.PaymentResult{}, models.PaymentDeclinedError(reason)
	}

	paymentID := "pay_" + uuid.NewString()
	if _, err := p.orders.RecordPayment(runCtx, orderID, paymentID); err != nil {
		logger.Error("approved payment could not be recorded", zap.Error(err))
		return models.PaymentResult{}, err
	}

	logger.Info("payment authorized", zap.String("payment_id", paymentID))
	return models.PaymentResult{
		OrderID:   orderID,
		PaymentID: paymentID,
		Method:    method,
		Amount:    order.Total,
	}, nil
}

// InFlight reports whether an authorization for orderID is outstanding
func (p *PaymentSimulator) InFlight(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.inFlight[orderID]
	return ok
}

func (p *PaymentSimulator) begin(orderID string) (models.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, busy := p.inFlight[orderID]; busy {
		return models.Order{}, models.ConcurrentOperationError("payment for order %s is already being processed", orderID)
	}
	order, err := p.orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderStatusPending {
		return models.Order{}, models.InvalidTransitionError(order.Status, models.OrderStatusPaid)
	}
	p.inFlight[orderID] = struct{}{}
	return order, nil
}

func (p *PaymentSimulator) finish(orderID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, orderID)
}

func (p *PaymentSimulator) await(ctx context.Context, order models.Order, method models.PaymentMethod) (bool, string) {
	timer := time.NewTimer(p.delay())
	defer timer.Stop()

	select {
	case <-timer.C:
		return p.decider.Decide(ctx, order, method)
	case <-ctx.Done():
		return false, "payment gateway timed out"
	}
}
