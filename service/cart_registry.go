package service

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pookadai/models"
)

// DefaultCartIdleTTL is how long an untouched cart session is kept
const DefaultCartIdleTTL = 24 * time.Hour

// CartSession is one shopper's cart together with the coordinator that checks it out
type CartSession struct {
	Cart     *CartStore
	Checkout *CheckoutCoordinator

	lastTouched time.Time
}

// CartRegistry keeps one CartSession per shopper session id. Sessions are
// created on the first cart mutation and evicted after idleTTL without use.
type CartRegistry struct {
	mu              sync.Mutex
	sessions        map[string]*CartSession
	orders          *OrderStore
	payments        *PaymentSimulator
	defaultLanguage string
	idleTTL         time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

// CartRegistryOption customizes a CartRegistry
type CartRegistryOption func(*CartRegistry)

// WithIdleTTL sets how long an untouched session survives EvictIdle
func WithIdleTTL(ttl time.Duration) CartRegistryOption {
	return func(r *CartRegistry) { r.idleTTL = ttl }
}

// WithRegistryClock overrides the time source used for idle tracking
func WithRegistryClock(now func() time.Time) CartRegistryOption {
	return func(r *CartRegistry) { r.now = now }
}

// NewCartRegistry creates a new CartRegistry
func NewCartRegistry(orders *OrderStore, payments *PaymentSimulator, defaultLanguage string, logger *zap.Logger, opts ...CartRegistryOption) *CartRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLanguage == "" {
		defaultLanguage = models.LanguageEnglish
	}
	r := &CartRegistry{
		sessions:        make(map[string]*CartSession),
		orders:          orders,
		payments:        payments,
		defaultLanguage: defaultLanguage,
		idleTTL:         DefaultCartIdleTTL,
		now:             time.Now,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for sessionID, creating an empty cart in language
// on first use. The language of an existing cart is not changed.
func (r *CartRegistry) Get(sessionID, language string) (*CartSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, models.ValidationError("session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[sessionID]; ok {
		session.lastTouched = r.now()
		return session, nil
	}
	if language == "" {
		language = r.defaultLanguage
	}
	session := r.newSession(language)
	r.sessions[sessionID] = session
	r.logger.Debug("cart session created", zap.String("session_id", sessionID), zap.String("language", language))
	return session, nil
}

// Peek returns the existing session for sessionID without creating one
func (r *CartRegistry) Peek(sessionID string) (*CartSession, bool) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if ok {
		session.lastTouched = r.now()
	}
	return session, ok
}

// EvictIdle drops sessions untouched for longer than the idle TTL. Sessions
// with a checkout in progress are kept. It returns the number evicted.
func (r *CartRegistry) EvictIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	evicted := 0
	for id, session := range r.sessions {
		if session.lastTouched.Before(cutoff) && !session.Checkout.Processing() {
			delete(r.sessions, id)
			evicted++
		}
	}
	r.mu.Unlock()

	if evicted > 0 {
		r.logger.Info("idle carts evicted", zap.Int("sessions", evicted))
	}
	return evicted
}

// Len returns the number of known sessions
func (r *CartRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Snapshot returns the carts of every session that has lines
func (r *CartRegistry) Snapshot() map[string]models.CartSnapshot {
	r.mu.Lock()
	sessions := make(map[string]*CartSession, len(r.sessions))
	for id, s := range r.sessions {
		sessions[id] = s
	}
	r.mu.Unlock()

	out := make(map[string]models.CartSnapshot, len(sessions))
	for id, s := range sessions {
		snap := s.Cart.Snapshot()
		if len(snap.Lines) == 0 {
			continue
		}
		out[id] = snap
	}
	return out
}

// Restore replaces all sessions with carts rebuilt from snapshots
func (r *CartRegistry) Restore(snapshots map[string]models.CartSnapshot) {
	sessions := make(map[string]*CartSession, len(snapshots))
	for id, snap := range snapshots {
		if strings.TrimSpace(id) == "" {
			continue
		}
		session := r.newSession(snap.Language)
		session.Cart.Restore(snap)
		sessions[id] = session
	}

	r.mu.Lock()
	r.sessions = sessions
	r.mu.Unlock()

	r.logger.Info("carts restored", zap.Int("sessions", len(sessions)))
}

func (r *CartRegistry) newSession(language string) *CartSession {
	if language == "" {
		language = r.defaultLanguage
	}
	cart := NewCartStore(language, r.logger)
	return &CartSession{
		Cart:        cart,
		Checkout:    NewCheckoutCoordinator(cart, r.orders, r.payments, r.logger),
		lastTouched: r.now(),
	}
}
