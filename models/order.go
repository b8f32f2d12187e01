package models

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions lists, for every status, the statuses it may move to
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  nil,
	OrderStatusCancelled:  nil,
}

// AllOrderStatuses in lifecycle order
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusProcessing,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// ParseOrderStatus normalizes s and checks it is a known status
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ValidationError("unknown order status %q", s)
	}
	return status, nil
}

// IsValid reports whether s is one of the known statuses
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether s -> next is an edge of the transition table
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HasPayment reports whether orders in s carry a payment id
func (s OrderStatus) HasPayment() bool {
	return s == OrderStatusPaid || s == OrderStatusProcessing || s == OrderStatusDelivered
}

func (s OrderStatus) String() string {
	return string(s)
}

// CustomerInfo holds delivery details captured at checkout
type CustomerInfo struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Pincode   string   `json:"pincode"`
	Landmark  string   `json:"landmark,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Validate checks every required field, including the captured geolocation
func (c CustomerInfo) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"pincode", c.Pincode},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return ValidationError("%s is required", field.name)
		}
	}
	if c.Latitude == nil || c.Longitude == nil {
		return ValidationError("delivery location is required")
	}
	if *c.Latitude < -90 || *c.Latitude > 90 || *c.Longitude < -180 || *c.Longitude > 180 {
		return ValidationError("delivery location is out of range")
	}
	return nil
}

// WithPosition returns a copy of c with the coordinates of pos
func (c CustomerInfo) WithPosition(pos Position) CustomerInfo {
	lat, lng := pos.Latitude, pos.Longitude
	c.Latitude = &lat
	c.Longitude = &lng
	return c
}

// Order is a placed cart plus delivery and payment state
type Order struct {
	ID        string       `json:"id"`
	Items     []CartLine   `json:"items"`
	Customer  CustomerInfo `json:"customer"`
	Total     int64        `json:"total"`
	Status    OrderStatus  `json:"status"`
	PaymentID string       `json:"paymentId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy so callers cannot mutate store state
func (o Order) Clone() Order {
	items := make([]CartLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.Customer.Latitude != nil {
		lat := *o.Customer.Latitude
		o.Customer.Latitude = &lat
	}
	if o.Customer.Longitude != nil {
		lng := *o.Customer.Longitude
		o.Customer.Longitude = &lng
	}
	return o
}

// OrderSnapshot is the serializable state of the order store
type OrderSnapshot struct {
	Orders   []Order           `json:"orders"`
	Sessions map[string]string `json:"sessions,omitempty"`
}

// UpdateOrderStatusRequest represents the request body for an admin status change
// Example: {"status": "processing"}
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderListResponse represents the response for listing orders
type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

// OrderSummary aggregates orders for the admin dashboard
// Example response:
// {
//   "counts": {"pending": 1, "paid": 2, "processing": 0, "delivered": 5, "cancelled": 1},
//   "revenue": 4200,
//   "formattedRevenue": "₹4,200"
// }
type OrderSummary struct {
	Counts           map[OrderStatus]int `json:"counts"`
	Revenue          int64               `json:"revenue"`
	FormattedRevenue string              `json:"formattedRevenue"`
}

// OrderEventType names the notification sent for an order change
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is sent to the notification provider after creation or a status change
type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"orderId"`
	Status     OrderStatus    `json:"status"`
	PrevStatus OrderStatus    `json:"prevStatus,omitempty"`
	Total      int64          `json:"total"`
	Phone      string         `json:"phone"`
	Name       string         `json:"name"`
	PaymentID  string         `json:"paymentId,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
