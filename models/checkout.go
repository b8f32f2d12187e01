package models

import (
	"errors"
	"fmt"
)

// Role of the current caller, as reported by the identity provider
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// Position is a captured delivery location
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoErrorCode mirrors the failure modes of the browser geolocation API
type GeoErrorCode string

const (
	GeoPermissionDenied GeoErrorCode = "permission_denied"
	GeoUnavailable      GeoErrorCode = "unavailable"
	GeoTimeout          GeoErrorCode = "timeout"
)

// GeoError is returned by geolocation providers
type GeoError struct {
	Code GeoErrorCode
}

func (e *GeoError) Error() string {
	switch e.Code {
	case GeoPermissionDenied:
		return "location permission denied"
	case GeoUnavailable:
		return "location unavailable"
	case GeoTimeout:
		return "location request timed out"
	default:
		return fmt.Sprintf("location error: %s", string(e.Code))
	}
}

// AsGeoError extracts a GeoError from an error chain
func AsGeoError(err error) *GeoError {
	var geoErr *GeoError
	if errors.As(err, &geoErr) {
		return geoErr
	}
	return nil
}

// CheckoutRequest represents the request body for POST /checkout.
// Latitude/longitude come from the browser; when absent, geoError says why.
// Example:
// {
//   "customer": {"name": "Meena", "phone": "9876543210", "address": "12 North Car St", "city": "Madurai", "pincode": "625001"},
//   "latitude": 9.9252,
//   "longitude": 78.1198,
//   "paymentMethod": "upi"
// }
type CheckoutRequest struct {
	Customer      CheckoutCustomer `json:"customer"`
	Latitude      *float64         `json:"latitude,omitempty"`
	Longitude     *float64         `json:"longitude,omitempty"`
	GeoError      string           `json:"geoError,omitempty"`
	PaymentMethod string           `json:"paymentMethod"`
}

// CheckoutCustomer is the customer part of a checkout request. It has no
// coordinates: the position comes only from the top-level latitude/longitude.
type CheckoutCustomer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Info converts the request details into CustomerInfo without a position
func (c CheckoutCustomer) Info() CustomerInfo {
	return CustomerInfo{
		Name:     c.Name,
		Phone:    c.Phone,
		Address:  c.Address,
		City:     c.City,
		Pincode:  c.Pincode,
		Landmark: c.Landmark,
		Notes:    c.Notes,
	}
}

// CheckoutResult is reported to the caller after a checkout attempt
// Example response:
// {"orderId": "8c1e...", "paymentId": "pay_41d2...", "total": 600, "status": "paid"}
type CheckoutResult struct {
	OrderID   string      `json:"orderId"`
	PaymentID string      `json:"paymentId,omitempty"`
	Total     int64       `json:"total"`
	Status    OrderStatus `json:"status"`
}

// ErrorResponse is the JSON body of every failed request
// Example: {"error": "cannot move order from delivered to paid", "kind": "INVALID_TRANSITION", "orderId": "8c1e..."}
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	OrderID string `json:"orderId,omitempty"`
}
