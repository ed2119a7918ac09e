// Package domain contains the core business entities for the donation service.
package domain

import "errors"

// Domain errors - represent business rule violations.
var (
	// ErrInvalidDonation is returned for malformed donation requests.
	ErrInvalidDonation = errors.New("invalid donation request")

	// ErrPaymentGatewayError is returned when the gateway call fails.
	ErrPaymentGatewayError = errors.New("payment gateway error")

	// ErrInvalidReceiptID is returned when a receipt id is not filename safe.
	ErrInvalidReceiptID = errors.New("invalid receipt id")

	// ErrReceiptNotFound is returned when no receipt exists for an id.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrReceiptStoreError is returned when the receipt store fails.
	ErrReceiptStoreError = errors.New("receipt store error")

	// ErrFontUnavailable is returned when the receipt font cannot be loaded.
	ErrFontUnavailable = errors.New("receipt font unavailable")

	// ErrRenderFailed is returned when PDF composition fails.
	ErrRenderFailed = errors.New("receipt rendering failed")
)

// ServiceError wraps errors with additional context.
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(err error, message, code string) *ServiceError {
	return &ServiceError{Err: err, Message: message, Code: code}
}

// GatewayError carries the failure payload returned by the payment gateway.
type GatewayError struct {
	Status  string `json:"status"`
	Code    string `json:"errorCode,omitempty"`
	Message string `json:"errorMessage,omitempty"`
	Group   string `json:"errorGroup,omitempty"`
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return "gateway error " + e.Code + ": " + e.Message
	}
	return "gateway error: " + e.Message
}

// Unwrap makes errors.Is(err, ErrPaymentGatewayError) hold for gateway payloads.
func (e *GatewayError) Unwrap() error {
	return ErrPaymentGatewayError
}
