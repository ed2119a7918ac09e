// Package ports defines the interfaces (ports) for the donation service.
// These are contracts that adapters must implement.
package ports

import (
	"context"
	"io"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

// PaymentGateway defines the interface for the hosted checkout provider.
type PaymentGateway interface {
	// InitializeCheckout creates a hosted checkout form and returns its page URL.
	InitializeCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error)

	// RetrieveCheckout redeems a one-time callback token for the payment outcome.
	RetrieveCheckout(ctx context.Context, token string) (*domain.PaymentResult, error)
}

// ReceiptRenderer turns a receipt record into a PDF document.
type ReceiptRenderer interface {
	Render(record domain.ReceiptRecord) ([]byte, error)
}

// ReceiptStore persists rendered receipts keyed by receipt id.
// Ids passed in are already validated against domain.ValidReceiptID.
type ReceiptStore interface {
	// Put writes (or overwrites) the receipt for id.
	Put(ctx context.Context, id string, pdf []byte) error

	// Open returns a reader for the receipt. Returns domain.ErrReceiptNotFound if absent.
	Open(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error)

	// List returns every stored receipt. A missing store yields an empty list.
	List(ctx context.Context) ([]domain.ReceiptInfo, error)
}
