package service

import (
	"context"
	"errors"
	"io"

	"github.com/sahintepesi/donation-api/internal/core/domain"
	"github.com/sahintepesi/donation-api/internal/core/ports"
)

// ReceiptService gives read-only access to stored receipts.
type ReceiptService struct {
	store ports.ReceiptStore
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(store ports.ReceiptStore) *ReceiptService {
	return &ReceiptService{store: store}
}

// Fetch opens a receipt. The id is validated before the store is consulted.
func (s *ReceiptService) Fetch(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error) {
	if !domain.ValidReceiptID(id) {
		return nil, nil, domain.NewServiceError(domain.ErrInvalidReceiptID,
			"receipt id may only contain letters, digits, '_' and '-'", "INVALID_RECEIPT_ID")
	}

	rc, info, err := s.store.Open(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return nil, nil, domain.NewServiceError(err, "receipt "+id+" not found", "RECEIPT_NOT_FOUND")
		}
		return nil, nil, domain.NewServiceError(domain.ErrReceiptStoreError, err.Error(), "STORE_ERROR")
	}

	return rc, info, nil
}

// List returns all stored receipts, never nil.
func (s *ReceiptService) List(ctx context.Context) ([]domain.ReceiptInfo, error) {
	receipts, err := s.store.List(ctx)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrReceiptStoreError, err.Error(), "STORE_ERROR")
	}
	if receipts == nil {
		receipts = []domain.ReceiptInfo{}
	}
	return receipts, nil
}
