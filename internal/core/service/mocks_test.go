package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

// Test errors
var (
	ErrMockGateway = errors.New("gateway unreachable")
	ErrMockRender  = errors.New("render error")
	ErrMockStore   = errors.New("store error")
)

// MockGateway implements ports.PaymentGateway for testing
type MockGateway struct {
	InitializeFunc func(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error)
	RetrieveFunc   func(ctx context.Context, token string) (*domain.PaymentResult, error)

	mu          sync.Mutex
	initialized []domain.CheckoutRequest
	retrieved   []string
}

func (m *MockGateway) InitializeCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	m.mu.Lock()
	m.initialized = append(m.initialized, req)
	m.mu.Unlock()
	if m.InitializeFunc != nil {
		return m.InitializeFunc(ctx, req)
	}
	return &domain.CheckoutResult{PaymentPageURL: "https://sandbox.example/pay/" + req.ConversationID}, nil
}

func (m *MockGateway) RetrieveCheckout(ctx context.Context, token string) (*domain.PaymentResult, error) {
	m.mu.Lock()
	m.retrieved = append(m.retrieved, token)
	m.mu.Unlock()
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, token)
	}
	return nil, ErrMockGateway
}

// MockRenderer implements ports.ReceiptRenderer for testing
type MockRenderer struct {
	RenderFunc func(record domain.ReceiptRecord) ([]byte, error)
	rendered   []domain.ReceiptRecord
}

func (m *MockRenderer) Render(record domain.ReceiptRecord) ([]byte, error) {
	m.rendered = append(m.rendered, record)
	if m.RenderFunc != nil {
		return m.RenderFunc(record)
	}
	return []byte("%PDF-1.3 " + record.ReceiptID + " " + record.DonorName), nil
}

// MockStore implements ports.ReceiptStore for testing
type MockStore struct {
	PutFunc  func(ctx context.Context, id string, pdf []byte) error
	OpenFunc func(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error)
	ListFunc func(ctx context.Context) ([]domain.ReceiptInfo, error)

	puts   map[string][]byte
	opened []string
}

func (m *MockStore) Put(ctx context.Context, id string, pdf []byte) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, id, pdf)
	}
	if m.puts == nil {
		m.puts = make(map[string][]byte)
	}
	m.puts[id] = pdf
	return nil
}

func (m *MockStore) Open(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error) {
	m.opened = append(m.opened, id)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, id)
	}
	return nil, nil, domain.ErrReceiptNotFound
}

func (m *MockStore) List(ctx context.Context) ([]domain.ReceiptInfo, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func testOrganization() domain.Organization {
	return domain.Organization{
		Name:                "Test Derneği",
		Address:             "Test Sok. No: 1",
		City:                "Şırnak",
		Country:             "Turkey",
		ContactName:         "Hayır Sahibi",
		BuyerID:             "BY789",
		BuyerEmail:          "hayir@sahibi.com",
		BuyerGsmNumber:      "+905350000000",
		BuyerIdentityNumber: "11111111111",
		BuyerAddress:        "Bağışçının adresi",
		BuyerCity:           "Istanbul",
		BuyerCountry:        "Turkey",
		BuyerZipCode:        "34732",
		BasketItemID:        "donation",
		BasketItemName:      "Dernek Bağışı",
		BasketItemCategory:  "Donation",
		DefaultDonorName:    "Anonymous",
		DefaultDonorSurname: "Donor",
		Locale:              "tr",
		Currency:            "TRY",
	}
}
