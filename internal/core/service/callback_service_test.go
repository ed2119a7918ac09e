package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahintepesi/donation-api/internal/adapters/filestore"
	"github.com/sahintepesi/donation-api/internal/core/domain"
)

func settledPayment(id string) *domain.PaymentResult {
	return &domain.PaymentResult{
		Status:         "success",
		PaymentStatus:  domain.PaymentStatusSuccess,
		PaymentID:      id,
		PaidPrice:      decimal.RequireFromString("150.5"),
		ConversationID: "donation_1",
		Buyer:          domain.PayerName{Name: "Fatma", Surname: "Kaya"},
	}
}

func TestHandleCallbackSettled(t *testing.T) {
	gateway := &MockGateway{
		RetrieveFunc: func(ctx context.Context, token string) (*domain.PaymentResult, error) {
			return settledPayment("22416035"), nil
		},
	}
	renderer := &MockRenderer{}
	store := &MockStore{}
	svc := NewCallbackService(gateway, renderer, store, testOrganization())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 22, 30, 0, 0, time.UTC) }

	outcome, err := svc.HandleCallback(context.Background(), "tok-1", "Fatma K.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !outcome.Settled || !outcome.ReceiptStored {
		t.Errorf("Expected settled and stored outcome, got %+v", outcome)
	}
	if outcome.ReceiptID != "22416035" {
		t.Errorf("Expected receipt id '22416035', got '%s'", outcome.ReceiptID)
	}
	if gateway.retrieved[0] != "tok-1" {
		t.Errorf("Expected token 'tok-1' to be redeemed, got '%s'", gateway.retrieved[0])
	}

	if len(renderer.rendered) != 1 {
		t.Fatalf("Expected one rendered receipt, got %d", len(renderer.rendered))
	}
	record := renderer.rendered[0]
	if record.DonorName != "Fatma K." {
		t.Errorf("Expected donor from callback name, got '%s'", record.DonorName)
	}
	if !record.Amount.Equal(decimal.RequireFromString("150.5")) {
		t.Errorf("Expected amount 150.5, got %s", record.Amount)
	}
	// 22:30 UTC is already the next day in Turkey.
	if record.Date != "06.03.2024" {
		t.Errorf("Expected date '06.03.2024', got '%s'", record.Date)
	}
	if _, ok := store.puts["22416035"]; !ok {
		t.Errorf("Expected receipt to be stored under the payment id")
	}
}

func TestHandleCallbackDonorNameFallback(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		buyer       domain.PayerName
		want        string
	}{
		{"display name wins", "Ayşe", domain.PayerName{Name: "Fatma", Surname: "Kaya"}, "Ayşe"},
		{"gateway buyer", "", domain.PayerName{Name: "Fatma", Surname: "Kaya"}, "Fatma Kaya"},
		{"placeholder", "  ", domain.PayerName{}, "Anonymous Donor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := settledPayment("1001")
			payment.Buyer = tt.buyer
			gateway := &MockGateway{
				RetrieveFunc: func(ctx context.Context, token string) (*domain.PaymentResult, error) {
					return payment, nil
				},
			}
			renderer := &MockRenderer{}
			svc := NewCallbackService(gateway, renderer, &MockStore{}, testOrganization())

			if _, err := svc.HandleCallback(context.Background(), "tok", tt.displayName); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := renderer.rendered[0].DonorName; got != tt.want {
				t.Errorf("Expected donor '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestHandleCallbackNotSettled(t *testing.T) {
	dir := t.TempDir()
	gateway := &MockGateway{
		RetrieveFunc: func(ctx context.Context, token string) (*domain.PaymentResult, error) {
			return &domain.PaymentResult{
				Status:        "success",
				PaymentStatus: "FAILURE",
				PaymentID:     "777",
			}, nil
		},
	}
	renderer := &MockRenderer{}
	svc := NewCallbackService(gateway, renderer, filestore.NewStore(dir), testOrganization())

	outcome, err := svc.HandleCallback(context.Background(), "tok", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if outcome.Settled {
		t.Errorf("Expected unsettled outcome")
	}
	if len(renderer.rendered) != 0 {
		t.Errorf("No receipt may be rendered for an unsettled payment")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no files in receipts directory, got %d", len(entries))
	}
}

func TestHandleCallbackDuplicateOverwrites(t *testing.T) {
	dir := t.TempDir()
	gateway := &MockGateway{
		RetrieveFunc: func(ctx context.Context, token string) (*domain.PaymentResult, error) {
			return settledPayment("5550001"), nil
		},
	}
	svc := NewCallbackService(gateway, &MockRenderer{}, filestore.NewStore(dir), testOrganization())

	for _, name := range []string{"First Donor", "Second Donor"} {
		if _, err := svc.HandleCallback(context.Background(), "tok", name); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read receipts directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected a single receipt file, got %d", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, "5550001.pdf"))
	if err != nil {
		t.Fatalf("Failed to read receipt: %v", err)
	}
	if !bytes.Contains(data, []byte("Second Donor")) {
		t.Errorf("Expected the second callback to overwrite the receipt, got %q", data)
	}
}

func TestHandleCallbackReceiptFailureStillSettles(t *testing.T) {
	tests := []struct {
		name     string
		renderer *MockRenderer
		store    *MockStore
	}{
		{
			name: "render failure",
			renderer: &MockRenderer{RenderFunc: func(domain.ReceiptRecord) ([]byte, error) {
				return nil, ErrMockRender
			}},
			store: &MockStore{},
		},
		{
			name:     "store failure",
			renderer: &MockRenderer{},
			store: &MockStore{PutFunc: func(context.Context, string, []byte) error {
				return ErrMockStore
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &MockGateway{
				RetrieveFunc: func(ctx context.Context, token string) (*domain.PaymentResult, error) {
					return settledPayment("42"), nil
				},
			}
			svc := NewCallbackService(gateway, tt.renderer, tt.store, testOrganization())

			outcome, err := svc.HandleCallback(context.Background(), "tok", "")
			if err != nil {
				t.Fatalf("Receipt failures must not fail the callback: %v", err)
			}
			if !outcome.Settled {
				t.Errorf("Expected settled outcome")
			}
			if outcome.ReceiptStored {
				t.Errorf("Expected ReceiptStored to be false")
			}
			if outcome.ReceiptID != "42" {
				t.Errorf("Expected receipt id '42', got '%s'", outcome.ReceiptID)
			}
		})
	}
}

func TestHandleCallbackUnsafePaymentID(t *testing.T) {
	gateway := &MockGateway{
		RetrieveFunc: func(ctx context.Context, token string) (*domain.PaymentResult, error) {
			return settledPayment("../../etc/passwd"), nil
		},
	}
	renderer := &MockRenderer{}
	store := &MockStore{}
	svc := NewCallbackService(gateway, renderer, store, testOrganization())

	outcome, err := svc.HandleCallback(context.Background(), "tok", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !outcome.Settled || outcome.ReceiptStored {
		t.Errorf("Expected settled but unstored outcome, got %+v", outcome)
	}
	if len(renderer.rendered) != 0 || len(store.puts) != 0 {
		t.Errorf("No receipt may be written for an unsafe payment id")
	}
}

func TestHandleCallbackErrors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		gateway := &MockGateway{}
		svc := NewCallbackService(gateway, &MockRenderer{}, &MockStore{}, testOrganization())

		_, err := svc.HandleCallback(context.Background(), "", "")

		var serviceErr *domain.ServiceError
		if !errors.As(err, &serviceErr) || serviceErr.Code != "MISSING_TOKEN" {
			t.Errorf("Expected MISSING_TOKEN error, got %v", err)
		}
		if len(gateway.retrieved) != 0 {
			t.Errorf("Gateway must not be called without a token")
		}
	})

	t.Run("gateway failure", func(t *testing.T) {
		gateway := &MockGateway{}
		svc := NewCallbackService(gateway, &MockRenderer{}, &MockStore{}, testOrganization())

		_, err := svc.HandleCallback(context.Background(), "tok", "")
		if !errors.Is(err, ErrMockGateway) {
			t.Errorf("Expected gateway error to be returned, got %v", err)
		}
	})
}

func TestReceiptDate(t *testing.T) {
	got := ReceiptDate(time.Date(2025, 1, 9, 8, 0, 0, 0, time.UTC))
	if got != "09.01.2025" {
		t.Errorf("Expected '09.01.2025', got '%s'", got)
	}
}
