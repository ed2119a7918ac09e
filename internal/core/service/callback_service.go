package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/sahintepesi/donation-api/internal/core/domain"
	"github.com/sahintepesi/donation-api/internal/core/ports"
)

// receiptDateLayout matches the Turkish short date format (dd.MM.yyyy).
const receiptDateLayout = "02.01.2006"

// turkeyTime is the fixed UTC+3 offset observed in Turkey year-round.
var turkeyTime = time.FixedZone("TRT", 3*60*60)

// ReceiptDate formats t as the calendar date printed on receipts.
func ReceiptDate(t time.Time) string {
	return t.In(turkeyTime).Format(receiptDateLayout)
}

// CallbackService settles gateway callbacks and issues receipts.
type CallbackService struct {
	gateway  ports.PaymentGateway
	renderer ports.ReceiptRenderer
	store    ports.ReceiptStore
	org      domain.Organization
	now      func() time.Time
}

// NewCallbackService creates a new callback service.
func NewCallbackService(
	gateway ports.PaymentGateway,
	renderer ports.ReceiptRenderer,
	store ports.ReceiptStore,
	org domain.Organization,
) *CallbackService {
	return &CallbackService{
		gateway:  gateway,
		renderer: renderer,
		store:    store,
		org:      org,
		now:      time.Now,
	}
}

// HandleCallback redeems the callback token and, when the payment cleared,
// renders and stores the receipt. Receipt failures never fail the callback:
// the payment has already been taken.
//
// Duplicate callbacks for the same payment overwrite the stored receipt.
func (s *CallbackService) HandleCallback(ctx context.Context, token, displayName string) (*domain.CallbackOutcome, error) {
	if token == "" {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"callback token is missing", "MISSING_TOKEN")
	}

	result, err := s.gateway.RetrieveCheckout(ctx, token)
	if err != nil {
		return nil, err
	}

	outcome := &domain.CallbackOutcome{
		Settled:   result.Settled(),
		ReceiptID: result.PaymentID,
	}
	if !outcome.Settled {
		log.Printf("Payment not settled for conversation %s: status %s",
			result.ConversationID, result.PaymentStatus)
		return outcome, nil
	}

	log.Printf("Donation settled: payment %s, amount %s", result.PaymentID, result.PaidPrice.String())

	if !domain.ValidReceiptID(result.PaymentID) {
		log.Printf("Refusing to write receipt for unsafe payment id %q", result.PaymentID)
		return outcome, nil
	}

	issuedAt := s.now()
	record := domain.ReceiptRecord{
		ReceiptID: result.PaymentID,
		DonorName: s.donorName(displayName, result.Buyer),
		Amount:    result.PaidPrice,
		Date:      ReceiptDate(issuedAt),
		IssuedAt:  issuedAt,
	}

	if err := s.issueReceipt(ctx, record); err != nil {
		log.Printf("Receipt generation failed for payment %s: %v", record.ReceiptID, err)
		return outcome, nil
	}

	outcome.ReceiptStored = true
	log.Printf("Receipt %s created", record.ReceiptID)

	return outcome, nil
}

func (s *CallbackService) issueReceipt(ctx context.Context, record domain.ReceiptRecord) error {
	pdf, err := s.renderer.Render(record)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, record.ReceiptID, pdf)
}

// donorName prefers the name carried on the callback URL over the gateway's buyer.
func (s *CallbackService) donorName(displayName string, buyer domain.PayerName) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if name := strings.TrimSpace(buyer.Name + " " + buyer.Surname); name != "" {
		return name
	}
	return s.org.DefaultDonorName + " " + s.org.DefaultDonorSurname
}
