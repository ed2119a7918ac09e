// Package service implements the core business logic.
package service

import (
	"context"
	"log"
	"time"

	"github.com/sahintepesi/donation-api/internal/core/domain"
	"github.com/sahintepesi/donation-api/internal/core/ports"
)

// DonationService starts donations on the hosted checkout.
type DonationService struct {
	gateway     ports.PaymentGateway
	org         domain.Organization
	callbackURL string
	now         func() time.Time
}

// NewDonationService creates a new donation service.
func NewDonationService(
	gateway ports.PaymentGateway,
	org domain.Organization,
	callbackURL string,
) *DonationService {
	return &DonationService{
		gateway:     gateway,
		org:         org,
		callbackURL: callbackURL,
		now:         time.Now,
	}
}

// InitiateDonation builds the checkout payload and asks the gateway for a payment page.
// The gateway is called exactly once; failures are returned as-is.
func (s *DonationService) InitiateDonation(ctx context.Context, req domain.DonationRequest) (*domain.CheckoutResult, error) {
	if !req.Amount.IsPositive() {
		return nil, domain.NewServiceError(domain.ErrInvalidDonation,
			"amount must be greater than 0", "VALIDATION_ERROR")
	}

	checkout := BuildCheckoutRequest(req, s.org, s.callbackURL, s.now())

	result, err := s.gateway.InitializeCheckout(ctx, checkout)
	if err != nil {
		log.Printf("Failed to initialize checkout %s: %v", checkout.ConversationID, err)
		return nil, err
	}

	log.Printf("Created checkout %s for %s %s, amount: %s",
		checkout.ConversationID, checkout.Buyer.Name, checkout.Buyer.Surname, checkout.Price)

	return result, nil
}
