package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

const (
	paymentGroupProduct = "PRODUCT"
	basketItemVirtual   = "VIRTUAL"
)

// BuildCheckoutRequest maps a donation onto the gateway's checkout payload.
// The organization fills every field the donor is not asked for.
func BuildCheckoutRequest(
	req domain.DonationRequest,
	org domain.Organization,
	callbackURL string,
	now time.Time,
) domain.CheckoutRequest {
	name, surname := donorNames(req, org)
	price := formatPrice(req.Amount)

	buyer := domain.Buyer{
		ID:                  org.BuyerID,
		Name:                name,
		Surname:             surname,
		GsmNumber:           org.BuyerGsmNumber,
		Email:               org.BuyerEmail,
		IdentityNumber:      org.BuyerIdentityNumber,
		RegistrationAddress: org.BuyerAddress,
		City:                org.BuyerCity,
		Country:             org.BuyerCountry,
		ZipCode:             org.BuyerZipCode,
	}

	contact := strings.TrimSpace(req.Contact)
	switch {
	case contact == "":
	case strings.Contains(contact, "@"):
		buyer.Email = contact
	default:
		buyer.GsmNumber = contact
	}

	return domain.CheckoutRequest{
		Locale:         org.Locale,
		ConversationID: fmt.Sprintf("donation_%d", now.UnixMilli()),
		Price:          price,
		PaidPrice:      price,
		Currency:       org.Currency,
		PaymentGroup:   paymentGroupProduct,
		CallbackURL:    callbackWithName(callbackURL, name+" "+surname),
		Buyer:          buyer,
		BillingAddress: domain.BillingAddress{
			Address:     org.Address,
			ContactName: org.ContactName,
			City:        org.City,
			Country:     org.Country,
		},
		BasketItems: []domain.BasketItem{
			{
				ID:        org.BasketItemID,
				Name:      org.BasketItemName,
				Category1: org.BasketItemCategory,
				ItemType:  basketItemVirtual,
				Price:     price,
			},
		},
	}
}

// donorNames applies the placeholder donor name to blank fields.
func donorNames(req domain.DonationRequest, org domain.Organization) (string, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = org.DefaultDonorName
	}
	surname := strings.TrimSpace(req.Surname)
	if surname == "" {
		surname = org.DefaultDonorSurname
	}
	return name, surname
}

// formatPrice renders an amount the way the gateway expects ("150.0", "99.95").
func formatPrice(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return amount.StringFixed(1)
	}
	return amount.String()
}

// callbackWithName appends the donor's display name so the callback can print it.
func callbackWithName(base, fullName string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("fullName", fullName)
	u.RawQuery = q.Encode()
	return u.String()
}
