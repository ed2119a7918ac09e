// Package domain contains the core business entities for the donation service.
// This is the innermost layer - no framework or transport dependencies.
package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatusSuccess is the only payment status that settles a donation.
const PaymentStatusSuccess = "SUCCESS"

// receiptIDPattern guards every path or object key built from a receipt id.
var receiptIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidReceiptID reports whether id is safe to use as a receipt file name.
func ValidReceiptID(id string) bool {
	return receiptIDPattern.MatchString(id)
}

// DonationRequest represents an incoming donation from the website.
// Contact is either an email address or a phone number.
type DonationRequest struct {
	Name    string          `json:"name" form:"name"`
	Surname string          `json:"surname" form:"surname"`
	Amount  decimal.Decimal `json:"amount" form:"amount"`
	Contact string          `json:"contact" form:"contact"`
}

// CheckoutRequest is the checkout-form initialization payload sent to the gateway.
// Price, PaidPrice and the single basket item price always carry the same amount.
type CheckoutRequest struct {
	Locale         string         `json:"locale"`
	ConversationID string         `json:"conversationId"`
	Price          string         `json:"price"`
	PaidPrice      string         `json:"paidPrice"`
	Currency       string         `json:"currency"`
	BasketID       string         `json:"basketId,omitempty"`
	PaymentGroup   string         `json:"paymentGroup"`
	CallbackURL    string         `json:"callbackUrl"`
	Buyer          Buyer          `json:"buyer"`
	BillingAddress BillingAddress `json:"billingAddress"`
	BasketItems    []BasketItem   `json:"basketItems"`
}

// Buyer is the payer identity the gateway requires on every checkout.
type Buyer struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Surname             string `json:"surname"`
	GsmNumber           string `json:"gsmNumber"`
	Email               string `json:"email"`
	IdentityNumber      string `json:"identityNumber"`
	RegistrationAddress string `json:"registrationAddress"`
	City                string `json:"city"`
	Country             string `json:"country"`
	ZipCode             string `json:"zipCode"`
}

// BillingAddress is the address printed on the gateway's invoice.
type BillingAddress struct {
	Address     string `json:"address"`
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// BasketItem is a single line of the checkout basket.
type BasketItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category1 string `json:"category1"`
	ItemType  string `json:"itemType"`
	Price     string `json:"price"`
}

// CheckoutResult is what the gateway hands back after initializing a checkout form.
type CheckoutResult struct {
	PaymentPageURL string `json:"paymentPageUrl"`
	Token          string `json:"token,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

// PaymentResult is the outcome retrieved by redeeming a callback token.
type PaymentResult struct {
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"paymentStatus"`
	PaymentID      string          `json:"paymentId"`
	PaidPrice      decimal.Decimal `json:"paidPrice"`
	ConversationID string          `json:"conversationId"`
	Buyer          PayerName       `json:"buyer"`
}

// Settled reports whether the payment cleared.
func (p *PaymentResult) Settled() bool {
	return p.PaymentStatus == PaymentStatusSuccess
}

// PayerName is the subset of buyer data echoed back by the gateway.
type PayerName struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ReceiptRecord holds everything printed on a donation receipt.
type ReceiptRecord struct {
	ReceiptID string          `json:"receiptId"`
	DonorName string          `json:"donorName"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	IssuedAt  time.Time       `json:"issuedAt"`
}

// ReceiptInfo describes a stored receipt in listings.
type ReceiptInfo struct {
	ReceiptID string    `json:"receiptId"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"-"`
}

// CallbackOutcome summarizes what happened while handling a gateway callback.
type CallbackOutcome struct {
	Settled       bool
	ReceiptID     string
	ReceiptStored bool
}

// Organization holds the fixed organizational data used on checkouts and receipts.
type Organization struct {
	Name        string
	Address     string
	City        string
	Country     string
	ZipCode     string
	ContactName string

	// Placeholder buyer identity; donors are not asked for these.
	BuyerID             string
	BuyerEmail          string
	BuyerGsmNumber      string
	BuyerIdentityNumber string
	BuyerAddress        string
	BuyerCity           string
	BuyerCountry        string
	BuyerZipCode        string

	BasketItemID       string
	BasketItemName     string
	BasketItemCategory string

	DefaultDonorName    string
	DefaultDonorSurname string

	Locale   string
	Currency string
}
