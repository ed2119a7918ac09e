// Package iyzico implements the PaymentGateway port against the iyzico checkout form API.
package iyzico

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

const (
	initializePath = "/payment/iyzipos/checkoutform/initialize/auth/ecom"
	retrievePath   = "/payment/iyzipos/checkoutform/auth/ecom/detail"

	statusSuccess = "success"
)

// Client implements ports.PaymentGateway. It is safe for concurrent use and
// never mutated after construction.
type Client struct {
	baseURL    string
	apiKey     string
	secretKey  string
	locale     string
	httpClient *http.Client
}

// NewClient creates a new iyzico client.
func NewClient(baseURL, apiKey, secretKey, locale string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		secretKey: secretKey,
		locale:    locale,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// initializeResponse is the checkout form initialization response.
type initializeResponse struct {
	domain.GatewayError
	Token          string `json:"token"`
	PaymentPageURL string `json:"paymentPageUrl"`
	ConversationID string `json:"conversationId"`
}

// InitializeCheckout creates a checkout form and returns the hosted payment page.
func (c *Client) InitializeCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	var resp initializeResponse
	if err := c.post(ctx, initializePath, req, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusSuccess {
		return nil, failure(resp.GatewayError)
	}

	return &domain.CheckoutResult{
		PaymentPageURL: resp.PaymentPageURL,
		Token:          resp.Token,
		ConversationID: resp.ConversationID,
	}, nil
}

// retrieveRequest redeems a checkout form token.
type retrieveRequest struct {
	Locale string `json:"locale"`
	Token  string `json:"token"`
}

type retrieveResponse struct {
	domain.GatewayError
	PaymentStatus  string           `json:"paymentStatus"`
	PaymentID      flexString       `json:"paymentId"`
	PaidPrice      decimal.Decimal  `json:"paidPrice"`
	ConversationID string           `json:"conversationId"`
	Buyer          domain.PayerName `json:"buyer"`
}

// flexString accepts ids sent either as JSON strings or numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	*f = flexString(b)
	return nil
}

// RetrieveCheckout fetches the payment outcome for a callback token.
func (c *Client) RetrieveCheckout(ctx context.Context, token string) (*domain.PaymentResult, error) {
	var resp retrieveResponse
	if err := c.post(ctx, retrievePath, retrieveRequest{Locale: c.locale, Token: token}, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusSuccess {
		return nil, failure(resp.GatewayError)
	}

	return &domain.PaymentResult{
		Status:         resp.Status,
		PaymentStatus:  resp.PaymentStatus,
		PaymentID:      string(resp.PaymentID),
		PaidPrice:      resp.PaidPrice,
		ConversationID: resp.ConversationID,
		Buyer:          resp.Buyer,
	}, nil
}

// post signs and sends a JSON request, decoding the JSON reply into out.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to marshal payload", "MARSHAL_ERROR")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to create request", "REQUEST_ERROR")
	}

	randomKey := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-iyzi-rnd", randomKey)
	req.Header.Set("Authorization", authorizationHeader(c.apiKey, c.secretKey, randomKey, path, body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewServiceError(domain.ErrPaymentGatewayError,
			"request failed: "+err.Error(), "HTTP_ERROR")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to read response", "HTTP_ERROR")
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewServiceError(domain.ErrPaymentGatewayError,
			fmt.Sprintf("unexpected response (status %d): %s", resp.StatusCode, truncate(raw, 256)),
			"DECODE_ERROR")
	}

	return nil
}

func failure(payload domain.GatewayError) *domain.GatewayError {
	if payload.Status == "" {
		payload.Status = "failure"
	}
	return &payload
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
