// Package handlers contains the HTTP handlers for the donation service.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

// DonationInitiator starts a hosted checkout for a donation.
type DonationInitiator interface {
	InitiateDonation(ctx context.Context, req domain.DonationRequest) (*domain.CheckoutResult, error)
}

// CallbackProcessor settles a gateway callback.
type CallbackProcessor interface {
	HandleCallback(ctx context.Context, token, displayName string) (*domain.CallbackOutcome, error)
}

// ReceiptReader gives access to stored receipts.
type ReceiptReader interface {
	Fetch(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error)
	List(ctx context.Context) ([]domain.ReceiptInfo, error)
}

// DonationHandler handles HTTP requests for donations and receipts.
type DonationHandler struct {
	donations  DonationInitiator
	callbacks  CallbackProcessor
	receipts   ReceiptReader
	successURL string
	storeName  string
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(
	donations DonationInitiator,
	callbacks CallbackProcessor,
	receipts ReceiptReader,
	successURL string,
	storeName string,
) *DonationHandler {
	return &DonationHandler{
		donations:  donations,
		callbacks:  callbacks,
		receipts:   receipts,
		successURL: successURL,
		storeName:  storeName,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DonationResponse is returned once the hosted payment page exists.
type DonationResponse struct {
	PaymentPageURL string `json:"paymentPageUrl"`
}

// CreateDonation handles POST /api/donation
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req domain.DonationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request: " + err.Error(),
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	result, err := h.donations.InitiateDonation(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DonationResponse{PaymentPageURL: result.PaymentPageURL})
}

// CallbackRequest is posted by the gateway after the donor leaves the payment page.
type CallbackRequest struct {
	Token string `json:"token" form:"token"`
}

// HandleCallback handles POST /api/payment/callback
// The gateway only needs an acknowledgment; a settled payment redirects the
// donor's browser to the success page instead.
func (h *DonationHandler) HandleCallback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("Callback parse error: %v", err)
		c.String(http.StatusOK, "OK")
		return
	}

	outcome, err := h.callbacks.HandleCallback(c.Request.Context(), req.Token, c.Query("fullName"))
	if err != nil {
		log.Printf("Callback processing error: %v", err)
		c.String(http.StatusOK, "OK")
		return
	}

	if !outcome.Settled {
		c.String(http.StatusOK, "OK")
		return
	}

	c.Redirect(http.StatusFound, h.successRedirect(outcome.ReceiptID))
}

func (h *DonationHandler) successRedirect(receiptID string) string {
	u, err := url.Parse(h.successURL)
	if err != nil {
		return h.successURL + "?receiptId=" + url.QueryEscape(receiptID)
	}
	q := u.Query()
	q.Set("receiptId", receiptID)
	u.RawQuery = q.Encode()
	return u.String()
}

// GetReceipt handles GET /api/receipts/:receiptId
func (h *DonationHandler) GetReceipt(c *gin.Context) {
	id := c.Param("receiptId")

	body, info, err := h.receipts.Fetch(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer body.Close()

	size := info.Size
	if size <= 0 {
		size = -1
	}

	c.DataFromReader(http.StatusOK, size, "application/pdf", body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="makbuz_%s.pdf"`, id),
	})
}

// ListReceipts handles GET /api/receipts
func (h *DonationHandler) ListReceipts(c *gin.Context) {
	receipts, err := h.receipts.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipts": receipts})
}

// Health handles GET /health
func (h *DonationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"service":      "donation-api",
		"receiptStore": h.storeName,
	})
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	var gatewayErr *domain.GatewayError
	if errors.As(err, &gatewayErr) {
		c.JSON(http.StatusInternalServerError, gatewayErr)
		return
	}

	var serviceErr *domain.ServiceError
	if errors.As(err, &serviceErr) {
		statusCode := http.StatusInternalServerError

		switch {
		case errors.Is(serviceErr, domain.ErrInvalidDonation):
			statusCode = http.StatusBadRequest
		case errors.Is(serviceErr, domain.ErrInvalidReceiptID):
			statusCode = http.StatusBadRequest
		case errors.Is(serviceErr, domain.ErrReceiptNotFound):
			statusCode = http.StatusNotFound
		}

		c.JSON(statusCode, ErrorResponse{
			Error: serviceErr.Message,
			Code:  serviceErr.Code,
		})
		return
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
		Code:  "INTERNAL_ERROR",
	})
}
