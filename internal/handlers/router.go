// Package handlers contains the HTTP handlers and routing.
package handlers

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes.
func SetupRouter(handler *DonationHandler, ginMode, allowedOrigin string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()
	// Route on the escaped path so "a%2Fb" reaches the receipt handler
	// as a single (invalid) id instead of falling through to 404.
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(allowedOrigin))
	router.Use(RequestIDMiddleware())

	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		api.POST("/donation", handler.CreateDonation)

		// Called by the gateway; no auth, the token is redeemed server side.
		api.POST("/payment/callback", handler.HandleCallback)

		api.GET("/receipts", handler.ListReceipts)
		api.GET("/receipts/:receiptId", handler.GetReceipt)
	}

	return router
}
