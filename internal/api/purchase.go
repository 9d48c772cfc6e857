package api

import (
	"net/http" // HTTP status codes

	"raffle_system/internal/middleware" // Session token extraction
	"raffle_system/internal/ticketing"  // Core service
	"raffle_system/internal/token"      // Session token helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// BuyTicketsRequest mirrors the public purchase form. Buyer and payment
// fields are validated by the ticketing service so a missing field is
// reported as such rather than as a generic binding failure.
type BuyTicketsRequest struct {
	RaffleID        uint   `json:"raffle_id" form:"raffle_id" binding:"required"`
	Quantity        int    `json:"quantity" form:"quantity" binding:"required"`
	BuyerName       string `json:"buyer_name" form:"buyer_name"`
	BuyerLastname   string `json:"buyer_lastname" form:"buyer_lastname"`
	BuyerCedula     string `json:"buyer_cedula" form:"buyer_cedula"`
	BuyerPhone      string `json:"buyer_phone" form:"buyer_phone"`
	BankName        string `json:"bank_name" form:"bank_name"`
	ReferenceNumber string `json:"reference_number" form:"reference_number"`
}

// BuyTicketsHandler records a purchase request as pending. The endpoint is
// public; when the caller happens to hold a valid session the purchase is
// attributed to that account so it shows up under /my_purchases.
func BuyTicketsHandler(svc *ticketing.Service, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BuyTicketsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var userID *uint
		if tokenStr := middleware.SessionToken(c); tokenStr != "" {
			if claims, err := token.Parse(tokenStr, secret); err == nil {
				userID = &claims.UserID
			}
		}
		purchase, err := svc.Submit(ticketing.SubmitInput{
			RaffleID:        req.RaffleID,
			Quantity:        req.Quantity,
			UserID:          userID,
			BuyerName:       req.BuyerName,
			BuyerLastname:   req.BuyerLastname,
			BuyerCedula:     req.BuyerCedula,
			BuyerPhone:      req.BuyerPhone,
			BankName:        req.BankName,
			ReferenceNumber: req.ReferenceNumber,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Purchase request submitted; the administrator will review your payment and assign your ticket numbers",
			"purchase": purchase,
		})
	}
}

// MyPurchasesHandler lists the purchases recorded under the caller's account
func MyPurchasesHandler(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		purchases, err := svc.PurchasesByUser(userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purchases": purchases})
	}
}
