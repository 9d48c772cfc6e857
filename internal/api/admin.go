package api

import (
	"net/http" // HTTP status codes
	"time"     // End date parsing

	"raffle_system/internal/cache"     // Redis cache helpers
	"raffle_system/internal/ticketing" // Core service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// adminID returns the authenticated admin's user ID from the context
func adminID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, false
	}
	return userID.(uint), true
}

// DashboardHandler returns the admin dashboard counters, cached in Redis
func DashboardHandler(svc *ticketing.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var stats ticketing.DashboardStats
		found, err := cache.Get(ctx, rdb, cache.KeyDashboard, &stats)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"dashboard": stats, "cached": true})
			return
		}
		fresh, err := svc.Dashboard()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		_ = cache.Set(ctx, rdb, cache.KeyDashboard, fresh)
		c.JSON(http.StatusOK, gin.H{"dashboard": fresh, "cached": false})
	}
}

// AdminPurchasesHandler returns the review queue and the approval history
func AdminPurchasesHandler(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending, err := svc.PendingPurchases()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
			return
		}
		approved, err := svc.ApprovedPurchases()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pending": pending, "approved": approved})
	}
}

// ApprovePurchaseHandler runs the ticket allocator for a pending purchase.
// Deliberately a POST: approval mutates state and must never be reachable by
// a crawler following links.
func ApprovePurchaseHandler(svc *ticketing.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		admin, ok := adminID(c)
		if !ok {
			return
		}
		assigned, err := svc.Approve(id, admin)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.InvalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{
			"message":          "Purchase approved",
			"assigned_tickets": assigned,
		})
	}
}

// RejectPurchaseHandler rejects a pending purchase
func RejectPurchaseHandler(svc *ticketing.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		admin, ok := adminID(c)
		if !ok {
			return
		}
		if err := svc.Reject(id, admin); err != nil {
			respondError(c, err)
			return
		}
		cache.InvalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Purchase rejected"})
	}
}

// AdminRafflesHandler lists every raffle, active or not
func AdminRafflesHandler(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raffles, err := svc.AllRaffles()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list raffles"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"raffles": raffles})
	}
}

// RaffleRequest mirrors the raffle create/edit form
type RaffleRequest struct {
	Title        string  `json:"title" form:"title"`
	Description  string  `json:"description" form:"description"`
	Price        float64 `json:"price" form:"price"`
	TotalTickets int     `json:"total_tickets" form:"total_tickets"`
	ImageURL     string  `json:"image_url" form:"image_url"`
	IsActive     bool    `json:"is_active" form:"is_active"`
	EndDate      string  `json:"end_date" form:"end_date"` // YYYY-MM-DD
}

func (r RaffleRequest) toInput(c *gin.Context) (ticketing.RaffleInput, bool) {
	endDate, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return ticketing.RaffleInput{}, false
	}
	return ticketing.RaffleInput{
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		TotalTickets: r.TotalTickets,
		ImageURL:     r.ImageURL,
		IsActive:     r.IsActive,
		EndDate:      endDate,
	}, true
}

// CreateRaffleHandler creates a raffle with a full ticket pool
func CreateRaffleHandler(svc *ticketing.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RaffleRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		in, ok := req.toInput(c)
		if !ok {
			return
		}
		raffle, err := svc.CreateRaffle(in)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.InvalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, gin.H{"raffle": raffle})
	}
}

// UpdateRaffleHandler applies an admin edit to a raffle
func UpdateRaffleHandler(svc *ticketing.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req RaffleRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		in, ok := req.toInput(c)
		if !ok {
			return
		}
		raffle, err := svc.UpdateRaffle(id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.InvalidateCatalog(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"raffle": raffle})
	}
}
