package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"raffle_system/internal/cache"     // Redis cache helpers
	"raffle_system/internal/domain"    // Importing domain models
	"raffle_system/internal/ticketing" // Core service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// idParam parses the :id route parameter
func idParam(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(v), true
}

// ListRafflesHandler returns the active raffles shown to visitors, cached in
// Redis because it is the hottest read path
func ListRafflesHandler(svc *ticketing.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var raffles []domain.Raffle
		found, err := cache.Get(ctx, rdb, cache.KeyActiveRaffles, &raffles)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"raffles": raffles, "cached": true})
			return
		}
		raffles, err = svc.ActiveRaffles()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list raffles"})
			return
		}
		_ = cache.Set(ctx, rdb, cache.KeyActiveRaffles, raffles)
		c.JSON(http.StatusOK, gin.H{"raffles": raffles, "cached": false})
	}
}

// GetRaffleHandler returns one raffle's detail
func GetRaffleHandler(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		raffle, err := svc.RaffleByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"raffle": raffle})
	}
}
