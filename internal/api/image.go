package api

import (
	"net/http" // HTTP status codes

	"raffle_system/internal/imgcache"  // Image proxy cache
	"raffle_system/internal/ticketing" // Core service

	"github.com/gin-gonic/gin" // Gin web framework
)

// RaffleImageHandler proxies a raffle's cover image through the local disk
// cache. Fetch failures of any kind answer 404 so the frontend falls back to
// its placeholder; an unreachable image host is never a server error here.
func RaffleImageHandler(svc *ticketing.Service, images *imgcache.Cache) gin.HandlerFunc {
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
		path, err := images.Path(c.Request.Context(), raffle.ID, raffle.ImageURL)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(path)
	}
}
