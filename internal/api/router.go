package api

import (
	"raffle_system/internal/config"     // Application configuration
	"raffle_system/internal/imgcache"   // Image proxy cache
	"raffle_system/internal/middleware" // Auth middleware
	"raffle_system/internal/ticketing"  // Core service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route. Public routes need no session; /my_purchases
// needs any authenticated user; everything under /admin re-checks the admin
// flag against the database per request.
func NewRouter(db *gorm.DB, rdb *redis.Client, images *imgcache.Cache, cfg *config.Config) *gin.Engine {
	svc := ticketing.NewService(db)
	r := gin.Default()

	// Auth
	r.POST("/login", LoginHandler(db, cfg.SessionSecret, cfg.IsProd))
	r.POST("/logout", LogoutHandler(cfg.IsProd))

	// Public catalog and purchase submission
	r.GET("/", ListRafflesHandler(svc, rdb))
	r.GET("/raffles", ListRafflesHandler(svc, rdb))
	r.GET("/raffles/:id", GetRaffleHandler(svc))
	r.POST("/buy_tickets", BuyTicketsHandler(svc, cfg.SessionSecret))
	r.GET("/img/raffle/:id", RaffleImageHandler(svc, images))

	// Authenticated user routes
	authed := r.Group("/")
	authed.Use(middleware.SessionAuthMiddleware(cfg.SessionSecret))
	authed.GET("/my_purchases", MyPurchasesHandler(svc))

	// Admin routes (session + admin flag)
	admin := r.Group("/admin")
	admin.Use(middleware.SessionAuthMiddleware(cfg.SessionSecret), middleware.AdminOnlyMiddleware(db))
	admin.GET("/dashboard", DashboardHandler(svc, rdb))
	admin.GET("/purchases", AdminPurchasesHandler(svc))
	admin.POST("/purchases/:id/approve", ApprovePurchaseHandler(svc, rdb))
	admin.POST("/purchases/:id/reject", RejectPurchaseHandler(svc, rdb))
	admin.GET("/raffles", AdminRafflesHandler(svc))
	admin.POST("/raffles", CreateRaffleHandler(svc, rdb))
	admin.PUT("/raffles/:id", UpdateRaffleHandler(svc, rdb))

	return r
}
