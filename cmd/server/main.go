package main

import (
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging
	"raffle_system/internal/api"      // Custom package for API handlers
	"raffle_system/internal/config"   // Custom package for configuration
	"raffle_system/internal/db"       // Custom package for migration and bootstrap
	"raffle_system/internal/imgcache" // Image proxy cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gormDB, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Ensure schema and the administrator account exist before serving
	if err := db.AutoMigrate(gormDB); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := db.EnsureAdmin(gormDB, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		logrus.Fatalf("admin bootstrap failed: %v", err)
	}

	// Setup Redis client; caching is best-effort, so a missing Redis only
	// costs the cache, never the service
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Warnf("failed to connect to Redis, caching disabled: %v", err)
			redisClient = nil
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(gormDB, redisClient, imgcache.New(cfg.ImageCacheDir), cfg)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
