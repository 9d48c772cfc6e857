package main

import (
	"raffle_system/internal/config" // Custom import path (Config)
	"raffle_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration. Also runs the admin bootstrap so a fresh
// database is usable immediately.
func main() {
	cfg := config.LoadConfig() // Load configuration

	gormDB := db.Migrate(cfg.DSN())
	if err := db.EnsureAdmin(gormDB, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		logrus.Fatalf("admin bootstrap failed: %v", err)
	}
	logrus.Info("Bootstrap completed.")
}
