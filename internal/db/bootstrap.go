package db

import (
	"errors"

	"raffle_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// EnsureAdmin guarantees the administrator account exists. It is invoked
// explicitly at startup and is idempotent: if the configured username is
// already present nothing is written, and the unique constraint on username
// covers the race of two processes bootstrapping at once.
func EnsureAdmin(db *gorm.DB, username, password, email string) error {
	var existing domain.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil // Admin already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		// A concurrent bootstrap may have won the unique-constraint race;
		// treat the account existing as success.
		if db.Where("username = ?", username).First(&existing).Error == nil {
			return nil
		}
		return err
	}
	logrus.WithFields(logrus.Fields{
		"username": username,
		"user_id":  admin.ID,
	}).Info("Default administrator created")
	return nil
}
