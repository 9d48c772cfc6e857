package domain

import "time"

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey"`      // Primary key
	Username  string `gorm:"unique;not null"` // Unique username
	Email     string `gorm:"unique;not null"` // Unique email address
	Password  string `gorm:"not null"`        // Bcrypt password hash
	IsAdmin   bool   `gorm:"default:false"`   // Administrator flag
	CreatedAt time.Time
}
