package domain

import "time"

// Raffle Model. AvailableTickets counts the numbers in [1, TotalTickets]
// not yet bound to an approved purchase; only the ticketing service may
// decrement it.
type Raffle struct {
	ID               uint    `gorm:"primaryKey"` // Primary key
	Title            string  `gorm:"not null"`
	Description      string  `gorm:"type:text;not null"`
	Price            float64 `gorm:"not null"` // Unit price per ticket
	TotalTickets     int     `gorm:"not null"` // Fixed pool size, numbers 1..TotalTickets
	AvailableTickets int     `gorm:"not null"` // Unassigned ticket count
	ImageURL         string  `gorm:"size:500"` // Cover image source, proxied and cached locally
	IsActive         bool    `gorm:"default:true"`
	CreatedAt        time.Time
	EndDate          time.Time `gorm:"not null"`
}
