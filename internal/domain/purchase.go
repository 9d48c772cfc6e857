package domain

import "time"

// Purchase status values. Transitions are one-way: pending may move to
// approved or rejected, and both of those are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Purchase Model. A purchase is a buyer's request for Quantity tickets of a
// raffle, recorded with the payment evidence the admin reviews out of band.
// AssignedTickets is set exactly once, when the purchase is approved.
type Purchase struct {
	ID          uint    `gorm:"primaryKey"` // Primary key
	UserID      *uint   // Account the purchase was recorded under, nil for anonymous web submissions
	RaffleID    uint    `gorm:"not null;index"` // Foreign key to Raffle
	Quantity    int     `gorm:"not null"`       // Requested ticket count
	TotalAmount float64 `gorm:"not null"`       // Quantity x raffle price at submission time
	Status      string  `gorm:"size:20;default:pending;index"`

	// Buyer details
	BuyerName     string `gorm:"size:100;not null"`
	BuyerLastname string `gorm:"size:100;not null"`
	BuyerCedula   string `gorm:"size:20;not null"` // National ID
	BuyerPhone    string `gorm:"size:20;not null"`

	// Payment evidence
	PaymentMethod   string `gorm:"size:50"`
	BankName        string `gorm:"size:100;not null"`
	ReferenceNumber string `gorm:"size:50;not null"`

	AssignedTickets TicketNumbers `gorm:"type:text"` // Drawn ticket numbers, nil unless approved

	CreatedAt  time.Time
	ApprovedAt *time.Time // Set when the purchase leaves pending
	ApprovedBy *uint      // Admin who approved or rejected
}
