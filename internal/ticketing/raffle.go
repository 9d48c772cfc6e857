package ticketing

import (
	"errors"
	"time"

	"raffle_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// RaffleInput carries the admin-editable raffle fields
type RaffleInput struct {
	Title        string
	Description  string
	Price        float64
	TotalTickets int
	ImageURL     string
	IsActive     bool
	EndDate      time.Time
}

func (in RaffleInput) validate() error {
	if in.Title == "" || in.Description == "" {
		return ErrMissingField
	}
	if in.Price < 0 || in.TotalTickets <= 0 || in.EndDate.IsZero() {
		return ErrInvalidRaffle
	}
	return nil
}

// CreateRaffle creates a raffle with a full pool: available starts equal to
// total and only ever decreases from there, via Approve.
func (s *Service) CreateRaffle(in RaffleInput) (*domain.Raffle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	raffle := domain.Raffle{
		Title:            in.Title,
		Description:      in.Description,
		Price:            in.Price,
		TotalTickets:     in.TotalTickets,
		AvailableTickets: in.TotalTickets,
		ImageURL:         in.ImageURL,
		IsActive:         in.IsActive,
		EndDate:          in.EndDate,
	}
	if err := s.db.Create(&raffle).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"raffle_id":     raffle.ID,
		"total_tickets": raffle.TotalTickets,
	}).Info("Raffle created")
	return &raffle, nil
}

// UpdateRaffle applies an admin edit. available_tickets is never set
// directly: when the total changes, the available count moves by the same
// delta so the count of assigned numbers is preserved. Shrinking the total
// below the assigned count would orphan already-drawn numbers outside the
// valid range, so it is refused.
func (s *Service) UpdateRaffle(id uint, in RaffleInput) (*domain.Raffle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var raffle domain.Raffle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the raffle row before reading, same ordering as Approve: the
		// no-op guarded update is the transaction's first statement, so the
		// counts read below are the row as of the lock, not an earlier
		// snapshot, and a concurrent approval's decrement cannot be lost.
		res := tx.Model(&domain.Raffle{}).Where("id = ?", id).
			UpdateColumn("total_tickets", gorm.Expr("total_tickets"))
		if res.Error != nil {
			return res.Error
		}
		if err := tx.First(&raffle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRaffleNotFound
			}
			return err
		}
		assigned := raffle.TotalTickets - raffle.AvailableTickets
		if in.TotalTickets < assigned {
			return ErrTotalBelowAssigned
		}
		delta := in.TotalTickets - raffle.TotalTickets
		updates := map[string]any{
			"title":             in.Title,
			"description":       in.Description,
			"price":             in.Price,
			"total_tickets":     in.TotalTickets,
			"available_tickets": raffle.AvailableTickets + delta,
			"image_url":         in.ImageURL,
			"is_active":         in.IsActive,
			"end_date":          in.EndDate,
		}
		if err := tx.Model(&raffle).Updates(updates).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&raffle, id).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"raffle_id": raffle.ID,
	}).Info("Raffle updated")
	return &raffle, nil
}
