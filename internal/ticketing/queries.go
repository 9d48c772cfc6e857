package ticketing

import (
	"errors"

	"raffle_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ActiveRaffles lists the raffles shown on the public catalog
func (s *Service) ActiveRaffles() ([]domain.Raffle, error) {
	var raffles []domain.Raffle
	err := s.db.Where("is_active = ?", true).Order("created_at desc").Find(&raffles).Error
	return raffles, err
}

// AllRaffles lists every raffle for the admin view
func (s *Service) AllRaffles() ([]domain.Raffle, error) {
	var raffles []domain.Raffle
	err := s.db.Order("created_at desc").Find(&raffles).Error
	return raffles, err
}

// RaffleByID loads one raffle
func (s *Service) RaffleByID(id uint) (*domain.Raffle, error) {
	var raffle domain.Raffle
	if err := s.db.First(&raffle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaffleNotFound
		}
		return nil, err
	}
	return &raffle, nil
}

// PurchaseByID loads one purchase
func (s *Service) PurchaseByID(id uint) (*domain.Purchase, error) {
	var purchase domain.Purchase
	if err := s.db.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// PendingPurchases lists purchases awaiting review, newest first
func (s *Service) PendingPurchases() ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := s.db.Where("status = ?", domain.StatusPending).
		Order("created_at desc").Find(&purchases).Error
	return purchases, err
}

// ApprovedPurchases lists the approval history, newest first
func (s *Service) ApprovedPurchases() ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := s.db.Where("status = ?", domain.StatusApproved).
		Order("approved_at desc").Find(&purchases).Error
	return purchases, err
}

// PurchasesByUser lists purchases recorded under an account, newest first
func (s *Service) PurchasesByUser(userID uint) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&purchases).Error
	return purchases, err
}

// DashboardStats are the counters shown on the admin dashboard
type DashboardStats struct {
	TotalRaffles     int64             `json:"total_raffles"`
	TotalUsers       int64             `json:"total_users"`
	TotalPurchases   int64             `json:"total_purchases"`
	PendingPurchases int64             `json:"pending_purchases"`
	RecentPurchases  []domain.Purchase `json:"recent_purchases"`
}

// Dashboard gathers the admin dashboard counters and the ten most recent
// purchases
func (s *Service) Dashboard() (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.db.Model(&domain.Raffle{}).Count(&stats.TotalRaffles).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&domain.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&domain.Purchase{}).Count(&stats.TotalPurchases).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&domain.Purchase{}).Where("status = ?", domain.StatusPending).
		Count(&stats.PendingPurchases).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("created_at desc").Limit(10).
		Find(&stats.RecentPurchases).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
