package ticketing

import (
	"errors"
	"math/rand" // Uniform ticket drawing
	"sort"
	"time"

	"raffle_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Service implements the purchase state machine and the ticket allocator.
// All state transitions go through here so the single invariant (no ticket
// number assigned twice within a raffle) has one owner.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service backed by db
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubmitInput carries a buyer's purchase request
type SubmitInput struct {
	RaffleID        uint
	Quantity        int
	UserID          *uint // Session account if the buyer was logged in, else nil
	BuyerName       string
	BuyerLastname   string
	BuyerCedula     string
	BuyerPhone      string
	BankName        string
	ReferenceNumber string
}

// Submit records a purchase request as pending. The availability check here
// is advisory only: it does not reserve capacity, because payment is
// verified manually before any ticket is drawn. Capacity is enforced for
// real inside Approve.
func (s *Service) Submit(in SubmitInput) (*domain.Purchase, error) {
	if in.BuyerName == "" || in.BuyerLastname == "" || in.BuyerCedula == "" ||
		in.BuyerPhone == "" || in.BankName == "" || in.ReferenceNumber == "" {
		return nil, ErrMissingField
	}
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	var raffle domain.Raffle
	if err := s.db.First(&raffle, in.RaffleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaffleNotFound
		}
		return nil, err
	}
	if !raffle.IsActive {
		return nil, ErrRaffleInactive
	}
	if in.Quantity > raffle.AvailableTickets {
		return nil, ErrInsufficientAvailability
	}
	purchase := domain.Purchase{
		UserID:          in.UserID,
		RaffleID:        raffle.ID,
		Quantity:        in.Quantity,
		TotalAmount:     float64(in.Quantity) * raffle.Price,
		Status:          domain.StatusPending,
		BuyerName:       in.BuyerName,
		BuyerLastname:   in.BuyerLastname,
		BuyerCedula:     in.BuyerCedula,
		BuyerPhone:      in.BuyerPhone,
		PaymentMethod:   "transferencia",
		BankName:        in.BankName,
		ReferenceNumber: in.ReferenceNumber,
	}
	if err := s.db.Create(&purchase).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"purchase_id": purchase.ID,
		"raffle_id":   raffle.ID,
		"quantity":    purchase.Quantity,
		"amount":      purchase.TotalAmount,
	}).Info("Purchase submitted")
	return &purchase, nil
}

// Approve transitions a pending purchase to approved, drawing its ticket
// numbers. The whole read-pool-compute-write sequence runs inside one
// transaction whose first statement is a guarded decrement of the raffle's
// available_tickets: it takes the row lock that serializes every approval
// for this raffle. Because no read precedes it, the transaction's snapshot
// is established only after the lock is held, so the pool computation sees
// every approval committed before ours, under REPEATABLE READ included.
func (s *Service) Approve(purchaseID, adminID uint) ([]int, error) {
	// Pre-checks outside the transaction for the cheap failures. Status is
	// verified again under the lock before anything is written.
	var purchase domain.Purchase
	if err := s.db.First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if purchase.Status != domain.StatusPending {
		return nil, ErrPurchaseNotPending
	}
	if err := s.db.First(&domain.Raffle{}, purchase.RaffleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaffleNotFound
		}
		return nil, err
	}
	var drawn []int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Guarded decrement, first statement in the transaction. Rejects an
		// overdraw and locks the raffle row until commit.
		res := tx.Model(&domain.Raffle{}).
			Where("id = ? AND available_tickets >= ?", purchase.RaffleID, purchase.Quantity).
			UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", purchase.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientTickets
		}
		var raffle domain.Raffle
		if err := tx.First(&raffle, purchase.RaffleID).Error; err != nil {
			return err
		}
		// Re-verify under the lock: a concurrent reviewer may have settled
		// this purchase while we waited
		if err := tx.First(&purchase, purchaseID).Error; err != nil {
			return err
		}
		if purchase.Status != domain.StatusPending {
			return ErrPurchaseNotPending
		}
		// Union of numbers already bound to this raffle's approved purchases
		var approved []domain.Purchase
		if err := tx.Where("raffle_id = ? AND status = ?", raffle.ID, domain.StatusApproved).
			Find(&approved).Error; err != nil {
			return err
		}
		taken := make(map[int]bool)
		for _, p := range approved {
			for _, n := range p.AssignedTickets {
				taken[n] = true
			}
		}
		pool := make([]int, 0, raffle.TotalTickets-len(taken))
		for n := 1; n <= raffle.TotalTickets; n++ {
			if !taken[n] {
				pool = append(pool, n)
			}
		}
		// Hard capacity check against the real pool. The rollback undoes
		// the decrement above, leaving no observable change.
		if len(pool) < purchase.Quantity {
			return ErrInsufficientTickets
		}
		// Uniform draw without replacement; the sort is for display and
		// storage only, the set itself is what matters.
		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		drawn = append([]int(nil), pool[:purchase.Quantity]...)
		sort.Ints(drawn)
		now := time.Now()
		return tx.Model(&purchase).Updates(map[string]any{
			"status":           domain.StatusApproved,
			"assigned_tickets": domain.TicketNumbers(drawn),
			"approved_at":      now,
			"approved_by":      adminID,
		}).Error
	})
	if err != nil {
		if !isDomainError(err) {
			logrus.WithFields(logrus.Fields{
				"purchase_id": purchaseID,
				"admin_id":    adminID,
				"error":       err.Error(),
			}).Error("Approval failed")
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"purchase_id": purchaseID,
		"admin_id":    adminID,
		"tickets":     drawn,
	}).Info("Purchase approved")
	return drawn, nil
}

// Reject transitions a pending purchase to rejected. No tickets were ever
// reserved for it, so nothing numeric changes anywhere.
func (s *Service) Reject(purchaseID, adminID uint) error {
	var purchase domain.Purchase
	if err := s.db.First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPurchaseNotFound
		}
		return err
	}
	if purchase.Status != domain.StatusPending {
		return ErrPurchaseNotPending
	}
	now := time.Now()
	res := s.db.Model(&domain.Purchase{}).
		Where("id = ? AND status = ?", purchaseID, domain.StatusPending).
		Updates(map[string]any{
			"status":      domain.StatusRejected,
			"approved_at": now,
			"approved_by": adminID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPurchaseNotPending // Lost a race with another reviewer
	}
	logrus.WithFields(logrus.Fields{
		"purchase_id": purchaseID,
		"admin_id":    adminID,
	}).Info("Purchase rejected")
	return nil
}

// isDomainError reports whether err is an expected business outcome rather
// than an infrastructure failure worth an error log
func isDomainError(err error) bool {
	for _, e := range []error{
		ErrMissingField, ErrInvalidQuantity, ErrInvalidRaffle,
		ErrRaffleNotFound, ErrPurchaseNotFound,
		ErrRaffleInactive, ErrPurchaseNotPending,
		ErrInsufficientAvailability, ErrInsufficientTickets,
		ErrTotalBelowAssigned,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
