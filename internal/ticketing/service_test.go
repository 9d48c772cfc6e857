package ticketing

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"raffle_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// setupTestDB connects to a fresh in-memory SQLite DB for testing. The
// shared-cache named DSN keeps gorm's connection pool on one database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ticketing%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to in-memory database")
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Raffle{}, &domain.Purchase{}))
	return db
}

func newTestRaffle(t *testing.T, svc *Service, total int) *domain.Raffle {
	t.Helper()
	raffle, err := svc.CreateRaffle(RaffleInput{
		Title:        "Test raffle",
		Description:  "A raffle used in tests",
		Price:        10,
		TotalTickets: total,
		IsActive:     true,
		EndDate:      time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return raffle
}

func newSubmitInput(raffleID uint, qty int) SubmitInput {
	return SubmitInput{
		RaffleID:        raffleID,
		Quantity:        qty,
		BuyerName:       "Maria",
		BuyerLastname:   "Perez",
		BuyerCedula:     "V-12345678",
		BuyerPhone:      "0412-5551234",
		BankName:        "Banco de Venezuela",
		ReferenceNumber: "00012345",
	}
}

// assertInvariant checks the allocator invariant for one raffle: the union
// of assigned numbers across approved purchases has no duplicates, every
// number is in range, and the union size equals total minus available.
func assertInvariant(t *testing.T, db *gorm.DB, raffleID uint) {
	t.Helper()
	var raffle domain.Raffle
	require.NoError(t, db.First(&raffle, raffleID).Error)
	var approved []domain.Purchase
	require.NoError(t, db.Where("raffle_id = ? AND status = ?", raffleID, domain.StatusApproved).
		Find(&approved).Error)
	seen := make(map[int]bool)
	for _, p := range approved {
		assert.Len(t, p.AssignedTickets, p.Quantity)
		for _, n := range p.AssignedTickets {
			assert.False(t, seen[n], "ticket %d assigned twice", n)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, raffle.TotalTickets)
			seen[n] = true
		}
	}
	assert.Equal(t, raffle.TotalTickets-raffle.AvailableTickets, len(seen))
}

func TestSubmitCreatesPendingPurchase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)

	purchase, err := svc.Submit(newSubmitInput(raffle.ID, 3))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, purchase.Status)
	assert.Equal(t, 30.0, purchase.TotalAmount)
	assert.Nil(t, purchase.AssignedTickets)
	assert.Nil(t, purchase.ApprovedAt)

	// Submission reserves nothing
	got, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.AvailableTickets)
}

func TestSubmitValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)

	missing := newSubmitInput(raffle.ID, 1)
	missing.BankName = ""
	_, err := svc.Submit(missing)
	assert.ErrorIs(t, err, ErrMissingField)

	zero := newSubmitInput(raffle.ID, 0)
	_, err = svc.Submit(zero)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Submit(newSubmitInput(9999, 1))
	assert.ErrorIs(t, err, ErrRaffleNotFound)

	_, err = svc.Submit(newSubmitInput(raffle.ID, 11))
	assert.ErrorIs(t, err, ErrInsufficientAvailability)
}

func TestSubmitRejectsInactiveRaffle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)
	require.NoError(t, db.Model(raffle).Update("is_active", false).Error)

	_, err := svc.Submit(newSubmitInput(raffle.ID, 1))
	assert.ErrorIs(t, err, ErrRaffleInactive)
}

func TestApproveAssignsDistinctNumbers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)
	purchase, err := svc.Submit(newSubmitInput(raffle.ID, 3))
	require.NoError(t, err)

	drawn, err := svc.Approve(purchase.ID, 1)
	require.NoError(t, err)
	require.Len(t, drawn, 3)
	assert.IsIncreasing(t, drawn)

	got, err := svc.PurchaseByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, domain.TicketNumbers(drawn), got.AssignedTickets)
	require.NotNil(t, got.ApprovedAt)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, uint(1), *got.ApprovedBy)

	updated, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.AvailableTickets)
	assertInvariant(t, db, raffle.ID)
}

func TestApproveKeepsInvariantAcrossPurchases(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 20)

	for _, qty := range []int{5, 3, 7, 2} {
		purchase, err := svc.Submit(newSubmitInput(raffle.ID, qty))
		require.NoError(t, err)
		_, err = svc.Approve(purchase.ID, 1)
		require.NoError(t, err)
		assertInvariant(t, db, raffle.ID)
	}

	got, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AvailableTickets)
}

func TestApproveExactPoolExhaustion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 5)
	purchase, err := svc.Submit(newSubmitInput(raffle.ID, 5))
	require.NoError(t, err)

	drawn, err := svc.Approve(purchase.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, drawn)

	got, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableTickets)
	assertInvariant(t, db, raffle.ID)
}

func TestApproveInsufficientTicketsChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 5)
	first, err := svc.Submit(newSubmitInput(raffle.ID, 5))
	require.NoError(t, err)
	// Both pass the soft check before either approval
	second, err := svc.Submit(newSubmitInput(raffle.ID, 1))
	require.NoError(t, err)

	_, err = svc.Approve(first.ID, 1)
	require.NoError(t, err)

	_, err = svc.Approve(second.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientTickets)

	// The failed approval left no trace
	got, err := svc.PurchaseByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Nil(t, got.AssignedTickets)
	assert.Nil(t, got.ApprovedAt)

	updated, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableTickets)
	assertInvariant(t, db, raffle.ID)
}

func TestRejectTouchesOnlyStatusAndMetadata(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)
	keeper, err := svc.Submit(newSubmitInput(raffle.ID, 4))
	require.NoError(t, err)
	_, err = svc.Approve(keeper.ID, 1)
	require.NoError(t, err)
	keeperAfter, err := svc.PurchaseByID(keeper.ID)
	require.NoError(t, err)

	rejected, err := svc.Submit(newSubmitInput(raffle.ID, 2))
	require.NoError(t, err)
	require.NoError(t, svc.Reject(rejected.ID, 1))

	got, err := svc.PurchaseByID(rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Nil(t, got.AssignedTickets)
	require.NotNil(t, got.ApprovedAt)
	require.NotNil(t, got.ApprovedBy)

	// Nothing else moved
	updated, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.AvailableTickets)
	unchanged, err := svc.PurchaseByID(keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, keeperAfter.AssignedTickets, unchanged.AssignedTickets)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)

	approved, err := svc.Submit(newSubmitInput(raffle.ID, 3))
	require.NoError(t, err)
	drawn, err := svc.Approve(approved.ID, 1)
	require.NoError(t, err)

	// Re-approving must not redraw
	_, err = svc.Approve(approved.ID, 1)
	assert.ErrorIs(t, err, ErrPurchaseNotPending)
	got, err := svc.PurchaseByID(approved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketNumbers(drawn), got.AssignedTickets)

	// Rejecting an approved purchase is refused
	assert.ErrorIs(t, svc.Reject(approved.ID, 1), ErrPurchaseNotPending)

	rejected, err := svc.Submit(newSubmitInput(raffle.ID, 1))
	require.NoError(t, err)
	require.NoError(t, svc.Reject(rejected.ID, 1))
	_, err = svc.Approve(rejected.ID, 1)
	assert.ErrorIs(t, err, ErrPurchaseNotPending)
	assert.ErrorIs(t, svc.Reject(rejected.ID, 1), ErrPurchaseNotPending)

	updated, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.AvailableTickets)
}

func TestApproveUnknownPurchase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Approve(9999, 1)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
	assert.ErrorIs(t, svc.Reject(9999, 1), ErrPurchaseNotFound)
}

func TestSubmitAfterApprovalSeesReducedAvailability(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)

	a, err := svc.Submit(newSubmitInput(raffle.ID, 3))
	require.NoError(t, err)
	got, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.AvailableTickets)

	drawn, err := svc.Approve(a.ID, 1)
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
	got, err = svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.AvailableTickets)

	_, err = svc.Submit(newSubmitInput(raffle.ID, 8))
	assert.ErrorIs(t, err, ErrInsufficientAvailability)
}

func TestUpdateRaffleGuardsTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)
	purchase, err := svc.Submit(newSubmitInput(raffle.ID, 3))
	require.NoError(t, err)
	_, err = svc.Approve(purchase.ID, 1)
	require.NoError(t, err)

	in := RaffleInput{
		Title:        "Edited",
		Description:  "Edited description",
		Price:        12,
		TotalTickets: 2, // Below the 3 already assigned
		IsActive:     true,
		EndDate:      raffle.EndDate,
	}
	_, err = svc.UpdateRaffle(raffle.ID, in)
	assert.ErrorIs(t, err, ErrTotalBelowAssigned)

	// Growing the pool grows availability by the same delta
	in.TotalTickets = 15
	_, err = svc.UpdateRaffle(raffle.ID, in)
	require.NoError(t, err)
	got, err := svc.RaffleByID(raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.TotalTickets)
	assert.Equal(t, 12, got.AvailableTickets)
	assertInvariant(t, db, raffle.ID)
}

func TestUpdateRaffleSeesLatestApproval(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	raffle := newTestRaffle(t, svc, 10)

	// The admin loads the edit form while availability is still 10
	in := RaffleInput{
		Title:        raffle.Title,
		Description:  raffle.Description,
		Price:        raffle.Price,
		TotalTickets: 12,
		IsActive:     true,
		EndDate:      raffle.EndDate,
	}

	// An approval commits before the edit is submitted
	purchase, err := svc.Submit(newSubmitInput(raffle.ID, 4))
	require.NoError(t, err)
	_, err = svc.Approve(purchase.ID, 1)
	require.NoError(t, err)

	// The delta is applied to the row's current counts, so the approval's
	// decrement survives: 6 available + 2 new = 8
	updated, err := svc.UpdateRaffle(raffle.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.TotalTickets)
	assert.Equal(t, 8, updated.AvailableTickets)
	assertInvariant(t, db, raffle.ID)

	// The shrink guard also sees the current assigned count
	in.TotalTickets = 3
	_, err = svc.UpdateRaffle(raffle.ID, in)
	assert.ErrorIs(t, err, ErrTotalBelowAssigned)
}

func TestCreateRaffleValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.CreateRaffle(RaffleInput{Description: "d", Price: 1, TotalTickets: 5, EndDate: time.Now()})
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = svc.CreateRaffle(RaffleInput{Title: "t", Description: "d", Price: -1, TotalTickets: 5, EndDate: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidRaffle)
	_, err = svc.CreateRaffle(RaffleInput{Title: "t", Description: "d", Price: 1, TotalTickets: 0, EndDate: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidRaffle)
}
