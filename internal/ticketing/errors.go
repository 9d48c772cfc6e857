package ticketing

import "errors"

// Validation errors
var (
	ErrMissingField    = errors.New("required field missing")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidRaffle   = errors.New("invalid raffle parameters")
)

// Lookup errors
var (
	ErrRaffleNotFound   = errors.New("raffle not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// State errors
var (
	ErrRaffleInactive     = errors.New("raffle is not active")
	ErrPurchaseNotPending = errors.New("purchase is not pending")

	// ErrInsufficientAvailability is the submission-time soft check: the
	// requested quantity exceeds the raffle's available count right now.
	// It reserves nothing; capacity is enforced for real at approval.
	ErrInsufficientAvailability = errors.New("not enough tickets available")

	// ErrInsufficientTickets is the approval-time hard check: the pool of
	// unassigned numbers is smaller than the purchase quantity.
	ErrInsufficientTickets = errors.New("not enough ticket numbers left to assign")

	// ErrTotalBelowAssigned rejects shrinking a raffle's total below the
	// count of numbers already bound to approved purchases.
	ErrTotalBelowAssigned = errors.New("total tickets cannot drop below assigned tickets")
)
