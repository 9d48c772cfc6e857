package api

import (
	"errors"
	"net/http"

	"raffle_system/internal/ticketing"

	"github.com/gin-gonic/gin"
)

// respondError maps a ticketing error onto the HTTP boundary. Validation and
// state-machine failures surface as client errors with the message intact;
// anything unexpected becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ticketing.ErrMissingField),
		errors.Is(err, ticketing.ErrInvalidQuantity),
		errors.Is(err, ticketing.ErrInvalidRaffle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ticketing.ErrRaffleNotFound),
		errors.Is(err, ticketing.ErrPurchaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ticketing.ErrRaffleInactive),
		errors.Is(err, ticketing.ErrPurchaseNotPending),
		errors.Is(err, ticketing.ErrInsufficientAvailability),
		errors.Is(err, ticketing.ErrInsufficientTickets),
		errors.Is(err, ticketing.ErrTotalBelowAssigned):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
