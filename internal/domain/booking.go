package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is a committed claim of exactly one seat for exactly one show.
// At most one booking can ever exist per (ShowID, SeatID) pair; the storage
// layer enforces this with a unique index.
type Booking struct {
	ID            int
	ShowID        int
	SeatID        int
	AmountCharged decimal.Decimal
	BookedAt      time.Time
}

// Reservation groups the bookings created by a single reserve request. The
// idempotency key is unique, so a retried request maps back to the original
// reservation instead of creating new bookings.
type Reservation struct {
	ID             int
	IdempotencyKey uuid.UUID
	ShowID         int
	CreatedAt      time.Time
	Bookings       []Booking
}

type BookingRepository interface {
	// CreateReservation atomically persists the reservation header and all of
	// its bookings. It returns ErrSeatAlreadyBooked when any (show, seat) pair
	// is already taken and ErrDuplicateIdempotencyKey when the key was
	// persisted by a concurrent request.
	CreateReservation(ctx context.Context, reservation *Reservation) error

	GetReservationByKey(ctx context.Context, key uuid.UUID) (*Reservation, error)
	GetAvailableSeatIds(ctx context.Context, showID int) ([]int, error)
	GetBookedSeatIdsIn(ctx context.Context, showID int, seatIDs []int) ([]int, error)
}
