package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BookingConfirmedEvent is handed to external collaborators (notifications,
// reporting) after a reservation commits. Publishing is best-effort; the
// reservation itself never depends on it.
type BookingConfirmedEvent struct {
	ReservationID int             `json:"reservation_id"`
	ShowID        int             `json:"show_id"`
	SeatIDs       []int           `json:"seat_ids"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	BookedAt      time.Time       `json:"booked_at"`
}

type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}
