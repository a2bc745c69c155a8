package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Show is a scheduled screening of a movie in a room for the half-open
// window [StartTime, EndTime). No two shows in the same room may overlap.
type Show struct {
	ID        int
	MovieID   int
	RoomID    int
	StartTime time.Time
	EndTime   time.Time
	BasePrice decimal.Decimal
}

// TimeRange filters show listings. Zero values mean unbounded on that side.
type TimeRange struct {
	From time.Time
	To   time.Time
}

type ShowRepository interface {
	Create(ctx context.Context, show *Show) error
	GetById(ctx context.Context, id int) (*Show, error)
	GetAllByMovie(ctx context.Context, movieID int, timeRange TimeRange) ([]Show, error)

	// Update rewrites the schedulable attributes of a show. It fails with
	// ErrShowHasBookings once any booking exists against the show.
	Update(ctx context.Context, show *Show) error
}
