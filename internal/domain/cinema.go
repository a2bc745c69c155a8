package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Cinema struct {
	ID   int
	Name string
}

// Room belongs to exactly one cinema. Room names are unique within a cinema.
type Room struct {
	ID       int
	CinemaID int
	Name     string
}

// SeatType is a pricing tier applied uniformly to a seat regardless of show.
// PremiumPercent is added on top of a show's base price (50 means +50%).
type SeatType struct {
	ID             int
	Name           string
	PremiumPercent decimal.Decimal
}

// Seat names are unique within a room.
type Seat struct {
	ID         int
	RoomID     int
	SeatTypeID int
	Name       string
}

// SeatWithType is the joined view the seat layout and the reservation engine
// work with.
type SeatWithType struct {
	Seat
	Type SeatType
}

type CinemaRepository interface {
	Create(ctx context.Context, cinema *Cinema) error
	GetById(ctx context.Context, id int) (*Cinema, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetById(ctx context.Context, id int) (*Room, error)
	GetByCinema(ctx context.Context, cinemaID int) ([]Room, error)
}

type SeatTypeRepository interface {
	Create(ctx context.Context, seatType *SeatType) error
	GetById(ctx context.Context, id int) (*SeatType, error)
}

type SeatRepository interface {
	Create(ctx context.Context, seat *Seat) error
	GetByRoom(ctx context.Context, roomID int) ([]SeatWithType, error)
	GetByIds(ctx context.Context, seatIDs []int) ([]SeatWithType, error)
}
