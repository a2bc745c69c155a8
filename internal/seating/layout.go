// Package seating resolves a room's seat layout into a deterministic order,
// so pagination and rendering stay stable across calls.
package seating

import (
	"context"
	"sort"

	"github.com/cinetix/booking-core/internal/domain"
)

type Resolver struct {
	rooms domain.RoomRepository
	seats domain.SeatRepository
}

func NewResolver(rooms domain.RoomRepository, seats domain.SeatRepository) *Resolver {
	return &Resolver{
		rooms: rooms,
		seats: seats,
	}
}

// GetSeatLayout returns the room's seats joined with their type, ordered by
// seat name using a natural numeric sort ("A2" before "A10"), ties broken by
// id. Pure read, no side effects.
func (r *Resolver) GetSeatLayout(ctx context.Context, roomID int) ([]domain.SeatWithType, error) {
	if _, err := r.rooms.GetById(ctx, roomID); err != nil {
		return nil, err
	}

	seats, err := r.seats.GetByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(seats, func(i, j int) bool {
		if seats[i].Name != seats[j].Name {
			return naturalLess(seats[i].Name, seats[j].Name)
		}

		return seats[i].ID < seats[j].ID
	})

	return seats, nil
}
