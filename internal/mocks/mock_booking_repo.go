package mocks

import (
	"context"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/google/uuid"
)

type MockBookingRepo struct {
	CreateReservationFunc   func(ctx context.Context, reservation *domain.Reservation) error
	GetReservationByKeyFunc func(ctx context.Context, key uuid.UUID) (*domain.Reservation, error)
	GetAvailableSeatIdsFunc func(ctx context.Context, showID int) ([]int, error)
	GetBookedSeatIdsInFunc  func(ctx context.Context, showID int, seatIDs []int) ([]int, error)
}

func (m *MockBookingRepo) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	return m.CreateReservationFunc(ctx, reservation)
}

func (m *MockBookingRepo) GetReservationByKey(ctx context.Context, key uuid.UUID) (*domain.Reservation, error) {
	return m.GetReservationByKeyFunc(ctx, key)
}

func (m *MockBookingRepo) GetAvailableSeatIds(ctx context.Context, showID int) ([]int, error) {
	return m.GetAvailableSeatIdsFunc(ctx, showID)
}

func (m *MockBookingRepo) GetBookedSeatIdsIn(ctx context.Context, showID int, seatIDs []int) ([]int, error) {
	return m.GetBookedSeatIdsInFunc(ctx, showID, seatIDs)
}
