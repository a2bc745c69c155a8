package mocks

import (
	"context"

	"github.com/cinetix/booking-core/internal/domain"
)

type MockCinemaRepo struct {
	CreateFunc  func(ctx context.Context, cinema *domain.Cinema) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.Cinema, error)
}

func (m *MockCinemaRepo) Create(ctx context.Context, cinema *domain.Cinema) error {
	return m.CreateFunc(ctx, cinema)
}

func (m *MockCinemaRepo) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	return m.GetByIdFunc(ctx, id)
}

type MockRoomRepo struct {
	CreateFunc      func(ctx context.Context, room *domain.Room) error
	GetByIdFunc     func(ctx context.Context, id int) (*domain.Room, error)
	GetByCinemaFunc func(ctx context.Context, cinemaID int) ([]domain.Room, error)
}

func (m *MockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	return m.CreateFunc(ctx, room)
}

func (m *MockRoomRepo) GetById(ctx context.Context, id int) (*domain.Room, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockRoomRepo) GetByCinema(ctx context.Context, cinemaID int) ([]domain.Room, error) {
	return m.GetByCinemaFunc(ctx, cinemaID)
}

type MockSeatTypeRepo struct {
	CreateFunc  func(ctx context.Context, seatType *domain.SeatType) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.SeatType, error)
}

func (m *MockSeatTypeRepo) Create(ctx context.Context, seatType *domain.SeatType) error {
	return m.CreateFunc(ctx, seatType)
}

func (m *MockSeatTypeRepo) GetById(ctx context.Context, id int) (*domain.SeatType, error) {
	return m.GetByIdFunc(ctx, id)
}

type MockSeatRepo struct {
	CreateFunc    func(ctx context.Context, seat *domain.Seat) error
	GetByRoomFunc func(ctx context.Context, roomID int) ([]domain.SeatWithType, error)
	GetByIdsFunc  func(ctx context.Context, seatIDs []int) ([]domain.SeatWithType, error)
}

func (m *MockSeatRepo) Create(ctx context.Context, seat *domain.Seat) error {
	return m.CreateFunc(ctx, seat)
}

func (m *MockSeatRepo) GetByRoom(ctx context.Context, roomID int) ([]domain.SeatWithType, error) {
	return m.GetByRoomFunc(ctx, roomID)
}

func (m *MockSeatRepo) GetByIds(ctx context.Context, seatIDs []int) ([]domain.SeatWithType, error) {
	return m.GetByIdsFunc(ctx, seatIDs)
}
