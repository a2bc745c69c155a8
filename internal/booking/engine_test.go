package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/cinetix/booking-core/internal/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
	showRepo    *mocks.MockShowRepo
	seatRepo    *mocks.MockSeatRepo
	bookingRepo *mocks.MockBookingRepo
	events      *mocks.MockEventPublisher
	engine      *Engine

	show     *domain.Show
	standard domain.SeatWithType
	vip      domain.SeatWithType
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.show = &domain.Show{
		ID:        1,
		MovieID:   1,
		RoomID:    10,
		BasePrice: decimal.RequireFromString("10.00"),
	}

	s.standard = domain.SeatWithType{
		Seat: domain.Seat{ID: 1, RoomID: 10, SeatTypeID: 1, Name: "A1"},
		Type: domain.SeatType{ID: 1, Name: "standard", PremiumPercent: decimal.Zero},
	}
	s.vip = domain.SeatWithType{
		Seat: domain.Seat{ID: 2, RoomID: 10, SeatTypeID: 2, Name: "A2"},
		Type: domain.SeatType{ID: 2, Name: "vip", PremiumPercent: decimal.RequireFromString("50")},
	}

	s.showRepo = &mocks.MockShowRepo{
		GetByIdFunc: func(ctx context.Context, id int) (*domain.Show, error) {
			if id != s.show.ID {
				return nil, domain.ErrRecordNotFound
			}
			return s.show, nil
		},
	}

	s.seatRepo = &mocks.MockSeatRepo{
		GetByIdsFunc: func(ctx context.Context, seatIDs []int) ([]domain.SeatWithType, error) {
			all := map[int]domain.SeatWithType{1: s.standard, 2: s.vip}
			seats := make([]domain.SeatWithType, 0, len(seatIDs))
			for _, id := range seatIDs {
				if seat, ok := all[id]; ok {
					seats = append(seats, seat)
				}
			}
			return seats, nil
		},
	}

	s.bookingRepo = &mocks.MockBookingRepo{
		GetReservationByKeyFunc: func(ctx context.Context, key uuid.UUID) (*domain.Reservation, error) {
			return nil, domain.ErrRecordNotFound
		},
		CreateReservationFunc: func(ctx context.Context, reservation *domain.Reservation) error {
			reservation.ID = 100
			for i := range reservation.Bookings {
				reservation.Bookings[i].ID = 1000 + i
			}
			return nil
		},
	}

	s.events = &mocks.MockEventPublisher{}

	s.engine = NewEngine(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		s.showRepo,
		s.seatRepo,
		s.bookingRepo,
		s.events,
	)
}

func (s *EngineTestSuite) TestGetAvailability() {
	s.Run("fails when the show does not exist", func() {
		s.SetupTest()

		_, err := s.engine.GetAvailability(context.Background(), 999)

		s.ErrorIs(err, domain.ErrRecordNotFound)
	})

	s.Run("returns committed availability", func() {
		s.SetupTest()
		s.bookingRepo.GetAvailableSeatIdsFunc = func(ctx context.Context, showID int) ([]int, error) {
			s.Equal(1, showID)
			return []int{2}, nil
		}

		available, err := s.engine.GetAvailability(context.Background(), 1)

		s.NoError(err)
		s.Equal([]int{2}, available)
	})
}

func (s *EngineTestSuite) TestReserveSeatsValidation() {
	s.Run("rejects an empty seat set", func() {
		s.SetupTest()

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			IdempotencyKey: uuid.New(),
		})

		var validationErr *domain.ValidationError
		s.ErrorAs(err, &validationErr)
	})

	s.Run("rejects a missing idempotency key", func() {
		s.SetupTest()

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:  1,
			SeatIDs: []int{1},
		})

		var validationErr *domain.ValidationError
		s.ErrorAs(err, &validationErr)
	})

	s.Run("rejects non-positive seat ids", func() {
		s.SetupTest()

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			SeatIDs:        []int{0},
			IdempotencyKey: uuid.New(),
		})

		var validationErr *domain.ValidationError
		s.ErrorAs(err, &validationErr)
	})

	s.Run("fails when the show does not exist", func() {
		s.SetupTest()

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         999,
			SeatIDs:        []int{1},
			IdempotencyKey: uuid.New(),
		})

		s.ErrorIs(err, domain.ErrRecordNotFound)
	})

	s.Run("fails when a seat does not exist", func() {
		s.SetupTest()

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			SeatIDs:        []int{1, 999},
			IdempotencyKey: uuid.New(),
		})

		s.ErrorIs(err, domain.ErrRecordNotFound)
	})

	s.Run("fails when a seat belongs to another room", func() {
		s.SetupTest()
		s.seatRepo.GetByIdsFunc = func(ctx context.Context, seatIDs []int) ([]domain.SeatWithType, error) {
			return []domain.SeatWithType{
				{
					Seat: domain.Seat{ID: 1, RoomID: 77, SeatTypeID: 1, Name: "A1"},
					Type: s.standard.Type,
				},
			}, nil
		}

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			SeatIDs:        []int{1},
			IdempotencyKey: uuid.New(),
		})

		s.ErrorIs(err, domain.ErrSeatNotInRoom)
	})
}

func (s *EngineTestSuite) TestReserveSeatsSuccess() {
	s.SetupTest()

	var persisted *domain.Reservation
	s.bookingRepo.CreateReservationFunc = func(ctx context.Context, reservation *domain.Reservation) error {
		reservation.ID = 100
		for i := range reservation.Bookings {
			reservation.Bookings[i].ID = 1000 + i
		}
		persisted = reservation
		return nil
	}

	bookings, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
		ShowID:         1,
		SeatIDs:        []int{2, 1, 2}, // duplicates collapse
		IdempotencyKey: uuid.New(),
	})

	s.Require().NoError(err)
	s.Require().Len(bookings, 2)

	s.Equal(1, bookings[0].SeatID)
	s.True(decimal.RequireFromString("10.00").Equal(bookings[0].AmountCharged), "standard seat charges the base price")

	s.Equal(2, bookings[1].SeatID)
	s.True(decimal.RequireFromString("15.00").Equal(bookings[1].AmountCharged), "vip seat carries the 50 percent premium")

	s.Require().NotNil(persisted)
	s.Equal(1, persisted.ShowID)

	published := s.events.Published()
	s.Require().Len(published, 1)
	event := published[0]
	s.Equal(100, event.ReservationID)
	s.Equal([]int{1, 2}, event.SeatIDs)
	s.True(decimal.RequireFromString("25.00").Equal(event.TotalAmount))
}

func (s *EngineTestSuite) TestReserveSeatsConflict() {
	s.SetupTest()

	s.bookingRepo.CreateReservationFunc = func(ctx context.Context, reservation *domain.Reservation) error {
		return domain.ErrSeatAlreadyBooked
	}
	s.bookingRepo.GetBookedSeatIdsInFunc = func(ctx context.Context, showID int, seatIDs []int) ([]int, error) {
		return []int{1}, nil
	}

	_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
		ShowID:         1,
		SeatIDs:        []int{1, 2},
		IdempotencyKey: uuid.New(),
	})

	var seatErr *domain.SeatUnavailableError
	s.Require().ErrorAs(err, &seatErr)
	s.Equal([]int{1}, seatErr.SeatIDs, "only the actually booked seat is reported")

	s.Empty(s.events.Published(), "no event for a failed reservation")
}

func (s *EngineTestSuite) TestReserveSeatsIdempotentReplay() {
	key := uuid.New()
	original := &domain.Reservation{
		ID:             100,
		IdempotencyKey: key,
		ShowID:         1,
		Bookings: []domain.Booking{
			{ID: 1000, ShowID: 1, SeatID: 1, AmountCharged: decimal.RequireFromString("10.00")},
			{ID: 1001, ShowID: 1, SeatID: 2, AmountCharged: decimal.RequireFromString("15.00")},
		},
	}

	s.Run("returns the original bookings without inserting", func() {
		s.SetupTest()
		s.bookingRepo.GetReservationByKeyFunc = func(ctx context.Context, k uuid.UUID) (*domain.Reservation, error) {
			s.Equal(key, k)
			return original, nil
		}
		s.bookingRepo.CreateReservationFunc = func(ctx context.Context, reservation *domain.Reservation) error {
			s.Fail("replay must not create a new reservation")
			return nil
		}

		bookings, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			SeatIDs:        []int{2, 1},
			IdempotencyKey: key,
		})

		s.Require().NoError(err)
		s.Require().Len(bookings, 2)
		s.Equal(1000, bookings[0].ID)
		s.Equal(1001, bookings[1].ID)
	})

	s.Run("rejects the key with a different seat set", func() {
		s.SetupTest()
		s.bookingRepo.GetReservationByKeyFunc = func(ctx context.Context, k uuid.UUID) (*domain.Reservation, error) {
			return original, nil
		}

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			SeatIDs:        []int{1},
			IdempotencyKey: key,
		})

		s.ErrorIs(err, domain.ErrIdempotencyKeyReuse)
	})

	s.Run("rejects the key with a different show", func() {
		s.SetupTest()
		s.bookingRepo.GetReservationByKeyFunc = func(ctx context.Context, k uuid.UUID) (*domain.Reservation, error) {
			return original, nil
		}

		_, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         2,
			SeatIDs:        []int{1, 2},
			IdempotencyKey: key,
		})

		s.ErrorIs(err, domain.ErrIdempotencyKeyReuse)
	})

	s.Run("resolves a lost insert race against the same key", func() {
		s.SetupTest()

		calls := 0
		s.bookingRepo.GetReservationByKeyFunc = func(ctx context.Context, k uuid.UUID) (*domain.Reservation, error) {
			calls++
			if calls == 1 {
				// Not visible yet when the request starts.
				return nil, domain.ErrRecordNotFound
			}
			return original, nil
		}
		s.bookingRepo.CreateReservationFunc = func(ctx context.Context, reservation *domain.Reservation) error {
			return domain.ErrDuplicateIdempotencyKey
		}

		bookings, err := s.engine.ReserveSeats(context.Background(), ReserveSeatsParams{
			ShowID:         1,
			SeatIDs:        []int{1, 2},
			IdempotencyKey: key,
		})

		s.Require().NoError(err)
		s.Len(bookings, 2)
		s.Empty(s.events.Published(), "the winning request already published")
	})
}
