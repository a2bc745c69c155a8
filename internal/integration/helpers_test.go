package integration_test

import (
	"context"
	"fmt"
	"time"

	"github.com/cinetix/booking-core/internal/catalog"
	"github.com/cinetix/booking-core/internal/domain"
	"github.com/cinetix/booking-core/internal/schedule"
	"github.com/shopspring/decimal"
)

// catalogFixture is one movie, one cinema with one room, and a small seat map
// of four standard seats (A1..A4) and two vip seats (B1, B2) at a 50 percent
// premium. Names are prefixed so multiple fixtures coexist in one database.
type catalogFixture struct {
	Movie    *domain.Movie
	Cinema   *domain.Cinema
	Room     *domain.Room
	Standard *domain.SeatType
	VIP      *domain.SeatType
	Seats    map[string]*domain.Seat
}

func (s *BaseSuite) seedCatalog(prefix string) *catalogFixture {
	ctx := context.Background()

	movie, err := s.services.Catalog.CreateMovie(ctx, catalog.CreateMovieParams{
		Title:    prefix + " movie",
		Duration: 120,
	})
	s.Require().NoError(err)

	cinema, err := s.services.Catalog.CreateCinema(ctx, catalog.CreateCinemaParams{
		Name: prefix + " cinema",
	})
	s.Require().NoError(err)

	room, err := s.services.Catalog.CreateRoom(ctx, catalog.CreateRoomParams{
		CinemaID: cinema.ID,
		Name:     prefix + " room",
	})
	s.Require().NoError(err)

	standard, err := s.services.Catalog.CreateSeatType(ctx, catalog.CreateSeatTypeParams{
		Name: prefix + " standard",
	})
	s.Require().NoError(err)

	vip, err := s.services.Catalog.CreateSeatType(ctx, catalog.CreateSeatTypeParams{
		Name:           prefix + " vip",
		PremiumPercent: decimal.RequireFromString("50"),
	})
	s.Require().NoError(err)

	fixture := &catalogFixture{
		Movie:    movie,
		Cinema:   cinema,
		Room:     room,
		Standard: standard,
		VIP:      vip,
		Seats:    make(map[string]*domain.Seat),
	}

	for _, name := range []string{"A1", "A2", "A3", "A4"} {
		fixture.Seats[name] = s.createSeat(room.ID, standard.ID, name)
	}
	for _, name := range []string{"B1", "B2"} {
		fixture.Seats[name] = s.createSeat(room.ID, vip.ID, name)
	}

	return fixture
}

func (s *BaseSuite) createSeat(roomID, seatTypeID int, name string) *domain.Seat {
	seat, err := s.services.Catalog.CreateSeat(context.Background(), catalog.CreateSeatParams{
		RoomID:     roomID,
		SeatTypeID: seatTypeID,
		Name:       name,
	})
	s.Require().NoError(err)

	return seat
}

// createShow schedules a two hour show for the fixture's movie and room at a
// 10.00 base price.
func (s *BaseSuite) createShow(fixture *catalogFixture, start time.Time) *domain.Show {
	show, err := s.services.Schedule.CreateShow(context.Background(), schedule.CreateShowParams{
		MovieID:   fixture.Movie.ID,
		RoomID:    fixture.Room.ID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		BasePrice: decimal.RequireFromString("10.00"),
	})
	s.Require().NoError(err)

	return show
}

func (s *BaseSuite) countRows(query string, args ...any) int {
	var count int
	err := s.services.DB.QueryRow(context.Background(), query, args...).Scan(&count)
	s.Require().NoError(err)

	return count
}

func showTime(day, hour int) time.Time {
	return time.Date(2026, time.September, day, hour, 0, 0, 0, time.UTC)
}

var fixtureCounter int

// uniquePrefix keeps catalog names unique across tests sharing one database.
func uniquePrefix(label string) string {
	fixtureCounter++
	return fmt.Sprintf("%s-%d", label, fixtureCounter)
}
