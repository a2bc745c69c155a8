package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/cinetix/booking-core/internal/booking"
	"github.com/cinetix/booking-core/internal/catalog"
	"github.com/cinetix/booking-core/internal/mocks"
	"github.com/cinetix/booking-core/internal/repository"
	"github.com/cinetix/booking-core/internal/schedule"
	"github.com/cinetix/booking-core/internal/seating"
	appvalidator "github.com/cinetix/booking-core/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// TestServices wires the real services against the containers, with the
// broker swapped for an in-memory publisher.
type TestServices struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Events *mocks.MockEventPublisher

	Catalog  *catalog.Service
	Schedule *schedule.Service
	Seating  *seating.Resolver
	Booking  *booking.Engine
}

func newTestServices(dbDSN, redisAddr string) (*TestServices, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := pgxpool.New(context.Background(), dbDSN)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})

	movieRepo := repository.NewPostgresMovieRepository(db)
	cinemaRepo := repository.NewPostgresCinemaRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	seatTypeRepo := repository.NewPostgresSeatTypeRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	showRepo := repository.NewPostgresShowRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	events := &mocks.MockEventPublisher{}

	catalogService := catalog.NewService(
		logger,
		validator,
		catalog.NewRedisCache(redisClient),
		movieRepo,
		cinemaRepo,
		roomRepo,
		seatTypeRepo,
		seatRepo,
	)
	scheduleService := schedule.NewService(logger, validator, movieRepo, roomRepo, showRepo)
	seatingResolver := seating.NewResolver(roomRepo, seatRepo)
	bookingEngine := booking.NewEngine(logger, showRepo, seatRepo, bookingRepo, events)

	return &TestServices{
		DB:       db,
		Redis:    redisClient,
		Events:   events,
		Catalog:  catalogService,
		Schedule: scheduleService,
		Seating:  seatingResolver,
		Booking:  bookingEngine,
	}, nil
}

func (ts *TestServices) Close() {
	ts.DB.Close()
	ts.Redis.Close()
}
