// Command seed prepares a database for local development: it applies the
// schema migrations and loads a small demo catalog with a scheduled show, so
// the booking engine has something to reserve against.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cinetix/booking-core/internal/catalog"
	"github.com/cinetix/booking-core/internal/repository"
	"github.com/cinetix/booking-core/internal/schedule"
	appvalidator "github.com/cinetix/booking-core/internal/validator"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type config struct {
	dsn        string
	redisURL   string
	migrations string
	skipDemo   bool
}

func main() {
	var cfg config

	flag.StringVar(&cfg.dsn, "db-dsn", os.Getenv("BOOKING_DB_DSN"), "PostgreSQL DSN")
	flag.StringVar(&cfg.redisURL, "redis-url", os.Getenv("BOOKING_REDIS_URL"), "Redis address (host:port, optional)")
	flag.StringVar(&cfg.migrations, "migrations", "file://migrations", "Migrations source URL")
	flag.BoolVar(&cfg.skipDemo, "skip-demo", false, "Apply migrations only, skip demo data")

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(cfg, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	if cfg.dsn == "" {
		return fmt.Errorf("db-dsn is required")
	}

	if err := applyMigrations(cfg.dsn, cfg.migrations); err != nil {
		return err
	}
	logger.Info("migrations applied")

	if cfg.skipDemo {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, cfg.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var cache catalog.Cache
	if cfg.redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.redisURL})
		defer redisClient.Close()
		cache = catalog.NewRedisCache(redisClient)
	}

	validator := appvalidator.NewValidator()

	catalogService := catalog.NewService(
		logger,
		validator,
		cache,
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresCinemaRepository(db),
		repository.NewPostgresRoomRepository(db),
		repository.NewPostgresSeatTypeRepository(db),
		repository.NewPostgresSeatRepository(db),
	)
	scheduleService := schedule.NewService(
		logger,
		validator,
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresRoomRepository(db),
		repository.NewPostgresShowRepository(db),
	)

	return seedDemo(ctx, logger, catalogService, scheduleService)
}

func applyMigrations(dsn, migrationsURL string) error {
	pgxCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse DSN: %w", err)
	}

	db := pgxstd.OpenDB(*pgxCfg)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pgx migration driver error: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsURL, "pgx", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func seedDemo(
	ctx context.Context,
	logger *slog.Logger,
	catalogService *catalog.Service,
	scheduleService *schedule.Service) error {

	movie, err := catalogService.CreateMovie(ctx, catalog.CreateMovieParams{
		Title:    "The Conversation",
		Duration: 113,
	})
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	cinema, err := catalogService.CreateCinema(ctx, catalog.CreateCinemaParams{
		Name: "Downtown Cinema",
	})
	if err != nil {
		return fmt.Errorf("failed to create cinema: %w", err)
	}

	room, err := catalogService.CreateRoom(ctx, catalog.CreateRoomParams{
		CinemaID: cinema.ID,
		Name:     "Screen 1",
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	standard, err := catalogService.CreateSeatType(ctx, catalog.CreateSeatTypeParams{
		Name: "standard",
	})
	if err != nil {
		return fmt.Errorf("failed to create seat type: %w", err)
	}

	vip, err := catalogService.CreateSeatType(ctx, catalog.CreateSeatTypeParams{
		Name:           "vip",
		PremiumPercent: decimal.RequireFromString("50"),
	})
	if err != nil {
		return fmt.Errorf("failed to create seat type: %w", err)
	}

	for row := 'A'; row <= 'D'; row++ {
		for number := 1; number <= 8; number++ {
			seatTypeID := standard.ID
			if row == 'D' {
				seatTypeID = vip.ID
			}

			_, err := catalogService.CreateSeat(ctx, catalog.CreateSeatParams{
				RoomID:     room.ID,
				SeatTypeID: seatTypeID,
				Name:       fmt.Sprintf("%c%d", row, number),
			})
			if err != nil {
				return fmt.Errorf("failed to create seat: %w", err)
			}
		}
	}

	start := time.Now().Truncate(time.Hour).Add(24 * time.Hour)
	show, err := scheduleService.CreateShow(ctx, schedule.CreateShowParams{
		MovieID:   movie.ID,
		RoomID:    room.ID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		BasePrice: decimal.RequireFromString("12.50"),
	})
	if err != nil {
		return fmt.Errorf("failed to create show: %w", err)
	}

	logger.Info(
		"demo data loaded",
		"movie_id", movie.ID,
		"room_id", room.ID,
		"show_id", show.ID,
		"show_start", show.StartTime,
	)

	return nil
}
