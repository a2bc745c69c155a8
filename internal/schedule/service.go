// Package schedule owns show scheduling: a show screens one movie in one
// room for a half-open time window, and no two shows in the same room may
// overlap.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinetix/booking-core/internal/domain"
	appvalidator "github.com/cinetix/booking-core/internal/validator"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Service struct {
	logger    *slog.Logger
	validator *validator.Validate

	movies domain.MovieRepository
	rooms  domain.RoomRepository
	shows  domain.ShowRepository
}

func NewService(
	logger *slog.Logger,
	validator *validator.Validate,
	movies domain.MovieRepository,
	rooms domain.RoomRepository,
	shows domain.ShowRepository) *Service {

	return &Service{
		logger:    logger,
		validator: validator,
		movies:    movies,
		rooms:     rooms,
		shows:     shows,
	}
}

type CreateShowParams struct {
	MovieID   int `validate:"required,gt=0"`
	RoomID    int `validate:"required,gt=0"`
	StartTime time.Time
	EndTime   time.Time
	BasePrice decimal.Decimal
}

// CreateShow schedules a show after checking the window against the movie's
// duration. Overlap with another show in the same room surfaces as
// ErrSchedulingConflict from the storage layer, which enforces it.
func (s *Service) CreateShow(ctx context.Context, params CreateShowParams) (*domain.Show, error) {
	show, err := s.buildShow(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.shows.Create(ctx, show); err != nil {
		return nil, err
	}

	s.logger.Info(
		"created show",
		"show_id", show.ID,
		"movie_id", show.MovieID,
		"room_id", show.RoomID,
		"start_time", show.StartTime,
	)

	return show, nil
}

// UpdateShow reschedules a show that has no bookings yet. Once any booking
// exists the show is immutable and the update fails with ErrShowHasBookings.
func (s *Service) UpdateShow(ctx context.Context, id int, params CreateShowParams) (*domain.Show, error) {
	show, err := s.buildShow(ctx, params)
	if err != nil {
		return nil, err
	}

	show.ID = id

	if err := s.shows.Update(ctx, show); err != nil {
		return nil, err
	}

	return show, nil
}

func (s *Service) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	return s.shows.GetById(ctx, id)
}

// ListShowsForMovie returns the movie's shows within the range, ordered by
// start time ascending.
func (s *Service) ListShowsForMovie(
	ctx context.Context,
	movieID int,
	timeRange domain.TimeRange) ([]domain.Show, error) {

	if _, err := s.movies.GetById(ctx, movieID); err != nil {
		return nil, err
	}

	return s.shows.GetAllByMovie(ctx, movieID, timeRange)
}

func (s *Service) buildShow(ctx context.Context, params CreateShowParams) (*domain.Show, error) {
	if err := appvalidator.Check(s.validator, params); err != nil {
		return nil, err
	}

	if params.BasePrice.IsNegative() {
		return nil, domain.NewValidationError("BasePrice", "must be zero or greater")
	}

	if !params.EndTime.After(params.StartTime) {
		return nil, domain.NewValidationError("EndTime", "must be after the start time")
	}

	movie, err := s.movies.GetById(ctx, params.MovieID)
	if err != nil {
		return nil, err
	}

	if _, err := s.rooms.GetById(ctx, params.RoomID); err != nil {
		return nil, err
	}

	window := params.EndTime.Sub(params.StartTime)
	if window < time.Duration(movie.Duration)*time.Minute {
		return nil, domain.ErrInvalidDuration
	}

	return &domain.Show{
		MovieID:   params.MovieID,
		RoomID:    params.RoomID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		BasePrice: params.BasePrice,
	}, nil
}
