// Package catalog owns the mostly static reference data: movies, the cinema,
// its rooms, seat types and seats. Reads go through a process-wide cache that
// admin writes invalidate explicitly.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cinetix/booking-core/internal/domain"
	appvalidator "github.com/cinetix/booking-core/internal/validator"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Service struct {
	logger    *slog.Logger
	validator *validator.Validate
	cache     Cache

	movies    domain.MovieRepository
	cinemas   domain.CinemaRepository
	rooms     domain.RoomRepository
	seatTypes domain.SeatTypeRepository
	seats     domain.SeatRepository
}

func NewService(
	logger *slog.Logger,
	validator *validator.Validate,
	cache Cache,
	movies domain.MovieRepository,
	cinemas domain.CinemaRepository,
	rooms domain.RoomRepository,
	seatTypes domain.SeatTypeRepository,
	seats domain.SeatRepository) *Service {

	return &Service{
		logger:    logger,
		validator: validator,
		cache:     cache,
		movies:    movies,
		cinemas:   cinemas,
		rooms:     rooms,
		seatTypes: seatTypes,
		seats:     seats,
	}
}

type CreateMovieParams struct {
	Title    string `validate:"required"`
	Duration int    `validate:"required,gt=0"`
}

func (s *Service) CreateMovie(ctx context.Context, params CreateMovieParams) (*domain.Movie, error) {
	if err := appvalidator.Check(s.validator, params); err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		Title:    params.Title,
		Duration: params.Duration,
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.logger.Info("created movie", "movie_id", movie.ID, "title", movie.Title)

	return movie, nil
}

func (s *Service) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	var movie domain.Movie
	if ok := s.cacheGet(ctx, movieKey(id), &movie); ok {
		return &movie, nil
	}

	fetched, err := s.movies.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, movieKey(id), fetched)

	return fetched, nil
}

func (s *Service) ListMovies(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {

	return s.movies.GetAll(ctx, pagination)
}

type CreateCinemaParams struct {
	Name string `validate:"required"`
}

func (s *Service) CreateCinema(ctx context.Context, params CreateCinemaParams) (*domain.Cinema, error) {
	if err := appvalidator.Check(s.validator, params); err != nil {
		return nil, err
	}

	cinema := &domain.Cinema{Name: params.Name}

	if err := s.cinemas.Create(ctx, cinema); err != nil {
		return nil, err
	}

	return cinema, nil
}

func (s *Service) GetCinema(ctx context.Context, id int) (*domain.Cinema, error) {
	return s.cinemas.GetById(ctx, id)
}

type CreateRoomParams struct {
	CinemaID int    `validate:"required,gt=0"`
	Name     string `validate:"required"`
}

func (s *Service) CreateRoom(ctx context.Context, params CreateRoomParams) (*domain.Room, error) {
	if err := appvalidator.Check(s.validator, params); err != nil {
		return nil, err
	}

	room := &domain.Room{
		CinemaID: params.CinemaID,
		Name:     params.Name,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("created room", "room_id", room.ID, "cinema_id", room.CinemaID, "name", room.Name)

	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int) (*domain.Room, error) {
	var room domain.Room
	if ok := s.cacheGet(ctx, roomKey(id), &room); ok {
		return &room, nil
	}

	fetched, err := s.rooms.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, roomKey(id), fetched)

	return fetched, nil
}

func (s *Service) ListRooms(ctx context.Context, cinemaID int) ([]domain.Room, error) {
	return s.rooms.GetByCinema(ctx, cinemaID)
}

type CreateSeatTypeParams struct {
	Name           string `validate:"required"`
	PremiumPercent decimal.Decimal
}

func (s *Service) CreateSeatType(ctx context.Context, params CreateSeatTypeParams) (*domain.SeatType, error) {
	if err := appvalidator.Check(s.validator, params); err != nil {
		return nil, err
	}

	// The validator cannot look inside decimal.Decimal; check by hand.
	if params.PremiumPercent.IsNegative() {
		return nil, domain.NewValidationError("PremiumPercent", "must be zero or greater")
	}

	seatType := &domain.SeatType{
		Name:           params.Name,
		PremiumPercent: params.PremiumPercent,
	}

	if err := s.seatTypes.Create(ctx, seatType); err != nil {
		return nil, err
	}

	return seatType, nil
}

func (s *Service) GetSeatType(ctx context.Context, id int) (*domain.SeatType, error) {
	var seatType domain.SeatType
	if ok := s.cacheGet(ctx, seatTypeKey(id), &seatType); ok {
		return &seatType, nil
	}

	fetched, err := s.seatTypes.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, seatTypeKey(id), fetched)

	return fetched, nil
}

type CreateSeatParams struct {
	RoomID     int    `validate:"required,gt=0"`
	SeatTypeID int    `validate:"required,gt=0"`
	Name       string `validate:"required"`
}

func (s *Service) CreateSeat(ctx context.Context, params CreateSeatParams) (*domain.Seat, error) {
	if err := appvalidator.Check(s.validator, params); err != nil {
		return nil, err
	}

	seat := &domain.Seat{
		RoomID:     params.RoomID,
		SeatTypeID: params.SeatTypeID,
		Name:       params.Name,
	}

	if err := s.seats.Create(ctx, seat); err != nil {
		return nil, err
	}

	// The room's cached view no longer reflects its seat set.
	s.cacheDelete(ctx, roomKey(seat.RoomID))

	return seat, nil
}

func (s *Service) cacheGet(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}

	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("catalog cache read failed", "key", key, "error", err)
		return false
	}

	if !ok {
		return false
	}

	if err := json.Unmarshal(value, target); err != nil {
		s.logger.Warn("catalog cache entry corrupt", "key", key, "error", err)
		s.cacheDelete(ctx, key)
		return false
	}

	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("catalog cache marshal failed", "key", key, "error", err)
		return
	}

	if err := s.cache.Set(ctx, key, raw, cacheTTL); err != nil {
		s.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

func (s *Service) cacheDelete(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("catalog cache invalidation failed", "keys", keys, "error", err)
	}
}
