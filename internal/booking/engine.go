// Package booking implements the reservation engine. Each (show, seat) pair
// moves from available to reserved exactly once; the transition is enforced
// by the storage layer's unique (show_id, seat_id) index, never by in-process
// locks, so multiple service instances can run concurrently.
package booking

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/cinetix/booking-core/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Engine struct {
	logger *slog.Logger

	shows    domain.ShowRepository
	seats    domain.SeatRepository
	bookings domain.BookingRepository
	events   domain.EventPublisher
}

func NewEngine(
	logger *slog.Logger,
	shows domain.ShowRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository,
	events domain.EventPublisher) *Engine {

	return &Engine{
		logger:   logger,
		shows:    shows,
		seats:    seats,
		bookings: bookings,
		events:   events,
	}
}

// GetAvailability returns the seat ids of the show's room with no committed
// booking for the show. The snapshot can go stale the moment it is returned;
// ReserveSeats is the source of truth, not this read.
func (e *Engine) GetAvailability(ctx context.Context, showID int) ([]int, error) {
	if _, err := e.shows.GetById(ctx, showID); err != nil {
		return nil, err
	}

	return e.bookings.GetAvailableSeatIds(ctx, showID)
}

type ReserveSeatsParams struct {
	ShowID         int
	SeatIDs        []int
	IdempotencyKey uuid.UUID
}

// ReserveSeats atomically books every requested seat for the show, or none of
// them. If any seat already carries a booking the whole request fails with
// *domain.SeatUnavailableError listing the conflicting seats. Retrying with
// the same idempotency key and seat set returns the original bookings without
// creating new rows.
func (e *Engine) ReserveSeats(ctx context.Context, params ReserveSeatsParams) ([]domain.Booking, error) {
	seatIDs, err := normalizeSeatIds(params.SeatIDs)
	if err != nil {
		return nil, err
	}

	if params.IdempotencyKey == uuid.Nil {
		return nil, domain.NewValidationError("IdempotencyKey", "is required")
	}

	// Replay check before doing any work.
	existing, err := e.bookings.GetReservationByKey(ctx, params.IdempotencyKey)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return e.replay(existing, params.ShowID, seatIDs)
	}

	show, err := e.shows.GetById(ctx, params.ShowID)
	if err != nil {
		return nil, err
	}

	seats, err := e.seats.GetByIds(ctx, seatIDs)
	if err != nil {
		return nil, err
	}

	if len(seats) != len(seatIDs) {
		return nil, domain.ErrRecordNotFound
	}

	reservation := &domain.Reservation{
		IdempotencyKey: params.IdempotencyKey,
		ShowID:         show.ID,
		Bookings:       make([]domain.Booking, 0, len(seats)),
	}

	for _, seat := range seats {
		if seat.RoomID != show.RoomID {
			return nil, domain.ErrSeatNotInRoom
		}

		reservation.Bookings = append(reservation.Bookings, domain.Booking{
			ShowID:        show.ID,
			SeatID:        seat.ID,
			AmountCharged: pricing.Quote(show.BasePrice, seat.Type.PremiumPercent),
		})
	}

	err = e.bookings.CreateReservation(ctx, reservation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			return nil, e.seatUnavailable(ctx, show.ID, seatIDs)

		case errors.Is(err, domain.ErrDuplicateIdempotencyKey):
			// Lost a race against a retry of the same request; the winner's
			// result is the result.
			winner, getErr := e.bookings.GetReservationByKey(ctx, params.IdempotencyKey)
			if getErr != nil {
				return nil, getErr
			}
			return e.replay(winner, params.ShowID, seatIDs)

		default:
			return nil, err
		}
	}

	e.logger.Info(
		"reserved seats",
		"reservation_id", reservation.ID,
		"show_id", show.ID,
		"seat_count", len(reservation.Bookings),
	)

	e.publishConfirmed(ctx, reservation)

	return reservation.Bookings, nil
}

// replay validates that a reservation persisted under the same idempotency
// key actually matches the retried request before returning its bookings.
func (e *Engine) replay(reservation *domain.Reservation, showID int, seatIDs []int) ([]domain.Booking, error) {
	if reservation.ShowID != showID {
		return nil, domain.ErrIdempotencyKeyReuse
	}

	bookedSeatIDs := make([]int, len(reservation.Bookings))
	for i, booking := range reservation.Bookings {
		bookedSeatIDs[i] = booking.SeatID
	}
	slices.Sort(bookedSeatIDs)

	if !slices.Equal(bookedSeatIDs, seatIDs) {
		return nil, domain.ErrIdempotencyKeyReuse
	}

	return reservation.Bookings, nil
}

// seatUnavailable resolves the exact conflicting seats after a rejected
// insert, so the caller learns which seats to give up on.
func (e *Engine) seatUnavailable(ctx context.Context, showID int, seatIDs []int) error {
	conflicting, err := e.bookings.GetBookedSeatIdsIn(ctx, showID, seatIDs)
	if err != nil {
		e.logger.Error("failed to resolve conflicting seats", "show_id", showID, "error", err)
		return &domain.SeatUnavailableError{SeatIDs: seatIDs}
	}

	return &domain.SeatUnavailableError{SeatIDs: conflicting}
}

func (e *Engine) publishConfirmed(ctx context.Context, reservation *domain.Reservation) {
	if e.events == nil {
		return
	}

	seatIDs := make([]int, len(reservation.Bookings))
	amounts := make([]decimal.Decimal, len(reservation.Bookings))
	for i, booking := range reservation.Bookings {
		seatIDs[i] = booking.SeatID
		amounts[i] = booking.AmountCharged
	}

	event := domain.BookingConfirmedEvent{
		ReservationID: reservation.ID,
		ShowID:        reservation.ShowID,
		SeatIDs:       seatIDs,
		TotalAmount:   pricing.Total(amounts),
		BookedAt:      reservation.CreatedAt,
	}

	if err := e.events.PublishBookingConfirmed(ctx, event); err != nil {
		// Best effort: the reservation is committed regardless.
		e.logger.Error("failed to publish booking confirmation", "reservation_id", reservation.ID, "error", err)
	}
}

func normalizeSeatIds(seatIDs []int) ([]int, error) {
	if len(seatIDs) == 0 {
		return nil, domain.NewValidationError("SeatIDs", "must contain at least 1 items")
	}

	normalized := slices.Clone(seatIDs)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	for _, seatID := range normalized {
		if seatID <= 0 {
			return nil, domain.NewValidationError("SeatIDs", "must contain positive ids")
		}
	}

	return normalized, nil
}
