package repository

import (
	"context"
	"errors"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Constraint names from the migrations; used to tell a seat conflict apart
// from an idempotency-key replay race.
const (
	bookingSeatConstraint    = "bookings_show_id_seat_id_key"
	reservationKeyConstraint = "reservations_idempotency_key_key"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateReservation persists the reservation header and every booking row in
// a single transaction. The unique index on (show_id, seat_id) is the
// mechanism that makes the insert all-or-nothing under concurrency: if any
// seat is already booked the whole transaction rolls back and no partial
// bookings survive.
func (p *PostgresBookingRepository) CreateReservation(
	ctx context.Context,
	reservation *domain.Reservation) error {

	err := runInTxWithRetry(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reservations (idempotency_key, show_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, reservation.IdempotencyKey, reservation.ShowID).
			Scan(&reservation.ID, &reservation.CreatedAt)
		if err != nil {
			return err
		}

		insertBooking := `
			INSERT INTO bookings (reservation_id, show_id, seat_id, amount_charged)
			VALUES ($1, $2, $3, $4)
			RETURNING id, booked_at
		`

		batch := &pgx.Batch{}

		for i := range reservation.Bookings {
			booking := &reservation.Bookings[i]

			batch.Queue(
				insertBooking,
				reservation.ID,
				booking.ShowID,
				booking.SeatID,
				decimalToNumeric(booking.AmountCharged),
			).QueryRow(func(row pgx.Row) error {
				return row.Scan(&booking.ID, &booking.BookedAt)
			})
		}

		return tx.SendBatch(ctx, batch).Close()
	})

	if err != nil {
		return translateBookingError(err)
	}

	return nil
}

func translateBookingError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == reservationKeyConstraint:
			return domain.ErrDuplicateIdempotencyKey
		case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == bookingSeatConstraint:
			return domain.ErrSeatAlreadyBooked
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return domain.ErrRecordNotFound
		}
	}

	return err
}

func (p *PostgresBookingRepository) GetReservationByKey(
	ctx context.Context,
	key uuid.UUID) (*domain.Reservation, error) {

	query := `
		SELECT id, idempotency_key, show_id, created_at
		FROM reservations
		WHERE idempotency_key = $1
	`

	var reservation domain.Reservation

	err := p.db.QueryRow(ctx, query, key).Scan(
		&reservation.ID,
		&reservation.IdempotencyKey,
		&reservation.ShowID,
		&reservation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	bookings, err := p.getBookingsByReservation(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	reservation.Bookings = bookings

	return &reservation, nil
}

func (p *PostgresBookingRepository) getBookingsByReservation(
	ctx context.Context,
	reservationID int) ([]domain.Booking, error) {

	query := `
		SELECT id, show_id, seat_id, amount_charged, booked_at
		FROM bookings
		WHERE reservation_id = $1
		ORDER BY seat_id
	`

	rows, err := p.db.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var amount pgtype.Numeric

		err = rows.Scan(
			&booking.ID,
			&booking.ShowID,
			&booking.SeatID,
			&amount,
			&booking.BookedAt,
		)
		if err != nil {
			return nil, err
		}

		booking.AmountCharged, err = numericToDecimal(amount)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetAvailableSeatIds returns the seats of the show's room that carry no
// committed booking for the show. Uncommitted in-flight reservations are
// invisible here; reserve is the source of truth.
func (p *PostgresBookingRepository) GetAvailableSeatIds(ctx context.Context, showID int) ([]int, error) {
	query := `
		SELECT se.id
		FROM shows sh
		JOIN seats se ON se.room_id = sh.room_id
		LEFT JOIN bookings b ON b.show_id = sh.id AND b.seat_id = se.id
		WHERE sh.id = $1 AND b.id IS NULL
		ORDER BY se.id
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeatIds(rows)
}

func (p *PostgresBookingRepository) GetBookedSeatIdsIn(
	ctx context.Context,
	showID int,
	seatIDs []int) ([]int, error) {

	query := `
		SELECT seat_id
		FROM bookings
		WHERE show_id = $1 AND seat_id = ANY($2)
		ORDER BY seat_id
	`

	rows, err := p.db.Query(ctx, query, showID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeatIds(rows)
}

func scanSeatIds(rows pgx.Rows) ([]int, error) {
	seatIDs := make([]int, 0)

	for rows.Next() {
		var seatID int

		if err := rows.Scan(&seatID); err != nil {
			return nil, err
		}

		seatIDs = append(seatIDs, seatID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seatIDs, nil
}
