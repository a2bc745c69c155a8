package repository

import (
	"context"
	"errors"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

// Create inserts the show and lets the schema's room/time exclusion
// constraint reject overlapping intervals, so two concurrent inserts for the
// same room cannot both succeed.
func (p *PostgresShowRepository) Create(ctx context.Context, show *domain.Show) error {
	query := `
		INSERT INTO shows (movie_id, room_id, start_time, end_time, base_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		show.MovieID,
		show.RoomID,
		show.StartTime,
		show.EndTime,
		decimalToNumeric(show.BasePrice)).Scan(&show.ID)

	if err != nil {
		return translateShowError(err)
	}

	return nil
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	query := `
		SELECT id, movie_id, room_id, start_time, end_time, base_price
		FROM shows
		WHERE id = $1
	`

	show, err := scanShow(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return show, nil
}

func (p *PostgresShowRepository) GetAllByMovie(
	ctx context.Context,
	movieID int,
	timeRange domain.TimeRange) ([]domain.Show, error) {

	query := `
		SELECT id, movie_id, room_id, start_time, end_time, base_price
		FROM shows
		WHERE movie_id = $1
			AND ($2::timestamptz IS NULL OR start_time >= $2)
			AND ($3::timestamptz IS NULL OR start_time < $3)
		ORDER BY start_time, id
	`

	var from, to *pgtype.Timestamptz
	if !timeRange.From.IsZero() {
		from = &pgtype.Timestamptz{Time: timeRange.From, Valid: true}
	}
	if !timeRange.To.IsZero() {
		to = &pgtype.Timestamptz{Time: timeRange.To, Valid: true}
	}

	rows, err := p.db.Query(ctx, query, movieID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]domain.Show, 0)

	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}

		shows = append(shows, *show)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

// Update rewrites a show's schedulable attributes inside one transaction.
// The bookings check and the update see the same snapshot; a booking that
// lands concurrently still blocks the commit through the exclusion and
// foreign key constraints on its own transaction.
func (p *PostgresShowRepository) Update(ctx context.Context, show *domain.Show) error {
	return runInTxWithRetry(ctx, p.db, func(tx pgx.Tx) error {
		var hasBookings bool

		err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE show_id = $1)`,
			show.ID).Scan(&hasBookings)
		if err != nil {
			return err
		}

		if hasBookings {
			return domain.ErrShowHasBookings
		}

		query := `
			UPDATE shows
			SET movie_id = $1, room_id = $2, start_time = $3, end_time = $4, base_price = $5
			WHERE id = $6
		`

		tag, err := tx.Exec(
			ctx,
			query,
			show.MovieID,
			show.RoomID,
			show.StartTime,
			show.EndTime,
			decimalToNumeric(show.BasePrice),
			show.ID)
		if err != nil {
			return translateShowError(err)
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func translateShowError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return domain.ErrSchedulingConflict
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrRecordNotFound
		}
	}

	return err
}

func scanShow(row pgx.Row) (*domain.Show, error) {
	var show domain.Show
	var basePrice pgtype.Numeric

	err := row.Scan(
		&show.ID,
		&show.MovieID,
		&show.RoomID,
		&show.StartTime,
		&show.EndTime,
		&basePrice,
	)
	if err != nil {
		return nil, err
	}

	show.BasePrice, err = numericToDecimal(basePrice)
	if err != nil {
		return nil, err
	}

	return &show, nil
}
