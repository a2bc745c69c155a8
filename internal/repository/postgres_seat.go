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

type PostgresSeatTypeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatTypeRepository(db *pgxpool.Pool) *PostgresSeatTypeRepository {
	return &PostgresSeatTypeRepository{
		db: db,
	}
}

func (p *PostgresSeatTypeRepository) Create(ctx context.Context, seatType *domain.SeatType) error {
	query := `
		INSERT INTO seat_types (name, premium_percent)
		VALUES ($1, $2)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, seatType.Name, decimalToNumeric(seatType.PremiumPercent)).
		Scan(&seatType.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrDuplicateName
		}

		return err
	}

	return nil
}

func (p *PostgresSeatTypeRepository) GetById(ctx context.Context, id int) (*domain.SeatType, error) {
	query := `
		SELECT id, name, premium_percent
		FROM seat_types
		WHERE id = $1
	`

	var seatType domain.SeatType
	var premium pgtype.Numeric

	err := p.db.QueryRow(ctx, query, id).Scan(&seatType.ID, &seatType.Name, &premium)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seatType.PremiumPercent, err = numericToDecimal(premium)
	if err != nil {
		return nil, err
	}

	return &seatType, nil
}

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) Create(ctx context.Context, seat *domain.Seat) error {
	query := `
		INSERT INTO seats (room_id, seat_type_id, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, seat.RoomID, seat.SeatTypeID, seat.Name).Scan(&seat.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return domain.ErrDuplicateName
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			}
		}

		return err
	}

	return nil
}

func (p *PostgresSeatRepository) GetByRoom(ctx context.Context, roomID int) ([]domain.SeatWithType, error) {
	query := `
		SELECT se.id, se.room_id, se.seat_type_id, se.name, st.id, st.name, st.premium_percent
		FROM seats se
		JOIN seat_types st ON se.seat_type_id = st.id
		WHERE se.room_id = $1
		ORDER BY se.name, se.id
	`

	rows, err := p.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeatsWithType(rows)
}

func (p *PostgresSeatRepository) GetByIds(ctx context.Context, seatIDs []int) ([]domain.SeatWithType, error) {
	query := `
		SELECT se.id, se.room_id, se.seat_type_id, se.name, st.id, st.name, st.premium_percent
		FROM seats se
		JOIN seat_types st ON se.seat_type_id = st.id
		WHERE se.id = ANY($1)
		ORDER BY se.id
	`

	rows, err := p.db.Query(ctx, query, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeatsWithType(rows)
}

func scanSeatsWithType(rows pgx.Rows) ([]domain.SeatWithType, error) {
	seats := make([]domain.SeatWithType, 0)

	for rows.Next() {
		var seat domain.SeatWithType
		var premium pgtype.Numeric

		err := rows.Scan(
			&seat.ID,
			&seat.RoomID,
			&seat.SeatTypeID,
			&seat.Name,
			&seat.Type.ID,
			&seat.Type.Name,
			&premium,
		)
		if err != nil {
			return nil, err
		}

		seat.Type.PremiumPercent, err = numericToDecimal(premium)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
