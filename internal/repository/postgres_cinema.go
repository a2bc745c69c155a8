package repository

import (
	"context"
	"errors"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCinemaRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaRepository(db *pgxpool.Pool) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	query := `
		INSERT INTO cinemas (name)
		VALUES ($1)
		RETURNING id
	`

	return p.db.QueryRow(ctx, query, cinema.Name).Scan(&cinema.ID)
}

func (p *PostgresCinemaRepository) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `
		SELECT id, name
		FROM cinemas
		WHERE id = $1
	`

	var cinema domain.Cinema

	err := p.db.QueryRow(ctx, query, id).Scan(&cinema.ID, &cinema.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &cinema, nil
}

type PostgresRoomRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRoomRepository(db *pgxpool.Pool) *PostgresRoomRepository {
	return &PostgresRoomRepository{
		db: db,
	}
}

func (p *PostgresRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (cinema_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, room.CinemaID, room.Name).Scan(&room.ID)
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

func (p *PostgresRoomRepository) GetById(ctx context.Context, id int) (*domain.Room, error) {
	query := `
		SELECT id, cinema_id, name
		FROM rooms
		WHERE id = $1
	`

	var room domain.Room

	err := p.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.CinemaID, &room.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &room, nil
}

func (p *PostgresRoomRepository) GetByCinema(ctx context.Context, cinemaID int) ([]domain.Room, error) {
	query := `
		SELECT id, cinema_id, name
		FROM rooms
		WHERE cinema_id = $1
		ORDER BY name
	`

	rows, err := p.db.Query(ctx, query, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)

	for rows.Next() {
		var room domain.Room

		err = rows.Scan(&room.ID, &room.CinemaID, &room.Name)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, room)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}
