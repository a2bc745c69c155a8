package domain

import (
	"context"
)

// Movie is catalog reference data. Duration is in minutes and bounds the
// minimum time window of any show screening it.
type Movie struct {
	ID       int
	Title    string
	Duration int
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetById(ctx context.Context, id int) (*Movie, error)
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
}
