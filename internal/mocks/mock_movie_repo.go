package mocks

import (
	"context"

	"github.com/cinetix/booking-core/internal/domain"
)

type MockMovieRepo struct {
	CreateFunc  func(ctx context.Context, movie *domain.Movie) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.Movie, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, pagination)
}
