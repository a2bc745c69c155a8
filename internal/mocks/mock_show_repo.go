package mocks

import (
	"context"

	"github.com/cinetix/booking-core/internal/domain"
)

type MockShowRepo struct {
	CreateFunc        func(ctx context.Context, show *domain.Show) error
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Show, error)
	GetAllByMovieFunc func(ctx context.Context, movieID int, timeRange domain.TimeRange) ([]domain.Show, error)
	UpdateFunc        func(ctx context.Context, show *domain.Show) error
}

func (m *MockShowRepo) Create(ctx context.Context, show *domain.Show) error {
	return m.CreateFunc(ctx, show)
}

func (m *MockShowRepo) GetById(ctx context.Context, id int) (*domain.Show, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowRepo) GetAllByMovie(
	ctx context.Context,
	movieID int,
	timeRange domain.TimeRange) ([]domain.Show, error) {

	return m.GetAllByMovieFunc(ctx, movieID, timeRange)
}

func (m *MockShowRepo) Update(ctx context.Context, show *domain.Show) error {
	return m.UpdateFunc(ctx, show)
}
