package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/cinetix/booking-core/internal/domain"
)

// MockEventPublisher records published events. Safe for concurrent use, so
// tests racing reservations can still assert on what was published.
type MockEventPublisher struct {
	mu        sync.Mutex
	published []domain.BookingConfirmedEvent

	Err error
}

func (m *MockEventPublisher) PublishBookingConfirmed(
	ctx context.Context,
	event domain.BookingConfirmedEvent) error {

	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	m.published = append(m.published, event)
	m.mu.Unlock()

	return nil
}

// Published returns a snapshot of the events published so far.
func (m *MockEventPublisher) Published() []domain.BookingConfirmedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.published)
}
