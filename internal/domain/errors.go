package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrDuplicateName           = errors.New("name already exists")
	ErrInvalidDuration         = errors.New("show window is shorter than the movie duration")
	ErrSchedulingConflict      = errors.New("an overlapping show already exists in this room")
	ErrShowHasBookings         = errors.New("show already has bookings and cannot be changed")
	ErrSeatNotInRoom           = errors.New("seat does not belong to the show's room")
	ErrSeatAlreadyBooked       = errors.New("seat(s) are already booked for this show")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already persisted")
	ErrIdempotencyKeyReuse     = errors.New("idempotency key was already used with a different request")
	ErrUnavailable             = errors.New("storage is temporarily unavailable")
)

// SeatUnavailableError reports exactly which of the requested seats already
// carry a committed booking for the show. Callers must re-fetch availability
// instead of retrying blindly.
type SeatUnavailableError struct {
	SeatIDs []int
}

func (e *SeatUnavailableError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}

	return fmt.Sprintf("seats unavailable: [%s]", strings.Join(ids, ", "))
}

// ValidationError collects per-field validation failures for an admin or
// booking request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field, issue := range e.Fields {
		fields = append(fields, fmt.Sprintf("%s %s", field, issue))
	}
	sort.Strings(fields)

	return "validation failed: " + strings.Join(fields, "; ")
}

func NewValidationError(field, issue string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: issue}}
}
