package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/clock"
	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
)

// BookingRepository is the transactional storage contract the booking
// engine requires. Reads that feed a conflict decision and the write
// that depends on them must run inside the same WithTx closure.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetCourtForUpdate(ctx context.Context, courtID string) (domain.Court, error)
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error)
	ListConfirmedStartingBefore(ctx context.Context, courtID string, before time.Time) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	InsertBooking(ctx context.Context, booking domain.Booking) error
	UpdateBookingInterval(ctx context.Context, id string, iv domain.Interval, updatedAt time.Time) error
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error
}

type BookingService struct {
	repo     BookingRepository
	clock    clock.Clock
	leadTime time.Duration
}

const defaultLeadTime = 24 * time.Hour

// maxTxAttempts bounds retries of transactions aborted by the store
// (serialization failures, deadlocks). Business errors never retry.
const maxTxAttempts = 3

func NewBookingService(repo BookingRepository, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:     repo,
		clock:    clk,
		leadTime: defaultLeadTime,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithLeadTime overrides the minimum notice required to modify a booking.
func WithLeadTime(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.leadTime = d
		}
	}
}

type CreateBookingInput struct {
	CourtID string
	Start   time.Time
	End     time.Time
}

// Create reserves a court for the caller. The court lock, the conflict
// scan and the insert share one transaction, so two concurrent creates
// for the same court serialize and the loser sees the winner's row.
func (s *BookingService) Create(ctx context.Context, callerID string, in CreateBookingInput) (domain.Booking, error) {
	if in.CourtID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	iv, err := domain.NewInterval(in.Start, in.End)
	if err != nil {
		return domain.Booking{}, err
	}

	now := s.clock.Now()
	var result domain.Booking

	err = s.inTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetCourtForUpdate(txCtx, in.CourtID); err != nil {
			return err
		}
		conflict, err := s.findConflict(txCtx, in.CourtID, iv, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return domain.ErrSlotConflict
		}

		booking := domain.Booking{
			ID:        newUUID(),
			CourtID:   in.CourtID,
			OwnerID:   callerID,
			Interval:  iv,
			Status:    domain.BookingStatusConfirmed,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.InsertBooking(txCtx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// ListByOwner returns every booking of the owner, any status.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

type UpdateBookingInput struct {
	Start time.Time
	End   time.Time
}

// Update moves a confirmed booking to a new interval. Ownership and
// the lead-time rule are checked against the stored booking; the
// conflict scan excludes the booking itself so it may overlap its own
// prior slot. The lead-time rule applies to the current start time:
// exactly 24h of notice is still allowed.
func (s *BookingService) Update(ctx context.Context, callerID, id string, in UpdateBookingInput) (domain.Booking, error) {
	iv, err := domain.NewInterval(in.Start, in.End)
	if err != nil {
		return domain.Booking{}, err
	}

	now := s.clock.Now()
	var result domain.Booking

	err = s.inTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if booking.OwnerID != callerID {
			return domain.ErrForbidden
		}
		if booking.Status == domain.BookingStatusCancelled {
			return domain.ErrBookingCancelled
		}
		if booking.Interval.Start.Sub(now) < s.leadTime {
			return domain.ErrLeadTimeViolation
		}

		if _, err := s.repo.GetCourtForUpdate(txCtx, booking.CourtID); err != nil {
			return err
		}
		conflict, err := s.findConflict(txCtx, booking.CourtID, iv, booking.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return domain.ErrSlotConflict
		}

		if err := s.repo.UpdateBookingInterval(txCtx, booking.ID, iv, now); err != nil {
			return err
		}
		booking.Interval = iv
		booking.UpdatedAt = now
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// Cancel transitions a booking to cancelled. Ownership is required but
// no lead-time rule applies, matching the update/cancel asymmetry of
// the original policy. Cancelling twice is a no-op success. A plain
// read-then-write suffices here: cancellation cannot violate the
// no-overlap invariant, so it does not contend with other writers.
func (s *BookingService) Cancel(ctx context.Context, callerID, id string) (domain.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if booking.OwnerID != callerID {
		return domain.Booking{}, domain.ErrForbidden
	}
	if booking.Status == domain.BookingStatusCancelled {
		return booking, nil
	}

	now := s.clock.Now()
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, domain.BookingStatusCancelled, now); err != nil {
		return domain.Booking{}, err
	}
	booking.Status = domain.BookingStatusCancelled
	booking.UpdatedAt = now
	return booking, nil
}

// findConflict returns a confirmed booking on the court overlapping
// [iv.Start, iv.End), or nil. The repository prunes on the one-sided
// predicate start_time < iv.End; the other side of the overlap
// condition is re-checked here. Which conflict is returned when
// several exist is unspecified.
func (s *BookingService) findConflict(ctx context.Context, courtID string, iv domain.Interval, excludeID string) (*domain.Booking, error) {
	candidates, err := s.repo.ListConfirmedStartingBefore(ctx, courtID, iv.End)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		b := candidates[i]
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Interval.End.After(iv.Start) {
			return &b, nil
		}
	}
	return nil, nil
}

// inTx runs fn in a transaction, retrying when the store aborts it
// with a retryable conflict. Each attempt re-reads current state, so
// a retried create or update never persists twice.
func (s *BookingService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.repo.WithTx(ctx, fn)
		if !errors.Is(err, domain.ErrTxConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: gave up after %d attempts: %v", domain.ErrStoreTransient, maxTxAttempts, err)
}
