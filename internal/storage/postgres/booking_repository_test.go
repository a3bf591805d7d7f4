package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/app"
	"github.com/DougPeron/backend-agendamento-firebase/internal/clock"
	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
	"github.com/DougPeron/backend-agendamento-firebase/internal/storage/postgres"
	"github.com/DougPeron/backend-agendamento-firebase/internal/testutil"
)

func TestBookingRepository_CRUD(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := postgres.NewBookingRepository(pool)
	courtID := testutil.InsertCourt(t, ctx, pool, "Court A")

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	bookingID := testutil.InsertBooking(t, ctx, pool, courtID, domain.Booking{
		OwnerID:  "user-a",
		Interval: domain.Interval{Start: start, End: start.Add(time.Hour)},
		Status:   domain.BookingStatusConfirmed,
	})

	t.Run("get booking", func(t *testing.T) {
		b, err := repo.GetBooking(ctx, bookingID)
		if err != nil {
			t.Fatalf("get booking: %v", err)
		}
		if b.CourtID != courtID || b.OwnerID != "user-a" {
			t.Fatalf("unexpected booking %+v", b)
		}
		if !b.Interval.Start.Equal(start) {
			t.Fatalf("expected start %v, got %v", start, b.Interval.Start)
		}
	})

	t.Run("get missing booking", func(t *testing.T) {
		_, err := repo.GetBooking(ctx, "00000000-0000-0000-0000-000000000000")
		if !errors.Is(err, domain.ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("malformed id maps to invalid id", func(t *testing.T) {
		_, err := repo.GetBooking(ctx, "not-a-uuid")
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("one-sided prune filters by status and start", func(t *testing.T) {
		cancelledStart := start.Add(-2 * time.Hour)
		testutil.InsertBooking(t, ctx, pool, courtID, domain.Booking{
			OwnerID:  "user-b",
			Interval: domain.Interval{Start: cancelledStart, End: cancelledStart.Add(time.Hour)},
			Status:   domain.BookingStatusCancelled,
		})
		lateStart := start.Add(6 * time.Hour)
		testutil.InsertBooking(t, ctx, pool, courtID, domain.Booking{
			OwnerID:  "user-b",
			Interval: domain.Interval{Start: lateStart, End: lateStart.Add(time.Hour)},
			Status:   domain.BookingStatusConfirmed,
		})

		rows, err := repo.ListConfirmedStartingBefore(ctx, courtID, start.Add(time.Hour))
		if err != nil {
			t.Fatalf("list confirmed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected only the confirmed early booking, got %d rows", len(rows))
		}
		if rows[0].ID != bookingID {
			t.Fatalf("expected booking %s, got %s", bookingID, rows[0].ID)
		}
	})

	t.Run("update interval", func(t *testing.T) {
		newStart := start.Add(3 * time.Hour)
		iv := domain.Interval{Start: newStart, End: newStart.Add(time.Hour)}
		updatedAt := time.Now().UTC().Truncate(time.Microsecond)

		if err := repo.UpdateBookingInterval(ctx, bookingID, iv, updatedAt); err != nil {
			t.Fatalf("update interval: %v", err)
		}
		b, err := repo.GetBooking(ctx, bookingID)
		if err != nil {
			t.Fatalf("get booking: %v", err)
		}
		if !b.Interval.Start.Equal(newStart) {
			t.Fatalf("expected start %v, got %v", newStart, b.Interval.Start)
		}
	})

	t.Run("update status", func(t *testing.T) {
		if err := repo.UpdateBookingStatus(ctx, bookingID, domain.BookingStatusCancelled, time.Now().UTC()); err != nil {
			t.Fatalf("update status: %v", err)
		}
		b, err := repo.GetBooking(ctx, bookingID)
		if err != nil {
			t.Fatalf("get booking: %v", err)
		}
		if b.Status != domain.BookingStatusCancelled {
			t.Fatalf("expected cancelled, got %s", b.Status)
		}
	})

	t.Run("update missing booking", func(t *testing.T) {
		err := repo.UpdateBookingStatus(ctx, "00000000-0000-0000-0000-000000000000", domain.BookingStatusCancelled, time.Now().UTC())
		if !errors.Is(err, domain.ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("list by owner", func(t *testing.T) {
		rows, err := repo.ListByOwner(ctx, "user-b")
		if err != nil {
			t.Fatalf("list by owner: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 bookings for user-b, got %d", len(rows))
		}
	})
}

// Two concurrent creates for overlapping slots must never both commit:
// the court row lock serializes them and the loser sees the winner's
// booking inside its own transaction.
func TestBookingService_ConcurrentCreate_NoOverlap(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := postgres.NewBookingRepository(pool)
	svc := app.NewBookingService(repo, clock.NewSystem())
	courtID := testutil.InsertCourt(t, ctx, pool, "Court A")

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	const writers = 4
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// All intervals overlap pairwise.
			offset := time.Duration(i) * 15 * time.Minute
			_, errs[i] = svc.Create(ctx, "user-a", app.CreateBookingInput{
				CourtID: courtID,
				Start:   start.Add(offset),
				End:     start.Add(offset + time.Hour),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrSlotConflict):
		default:
			t.Fatalf("writer %d: unexpected error %v", i, err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", succeeded)
	}

	var confirmed int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE court_id = $1 AND status = 'confirmed'`, courtID,
	).Scan(&confirmed); err != nil {
		t.Fatalf("count confirmed: %v", err)
	}
	if confirmed != 1 {
		t.Fatalf("expected 1 confirmed booking, got %d", confirmed)
	}
}

func TestBookingService_CreateAndUpdate_Integration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := postgres.NewBookingRepository(pool)
	now := time.Now().UTC()
	svc := app.NewBookingService(repo, clock.NewFixed(now))
	courtID := testutil.InsertCourt(t, ctx, pool, "Court A")

	start := now.Add(72 * time.Hour).Truncate(time.Hour)

	first, err := svc.Create(ctx, "user-a", app.CreateBookingInput{
		CourtID: courtID,
		Start:   start,
		End:     start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Overlapping create is rejected.
	_, err = svc.Create(ctx, "user-b", app.CreateBookingInput{
		CourtID: courtID,
		Start:   start.Add(30 * time.Minute),
		End:     start.Add(90 * time.Minute),
	})
	if !errors.Is(err, domain.ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}

	// Back-to-back create succeeds.
	second, err := svc.Create(ctx, "user-b", app.CreateBookingInput{
		CourtID: courtID,
		Start:   start.Add(time.Hour),
		End:     start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("back-to-back create: %v", err)
	}

	// Self-overlap on update is allowed.
	if _, err := svc.Update(ctx, "user-a", first.ID, app.UpdateBookingInput{
		Start: start.Add(-30 * time.Minute),
		End:   start.Add(30 * time.Minute),
	}); err != nil {
		t.Fatalf("self-overlapping update: %v", err)
	}

	// Update onto the neighbour conflicts.
	_, err = svc.Update(ctx, "user-a", first.ID, app.UpdateBookingInput{
		Start: start.Add(90 * time.Minute),
		End:   start.Add(150 * time.Minute),
	})
	if !errors.Is(err, domain.ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict on update, got %v", err)
	}

	// Cancelling the neighbour frees its slot.
	if _, err := svc.Cancel(ctx, "user-b", second.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Update(ctx, "user-a", first.ID, app.UpdateBookingInput{
		Start: start.Add(time.Hour),
		End:   start.Add(2 * time.Hour),
	}); err != nil {
		t.Fatalf("update into freed slot: %v", err)
	}
}
