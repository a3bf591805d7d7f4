package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
	"github.com/DougPeron/backend-agendamento-firebase/internal/storage/postgres"
	"github.com/DougPeron/backend-agendamento-firebase/internal/testutil"
)

func TestCourtRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := postgres.NewCourtRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	court := domain.Court{ID: "6a4f8f3e-0000-4000-8000-000000000001", Name: "Court A", CreatedAt: now}
	if err := repo.CreateCourt(ctx, court); err != nil {
		t.Fatalf("create court: %v", err)
	}

	t.Run("duplicate name is rejected", func(t *testing.T) {
		dup := domain.Court{ID: "6a4f8f3e-0000-4000-8000-000000000002", Name: "Court A", CreatedAt: now}
		err := repo.CreateCourt(ctx, dup)
		if !errors.Is(err, domain.ErrCourtAlreadyExists) {
			t.Fatalf("expected ErrCourtAlreadyExists, got %v", err)
		}
	})

	t.Run("list courts", func(t *testing.T) {
		second := domain.Court{ID: "6a4f8f3e-0000-4000-8000-000000000003", Name: "Court B", CreatedAt: now}
		if err := repo.CreateCourt(ctx, second); err != nil {
			t.Fatalf("create second court: %v", err)
		}

		courts, err := repo.ListCourts(ctx)
		if err != nil {
			t.Fatalf("list courts: %v", err)
		}
		if len(courts) != 2 {
			t.Fatalf("expected 2 courts, got %d", len(courts))
		}
		if courts[0].Name != "Court A" || courts[1].Name != "Court B" {
			t.Fatalf("expected name order, got %+v", courts)
		}
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.CourtExists(ctx, court.ID)
		if err != nil || !ok {
			t.Fatalf("expected court to exist, got %v %v", ok, err)
		}

		ok, err = repo.CourtExists(ctx, "6a4f8f3e-0000-4000-8000-0000000000ff")
		if err != nil || ok {
			t.Fatalf("expected court to not exist, got %v %v", ok, err)
		}

		_, err = repo.CourtExists(ctx, "nope")
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}
