package app

import (
	"context"

	"github.com/DougPeron/backend-agendamento-firebase/internal/clock"
	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
)

type CourtRepository interface {
	CreateCourt(ctx context.Context, court domain.Court) error
	ListCourts(ctx context.Context) ([]domain.Court, error)
	CourtExists(ctx context.Context, id string) (bool, error)
}

// CourtService manages the court catalog the booking engine validates
// against.
type CourtService struct {
	repo  CourtRepository
	clock clock.Clock
}

func NewCourtService(repo CourtRepository, clk clock.Clock) *CourtService {
	return &CourtService{
		repo:  repo,
		clock: clk,
	}
}

type CreateCourtInput struct {
	Name string
}

func (s *CourtService) Create(ctx context.Context, in CreateCourtInput) (domain.Court, error) {
	if in.Name == "" {
		return domain.Court{}, domain.ErrCourtNameRequired
	}

	court := domain.Court{
		ID:        newUUID(),
		Name:      in.Name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateCourt(ctx, court); err != nil {
		return domain.Court{}, err
	}
	return court, nil
}

func (s *CourtService) List(ctx context.Context) ([]domain.Court, error) {
	return s.repo.ListCourts(ctx)
}

// Exists is the catalog contract consumed by external callers.
func (s *CourtService) Exists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, domain.ErrInvalidID
	}
	return s.repo.CourtExists(ctx, id)
}
