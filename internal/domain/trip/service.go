package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Servicer - операции хранилища поездок, доступные через API
type Servicer interface {
	List(ctx context.Context, ownerID string) ([]Trip, error)
	Create(ctx context.Context, ownerID string, d Draft) (Trip, error)
	Update(ctx context.Context, ownerID, id string, p Patch) (Trip, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Service - серверная реализация хранилища поездок
type Service struct {
	repo  Repository
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log.With(slog.String("component", "trip_service")),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Trip, error) {
	trips, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	if trips == nil {
		trips = []Trip{}
	}
	return trips, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, d Draft) (Trip, error) {
	t, err := NewTrip(s.newID(), ownerID, d, s.now().UTC())
	if err != nil {
		s.log.Debug("trip draft rejected", "owner_id", ownerID, "error", err)
		return Trip{}, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Trip{}, fmt.Errorf("create trip: %w", err)
	}

	s.log.Info("trip created", "trip_id", t.ID, "owner_id", ownerID)
	return t, nil
}

// Update применяет патч поверх сохраненной поездки (last write wins)
func (s *Service) Update(ctx context.Context, ownerID, id string, p Patch) (Trip, error) {
	current, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return Trip{}, fmt.Errorf("update trip: %w", err)
	}

	updated, err := p.Apply(current)
	if err != nil {
		return Trip{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Trip{}, fmt.Errorf("update trip: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to delete trip", "trip_id", id, "error", err)
		}
		return fmt.Errorf("delete trip: %w", err)
	}

	s.log.Info("trip deleted", "trip_id", id, "owner_id", ownerID)
	return nil
}
