// Package memory - хранилища в памяти процесса. Используются сервером в
// режиме STORAGE=memory и в сквозных тестах API.
package memory

import (
	"context"
	"sort"
	"sync"

	"payanam/internal/domain/trip"
)

type TripRepository struct {
	mu    sync.RWMutex
	trips map[string]trip.Trip
	order map[string]int
	seq   int
}

var _ trip.Repository = (*TripRepository)(nil)

func NewTripRepository() *TripRepository {
	return &TripRepository{
		trips: make(map[string]trip.Trip),
		order: make(map[string]int),
	}
}

// List возвращает поездки владельца, новые первыми. При равном времени
// создания первой идет вставленная позже.
func (r *TripRepository) List(_ context.Context, ownerID string) ([]trip.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []trip.Trip{}
	for _, t := range r.trips {
		if t.OwnerID == ownerID {
			out = append(out, t.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.order[out[i].ID] > r.order[out[j].ID]
	})
	return out, nil
}

func (r *TripRepository) Get(_ context.Context, ownerID, id string) (trip.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok || t.OwnerID != ownerID {
		return trip.Trip{}, trip.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *TripRepository) Create(_ context.Context, t trip.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.trips[t.ID] = t.Clone()
	r.order[t.ID] = r.seq
	return nil
}

func (r *TripRepository) Update(_ context.Context, t trip.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.trips[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return trip.ErrNotFound
	}
	t.CreatedAt = cur.CreatedAt
	r.trips[t.ID] = t.Clone()
	return nil
}

func (r *TripRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[id]
	if !ok || t.OwnerID != ownerID {
		return trip.ErrNotFound
	}
	delete(r.trips, id)
	delete(r.order, id)
	return nil
}
