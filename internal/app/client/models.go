package client

import (
	"sync"

	"payanam/internal/domain/trip"
)

// TripCache - локальная копия последнего известного состояния поездок.
// Используется для просмотра без сети; источником истины остается сервер.
type TripCache interface {
	SaveTrips(ownerID string, trips []trip.Trip) error
	ListTrips(ownerID string) ([]trip.Trip, error)
	CountTrips(ownerID string) (int, error)
	Close() error
}

// MemoryStorage - временное in-memory хранилище
type MemoryStorage struct {
	mu    sync.RWMutex
	trips map[string][]trip.Trip
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		trips: make(map[string][]trip.Trip),
	}
}

func (m *MemoryStorage) SaveTrips(ownerID string, trips []trip.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[ownerID] = cloneTrips(trips)
	return nil
}

func (m *MemoryStorage) ListTrips(ownerID string) ([]trip.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTrips(m.trips[ownerID]), nil
}

func (m *MemoryStorage) CountTrips(ownerID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips[ownerID]), nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
