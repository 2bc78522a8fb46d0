package trip

import (
	"context"
)

// Repository - хранилище поездок на стороне сервера.
// Все методы ограничены владельцем: чужая поездка неотличима от отсутствующей.
type Repository interface {
	// List возвращает поездки владельца, новые первыми
	List(ctx context.Context, ownerID string) ([]Trip, error)
	Get(ctx context.Context, ownerID, id string) (Trip, error)
	Create(ctx context.Context, t Trip) error
	Update(ctx context.Context, t Trip) error
	Delete(ctx context.Context, ownerID, id string) error
}
