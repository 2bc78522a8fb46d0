package user

import (
	"context"
)

type Repository interface {
	// Create сохраняет пользователя и возвращает его с назначенным id.
	// Занятый email дает ErrAlreadyExists.
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}
