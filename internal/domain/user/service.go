package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, req SignupRequest) (User, error)
	Authenticate(ctx context.Context, req LoginRequest) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req SignupRequest) (User, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := s.validator.ValidateSignup(req); err != nil {
		s.log.Debug("validation failed", "email", req.Email, "error", err)
		return User{}, &DomainError{Err: ErrInvalidInput, Message: err.Error(), Code: "invalid_input"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, User{
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, err
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (User, error) {
	email := NormalizeEmail(req.Email)
	if err := s.validator.ValidateEmail(email); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}
