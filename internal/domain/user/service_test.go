package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User) (User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func newTestService(repo Repository) *Service {
	s := NewService(repo, NewCredentialsValidator(), slog.Default())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	req := SignupRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "secret123"}

	// the hash is unpredictable, so check the normalized fields and that the hash matches
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Name == "Asha" &&
			u.Email == "asha@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
	})).Return(User{ID: "u-1", Name: "Asha", Email: "asha@example.com"}, nil)

	u, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, Profile{ID: "u-1", Name: "Asha", Email: "asha@example.com"}, u.Profile())

	mockRepo.AssertExpectations(t)
}

func TestService_Register_InvalidInput(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{name: "empty name", req: SignupRequest{Name: " ", Email: "a@b.io", Password: "secret123"}},
		{name: "bad email", req: SignupRequest{Name: "A", Email: "not-an-email", Password: "secret123"}},
		{name: "short password", req: SignupRequest{Name: "A", Email: "a@b.io", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var de *DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "invalid_input", de.Code)
		})
	}

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_AlreadyExists(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("User")).Return(User{}, ErrAlreadyExists)

	_, err := service.Register(context.Background(), SignupRequest{Name: "A", Email: "a@b.io", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("User")).Return(User{}, errors.New("database error"))

	_, err := service.Register(context.Background(), SignupRequest{Name: "A", Email: "a@b.io", Password: "secret123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := User{ID: "u-1", Name: "Asha", Email: "asha@example.com", Password: string(hash)}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(stored, nil)

		u, err := service.Authenticate(context.Background(), LoginRequest{Email: "ASHA@example.com ", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(stored, nil)

		_, err := service.Authenticate(context.Background(), LoginRequest{Email: "asha@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidAuth)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(User{}, ErrNotFound)

		_, err := service.Authenticate(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo)

		_, err := service.Authenticate(context.Background(), LoginRequest{Email: "ghost", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidAuth)
		mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
