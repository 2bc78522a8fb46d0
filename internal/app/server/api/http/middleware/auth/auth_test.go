package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func run(t *testing.T, sess *MockSession, header string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	ctx := humatest.NewContext(&huma.Operation{}, req, rec)

	var (
		userID string
		called bool
	)
	New(sess, slog.Default()).Middleware()(ctx, func(next huma.Context) {
		called = true
		userID, _ = GetUserID(next.Context())
	})
	return rec, userID, called
}

func TestAuth_Middleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		validate   bool
		validErr   error
		wantStatus int
		wantCalled bool
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", validate: true, validErr: errors.New("invalid token"), wantStatus: http.StatusForbidden},
		{name: "valid token", header: "Bearer good", validate: true, wantStatus: http.StatusOK, wantCalled: true},
		{name: "lowercase scheme", header: "bearer good", validate: true, wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := new(MockSession)
			if tt.validate {
				if tt.validErr != nil {
					sess.On("Validate", mock.Anything, "bad").Return("", tt.validErr)
				} else {
					sess.On("Validate", mock.Anything, "good").Return("user-1", nil)
				}
			}

			rec, userID, called := run(t, sess, tt.header)

			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				assert.Equal(t, "user-1", userID)
			} else {
				assert.Equal(t, tt.wantStatus, rec.Code)
				assert.Contains(t, rec.Header().Get("Content-Type"), "problem+json")
			}
			sess.AssertExpectations(t)
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(WithUserID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}
