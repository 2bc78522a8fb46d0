package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payanam/internal/domain/session"
	"payanam/internal/domain/trip"
	"payanam/internal/domain/user"
	"payanam/internal/infrastructure/storage/memory"
	"payanam/internal/utils/logger"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	log := logger.Discard()
	sess, err := session.NewService("test-secret", time.Hour, log)
	require.NoError(t, err)

	return New(Deps{
		Users:   memory.NewUserRepository(),
		Trips:   memory.NewTripRepository(),
		Session: sess,
	}, log)
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, h http.Handler, name, email string) user.AuthResponse {
	t.Helper()

	rec := call(t, h, http.MethodPost, "/api/auth/signup", "", user.SignupRequest{
		Name: name, Email: email, Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out user.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func goaDraft() trip.Draft {
	return trip.Draft{
		Title:       "Goa",
		Destination: "Goa, India",
		StartDate:   "2024-05-01",
		EndDate:     "2024-05-03",
	}
}

func TestAPI_Health(t *testing.T) {
	h := newTestAPI(t)

	rec := call(t, h, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}

func TestAPI_Auth(t *testing.T) {
	h := newTestAPI(t)

	resp := signup(t, h, "Alice", "alice@example.com")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)

	t.Run("duplicate signup", func(t *testing.T) {
		rec := call(t, h, http.MethodPost, "/api/auth/signup", "", user.SignupRequest{
			Name: "Alice", Email: "alice@example.com", Password: "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec := call(t, h, http.MethodPost, "/api/auth/login", "", user.LoginRequest{
			Email: "alice@example.com", Password: "secret123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var out user.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, resp.User.ID, out.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := call(t, h, http.MethodPost, "/api/auth/login", "", user.LoginRequest{
			Email: "alice@example.com", Password: "nope-nope",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAPI_TripsRequireBearer(t *testing.T) {
	h := newTestAPI(t)

	rec := call(t, h, http.MethodGet, "/api/trips", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/trips", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_TripLifecycle(t *testing.T) {
	h := newTestAPI(t)
	token := signup(t, h, "Alice", "alice@example.com").Token

	rec := call(t, h, http.MethodPost, "/api/trips", token, goaDraft())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.NotContains(t, rec.Body.String(), "$schema")

	var created trip.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Travelers)
	assert.Equal(t, 0.0, created.Budget)

	second := goaDraft()
	second.Title = "Goa II"
	rec = call(t, h, http.MethodPost, "/api/trips", token, second)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/trips", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []trip.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Goa II", list[0].Title, "newest first")

	title := "Goa, renamed"
	rec = call(t, h, http.MethodPut, "/api/trips/"+created.ID, token, trip.Patch{Title: &title})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated trip.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, created.Destination, updated.Destination)

	badEnd := "2024-04-01"
	rec = call(t, h, http.MethodPut, "/api/trips/"+created.ID, token, trip.Patch{EndDate: &badEnd})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, h, http.MethodDelete, "/api/trips/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Trip deleted"}`, rec.Body.String())

	rec = call(t, h, http.MethodDelete, "/api/trips/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_TripsAreOwnerScoped(t *testing.T) {
	h := newTestAPI(t)
	alice := signup(t, h, "Alice", "alice@example.com").Token
	bob := signup(t, h, "Bob", "bob@example.com").Token

	rec := call(t, h, http.MethodPost, "/api/trips", alice, goaDraft())
	require.Equal(t, http.StatusOK, rec.Code)
	var created trip.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	title := "stolen"
	rec = call(t, h, http.MethodPut, "/api/trips/"+created.ID, bob, trip.Patch{Title: &title})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, h, http.MethodDelete, "/api/trips/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/trips", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
