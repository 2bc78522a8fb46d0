package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payanam/internal/domain/trip"
	"payanam/internal/domain/user"
)

func storedTrip(id, owner string, created time.Time) trip.Trip {
	return trip.Trip{
		ID:          id,
		OwnerID:     owner,
		Title:       "Trip " + id,
		Destination: "Jaipur",
		StartDate:   "2024-05-01",
		EndDate:     "2024-05-02",
		Travelers:   1,
		Itinerary:   trip.Itinerary{},
		CreatedAt:   created,
	}
}

func TestTripRepository_ListNewestFirst(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, storedTrip("old", "u1", base)))
	require.NoError(t, repo.Create(ctx, storedTrip("new", "u1", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, storedTrip("same-time", "u1", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, storedTrip("other", "u2", base)))

	trips, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	ids := make([]string, len(trips))
	for i, tr := range trips {
		ids[i] = tr.ID
	}
	assert.Equal(t, []string{"same-time", "new", "old"}, ids)

	empty, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTripRepository_OwnerScoping(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedTrip("t1", "u1", time.Now())))

	_, err := repo.Get(ctx, "u2", "t1")
	assert.ErrorIs(t, err, trip.ErrNotFound)

	foreign := storedTrip("t1", "u2", time.Now())
	assert.ErrorIs(t, repo.Update(ctx, foreign), trip.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u2", "t1"), trip.ErrNotFound)

	got, err := repo.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Trip t1", got.Title)
}

func TestTripRepository_UpdateKeepsCreatedAt(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedTrip("t1", "u1", created)))

	changed := storedTrip("t1", "u1", time.Now())
	changed.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, created, got.CreatedAt)

	require.NoError(t, repo.Delete(ctx, "u1", "t1"))
	_, err = repo.Get(ctx, "u1", "t1")
	assert.ErrorIs(t, err, trip.ErrNotFound)
}

func TestTripRepository_ReturnsCopies(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()
	tr := storedTrip("t1", "u1", time.Now())
	tr.Itinerary = trip.Itinerary{{Date: "2024-05-01", Activities: []trip.Activity{}}}
	require.NoError(t, repo.Create(ctx, tr))

	got, err := repo.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	got.Itinerary[0].Date = "1999-01-01"

	again, err := repo.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", again.Itinerary[0].Date)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, user.User{Name: "Asha", Email: "asha@example.com", Password: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = repo.Create(ctx, user.User{Name: "Other", Email: "asha@example.com", Password: "hash"})
	assert.ErrorIs(t, err, user.ErrAlreadyExists)

	found, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
