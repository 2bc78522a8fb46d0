package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleTrip(t *testing.T) Trip {
	t.Helper()
	tr, err := NewTrip("t1", "u1", validDraft(), time.Unix(0, 0).UTC())
	require.NoError(t, err)
	return tr
}

func TestPatch_Apply(t *testing.T) {
	orig := sampleTrip(t)

	got, err := Patch{
		Title:     ptr("Monsoon Goa"),
		Budget:    ptr(30000.0),
		Travelers: ptr(3),
	}.Apply(orig)

	require.NoError(t, err)
	assert.Equal(t, "Monsoon Goa", got.Title)
	assert.Equal(t, 30000.0, got.Budget)
	assert.Equal(t, 3, got.Travelers)
	assert.Equal(t, orig.Destination, got.Destination)
	assert.Equal(t, "Trip to Goa", orig.Title)
}

func TestPatch_Apply_RejectsInvalidResult(t *testing.T) {
	orig := sampleTrip(t)

	tests := []struct {
		name  string
		patch Patch
	}{
		{name: "end before start", patch: Patch{EndDate: ptr("2024-04-01")}},
		{name: "zero travelers", patch: Patch{Travelers: ptr(0)}},
		{name: "negative budget", patch: Patch{Budget: ptr(-10.0)}},
		{name: "unsorted itinerary", patch: Patch{Itinerary: &Itinerary{{Date: "2024-05-02"}, {Date: "2024-05-01"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.patch.Apply(orig)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestItineraryPatch(t *testing.T) {
	p := ItineraryPatch(nil)
	require.NotNil(t, p.Itinerary)
	assert.Empty(t, *p.Itinerary)
	assert.False(t, p.IsEmpty())
	assert.True(t, Patch{}.IsEmpty())
}
