package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tennis-court-booking/internal/model"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance to self", func(t *testing.T) {
		assert.InDelta(t, 0, Haversine(40.7128, -74.0060, 40.7128, -74.0060), 1e-9)
	})
	t.Run("hundredth of a degree of latitude", func(t *testing.T) {
		// 0.01 degrees of latitude is roughly 1.11 km anywhere on Earth.
		d := Haversine(40.7128, -74.0060, 40.7228, -74.0060)
		assert.InDelta(t, 1.11, d, 0.02)
	})
	t.Run("manhattan to riverside", func(t *testing.T) {
		// Central Tennis Club to Riverside Courts, about 5.4 km.
		d := Haversine(40.7128, -74.0060, 40.7589, -73.9851)
		assert.InDelta(t, 5.4, d, 0.2)
	})
	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(40.7128, -74.0060, 40.7829, -73.9654)
		b := Haversine(40.7829, -73.9654, 40.7128, -74.0060)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestNearby(t *testing.T) {
	courts := []model.Court{
		{ID: 1, Name: "Central Tennis Club", Latitude: 40.7128, Longitude: -74.0060},
		{ID: 2, Name: "Riverside Courts", Latitude: 40.7589, Longitude: -73.9851},
		{ID: 3, Name: "Park View Tennis", Latitude: 40.7829, Longitude: -73.9654},
	}

	t.Run("wide radius includes all, sorted ascending", func(t *testing.T) {
		got := Nearby(courts, 40.7128, -74.0060, 10)
		require.Len(t, got, 3)
		assert.Equal(t, uint64(1), got[0].Court.ID)
		assert.Equal(t, uint64(2), got[1].Court.ID)
		assert.Equal(t, uint64(3), got[2].Court.ID)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
		}
	})

	t.Run("narrow radius excludes far courts", func(t *testing.T) {
		got := Nearby(courts, 40.7128, -74.0060, 0.5)
		require.Len(t, got, 1)
		assert.Equal(t, uint64(1), got[0].Court.ID)
	})

	t.Run("points a hundredth of a degree apart", func(t *testing.T) {
		pair := []model.Court{
			{ID: 10, Latitude: 40.7128, Longitude: -74.0060},
			{ID: 11, Latitude: 40.7228, Longitude: -74.0060},
		}
		assert.Len(t, Nearby(pair, 40.7128, -74.0060, 10), 2)
		assert.Len(t, Nearby(pair, 40.7128, -74.0060, 0.5), 1)
	})

	t.Run("tied distances keep input order", func(t *testing.T) {
		tied := []model.Court{
			{ID: 20, Latitude: 40.7228, Longitude: -74.0060}, // north
			{ID: 21, Latitude: 40.7028, Longitude: -74.0060}, // south, same distance
		}
		got := Nearby(tied, 40.7128, -74.0060, 10)
		require.Len(t, got, 2)
		assert.Equal(t, uint64(20), got[0].Court.ID)
		assert.Equal(t, uint64(21), got[1].Court.ID)
	})

	t.Run("no courts yields empty slice", func(t *testing.T) {
		got := Nearby(nil, 40.7128, -74.0060, 10)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
