// Package geo provides great-circle distance math and the proximity
// filter used by the public court search endpoint.
package geo

import (
	"math"
	"sort"

	"github.com/iliyamo/tennis-court-booking/internal/model"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// CourtDistance pairs a court with its distance from a search origin.
type CourtDistance struct {
	Court      model.Court
	DistanceKm float64
}

// Nearby filters courts to those within radiusKm of (lat, lng) and
// returns them ordered by ascending distance. Distances are rounded to
// 2 decimal places. Ties keep the input order.
func Nearby(courts []model.Court, lat, lng, radiusKm float64) []CourtDistance {
	result := make([]CourtDistance, 0, len(courts))
	for _, c := range courts {
		d := Haversine(lat, lng, c.Latitude, c.Longitude)
		if d <= radiusKm {
			result = append(result, CourtDistance{
				Court:      c,
				DistanceKm: math.Round(d*100) / 100,
			})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result
}
