package model

import "time"

// Court represents a bookable tennis court as stored in the `courts`
// table. Coordinates are decimal degrees. AvailableHours holds the
// weekly schedule as a JSON object keyed by weekday, e.g.
// {"monday": ["06:00", "22:00"], ...}. The schedule is recorded and served
// to clients but booking validity is currently gated by the
// facility-wide opening hours from configuration.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the court.
//  Address        – street address.
//  Latitude       – latitude in decimal degrees.
//  Longitude      – longitude in decimal degrees.
//  AvailableHours – weekly schedule as JSON text (may be empty).
//  PricePerHour   – hourly rate, non-negative.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Court struct {
	ID             uint64    // courts.id
	Name           string    // courts.name
	Address        string    // courts.address
	Latitude       float64   // courts.latitude
	Longitude      float64   // courts.longitude
	AvailableHours string    // courts.available_hours (JSON text)
	PricePerHour   float64   // courts.price_per_hour
	CreatedAt      time.Time // courts.created_at
	UpdatedAt      time.Time // courts.updated_at
}
