package models

import (
	"database/sql"
	"strconv"
	"time"
)

// Venue represents a stadium where games are played
type Venue struct {
	ID              int             `db:"id"`
	VenueID         int             `db:"venue_id"`
	Name            string          `db:"name"`
	City            sql.NullString  `db:"city"`
	State           sql.NullString  `db:"state"`
	Zip             sql.NullString  `db:"zip"`
	CountryCode     sql.NullString  `db:"country_code"`
	Capacity        sql.NullInt32   `db:"capacity"`
	Grass           sql.NullBool    `db:"grass"`
	Dome            sql.NullBool    `db:"dome"`
	Latitude        sql.NullFloat64 `db:"latitude"`
	Longitude       sql.NullFloat64 `db:"longitude"`
	Elevation       sql.NullFloat64 `db:"elevation"`
	YearConstructed sql.NullInt32   `db:"year_constructed"`
	Timezone        sql.NullString  `db:"timezone"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// VenueInput is a venue as returned by /venues.
// Elevation arrives as a string for some venues and a number for others.
type VenueInput struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	City            string       `json:"city"`
	State           string       `json:"state"`
	Zip             string       `json:"zip"`
	CountryCode     string       `json:"country_code"`
	Capacity        *int         `json:"capacity,omitempty"`
	Grass           *bool        `json:"grass,omitempty"`
	Dome            *bool        `json:"dome,omitempty"`
	Location        *Point       `json:"location,omitempty"`
	Elevation       any          `json:"elevation,omitempty"`
	YearConstructed *int         `json:"year_constructed,omitempty"`
	Timezone        string       `json:"timezone"`
}

// Point is a longitude/latitude pair. x is latitude and y is longitude in the API.
type Point struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// ToVenue converts VenueInput (from API) to Venue model
func (vi *VenueInput) ToVenue() *Venue {
	venue := &Venue{
		VenueID: vi.ID,
		Name:    vi.Name,
	}

	venue.City = nullString(vi.City)
	venue.State = nullString(vi.State)
	venue.Zip = nullString(vi.Zip)
	venue.CountryCode = nullString(vi.CountryCode)
	venue.Timezone = nullString(vi.Timezone)

	if vi.Capacity != nil && *vi.Capacity > 0 {
		venue.Capacity = sql.NullInt32{Int32: int32(*vi.Capacity), Valid: true}
	}
	if vi.Grass != nil {
		venue.Grass = sql.NullBool{Bool: *vi.Grass, Valid: true}
	}
	if vi.Dome != nil {
		venue.Dome = sql.NullBool{Bool: *vi.Dome, Valid: true}
	}
	if vi.Location != nil {
		venue.Latitude = nullFloat64(vi.Location.X)
		venue.Longitude = nullFloat64(vi.Location.Y)
	}
	switch e := vi.Elevation.(type) {
	case float64:
		venue.Elevation = sql.NullFloat64{Float64: e, Valid: true}
	case string:
		if f, err := strconv.ParseFloat(e, 64); err == nil {
			venue.Elevation = sql.NullFloat64{Float64: f, Valid: true}
		}
	}
	if vi.YearConstructed != nil && *vi.YearConstructed > 0 {
		venue.YearConstructed = sql.NullInt32{Int32: int32(*vi.YearConstructed), Valid: true}
	}

	return venue
}
