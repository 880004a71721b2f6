package repository

import (
	"context"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// VenueRepository handles venue database operations
type VenueRepository struct {
	db *Database
}

// Upsert inserts or updates a venue keyed by its CFBD id
func (r *VenueRepository) Upsert(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (
			venue_id, name, city, state, zip, country_code, capacity, grass, dome,
			latitude, longitude, elevation, year_constructed, timezone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (venue_id) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			country_code = EXCLUDED.country_code,
			capacity = EXCLUDED.capacity,
			grass = EXCLUDED.grass,
			dome = EXCLUDED.dome,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			elevation = EXCLUDED.elevation,
			year_constructed = EXCLUDED.year_constructed,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	start := time.Now()
	err := r.db.Pool.QueryRow(
		ctx, query,
		venue.VenueID, venue.Name, venue.City, venue.State, venue.Zip,
		venue.CountryCode, venue.Capacity, venue.Grass, venue.Dome,
		venue.Latitude, venue.Longitude, venue.Elevation,
		venue.YearConstructed, venue.Timezone,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	observe("upsert", "venues", start, err)

	if err != nil {
		return fmt.Errorf("failed to upsert venue: %w", err)
	}

	return nil
}

// GetByVenueID retrieves a venue by its CFBD id
func (r *VenueRepository) GetByVenueID(ctx context.Context, venueID int) (*models.Venue, error) {
	query := `
		SELECT id, venue_id, name, city, state, zip, country_code, capacity, grass, dome,
		       latitude, longitude, elevation, year_constructed, timezone,
		       created_at, updated_at
		FROM venues
		WHERE venue_id = $1
	`

	var v models.Venue
	err := r.db.Pool.QueryRow(ctx, query, venueID).Scan(
		&v.ID, &v.VenueID, &v.Name, &v.City, &v.State, &v.Zip, &v.CountryCode,
		&v.Capacity, &v.Grass, &v.Dome, &v.Latitude, &v.Longitude, &v.Elevation,
		&v.YearConstructed, &v.Timezone, &v.CreatedAt, &v.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("venue not found: venue_id=%d", venueID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return &v, nil
}

// Count returns the total number of venues
func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return count, nil
}
