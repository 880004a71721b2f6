package models

import (
	"database/sql"
	"time"
)

// Team represents a college football program
type Team struct {
	ID             int            `db:"id"`
	TeamID         int            `db:"team_id"`
	School         string         `db:"school"`
	Mascot         sql.NullString `db:"mascot"`
	Abbreviation   sql.NullString `db:"abbreviation"`
	Conference     sql.NullString `db:"conference"`
	Division       sql.NullString `db:"division"`
	Classification sql.NullString `db:"classification"`
	Color          sql.NullString `db:"color"`
	AltColor       sql.NullString `db:"alt_color"`
	VenueID        sql.NullInt32  `db:"venue_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// TeamInput is a team as returned by /teams
type TeamInput struct {
	ID             int           `json:"id"`
	School         string        `json:"school"`
	Mascot         string        `json:"mascot"`
	Abbreviation   string        `json:"abbreviation"`
	Conference     string        `json:"conference"`
	Division       string        `json:"division"`
	Classification string        `json:"classification"`
	Color          string        `json:"color"`
	AltColor       string        `json:"alt_color"`
	Location       *TeamLocation `json:"location,omitempty"`
}

// TeamLocation is the home stadium block of a team
type TeamLocation struct {
	VenueID *int   `json:"venue_id,omitempty"`
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// ToTeam converts TeamInput (from API) to Team model
func (ti *TeamInput) ToTeam() *Team {
	team := &Team{
		TeamID: ti.ID,
		School: ti.School,
	}

	team.Mascot = nullString(ti.Mascot)
	team.Abbreviation = nullString(ti.Abbreviation)
	team.Conference = nullString(ti.Conference)
	team.Division = nullString(ti.Division)
	team.Classification = nullString(ti.Classification)
	team.Color = nullString(ti.Color)
	team.AltColor = nullString(ti.AltColor)

	if ti.Location != nil && ti.Location.VenueID != nil {
		team.VenueID = sql.NullInt32{Int32: int32(*ti.Location.VenueID), Valid: true}
	}

	return team
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
