package models

import (
	"database/sql"
	"time"
)

// Conference represents an athletic conference
type Conference struct {
	ID             int            `db:"id"`
	ConferenceID   int            `db:"conference_id"`
	Name           string         `db:"name"`
	ShortName      sql.NullString `db:"short_name"`
	Abbreviation   sql.NullString `db:"abbreviation"`
	Classification sql.NullString `db:"classification"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// ConferenceInput is a conference as returned by /conferences.
// Older payloads spell the short name in snake case.
type ConferenceInput struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ShortName      string `json:"shortName"`
	ShortNameAlt   string `json:"short_name"`
	Abbreviation   string `json:"abbreviation"`
	Classification string `json:"classification"`
}

// ToConference converts ConferenceInput (from API) to Conference model
func (ci *ConferenceInput) ToConference() *Conference {
	conf := &Conference{
		ConferenceID: ci.ID,
		Name:         ci.Name,
	}

	short := ci.ShortName
	if short == "" {
		short = ci.ShortNameAlt
	}
	conf.ShortName = nullString(short)
	conf.Abbreviation = nullString(ci.Abbreviation)
	conf.Classification = nullString(ci.Classification)

	return conf
}
