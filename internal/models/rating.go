package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Rating systems
const (
	SystemSP  = "sp"
	SystemSRS = "srs"
	SystemElo = "elo"
	SystemFPI = "fpi"
)

// nationalAveragesTeam is the pseudo-team /ratings/sp appends with FBS averages
const nationalAveragesTeam = "nationalAverages"

// TeamRating is one team's rating in one system for a season (week 0) or week
type TeamRating struct {
	ID           int             `db:"id"`
	Season       int             `db:"season"`
	Week         int             `db:"week"`
	Team         string          `db:"team"`
	Conference   sql.NullString  `db:"conference"`
	System       string          `db:"system"`
	Rating       sql.NullFloat64 `db:"rating"`
	Ranking      sql.NullInt32   `db:"ranking"`
	Offense      sql.NullFloat64 `db:"offense"`
	Defense      sql.NullFloat64 `db:"defense"`
	SpecialTeams sql.NullFloat64 `db:"special_teams"`
	Raw          json.RawMessage `db:"raw"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// SPUnit is the offense, defense or special teams block of an SP+ rating
type SPUnit struct {
	Rating  *float64 `json:"rating,omitempty"`
	Ranking *int     `json:"ranking,omitempty"`
}

// SPRatingInput is a row of /ratings/sp
type SPRatingInput struct {
	Year         int      `json:"year"`
	Team         string   `json:"team"`
	Conference   string   `json:"conference"`
	Rating       *float64 `json:"rating,omitempty"`
	Ranking      *int     `json:"ranking,omitempty"`
	Offense      *SPUnit  `json:"offense,omitempty"`
	Defense      *SPUnit  `json:"defense,omitempty"`
	SpecialTeams *SPUnit  `json:"specialTeams,omitempty"`
}

// IsNationalAverage reports whether the row is the FBS average pseudo-team
func (si *SPRatingInput) IsNationalAverage() bool {
	return si.Team == nationalAveragesTeam
}

// ToTeamRating converts an SP+ row to a rating
func (si *SPRatingInput) ToTeamRating(raw json.RawMessage) *TeamRating {
	r := newRating(si.Year, si.Team, si.Conference, SystemSP, raw)
	r.Rating = nullFloat64(si.Rating)
	r.Ranking = nullInt32(si.Ranking)
	if si.Offense != nil {
		r.Offense = nullFloat64(si.Offense.Rating)
	}
	if si.Defense != nil {
		r.Defense = nullFloat64(si.Defense.Rating)
	}
	if si.SpecialTeams != nil {
		r.SpecialTeams = nullFloat64(si.SpecialTeams.Rating)
	}
	return r
}

// SRSRatingInput is a row of /ratings/srs
type SRSRatingInput struct {
	Year       int      `json:"year"`
	Team       string   `json:"team"`
	Conference string   `json:"conference"`
	Rating     *float64 `json:"rating,omitempty"`
	Ranking    *int     `json:"ranking,omitempty"`
}

// ToTeamRating converts an SRS row to a rating
func (si *SRSRatingInput) ToTeamRating(raw json.RawMessage) *TeamRating {
	r := newRating(si.Year, si.Team, si.Conference, SystemSRS, raw)
	r.Rating = nullFloat64(si.Rating)
	r.Ranking = nullInt32(si.Ranking)
	return r
}

// EloRatingInput is a row of /ratings/elo
type EloRatingInput struct {
	Year       int      `json:"year"`
	Team       string   `json:"team"`
	Conference string   `json:"conference"`
	Elo        *float64 `json:"elo,omitempty"`
}

// ToTeamRating converts an Elo row to a rating as of week
func (ei *EloRatingInput) ToTeamRating(week int, raw json.RawMessage) *TeamRating {
	r := newRating(ei.Year, ei.Team, ei.Conference, SystemElo, raw)
	r.Week = week
	r.Rating = nullFloat64(ei.Elo)
	return r
}

// FPIEfficiencies is the efficiency block of an FPI rating
type FPIEfficiencies struct {
	Overall      *float64 `json:"overall,omitempty"`
	Offense      *float64 `json:"offense,omitempty"`
	Defense      *float64 `json:"defense,omitempty"`
	SpecialTeams *float64 `json:"specialTeams,omitempty"`
}

// FPIResumeRanks is the resume block of an FPI rating
type FPIResumeRanks struct {
	FPI *int `json:"fpi,omitempty"`
}

// FPIRatingInput is a row of /ratings/fpi
type FPIRatingInput struct {
	Year         int              `json:"year"`
	Team         string           `json:"team"`
	Conference   string           `json:"conference"`
	FPI          *float64         `json:"fpi,omitempty"`
	ResumeRanks  *FPIResumeRanks  `json:"resumeRanks,omitempty"`
	Efficiencies *FPIEfficiencies `json:"efficiencies,omitempty"`
}

// ToTeamRating converts an FPI row to a rating
func (fi *FPIRatingInput) ToTeamRating(raw json.RawMessage) *TeamRating {
	r := newRating(fi.Year, fi.Team, fi.Conference, SystemFPI, raw)
	r.Rating = nullFloat64(fi.FPI)
	if fi.ResumeRanks != nil {
		r.Ranking = nullInt32(fi.ResumeRanks.FPI)
	}
	if fi.Efficiencies != nil {
		r.Offense = nullFloat64(fi.Efficiencies.Offense)
		r.Defense = nullFloat64(fi.Efficiencies.Defense)
		r.SpecialTeams = nullFloat64(fi.Efficiencies.SpecialTeams)
	}
	return r
}

func newRating(season int, team, conference, system string, raw json.RawMessage) *TeamRating {
	return &TeamRating{
		Season:     season,
		Team:       team,
		Conference: nullString(conference),
		System:     system,
		Raw:        raw,
	}
}
