package models

import (
	"database/sql"
	"time"
)

// Game statuses as reported by the scoreboard
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Game represents a college football game
type Game struct {
	ID             int            `db:"id"`
	GameID         int            `db:"game_id"`
	Season         int            `db:"season"`
	Week           int            `db:"week"`
	SeasonType     string         `db:"season_type"`
	StartDate      time.Time      `db:"start_date"`
	Completed      bool           `db:"completed"`
	NeutralSite    bool           `db:"neutral_site"`
	ConferenceGame bool           `db:"conference_game"`
	Attendance     sql.NullInt32  `db:"attendance"`
	VenueID        sql.NullInt32  `db:"venue_id"`
	Status         string         `db:"status"`
	Period         sql.NullInt32  `db:"period"`
	Clock          sql.NullString `db:"clock"`

	HomeTeamID     sql.NullInt32  `db:"home_team_id"`
	HomeTeam       string         `db:"home_team"`
	HomeConference sql.NullString `db:"home_conference"`
	HomePoints     sql.NullInt32  `db:"home_points"`
	HomeLineScores []int32        `db:"home_line_scores"`

	AwayTeamID     sql.NullInt32  `db:"away_team_id"`
	AwayTeam       string         `db:"away_team"`
	AwayConference sql.NullString `db:"away_conference"`
	AwayPoints     sql.NullInt32  `db:"away_points"`
	AwayLineScores []int32        `db:"away_line_scores"`

	ExcitementIndex sql.NullFloat64 `db:"excitement_index"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GameInput is a game as returned by /games
type GameInput struct {
	ID              int      `json:"id"`
	Season          int      `json:"season"`
	Week            int      `json:"week"`
	SeasonType      string   `json:"seasonType"`
	StartDate       string   `json:"startDate"` // ISO 8601
	Completed       bool     `json:"completed"`
	NeutralSite     bool     `json:"neutralSite"`
	ConferenceGame  bool     `json:"conferenceGame"`
	Attendance      *int     `json:"attendance,omitempty"`
	VenueID         *int     `json:"venueId,omitempty"`
	HomeID          *int     `json:"homeId,omitempty"`
	HomeTeam        string   `json:"homeTeam"`
	HomeConference  string   `json:"homeConference"`
	HomePoints      *int     `json:"homePoints,omitempty"`
	HomeLineScores  []int    `json:"homeLineScores,omitempty"`
	AwayID          *int     `json:"awayId,omitempty"`
	AwayTeam        string   `json:"awayTeam"`
	AwayConference  string   `json:"awayConference"`
	AwayPoints      *int     `json:"awayPoints,omitempty"`
	AwayLineScores  []int    `json:"awayLineScores,omitempty"`
	ExcitementIndex *float64 `json:"excitementIndex,omitempty"`
}

// ToGame converts GameInput (from API) to Game model
func (gi *GameInput) ToGame() *Game {
	game := &Game{
		GameID:         gi.ID,
		Season:         gi.Season,
		Week:           gi.Week,
		SeasonType:     gi.SeasonType,
		Completed:      gi.Completed,
		NeutralSite:    gi.NeutralSite,
		ConferenceGame: gi.ConferenceGame,
		HomeTeam:       gi.HomeTeam,
		AwayTeam:       gi.AwayTeam,
		Status:         StatusScheduled,
	}
	if gi.Completed {
		game.Status = StatusCompleted
	}

	if t, err := time.Parse(time.RFC3339, gi.StartDate); err == nil {
		game.StartDate = t.UTC()
	}

	game.Attendance = nullInt32(gi.Attendance)
	game.VenueID = nullInt32(gi.VenueID)

	game.HomeTeamID = nullInt32(gi.HomeID)
	game.HomeConference = nullString(gi.HomeConference)
	game.HomePoints = nullInt32(gi.HomePoints)
	game.HomeLineScores = int32s(gi.HomeLineScores)

	game.AwayTeamID = nullInt32(gi.AwayID)
	game.AwayConference = nullString(gi.AwayConference)
	game.AwayPoints = nullInt32(gi.AwayPoints)
	game.AwayLineScores = int32s(gi.AwayLineScores)

	game.ExcitementIndex = nullFloat64(gi.ExcitementIndex)

	return game
}

// IsActive returns true if the game is currently in progress
func (g *Game) IsActive() bool {
	return g.Status == StatusInProgress
}

// IsScheduled returns true if the game is scheduled but not started
func (g *Game) IsScheduled() bool {
	return g.Status == StatusScheduled
}

// IsFinal returns true if the game is completed
func (g *Game) IsFinal() bool {
	return g.Status == StatusCompleted
}

// ScoreboardTeam is one side of a scoreboard entry
type ScoreboardTeam struct {
	ID         *int   `json:"id,omitempty"`
	Name       string `json:"name"`
	Conference string `json:"conference"`
	Points     *int   `json:"points,omitempty"`
	LineScores []int  `json:"lineScores,omitempty"`
}

// ScoreboardGameInput is a game as returned by /scoreboard
type ScoreboardGameInput struct {
	ID        int            `json:"id"`
	StartDate string         `json:"startDate"`
	Status    string         `json:"status"`
	Period    *int           `json:"period,omitempty"`
	Clock     string         `json:"clock"`
	HomeTeam  ScoreboardTeam `json:"homeTeam"`
	AwayTeam  ScoreboardTeam `json:"awayTeam"`
}

// ScoreUpdate carries the live fields of a game
type ScoreUpdate struct {
	GameID         int
	Status         string
	Period         sql.NullInt32
	Clock          sql.NullString
	HomePoints     sql.NullInt32
	AwayPoints     sql.NullInt32
	HomeLineScores []int32
	AwayLineScores []int32
}

// ToScoreUpdate converts a scoreboard entry to a score update
func (si *ScoreboardGameInput) ToScoreUpdate() *ScoreUpdate {
	u := &ScoreUpdate{
		GameID: si.ID,
		Status: si.Status,
	}
	if u.Status == "" {
		u.Status = StatusScheduled
	}

	u.Period = nullInt32(si.Period)
	u.Clock = nullString(si.Clock)
	u.HomePoints = nullInt32(si.HomeTeam.Points)
	u.AwayPoints = nullInt32(si.AwayTeam.Points)
	u.HomeLineScores = int32s(si.HomeTeam.LineScores)
	u.AwayLineScores = int32s(si.AwayTeam.LineScores)

	return u
}

// IsActive returns true if the update is for a game in progress
func (u *ScoreUpdate) IsActive() bool {
	return u.Status == StatusInProgress
}

func int32s(v []int) []int32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]int32, len(v))
	for i, n := range v {
		out[i] = int32(n)
	}
	return out
}
