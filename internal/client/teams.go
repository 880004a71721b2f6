package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"
)

var (
	teamsEndpoint    = endpoint{path: "/teams", static: true}
	fbsTeamsEndpoint = endpoint{path: "/teams/fbs", static: true}
	rosterEndpoint   = endpoint{path: "/roster"}
	talentEndpoint   = endpoint{path: "/talent"}
	matchupEndpoint  = endpoint{path: "/teams/matchup"}
)

// TeamsParams filters /teams
type TeamsParams struct {
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *TeamsParams) Validate() error {
	return nil
}

// Teams fetches every team, optionally limited to one conference
func (c *Client) Teams(ctx context.Context, p *TeamsParams) (*Response, error) {
	if p == nil {
		p = &TeamsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, teamsEndpoint, p, nil)
}

// FBSTeamsParams filters /teams/fbs
type FBSTeamsParams struct {
	Year int `url:"year,omitempty" mapstructure:"year"`
}

func (p *FBSTeamsParams) Validate() error {
	return checkSeason("year", p.Year)
}

// FBSTeams fetches the FBS teams of a season
func (c *Client) FBSTeams(ctx context.Context, p *FBSTeamsParams) (*Response, error) {
	if p == nil {
		p = &FBSTeamsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, fbsTeamsEndpoint, p, nil)
}

// RosterParams filters /roster
type RosterParams struct {
	Team string `url:"team,omitempty" mapstructure:"team"`
	Year int    `url:"year,omitempty" mapstructure:"year"`
}

func (p *RosterParams) Validate() error {
	return checkSeason("year", p.Year)
}

// Roster fetches team rosters
func (c *Client) Roster(ctx context.Context, p *RosterParams) (*Response, error) {
	if p == nil {
		p = &RosterParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, rosterEndpoint, p, nil)
}

// TalentParams filters /talent
type TalentParams struct {
	Year int `url:"year,omitempty" mapstructure:"year"`
}

func (p *TalentParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
	)
}

// Talent fetches the 247 team talent composite
func (c *Client) Talent(ctx context.Context, p *TalentParams) (*Response, error) {
	if p == nil {
		p = &TalentParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, talentEndpoint, p, nil)
}

// MatchupParams filters /teams/matchup
type MatchupParams struct {
	Team1   string `url:"team1,omitempty" mapstructure:"team1"`
	Team2   string `url:"team2,omitempty" mapstructure:"team2"`
	MinYear int    `url:"minYear,omitempty" mapstructure:"minYear"`
	MaxYear int    `url:"maxYear,omitempty" mapstructure:"maxYear"`
}

func (p *MatchupParams) Validate() error {
	return firstErr(
		required("team1", p.Team1 != ""),
		required("team2", p.Team2 != ""),
		checkRange("minYear", p.MinYear, "maxYear", p.MaxYear),
	)
}

// Matchup fetches the head to head series of two teams. The table has one row per
// game with the series totals repeated on every row.
func (c *Client) Matchup(ctx context.Context, p *MatchupParams) (*Response, error) {
	if p == nil {
		p = &MatchupParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, matchupEndpoint, p, flattenMatchup)
}

var matchupTotals = map[string]string{
	"team1":     "team1",
	"team2":     "team2",
	"startYear": "series_start_year",
	"endYear":   "series_end_year",
	"team1Wins": "team1_wins",
	"team2Wins": "team2_wins",
	"ties":      "ties",
}

func flattenMatchup(body []byte) (*table.Table, error) {
	series, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.New("team1", "team2", "series_start_year", "series_end_year", "team1_wins", "team2_wins", "ties")
	for _, s := range series {
		for _, game := range s.Objects("games") {
			row := table.Row{}
			for from, to := range matchupTotals {
				row[to] = s.Get(from)
			}
			i := t.AppendRow(row)
			t.SetObject(i, "", game)
		}
	}
	return t, nil
}
