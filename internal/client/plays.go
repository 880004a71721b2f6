package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"
)

var (
	playsEndpoint         = endpoint{path: "/plays"}
	playTypesEndpoint     = endpoint{path: "/plays/types", static: true}
	playStatsEndpoint     = endpoint{path: "/plays/stats"}
	playStatTypesEndpoint = endpoint{path: "/plays/stats/types", static: true}
	livePlaysEndpoint     = endpoint{path: "/live/plays", live: true}
)

// PlaysParams filters /plays
type PlaysParams struct {
	Year              int    `url:"year,omitempty" mapstructure:"year"`
	Week              int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType        string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Team              string `url:"team,omitempty" mapstructure:"team"`
	Offense           string `url:"offense,omitempty" mapstructure:"offense"`
	Defense           string `url:"defense,omitempty" mapstructure:"defense"`
	Conference        string `url:"conference,omitempty" mapstructure:"conference"`
	OffenseConference string `url:"offenseConference,omitempty" mapstructure:"offenseConference"`
	DefenseConference string `url:"defenseConference,omitempty" mapstructure:"defenseConference"`
	PlayType          int    `url:"playType,omitempty" mapstructure:"playType"`
	Classification    string `url:"classification,omitempty" mapstructure:"classification"`
}

// Validate requires a year and a week
func (p *PlaysParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		required("week", p.Week != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkNonNegative("playType", p.PlayType),
		checkSeasonType(p.SeasonType),
		checkClassification(p.Classification),
	)
}

// Plays fetches play by play data for one week
func (c *Client) Plays(ctx context.Context, p *PlaysParams) (*Response, error) {
	if p == nil {
		p = &PlaysParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playsEndpoint, p, nil)
}

// PlayTypes fetches the play type ids used by /plays
func (c *Client) PlayTypes(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, playTypesEndpoint, nil, nil)
}

// PlayStatsParams filters /plays/stats
type PlayStatsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Week       int    `url:"week,omitempty" mapstructure:"week"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	GameID     int    `url:"gameId,omitempty" mapstructure:"gameId"`
	AthleteID  int    `url:"athleteId,omitempty" mapstructure:"athleteId"`
	StatTypeID int    `url:"statTypeId,omitempty" mapstructure:"statTypeId"`
	SeasonType string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *PlayStatsParams) Validate() error {
	return firstErr(
		requireOne("year, gameId or athleteId", p.Year != 0, p.GameID != 0, p.AthleteID != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkNonNegative("statTypeId", p.StatTypeID),
		checkSeasonType(p.SeasonType),
	)
}

// PlayStats fetches player stats attached to individual plays
func (c *Client) PlayStats(ctx context.Context, p *PlayStatsParams) (*Response, error) {
	if p == nil {
		p = &PlayStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playStatsEndpoint, p, nil)
}

// PlayStatTypes fetches the stat type ids used by /plays/stats
func (c *Client) PlayStatTypes(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, playStatTypesEndpoint, nil, nil)
}

// LivePlaysParams selects one game for /live/plays
type LivePlaysParams struct {
	GameID int `url:"id,omitempty" mapstructure:"id"`
}

func (p *LivePlaysParams) Validate() error {
	return firstErr(
		required("id", p.GameID != 0),
		checkNonNegative("id", p.GameID),
	)
}

// LivePlays fetches the plays of a game in progress. It is never served from the cache.
func (c *Client) LivePlays(ctx context.Context, p *LivePlaysParams) (*Response, error) {
	if p == nil {
		p = &LivePlaysParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, livePlaysEndpoint, p, flattenLivePlays)
}

// flattenLivePlays emits one row per play across all drives
func flattenLivePlays(body []byte) (*table.Table, error) {
	games, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.New("game_id", "drive_id", "drive_offense", "drive_defense")
	for _, game := range games {
		for _, drive := range game.Objects("drives") {
			for _, play := range drive.Objects("plays") {
				i := t.AppendRow(table.Row{
					"game_id":       game.Get("id"),
					"drive_id":      drive.Get("id"),
					"drive_offense": drive.Get("offense"),
					"drive_defense": drive.Get("defense"),
				})
				t.SetObject(i, "", play)
			}
		}
	}
	return t.Rename(map[string]string{"id": "play_id"}), nil
}
