package client

import (
	"context"
	"maps"

	"cfbd_v1/ingestion/internal/table"

	"github.com/rs/zerolog/log"
)

// teamPPAColumns renames the offense/defense PPA breakdown shared by /ppa/teams and /ppa/games
var teamPPAColumns = func() map[string]string {
	m := map[string]string{
		"conference": "conference_name",
		"team":       "team_name",
	}
	for _, side := range []string{"offense", "defense"} {
		m[side+".overall"] = "ppa_" + side + "_overall"
		m[side+".passing"] = "ppa_" + side + "_passing"
		m[side+".rushing"] = "ppa_" + side + "_rushing"
		m[side+".firstDown"] = "ppa_" + side + "_first_down"
		m[side+".secondDown"] = "ppa_" + side + "_second_down"
		m[side+".thirdDown"] = "ppa_" + side + "_third_down"
		m[side+".cumulative.total"] = "ppa_" + side + "_cumulative_total"
		m[side+".cumulative.passing"] = "ppa_" + side + "_cumulative_passing"
		m[side+".cumulative.rushing"] = "ppa_" + side + "_cumulative_rushing"
	}
	return m
}()

// ppaSplits maps the API's PPA split names to column suffixes
var ppaSplits = map[string]string{
	"all":           "all",
	"pass":          "pass",
	"rush":          "rush",
	"firstDown":     "first_down",
	"secondDown":    "second_down",
	"thirdDown":     "third_down",
	"standardDowns": "standard_downs",
	"passingDowns":  "passing_downs",
}

var (
	predictedPointsEndpoint = endpoint{
		path:   "/ppa/predicted",
		rename: map[string]string{"yardLine": "yard_line", "predictedPoints": "predicted_points"},
	}
	teamSeasonPPAEndpoint = endpoint{path: "/ppa/teams", rename: teamPPAColumns}
	teamGamePPAEndpoint   = endpoint{
		path: "/ppa/games",
		rename: func() map[string]string {
			m := maps.Clone(teamPPAColumns)
			m["gameId"] = "game_id"
			m["opponent"] = "opponent_name"
			return m
		}(),
	}
	playerGamePPAEndpoint = endpoint{
		path: "/ppa/players/games",
		rename: map[string]string{
			"name":            "player_name",
			"position":        "position_abv",
			"team":            "team_name",
			"opponent":        "opponent_name",
			"averagePPA.all":  "avg_ppa_cumulative",
			"averagePPA.pass": "avg_ppa_pass",
			"averagePPA.rush": "avg_ppa_rush",
		},
	}
	playerSeasonPPAEndpoint = endpoint{
		path: "/ppa/players/season",
		rename: func() map[string]string {
			m := map[string]string{
				"id":             "game_id",
				"name":           "player_name",
				"position":       "position_abv",
				"team":           "team_name",
				"conference":     "conference_name",
				"countablePlays": "countable_plays",
			}
			for split, suffix := range ppaSplits {
				m["averagePPA."+split] = "avg_ppa_" + suffix
				m["totalPPA."+split] = "total_ppa_" + suffix
			}
			return m
		}(),
	}
	winProbabilityEndpoint = endpoint{
		path: "/metrics/wp",
		rename: map[string]string{
			"playId":      "play_id",
			"playText":    "play_text",
			"homeId":      "home_team_id",
			"home":        "home_team_name",
			"awayId":      "away_team_id",
			"away":        "away_team_name",
			"spread":      "spread_line",
			"homeBall":    "home_team_on_offense_flag",
			"homeScore":   "home_score",
			"awayScore":   "away_score",
			"homeWinProb": "home_win_probability",
			"playNumber":  "play_num",
			"yardLine":    "yard_line",
		},
	}
	pregameWinProbabilityEndpoint = endpoint{
		path: "/metrics/wp/pregame",
		rename: map[string]string{
			"seasonType":  "season_type",
			"gameId":      "game_id",
			"homeTeam":    "home_team_name",
			"awayTeam":    "away_team_name",
			"spread":      "spread_line",
			"homeWinProb": "home_win_probability",
		},
	}
	fieldGoalEPEndpoint = endpoint{
		path:   "/metrics/fg/ep",
		static: true,
		rename: map[string]string{"yardsToGoal": "yards_to_goal", "expectedPoints": "expected_points"},
	}
)

// PredictedPointsParams selects a down and distance for /ppa/predicted
type PredictedPointsParams struct {
	Down     int `url:"down,omitempty" mapstructure:"down"`
	Distance int `url:"distance,omitempty" mapstructure:"distance"`
}

// Validate requires a down of 1-4 and a distance of 1-99.
// A fifth down only logs a warning and is still sent.
func (p *PredictedPointsParams) Validate() error {
	switch {
	case p.Down == 5:
		log.Warn().Int("down", p.Down).Msg("There is no fifth down in college football; the API will likely return nothing")
	case p.Down < 1 || p.Down > 5:
		return paramErr("down", "%d must be between 1 and 4", p.Down)
	}
	switch {
	case p.Distance >= 100:
		return paramErr("distance", "%d yards cannot be 100 or more", p.Distance)
	case p.Distance <= 0:
		return paramErr("distance", "%d must be at least 1", p.Distance)
	}
	return nil
}

// PredictedPoints fetches the expected points by yard line for a down and distance
func (c *Client) PredictedPoints(ctx context.Context, p *PredictedPointsParams) (*Response, error) {
	if p == nil {
		p = &PredictedPointsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, predictedPointsEndpoint, p, nil)
}

// TeamSeasonPPAParams filters /ppa/teams
type TeamSeasonPPAParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	Conference         string `url:"conference,omitempty" mapstructure:"conference"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
}

func (p *TeamSeasonPPAParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
	)
}

// TeamSeasonPPA fetches season PPA averages per team
func (c *Client) TeamSeasonPPA(ctx context.Context, p *TeamSeasonPPAParams) (*Response, error) {
	if p == nil {
		p = &TeamSeasonPPAParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, teamSeasonPPAEndpoint, p, nil)
}

// TeamGamePPAParams filters /ppa/games
type TeamGamePPAParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Week               int    `url:"week,omitempty" mapstructure:"week"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	Conference         string `url:"conference,omitempty" mapstructure:"conference"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
	SeasonType         string `url:"seasonType,omitempty" mapstructure:"seasonType"`
}

func (p *TeamGamePPAParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason),
	)
}

// TeamGamePPA fetches PPA per team and game
func (c *Client) TeamGamePPA(ctx context.Context, p *TeamGamePPAParams) (*Response, error) {
	if p == nil {
		p = &TeamGamePPAParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, teamGamePPAEndpoint, p, nil)
}

// PlayerGamePPAParams filters /ppa/players/games
type PlayerGamePPAParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Week               int    `url:"week,omitempty" mapstructure:"week"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	Position           string `url:"position,omitempty" mapstructure:"position"`
	PlayerID           int    `url:"playerId,omitempty" mapstructure:"playerId"`
	Threshold          int    `url:"threshold,omitempty" mapstructure:"threshold"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
	SeasonType         string `url:"seasonType,omitempty" mapstructure:"seasonType"`
}

func (p *PlayerGamePPAParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		requireOne("week or team", p.Week != 0, p.Team != ""),
		checkNonNegative("week", p.Week),
		checkNonNegative("threshold", p.Threshold),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason),
	)
}

// PlayerGamePPA fetches PPA per player and game
func (c *Client) PlayerGamePPA(ctx context.Context, p *PlayerGamePPAParams) (*Response, error) {
	if p == nil {
		p = &PlayerGamePPAParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playerGamePPAEndpoint, p, nil)
}

// PlayerSeasonPPAParams filters /ppa/players/season
type PlayerSeasonPPAParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	Conference         string `url:"conference,omitempty" mapstructure:"conference"`
	Position           string `url:"position,omitempty" mapstructure:"position"`
	PlayerID           int    `url:"playerId,omitempty" mapstructure:"playerId"`
	Threshold          int    `url:"threshold,omitempty" mapstructure:"threshold"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
}

func (p *PlayerSeasonPPAParams) Validate() error {
	return firstErr(
		requireOne("year or playerId", p.Year != 0, p.PlayerID != 0),
		checkSeason("year", p.Year),
		checkNonNegative("threshold", p.Threshold),
	)
}

// PlayerSeasonPPA fetches season PPA per player
func (c *Client) PlayerSeasonPPA(ctx context.Context, p *PlayerSeasonPPAParams) (*Response, error) {
	if p == nil {
		p = &PlayerSeasonPPAParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playerSeasonPPAEndpoint, p, nil)
}

// WinProbabilityParams selects one game for /metrics/wp
type WinProbabilityParams struct {
	GameID int `url:"gameId,omitempty" mapstructure:"gameId"`
}

func (p *WinProbabilityParams) Validate() error {
	return firstErr(
		required("gameId", p.GameID != 0),
		checkNonNegative("gameId", p.GameID),
	)
}

// WinProbability fetches the play by play win probability of one game
func (c *Client) WinProbability(ctx context.Context, p *WinProbabilityParams) (*Response, error) {
	if p == nil {
		p = &WinProbabilityParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, winProbabilityEndpoint, p, withAwayWinProbability(winProbabilityEndpoint))
}

// PregameWinProbabilityParams filters /metrics/wp/pregame
type PregameWinProbabilityParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Week       int    `url:"week,omitempty" mapstructure:"week"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	SeasonType string `url:"seasonType,omitempty" mapstructure:"seasonType"`
}

func (p *PregameWinProbabilityParams) Validate() error {
	return firstErr(
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason),
	)
}

// PregameWinProbability fetches the betting implied win probability before kickoff
func (c *Client) PregameWinProbability(ctx context.Context, p *PregameWinProbabilityParams) (*Response, error) {
	if p == nil {
		p = &PregameWinProbabilityParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, pregameWinProbabilityEndpoint, p, withAwayWinProbability(pregameWinProbabilityEndpoint))
}

// withAwayWinProbability flattens with the endpoint renames and derives the away side
func withAwayWinProbability(ep endpoint) flattenFunc {
	return func(body []byte) (*table.Table, error) {
		t, err := ep.flatten(body)
		if err != nil {
			return nil, err
		}
		return t.AddColumn("away_win_probability", func(r table.Row) any {
			home, ok := r.Float("home_win_probability")
			if !ok {
				return nil
			}
			return 1 - home
		}), nil
	}
}

// FieldGoalExpectedPoints fetches field goal expected points by yards to goal
func (c *Client) FieldGoalExpectedPoints(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, fieldGoalEPEndpoint, nil, nil)
}
