package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"
)

var bettingLinesEndpoint = endpoint{path: "/lines"}

// BettingLinesParams filters /lines
type BettingLinesParams struct {
	GameID     int    `url:"gameId,omitempty" mapstructure:"gameId"`
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Week       int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Home       string `url:"home,omitempty" mapstructure:"home"`
	Away       string `url:"away,omitempty" mapstructure:"away"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

// Validate requires a year or a game id
func (p *BettingLinesParams) Validate() error {
	return firstErr(
		requireOne("year or gameId", p.Year != 0, p.GameID != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkNonNegative("gameId", p.GameID),
		checkSeasonType(p.SeasonType),
	)
}

// BettingLines fetches spreads, totals and moneylines. The table has one row per
// game and line provider.
func (c *Client) BettingLines(ctx context.Context, p *BettingLinesParams) (*Response, error) {
	if p == nil {
		p = &BettingLinesParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, bettingLinesEndpoint, p, flattenBettingLines)
}

var lineColumns = map[string]string{
	"provider":        "provider",
	"spread":          "spread",
	"formattedSpread": "formatted_spread",
	"spreadOpen":      "spread_open",
	"overUnder":       "over_under",
	"overUnderOpen":   "over_under_open",
	"homeMoneyline":   "home_moneyline",
	"awayMoneyline":   "away_moneyline",
}

var gameLineColumns = []string{
	"id", "season", "seasonType", "week", "startDate",
	"homeTeam", "homeConference", "homeScore",
	"awayTeam", "awayConference", "awayScore",
}

func flattenBettingLines(body []byte) (*table.Table, error) {
	games, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.New(
		"game_id", "season", "season_type", "week", "start_date",
		"home_team", "home_conference", "home_score",
		"away_team", "away_conference", "away_score",
		"provider", "spread", "formatted_spread", "spread_open",
		"over_under", "over_under_open", "home_moneyline", "away_moneyline",
	)
	for _, game := range games {
		for _, line := range game.Objects("lines") {
			row := table.Row{}
			for i, src := range gameLineColumns {
				row[t.Columns[i]] = game.Get(src)
			}
			for from, to := range lineColumns {
				row[to] = table.Number(line.Get(from))
			}
			t.AppendRow(row)
		}
	}
	return t, nil
}
