package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"
)

var rankingsEndpoint = endpoint{path: "/rankings"}

// RankingsParams filters /rankings
type RankingsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Week       int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType string `url:"seasonType,omitempty" mapstructure:"seasonType"`
}

func (p *RankingsParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason),
	)
}

// Rankings fetches poll rankings. The table has one row per season, week, poll and rank.
func (c *Client) Rankings(ctx context.Context, p *RankingsParams) (*Response, error) {
	if p == nil {
		p = &RankingsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, rankingsEndpoint, p, flattenRankings)
}

func flattenRankings(body []byte) (*table.Table, error) {
	weeks, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.New("season", "season_type", "week", "poll")
	for _, week := range weeks {
		for _, poll := range week.Objects("polls") {
			for _, rank := range poll.Objects("ranks") {
				i := t.AppendRow(table.Row{
					"season":      week.Get("season"),
					"season_type": week.Get("seasonType"),
					"week":        week.Get("week"),
					"poll":        poll.Get("poll"),
				})
				t.SetObject(i, "", rank)
			}
		}
	}
	return t, nil
}
