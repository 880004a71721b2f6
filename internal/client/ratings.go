package client

import (
	"context"
	"maps"

	"cfbd_v1/ingestion/internal/table"
)

// spColumns renames the S&P+ breakdown of /ratings/sp
var spColumns = func() map[string]string {
	m := map[string]string{
		"team":            "team_name",
		"conference":      "conference_name",
		"rating":          "S&P+_rating",
		"secondOrderWins": "second_order_wins",
	}
	shared := map[string]string{
		"rating":        "rating",
		"success":       "success",
		"explosiveness": "explosiveness",
		"rushing":       "rushing",
		"passing":       "passing",
		"standardDowns": "standard_downs",
		"passingDowns":  "passing_downs",
	}
	for field, suffix := range shared {
		m["offense."+field] = "offense_S&P+_" + suffix
		m["defense."+field] = "defense_S&P+_" + suffix
	}
	m["offense.runRate"] = "offense_S&P+_run_rate"
	m["offense.pace"] = "offense_S&P+_pace"
	m["defense.havoc.total"] = "defense_S&P+_havoc_total"
	m["defense.havoc.frontSeven"] = "defense_S&P+_havoc_front_seven"
	m["defense.havoc.db"] = "defense_S&P+_havoc_db"
	m["specialTeams.rating"] = "defense_S&P+_special_teams_rating"
	return m
}()

var (
	spRatingsEndpoint           = endpoint{path: "/ratings/sp", rename: spColumns}
	spConferenceRatingsEndpoint = endpoint{
		path: "/ratings/sp/conferences",
		rename: func() map[string]string {
			m := maps.Clone(spColumns)
			delete(m, "team")
			return m
		}(),
	}
	srsRatingsEndpoint = endpoint{path: "/ratings/srs", rename: map[string]string{"rating": "srs_rating"}}
	eloRatingsEndpoint = endpoint{path: "/ratings/elo", rename: map[string]string{"elo": "elo_rating", "rating": "elo_rating"}}
	fpiRatingsEndpoint = endpoint{
		path: "/ratings/fpi",
		rename: map[string]string{
			"year":                                    "season",
			"team":                                    "team_name",
			"conference":                              "conference_name",
			"resumeRanks.strengthOfRecord":            "resume_strength_of_record",
			"resumeRanks.fpi":                         "fpi_rank",
			"resumeRanks.averageWinProbability":       "resume_avg_win_probability",
			"resumeRanks.strengthOfSchedule":          "resume_strength_of_schedule",
			"resumeRanks.remainingStrengthOfSchedule": "resume_remaining_strength_of_schedule",
			"resumeRanks.gameControl":                 "resume_game_control",
			"efficiencies.overall":                    "efficiency_overall",
			"efficiencies.offense":                    "efficiency_offense",
			"efficiencies.defense":                    "efficiency_defense",
			"efficiencies.specialTeams":               "efficiency_special_teams",
		},
	}
)

// RatingsParams filters /ratings/sp, /ratings/srs and /ratings/fpi
type RatingsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

// Validate requires a year or a team
func (p *RatingsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
	)
}

// SPRatings fetches S&P+ team ratings
func (c *Client) SPRatings(ctx context.Context, p *RatingsParams) (*Response, error) {
	if p == nil {
		p = &RatingsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, spRatingsEndpoint, p, nil)
}

// SRSRatings fetches Simple Rating System team ratings
func (c *Client) SRSRatings(ctx context.Context, p *RatingsParams) (*Response, error) {
	if p == nil {
		p = &RatingsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, srsRatingsEndpoint, p, nil)
}

// SPConferenceRatingsParams filters /ratings/sp/conferences
type SPConferenceRatingsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *SPConferenceRatingsParams) Validate() error {
	return checkSeason("year", p.Year)
}

// SPConferenceRatings fetches S&P+ ratings averaged per conference
func (c *Client) SPConferenceRatings(ctx context.Context, p *SPConferenceRatingsParams) (*Response, error) {
	if p == nil {
		p = &SPConferenceRatingsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, spConferenceRatingsEndpoint, p, nil)
}

// EloRatingsParams filters /ratings/elo
type EloRatingsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Week       int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

// Validate checks the filters. An empty season type means postseason, which gives
// the final rating of a season.
func (p *EloRatingsParams) Validate() error {
	if err := firstErr(
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason, SeasonBoth),
	); err != nil {
		return err
	}
	if p.SeasonType == "" {
		p.SeasonType = SeasonPostseason
	}
	return nil
}

// EloRatings fetches Elo team ratings. When a week is requested the table carries it.
func (c *Client) EloRatings(ctx context.Context, p *EloRatingsParams) (*Response, error) {
	if p == nil {
		p = &EloRatingsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	week := p.Week
	return c.fetch(ctx, eloRatingsEndpoint, p, func(body []byte) (*table.Table, error) {
		t, err := eloRatingsEndpoint.flatten(body)
		if err != nil || week == 0 {
			return t, err
		}
		return t.AddColumn("week", func(table.Row) any { return int64(week) }), nil
	})
}

// FPIRatingsParams filters /ratings/fpi
type FPIRatingsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Week       int    `url:"week,omitempty" mapstructure:"week"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *FPIRatingsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
	)
}

// FPIRatings fetches ESPN Football Power Index ratings
func (c *Client) FPIRatings(ctx context.Context, p *FPIRatingsParams) (*Response, error) {
	if p == nil {
		p = &FPIRatingsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, fpiRatingsEndpoint, p, nil)
}
