package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"
)

var (
	teamSeasonStatsEndpoint     = endpoint{path: "/stats/season"}
	advancedSeasonStatsEndpoint = endpoint{path: "/stats/season/advanced"}
	advancedGameStatsEndpoint   = endpoint{path: "/stats/game/advanced"}
	statCategoriesEndpoint      = endpoint{path: "/stats/categories", static: true}
)

// TeamSeasonStatsParams filters /stats/season
type TeamSeasonStatsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
	StartWeek  int    `url:"startWeek,omitempty" mapstructure:"startWeek"`
	EndWeek    int    `url:"endWeek,omitempty" mapstructure:"endWeek"`
}

func (p *TeamSeasonStatsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
		checkWeeks(p.StartWeek, p.EndWeek),
	)
}

// TeamSeasonStats fetches season totals per team with one column per stat
func (c *Client) TeamSeasonStats(ctx context.Context, p *TeamSeasonStatsParams) (*Response, error) {
	if p == nil {
		p = &TeamSeasonStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, teamSeasonStatsEndpoint, p, flattenTeamSeasonStats)
}

func flattenTeamSeasonStats(body []byte) (*table.Table, error) {
	records, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	return table.Pivot(records, table.PivotSpec{
		ID: []table.Field{
			{Source: "season", Column: "season"},
			{Source: "team", Column: "team_name"},
			{Source: "conference", Column: "conference_name"},
		},
		Column: func(o *table.Object) (string, bool) {
			name := o.String("statName")
			return name, name != ""
		},
		Value: "statValue",
	}), nil
}

// AdvancedSeasonStatsParams filters /stats/season/advanced
type AdvancedSeasonStatsParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
	StartWeek          int    `url:"startWeek,omitempty" mapstructure:"startWeek"`
	EndWeek            int    `url:"endWeek,omitempty" mapstructure:"endWeek"`
}

func (p *AdvancedSeasonStatsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
		checkWeeks(p.StartWeek, p.EndWeek),
	)
}

// AdvancedSeasonStats fetches season level advanced team stats
func (c *Client) AdvancedSeasonStats(ctx context.Context, p *AdvancedSeasonStatsParams) (*Response, error) {
	if p == nil {
		p = &AdvancedSeasonStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, advancedSeasonStatsEndpoint, p, nil)
}

// AdvancedGameStatsParams filters /stats/game/advanced
type AdvancedGameStatsParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	Week               int    `url:"week,omitempty" mapstructure:"week"`
	Opponent           string `url:"opponent,omitempty" mapstructure:"opponent"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
	SeasonType         string `url:"seasonType,omitempty" mapstructure:"seasonType"`
}

func (p *AdvancedGameStatsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason, SeasonBoth),
	)
}

// AdvancedGameStats fetches game level advanced team stats
func (c *Client) AdvancedGameStats(ctx context.Context, p *AdvancedGameStatsParams) (*Response, error) {
	if p == nil {
		p = &AdvancedGameStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, advancedGameStatsEndpoint, p, nil)
}

// StatCategories fetches the team stat category names
func (c *Client) StatCategories(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, statCategoriesEndpoint, nil, flattenStatCategories)
}

// flattenStatCategories turns the plain string list into a one column table
func flattenStatCategories(body []byte) (*table.Table, error) {
	v, err := table.Parse(body)
	if err != nil {
		return nil, err
	}
	list, _ := v.([]any)

	t := table.New("category")
	for _, item := range list {
		t.AppendRow(table.Row{"category": item})
	}
	return t, nil
}
