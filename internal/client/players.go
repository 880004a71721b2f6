package client

import (
	"context"
	"slices"
	"strings"

	"cfbd_v1/ingestion/internal/table"
)

// FirstPortalSeason is the first season with transfer portal data
const FirstPortalSeason = 2017

var (
	playerSearchEndpoint = endpoint{
		path: "/player/search",
		rename: map[string]string{
			"id":                 "player_id",
			"team":               "team_name",
			"name":               "player_name",
			"firstName":          "first_name",
			"lastName":           "last_name",
			"weight":             "weight_lbs",
			"height":             "height_in",
			"jersey":             "jersey_num",
			"position":           "position_abv",
			"teamColor":          "team_color",
			"teamColorSecondary": "team_secondary_color",
		},
	}
	playerUsageEndpoint = endpoint{
		path: "/player/usage",
		rename: func() map[string]string {
			m := map[string]string{
				"id":         "player_id",
				"name":       "player_name",
				"position":   "position_abv",
				"team":       "team_name",
				"conference": "conference_name",
			}
			for split, suffix := range ppaSplits {
				if split == "all" {
					split, suffix = "overall", "overall"
				}
				m["usage."+split] = "usage_" + suffix
			}
			return m
		}(),
	}
	returningProductionEndpoint = endpoint{
		path: "/player/returning",
		rename: map[string]string{
			"team":                "team_name",
			"conference":          "conference_name",
			"totalPPA":            "returning_total_ppa",
			"totalPassingPPA":     "returning_total_passing_ppa",
			"totalReceivingPPA":   "returning_total_receiving_ppa",
			"totalRushingPPA":     "returning_total_rush_ppa",
			"percentPPA":          "returning_ppa_percent",
			"percentPassingPPA":   "returning_percent_passing_ppa",
			"percentReceivingPPA": "returning_percent_receiving_ppa",
			"percentRushingPPA":   "returning_percent_rushing_ppa",
			"usage":               "returning_usage",
			"passingUsage":        "returning_passing_usage",
			"receivingUsage":      "returning_receiving_usage",
			"rushingUsage":        "returning_rushing_usage",
		},
	}
	playerSeasonStatsEndpoint = endpoint{path: "/stats/player/season"}
	transferPortalEndpoint    = endpoint{
		path: "/player/portal",
		rename: map[string]string{
			"firstName":    "first_name",
			"lastName":     "last_name",
			"position":     "position_abv",
			"origin":       "origin_team",
			"destination":  "destination_team",
			"transferDate": "transfer_date",
		},
	}
)

// PlayerSearchParams filters /player/search
type PlayerSearchParams struct {
	SearchTerm string `url:"searchTerm,omitempty" mapstructure:"searchTerm"`
	Position   string `url:"position,omitempty" mapstructure:"position"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Year       int    `url:"year,omitempty" mapstructure:"year"`
}

func (p *PlayerSearchParams) Validate() error {
	return firstErr(
		required("searchTerm", strings.TrimSpace(p.SearchTerm) != ""),
		checkSeason("year", p.Year),
	)
}

// PlayerSearch finds players by name
func (c *Client) PlayerSearch(ctx context.Context, p *PlayerSearchParams) (*Response, error) {
	if p == nil {
		p = &PlayerSearchParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playerSearchEndpoint, p, nil)
}

// PlayerUsageParams filters /player/usage
type PlayerUsageParams struct {
	Year               int    `url:"year,omitempty" mapstructure:"year"`
	Team               string `url:"team,omitempty" mapstructure:"team"`
	Conference         string `url:"conference,omitempty" mapstructure:"conference"`
	Position           string `url:"position,omitempty" mapstructure:"position"`
	PlayerID           int    `url:"playerId,omitempty" mapstructure:"playerId"`
	ExcludeGarbageTime bool   `url:"excludeGarbageTime,omitempty" mapstructure:"excludeGarbageTime"`
}

func (p *PlayerUsageParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		checkNonNegative("playerId", p.PlayerID),
	)
}

// PlayerUsage fetches the share of plays each player was involved in
func (c *Client) PlayerUsage(ctx context.Context, p *PlayerUsageParams) (*Response, error) {
	if p == nil {
		p = &PlayerUsageParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playerUsageEndpoint, p, nil)
}

// ReturningProductionParams filters /player/returning
type ReturningProductionParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *ReturningProductionParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
	)
}

// ReturningProduction fetches the share of last season's production that returns
func (c *Client) ReturningProduction(ctx context.Context, p *ReturningProductionParams) (*Response, error) {
	if p == nil {
		p = &ReturningProductionParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, returningProductionEndpoint, p, nil)
}

// Stat categories of /stats/player/season
var statCategories = []string{
	"passing", "rushing", "receiving", "fumbles", "defensive",
	"interceptions", "punting", "kicking", "kickReturns", "puntReturns",
}

var playerIDColumns = []string{"season", "team_name", "team_conference", "player_id", "player_name"}

// playerStatColumns is the fixed column order of each category
var playerStatColumns = map[string][]string{
	"passing":       {"passing_COMP", "passing_ATT", "passing_COMP%", "passing_YDS", "passing_AVG", "passing_TD", "passing_INT"},
	"rushing":       {"rushing_CAR", "rushing_YDS", "rushing_AVG", "rushing_TD", "rushing_LONG"},
	"receiving":     {"receiving_REC", "receiving_YDS", "receiving_AVG", "receiving_TD", "receiving_LONG"},
	"fumbles":       {"fumbles_FUM", "fumbles_LOST", "fumbles_REC"},
	"defensive":     {"defensive_TOT", "defensive_SOLO", "defensive_TFL", "defensive_QB HUR", "defensive_SACKS", "defensive_PD", "defensive_TD"},
	"interceptions": {"interceptions_INT", "interceptions_YDS", "interceptions_TD"},
	"punting":       {"punting_NO", "punting_YDS", "punting_AVG", "punting_TB", "punting_In 20", "punting_LONG"},
	"kicking":       {"kicking_FGM", "kicking_FGA", "kicking_FG%", "kicking_LONG", "kicking_XPM", "kicking_XPA", "kicking_XP%"},
	"kickReturns":   {"kickReturns_NO", "kickReturns_YDS", "kickReturns_AVG", "kickReturns_TD", "kickReturns_LONG"},
	"puntReturns":   {"puntReturns_NO", "puntReturns_YDS", "puntReturns_AVG", "puntReturns_TD", "puntReturns_LONG"},
}

// statTypeAliases maps API stat types to their column stat type
var statTypeAliases = map[string]string{
	"passing_COMPLETIONS": "COMP",
}

// derivedStats are ratios the API also sends; they are recomputed from the counts instead
var derivedStats = map[string]bool{
	"passing_PCT":       true,
	"passing_YPA":       true,
	"rushing_YPC":       true,
	"receiving_YPR":     true,
	"interceptions_AVG": true,
	"punting_YPP":       true,
	"kicking_PCT":       true,
	"kicking_PTS":       true,
	"kickReturns_AVG":   true,
	"puntReturns_AVG":   true,
}

type ratio struct {
	column, num, den string
}

var playerStatRatios = []ratio{
	{"passing_COMP%", "passing_COMP", "passing_ATT"},
	{"passing_AVG", "passing_YDS", "passing_ATT"},
	{"rushing_AVG", "rushing_YDS", "rushing_CAR"},
	{"receiving_AVG", "receiving_YDS", "receiving_REC"},
	{"punting_AVG", "punting_YDS", "punting_NO"},
	{"kicking_FG%", "kicking_FGM", "kicking_FGA"},
	{"kicking_XP%", "kicking_XPM", "kicking_XPA"},
	{"kickReturns_AVG", "kickReturns_YDS", "kickReturns_NO"},
	{"puntReturns_AVG", "puntReturns_YDS", "puntReturns_NO"},
}

// PlayerSeasonStatsParams filters /stats/player/season
type PlayerSeasonStatsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
	StartWeek  int    `url:"startWeek,omitempty" mapstructure:"startWeek"`
	EndWeek    int    `url:"endWeek,omitempty" mapstructure:"endWeek"`
	SeasonType string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Category   string `url:"category,omitempty" mapstructure:"category"`
}

// Validate requires a year and checks weeks, season type and category.
// An empty season type means both.
func (p *PlayerSeasonStatsParams) Validate() error {
	if err := firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		checkWeeks(p.StartWeek, p.EndWeek),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason, SeasonBoth),
		checkOneOf("category", p.Category, statCategories),
	); err != nil {
		return err
	}
	if p.SeasonType == "" {
		p.SeasonType = SeasonBoth
	}
	return nil
}

// PlayerSeasonStats fetches season stat lines. The table has one row per player
// in a fixed column order, with missing stats set to 0 and ratios recomputed.
func (c *Client) PlayerSeasonStats(ctx context.Context, p *PlayerSeasonStatsParams) (*Response, error) {
	if p == nil {
		p = &PlayerSeasonStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	season, category := p.Year, canonicalCategory(p.Category)
	return c.fetch(ctx, playerSeasonStatsEndpoint, p, func(body []byte) (*table.Table, error) {
		return flattenPlayerSeasonStats(body, season, category)
	})
}

func canonicalCategory(category string) string {
	for _, c := range statCategories {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return ""
}

func flattenPlayerSeasonStats(body []byte, season int, category string) (*table.Table, error) {
	records, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.Pivot(records, table.PivotSpec{
		ID: []table.Field{
			{Source: "team", Column: "team_name"},
			{Source: "conference", Column: "team_conference"},
			{Source: "playerId", Column: "player_id"},
			{Source: "player", Column: "player_name"},
		},
		Column: func(o *table.Object) (string, bool) {
			col := o.String("category") + "_" + o.String("statType")
			if derivedStats[col] {
				return "", false
			}
			if alias, ok := statTypeAliases[col]; ok {
				col = o.String("category") + "_" + alias
			}
			return col, true
		},
		Value: "stat",
	})

	var statCols []string
	categories := statCategories
	if category != "" {
		categories = []string{category}
	}
	for _, cat := range categories {
		statCols = append(statCols, playerStatColumns[cat]...)
	}

	t.AddColumn("season", func(table.Row) any { return int64(season) })
	t.Fill(statCols, int64(0))
	for _, r := range playerStatRatios {
		if slices.Contains(statCols, r.column) {
			t.Ratio(r.column, r.num, r.den)
		}
	}

	order := append(slices.Clone(playerIDColumns), statCols...)
	if category == "" {
		return t.Reorder(order), nil
	}

	// Keep the id columns, the category's fixed columns and any unknown stat types it sent
	for _, col := range t.Columns {
		if strings.HasPrefix(col, category+"_") && !slices.Contains(order, col) {
			order = append(order, col)
		}
	}
	return t.Select(order...)
}

// TransferPortalParams filters /player/portal
type TransferPortalParams struct {
	Year int `url:"year,omitempty" mapstructure:"year"`
}

func (p *TransferPortalParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeasonFrom("year", p.Year, FirstPortalSeason),
	)
}

// TransferPortal fetches transfer portal entries for a season
func (c *Client) TransferPortal(ctx context.Context, p *TransferPortalParams) (*Response, error) {
	if p == nil {
		p = &TransferPortalParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, transferPortalEndpoint, p, nil)
}
