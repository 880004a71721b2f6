package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"

	"github.com/rs/zerolog/log"
)

var coachesEndpoint = endpoint{path: "/coaches"}

// CoachesParams filters /coaches
type CoachesParams struct {
	FirstName string `url:"firstName,omitempty" mapstructure:"firstName"`
	LastName  string `url:"lastName,omitempty" mapstructure:"lastName"`
	Team      string `url:"team,omitempty" mapstructure:"team"`
	Year      int    `url:"year,omitempty" mapstructure:"year"`
	MinYear   int    `url:"minYear,omitempty" mapstructure:"minYear"`
	MaxYear   int    `url:"maxYear,omitempty" mapstructure:"maxYear"`
}

// Validate checks the seasons and resolves a lone minYear or maxYear.
// A lone bound that matches year is dropped; without a year it becomes the year.
// A lone bound that differs from year, or year together with both bounds, is ambiguous.
func (p *CoachesParams) Validate() error {
	if err := firstErr(
		checkSeason("year", p.Year),
		checkSeason("minYear", p.MinYear),
		checkSeason("maxYear", p.MaxYear),
	); err != nil {
		return err
	}

	switch {
	case p.MinYear != 0 && p.MaxYear == 0:
		bound, err := p.collapse("minYear", p.MinYear)
		if err != nil {
			return err
		}
		p.Year, p.MinYear = bound, 0
	case p.MinYear == 0 && p.MaxYear != 0:
		bound, err := p.collapse("maxYear", p.MaxYear)
		if err != nil {
			return err
		}
		p.Year, p.MaxYear = bound, 0
	case p.MinYear != 0 && p.MaxYear != 0:
		if p.Year != 0 {
			return paramErr("year", "ambiguous: year %d is set together with minYear %d and maxYear %d", p.Year, p.MinYear, p.MaxYear)
		}
		if p.MinYear > p.MaxYear {
			return paramErr("minYear", "minYear (%d) cannot be greater than maxYear (%d)", p.MinYear, p.MaxYear)
		}
	}
	return nil
}

func (p *CoachesParams) collapse(param string, bound int) (int, error) {
	if p.Year != 0 && p.Year != bound {
		return 0, paramErr(param, "ambiguous: year is %d but %s is %d; set both minYear and maxYear for a range", p.Year, param, bound)
	}
	log.Warn().
		Str("param", param).
		Int("season", bound).
		Msg("For a single season set only year; using it as the season")
	return bound, nil
}

// Coaches fetches coaching records. The table has one row per coach season.
func (c *Client) Coaches(ctx context.Context, p *CoachesParams) (*Response, error) {
	if p == nil {
		p = &CoachesParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, coachesEndpoint, p, flattenCoaches)
}

func flattenCoaches(body []byte) (*table.Table, error) {
	coaches, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.New()
	for _, coach := range coaches {
		for _, season := range coach.Objects("seasons") {
			i := t.AppendObject(season)
			t.Set(i, "coach_first_name", coach.Get("first_name"))
			t.Set(i, "coach_last_name", coach.Get("last_name"))
			t.Set(i, "coach_hire_date", coach.Get("hire_date"))
		}
	}
	return t, nil
}
