package client

import "context"

// FirstDraftSeason is the first NFL draft
const FirstDraftSeason = 1936

var (
	draftTeamsEndpoint = endpoint{
		path:   "/draft/teams",
		static: true,
		rename: map[string]string{"displayName": "display_name"},
	}
	draftPositionsEndpoint = endpoint{
		path:   "/draft/positions",
		static: true,
		rename: map[string]string{"name": "position_name", "abbreviation": "position_abbreviation"},
	}
	draftPicksEndpoint = endpoint{
		path: "/draft/picks",
		rename: map[string]string{
			"collegeAthleteId":        "college_athlete_id",
			"nflAthleteId":            "nfl_athlete_id",
			"collegeId":               "college_id",
			"collegeTeam":             "college_team_name",
			"collegeConference":       "college_conference_name",
			"preDraftRanking":         "pre_draft_ranking",
			"preDraftPositionRanking": "pre_draft_position_ranking",
			"preDraftGrade":           "pre_draft_grade",
			"hometownInfo.city":       "player_hometown_city",
			"hometownInfo.state":      "player_hometown_state",
			"hometownInfo.country":    "player_hometown_country",
			"hometownInfo.latitude":   "player_hometown_latitude",
			"hometownInfo.longitude":  "player_hometown_longitude",
			"hometownInfo.countyFips": "player_hometown_county_fips",
		},
	}
)

// DraftTeams fetches NFL teams
func (c *Client) DraftTeams(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, draftTeamsEndpoint, nil, nil)
}

// DraftPositions fetches NFL draft positions
func (c *Client) DraftPositions(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, draftPositionsEndpoint, nil, nil)
}

// DraftPicksParams filters /draft/picks
type DraftPicksParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	NFLTeam    string `url:"nflTeam,omitempty" mapstructure:"nflTeam"`
	College    string `url:"college,omitempty" mapstructure:"college"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
	Position   string `url:"position,omitempty" mapstructure:"position"`
}

// Validate checks the draft year; drafts exist from 1936 through the current year
func (p *DraftPicksParams) Validate() error {
	if p.Year == 0 {
		return nil
	}
	last := now().Year()
	if p.Year < FirstDraftSeason || p.Year > last {
		return paramErr("year", "%d is outside %d-%d", p.Year, FirstDraftSeason, last)
	}
	return nil
}

// DraftPicks fetches NFL draft picks
func (c *Client) DraftPicks(ctx context.Context, p *DraftPicksParams) (*Response, error) {
	if p == nil {
		p = &DraftPicksParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, draftPicksEndpoint, p, nil)
}
