package client

import "context"

// Recruit classifications accepted by /recruiting/players
var recruitClassifications = []string{"HighSchool", "JUCO", "PrepSchool"}

var (
	recruitPlayersEndpoint = endpoint{
		path: "/recruiting/players",
		rename: map[string]string{
			"id":                     "recruit_id",
			"athleteId":              "athlete_id",
			"recruitType":            "recruit_type",
			"year":                   "season",
			"name":                   "player_name",
			"school":                 "previous_school",
			"committedTo":            "college_commit_team",
			"stateProvince":          "state_province",
			"hometownInfo.latitude":  "hometown_latitude",
			"hometownInfo.longitude": "hometown_longitude",
			"hometownInfo.fipsCode":  "hometown_fips_code",
		},
	}
	recruitTeamsEndpoint  = endpoint{path: "/recruiting/teams"}
	recruitGroupsEndpoint = endpoint{path: "/recruiting/groups"}
)

// RecruitPlayersParams filters /recruiting/players
type RecruitPlayersParams struct {
	Year           int    `url:"year,omitempty" mapstructure:"year"`
	Team           string `url:"team,omitempty" mapstructure:"team"`
	Classification string `url:"classification,omitempty" mapstructure:"classification"`
	Position       string `url:"position,omitempty" mapstructure:"position"`
	State          string `url:"state,omitempty" mapstructure:"state"`
}

func (p *RecruitPlayersParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
		checkOneOf("classification", p.Classification, recruitClassifications),
	)
}

// RecruitPlayers fetches individual recruit rankings
func (c *Client) RecruitPlayers(ctx context.Context, p *RecruitPlayersParams) (*Response, error) {
	if p == nil {
		p = &RecruitPlayersParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, recruitPlayersEndpoint, p, nil)
}

// RecruitTeamsParams filters /recruiting/teams
type RecruitTeamsParams struct {
	Year int    `url:"year,omitempty" mapstructure:"year"`
	Team string `url:"team,omitempty" mapstructure:"team"`
}

func (p *RecruitTeamsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
	)
}

// RecruitTeams fetches team recruiting class rankings
func (c *Client) RecruitTeams(ctx context.Context, p *RecruitTeamsParams) (*Response, error) {
	if p == nil {
		p = &RecruitTeamsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, recruitTeamsEndpoint, p, nil)
}

// RecruitGroupsParams filters /recruiting/groups
type RecruitGroupsParams struct {
	StartYear  int    `url:"startYear,omitempty" mapstructure:"startYear"`
	EndYear    int    `url:"endYear,omitempty" mapstructure:"endYear"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *RecruitGroupsParams) Validate() error {
	return checkRange("startYear", p.StartYear, "endYear", p.EndYear)
}

// RecruitGroups fetches recruit ratings aggregated by position group
func (c *Client) RecruitGroups(ctx context.Context, p *RecruitGroupsParams) (*Response, error) {
	if p == nil {
		p = &RecruitGroupsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, recruitGroupsEndpoint, p, nil)
}
