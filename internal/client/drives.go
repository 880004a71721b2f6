package client

import "context"

var drivesEndpoint = endpoint{
	path: "/drives",
	rename: map[string]string{
		"offense":            "offense_team_name",
		"offense_conference": "offense_conference_name",
		"defense":            "defense_name",
		"defense_conference": "defense_conference_name",
		"id":                 "drive_id",
		"scoring":            "is_scoring_drive",
		"start_time.minutes": "start_time_minutes",
		"start_time.seconds": "start_time_seconds",
		"end_time.minutes":   "end_time_minutes",
		"end_time.seconds":   "end_time_seconds",
		"elapsed.minutes":    "elapsed_minutes",
		"elapsed.seconds":    "elapsed_seconds",
		"offenseConference":  "offense_conference_name",
		"defenseConference":  "defense_conference_name",
		"startTime.minutes":  "start_time_minutes",
		"startTime.seconds":  "start_time_seconds",
		"endTime.minutes":    "end_time_minutes",
		"endTime.seconds":    "end_time_seconds",
	},
}

// DrivesParams filters /drives
type DrivesParams struct {
	Year              int    `url:"year,omitempty" mapstructure:"year"`
	SeasonType        string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Week              int    `url:"week,omitempty" mapstructure:"week"`
	Team              string `url:"team,omitempty" mapstructure:"team"`
	Offense           string `url:"offense,omitempty" mapstructure:"offense"`
	Defense           string `url:"defense,omitempty" mapstructure:"defense"`
	Conference        string `url:"conference,omitempty" mapstructure:"conference"`
	OffenseConference string `url:"offenseConference,omitempty" mapstructure:"offenseConference"`
	DefenseConference string `url:"defenseConference,omitempty" mapstructure:"defenseConference"`
	Classification    string `url:"classification,omitempty" mapstructure:"classification"`
}

// Validate checks the drive filters; year is required
func (p *DrivesParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		checkSeasonType(p.SeasonType, SeasonRegular, SeasonPostseason, SeasonBoth),
		checkNonNegative("week", p.Week),
		checkClassification(p.Classification),
	)
}

// Drives fetches drive level data
func (c *Client) Drives(ctx context.Context, p *DrivesParams) (*Response, error) {
	if p == nil {
		p = &DrivesParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, drivesEndpoint, p, nil)
}
