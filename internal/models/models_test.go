package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamInput_ToTeam(t *testing.T) {
	var in TeamInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 333, "school": "Alabama", "mascot": "Crimson Tide", "abbreviation": "ALA",
		"conference": "SEC", "classification": "fbs", "color": "#9e1b32", "alt_color": "#ffffff",
		"location": {"venue_id": 3657, "name": "Bryant Denny Stadium"}
	}`), &in))

	team := in.ToTeam()
	assert.Equal(t, 333, team.TeamID)
	assert.Equal(t, "Alabama", team.School)
	assert.Equal(t, "ALA", team.Abbreviation.String)
	assert.True(t, team.Conference.Valid)
	assert.False(t, team.Division.Valid, "empty division should be NULL")
	assert.Equal(t, int32(3657), team.VenueID.Int32)
	assert.True(t, team.VenueID.Valid)
}

func TestTeamInput_ToTeamWithoutLocation(t *testing.T) {
	in := TeamInput{ID: 1, School: "Nowhere State"}
	team := in.ToTeam()
	assert.False(t, team.VenueID.Valid)
	assert.False(t, team.Mascot.Valid)
}

func TestVenueInput_ToVenue(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		elevation float64
		valid     bool
	}{
		{name: "numeric elevation", body: `{"id":1,"name":"A","elevation":68.5}`, elevation: 68.5, valid: true},
		{name: "string elevation", body: `{"id":1,"name":"A","elevation":"216.3"}`, elevation: 216.3, valid: true},
		{name: "blank elevation", body: `{"id":1,"name":"A","elevation":""}`},
		{name: "missing elevation", body: `{"id":1,"name":"A"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in VenueInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			v := in.ToVenue()
			assert.Equal(t, tt.valid, v.Elevation.Valid)
			assert.InDelta(t, tt.elevation, v.Elevation.Float64, 0.0001)
		})
	}
}

func TestVenueInput_Location(t *testing.T) {
	var in VenueInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 3657, "name": "Bryant Denny Stadium", "capacity": 101821, "grass": true, "dome": false,
		"location": {"x": 33.2083, "y": -87.5504}, "year_constructed": 1929, "country_code": "US"
	}`), &in))

	v := in.ToVenue()
	assert.Equal(t, 33.2083, v.Latitude.Float64)
	assert.Equal(t, -87.5504, v.Longitude.Float64)
	assert.Equal(t, int32(101821), v.Capacity.Int32)
	assert.True(t, v.Grass.Bool)
	assert.True(t, v.Dome.Valid)
	assert.False(t, v.Dome.Bool)
	assert.Equal(t, int32(1929), v.YearConstructed.Int32)
	assert.Equal(t, "US", v.CountryCode.String)
}

func TestConferenceInput_ShortName(t *testing.T) {
	camel := ConferenceInput{ID: 8, Name: "Southeastern Conference", ShortName: "SEC"}
	snake := ConferenceInput{ID: 8, Name: "Southeastern Conference", ShortNameAlt: "SEC"}

	assert.Equal(t, "SEC", camel.ToConference().ShortName.String)
	assert.Equal(t, "SEC", snake.ToConference().ShortName.String)
	assert.False(t, (&ConferenceInput{ID: 1, Name: "X"}).ToConference().ShortName.Valid)
}

func TestGameInput_ToGame(t *testing.T) {
	var in GameInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 401520281, "season": 2023, "week": 1, "seasonType": "regular",
		"startDate": "2023-09-02T23:00:00.000Z", "completed": true, "neutralSite": false,
		"conferenceGame": false, "attendance": 100077, "venueId": 3657,
		"homeId": 333, "homeTeam": "Alabama", "homeConference": "SEC", "homePoints": 56,
		"homeLineScores": [14, 14, 21, 7],
		"awayId": 2393, "awayTeam": "Middle Tennessee", "awayPoints": 7
	}`), &in))

	g := in.ToGame()
	assert.Equal(t, 401520281, g.GameID)
	assert.Equal(t, StatusCompleted, g.Status)
	assert.True(t, g.IsFinal())
	assert.Equal(t, time.Date(2023, 9, 2, 23, 0, 0, 0, time.UTC), g.StartDate)
	assert.Equal(t, []int32{14, 14, 21, 7}, g.HomeLineScores)
	assert.Nil(t, g.AwayLineScores)
	assert.Equal(t, int32(56), g.HomePoints.Int32)
	assert.False(t, g.AwayConference.Valid)
	assert.Equal(t, int32(2393), g.AwayTeamID.Int32)
}

func TestGameInput_ScheduledGame(t *testing.T) {
	in := GameInput{ID: 1, Season: 2024, StartDate: "not a date"}
	g := in.ToGame()
	assert.True(t, g.IsScheduled())
	assert.True(t, g.StartDate.IsZero())
	assert.False(t, g.HomePoints.Valid)
}

func TestScoreboardGameInput_ToScoreUpdate(t *testing.T) {
	var in ScoreboardGameInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 401628374, "status": "in_progress", "period": 3, "clock": "07:12",
		"homeTeam": {"id": 333, "name": "Alabama", "points": 24, "lineScores": [7, 10, 7]},
		"awayTeam": {"id": 61, "name": "Georgia", "points": 17, "lineScores": [0, 10, 7]}
	}`), &in))

	u := in.ToScoreUpdate()
	assert.True(t, u.IsActive())
	assert.Equal(t, int32(3), u.Period.Int32)
	assert.Equal(t, "07:12", u.Clock.String)
	assert.Equal(t, int32(24), u.HomePoints.Int32)
	assert.Equal(t, []int32{0, 10, 7}, u.AwayLineScores)

	blank := (&ScoreboardGameInput{ID: 2}).ToScoreUpdate()
	assert.Equal(t, StatusScheduled, blank.Status)
	assert.False(t, blank.Clock.Valid)
}

func TestRatingInputs(t *testing.T) {
	raw := json.RawMessage(`{}`)

	var sp SPRatingInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"year": 2023, "team": "Michigan", "conference": "Big Ten", "rating": 34.1, "ranking": 1,
		"offense": {"rating": 38.4}, "defense": {"rating": 4.3}, "specialTeams": {"rating": 0.1}
	}`), &sp))
	r := sp.ToTeamRating(raw)
	assert.Equal(t, SystemSP, r.System)
	assert.Equal(t, 0, r.Week)
	assert.Equal(t, 34.1, r.Rating.Float64)
	assert.Equal(t, int32(1), r.Ranking.Int32)
	assert.Equal(t, 4.3, r.Defense.Float64)
	assert.Equal(t, 0.1, r.SpecialTeams.Float64)
	assert.False(t, sp.IsNationalAverage())
	assert.True(t, (&SPRatingInput{Team: "nationalAverages"}).IsNationalAverage())

	elo := EloRatingInput{Year: 2023, Team: "Georgia", Elo: ptr(2010.0)}
	r = elo.ToTeamRating(5, raw)
	assert.Equal(t, SystemElo, r.System)
	assert.Equal(t, 5, r.Week)
	assert.Equal(t, 2010.0, r.Rating.Float64)
	assert.False(t, r.Conference.Valid)

	fpi := FPIRatingInput{
		Year: 2023, Team: "Texas", FPI: ptr(22.5),
		ResumeRanks:  &FPIResumeRanks{FPI: ptr(3)},
		Efficiencies: &FPIEfficiencies{Offense: ptr(80.2), Defense: ptr(75.0)},
	}
	r = fpi.ToTeamRating(raw)
	assert.Equal(t, int32(3), r.Ranking.Int32)
	assert.Equal(t, 80.2, r.Offense.Float64)
	assert.False(t, r.SpecialTeams.Valid)

	srs := SRSRatingInput{Year: 2023, Team: "Oregon", Conference: "Pac-12", Rating: ptr(20.1)}
	r = srs.ToTeamRating(raw)
	assert.Equal(t, SystemSRS, r.System)
	assert.Equal(t, "Pac-12", r.Conference.String)
	assert.False(t, r.Ranking.Valid)
}

func ptr[T any](v T) *T { return &v }
