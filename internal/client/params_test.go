package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validator interface {
	Validate() error
}

// freezeNow pins the clock used by season validation
func freezeNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func TestValidate(t *testing.T) {
	freezeNow(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		params  validator
		wantErr string
	}{
		{name: "drives requires year", params: &DrivesParams{}, wantErr: "year is required"},
		{name: "drives season too early", params: &DrivesParams{Year: 1868}, wantErr: "outside 1869-2025"},
		{name: "drives season too late", params: &DrivesParams{Year: 2026}, wantErr: "outside 1869-2025"},
		{name: "drives next season", params: &DrivesParams{Year: 2025}},
		{name: "drives restricted season type", params: &DrivesParams{Year: 2020, SeasonType: "allstar"}, wantErr: "seasonType"},
		{name: "drives season type any case", params: &DrivesParams{Year: 2020, SeasonType: "Postseason"}},
		{name: "drives bad classification", params: &DrivesParams{Year: 2020, Classification: "d4"}, wantErr: "classification"},
		{name: "drives negative week", params: &DrivesParams{Year: 2020, Week: -1}, wantErr: "cannot be negative"},

		{name: "draft before first draft", params: &DraftPicksParams{Year: 1935}, wantErr: "outside 1936-2024"},
		{name: "draft future year", params: &DraftPicksParams{Year: 2025}, wantErr: "outside 1936-2024"},
		{name: "draft current year", params: &DraftPicksParams{Year: 2024}},

		{name: "fifth down warns only", params: &PredictedPointsParams{Down: 5, Distance: 10}},
		{name: "down zero", params: &PredictedPointsParams{Down: 0, Distance: 10}, wantErr: "down"},
		{name: "down six", params: &PredictedPointsParams{Down: 6, Distance: 10}, wantErr: "down"},
		{name: "distance 100", params: &PredictedPointsParams{Down: 1, Distance: 100}, wantErr: "100 or more"},
		{name: "distance zero", params: &PredictedPointsParams{Down: 1, Distance: 0}, wantErr: "at least 1"},

		{name: "player stats equal weeks", params: &PlayerSeasonStatsParams{Year: 2020, StartWeek: 5, EndWeek: 5}, wantErr: "single week"},
		{name: "player stats reversed weeks", params: &PlayerSeasonStatsParams{Year: 2020, StartWeek: 6, EndWeek: 5}, wantErr: "cannot be greater"},
		{name: "player stats negative week", params: &PlayerSeasonStatsParams{Year: 2020, StartWeek: -1}, wantErr: "cannot be negative"},
		{name: "player stats unknown category", params: &PlayerSeasonStatsParams{Year: 2020, Category: "tackles"}, wantErr: "category"},
		{name: "player stats category any case", params: &PlayerSeasonStatsParams{Year: 2020, Category: "Passing"}},
		{name: "player stats only start week", params: &PlayerSeasonStatsParams{Year: 2020, StartWeek: 3}},

		{name: "portal before 2017", params: &TransferPortalParams{Year: 2016}, wantErr: "outside 2017-2025"},
		{name: "portal next season", params: &TransferPortalParams{Year: 2025}},

		{name: "plays needs week", params: &PlaysParams{Year: 2020}, wantErr: "week is required"},
		{name: "games needs year or id", params: &GamesParams{Week: 1}, wantErr: "year or id"},
		{name: "games by id", params: &GamesParams{GameID: 401520281}},
		{name: "game stats needs a filter", params: &GameStatsParams{Year: 2020}, wantErr: "week, team, conference or id"},
		{name: "media type", params: &GameMediaParams{Year: 2020, MediaType: "pigeon"}, wantErr: "mediaType"},
		{name: "play stats needs one id", params: &PlayStatsParams{Week: 3}, wantErr: "year, gameId or athleteId"},
		{name: "recruit groups reversed", params: &RecruitGroupsParams{StartYear: 2020, EndYear: 2019}, wantErr: "cannot be greater"},
		{name: "recruit classification", params: &RecruitPlayersParams{Year: 2020, Classification: "College"}, wantErr: "classification"},
		{name: "matchup needs team2", params: &MatchupParams{Team1: "Ohio State"}, wantErr: "team2 is required"},
		{name: "ratings need year or team", params: &RatingsParams{Conference: "SEC"}, wantErr: "year or team"},
		{name: "player search needs a term", params: &PlayerSearchParams{SearchTerm: "  "}, wantErr: "searchTerm is required"},
		{name: "player game ppa needs week or team", params: &PlayerGamePPAParams{Year: 2020}, wantErr: "week or team"},
		{name: "team game ppa season type", params: &TeamGamePPAParams{Year: 2020, SeasonType: SeasonBoth}, wantErr: "seasonType"},
		{name: "win probability needs game", params: &WinProbabilityParams{}, wantErr: "gameId is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCoachesParams_Validate(t *testing.T) {
	freezeNow(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		params  CoachesParams
		want    CoachesParams
		wantErr bool
	}{
		{
			name:   "min year alone becomes the year",
			params: CoachesParams{MinYear: 2020},
			want:   CoachesParams{Year: 2020},
		},
		{
			name:   "max year alone becomes the year",
			params: CoachesParams{MaxYear: 2018},
			want:   CoachesParams{Year: 2018},
		},
		{
			name:   "max year equal to year is dropped",
			params: CoachesParams{Year: 2020, MaxYear: 2020},
			want:   CoachesParams{Year: 2020},
		},
		{
			name:    "min year different from year",
			params:  CoachesParams{Year: 2019, MinYear: 2020},
			wantErr: true,
		},
		{
			name:    "year with both bounds",
			params:  CoachesParams{Year: 2020, MinYear: 2018, MaxYear: 2021},
			wantErr: true,
		},
		{
			name:    "reversed bounds",
			params:  CoachesParams{MinYear: 2021, MaxYear: 2018},
			wantErr: true,
		},
		{
			name:   "range",
			params: CoachesParams{Team: "Alabama", MinYear: 2010, MaxYear: 2020},
			want:   CoachesParams{Team: "Alabama", MinYear: 2010, MaxYear: 2020},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.params
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestDefaultSeasonTypes(t *testing.T) {
	stats := &PlayerSeasonStatsParams{Year: 2020}
	require.NoError(t, stats.Validate())
	assert.Equal(t, SeasonBoth, stats.SeasonType)

	elo := &EloRatingsParams{Year: 2020}
	require.NoError(t, elo.Validate())
	assert.Equal(t, SeasonPostseason, elo.SeasonType)
}
