package client

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Endpoint describes one API call by name so it can be invoked from string parameters
type Endpoint struct {
	Name    string
	Path    string
	Summary string
	Params  []string
	Live    bool

	call func(ctx context.Context, c *Client, params map[string]string) (*Response, error)
}

// Call decodes params into the endpoint's parameter struct and performs the request.
// Values are converted to the field types; unknown parameter names are rejected.
func (e Endpoint) Call(ctx context.Context, c *Client, params map[string]string) (*Response, error) {
	return e.call(ctx, c, params)
}

// define registers an endpoint whose method takes a parameter struct
func define[P any](name, summary string, ep endpoint, method func(*Client, context.Context, *P) (*Response, error)) Endpoint {
	return Endpoint{
		Name:    name,
		Path:    ep.path,
		Summary: summary,
		Params:  paramNames(reflect.TypeOf((*P)(nil)).Elem()),
		Live:    ep.live,
		call: func(ctx context.Context, c *Client, params map[string]string) (*Response, error) {
			p := new(P)
			if err := decodeParams(params, p); err != nil {
				return nil, err
			}
			return method(c, ctx, p)
		},
	}
}

// plain registers an endpoint that takes no parameters
func plain(name, summary string, ep endpoint, method func(*Client, context.Context) (*Response, error)) Endpoint {
	return Endpoint{
		Name:    name,
		Path:    ep.path,
		Summary: summary,
		call: func(ctx context.Context, c *Client, params map[string]string) (*Response, error) {
			if len(params) > 0 {
				keys := make([]string, 0, len(params))
				for k := range params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				return nil, paramErr(strings.Join(keys, ", "), "%s takes no parameters", name)
			}
			return method(c, ctx)
		},
	}
}

func decodeParams(params map[string]string, out any) error {
	input := make(map[string]any, len(params))
	for k, v := range params {
		input[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return &ParamError{Param: "parameters", Reason: err.Error()}
	}
	return nil
}

// paramNames lists the query names of a parameter struct in field order
func paramNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("url")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

var registry = []Endpoint{
	define("betting-lines", "Betting lines per game and provider", bettingLinesEndpoint, (*Client).BettingLines),

	define("coaches", "Coaching records by season", coachesEndpoint, (*Client).Coaches),

	plain("conferences", "Conferences", conferencesEndpoint, (*Client).Conferences),

	plain("draft-teams", "NFL teams", draftTeamsEndpoint, (*Client).DraftTeams),
	plain("draft-positions", "NFL draft positions", draftPositionsEndpoint, (*Client).DraftPositions),
	define("draft-picks", "NFL draft picks", draftPicksEndpoint, (*Client).DraftPicks),

	define("drives", "Drive data", drivesEndpoint, (*Client).Drives),

	define("games", "Game results and schedules", gamesEndpoint, (*Client).Games),
	define("team-records", "Team win/loss records", recordsEndpoint, (*Client).TeamRecords),
	define("calendar", "Season calendar", calendarEndpoint, (*Client).Calendar),
	define("game-media", "Game broadcast outlets", gameMediaEndpoint, (*Client).GameMedia),
	define("player-game-stats", "Player box score stats", playerGameStatsEndpoint, (*Client).PlayerGameStats),
	define("team-game-stats", "Team box score stats", teamGameStatsEndpoint, (*Client).TeamGameStats),
	define("advanced-box-score", "Advanced box score of one game", advancedBoxScoreEndpoint, (*Client).AdvancedBoxScore),
	define("scoreboard", "Live scoreboard", scoreboardEndpoint, (*Client).Scoreboard),
	define("weather", "Game weather", weatherEndpoint, (*Client).Weather),

	define("predicted-points", "Predicted points by down and distance", predictedPointsEndpoint, (*Client).PredictedPoints),
	define("team-season-ppa", "Team season PPA", teamSeasonPPAEndpoint, (*Client).TeamSeasonPPA),
	define("team-game-ppa", "Team game PPA", teamGamePPAEndpoint, (*Client).TeamGamePPA),
	define("player-game-ppa", "Player game PPA", playerGamePPAEndpoint, (*Client).PlayerGamePPA),
	define("player-season-ppa", "Player season PPA", playerSeasonPPAEndpoint, (*Client).PlayerSeasonPPA),
	define("win-probability", "Play by play win probability", winProbabilityEndpoint, (*Client).WinProbability),
	define("pregame-win-probability", "Pregame win probability", pregameWinProbabilityEndpoint, (*Client).PregameWinProbability),
	plain("field-goal-ep", "Field goal expected points", fieldGoalEPEndpoint, (*Client).FieldGoalExpectedPoints),

	define("player-search", "Player search", playerSearchEndpoint, (*Client).PlayerSearch),
	define("player-usage", "Player usage", playerUsageEndpoint, (*Client).PlayerUsage),
	define("returning-production", "Returning production", returningProductionEndpoint, (*Client).ReturningProduction),
	define("player-season-stats", "Player season stats", playerSeasonStatsEndpoint, (*Client).PlayerSeasonStats),
	define("transfer-portal", "Transfer portal entries", transferPortalEndpoint, (*Client).TransferPortal),

	define("plays", "Play by play data", playsEndpoint, (*Client).Plays),
	plain("play-types", "Play types", playTypesEndpoint, (*Client).PlayTypes),
	define("play-stats", "Player stats per play", playStatsEndpoint, (*Client).PlayStats),
	plain("play-stat-types", "Play stat types", playStatTypesEndpoint, (*Client).PlayStatTypes),
	define("live-plays", "Live plays of a game in progress", livePlaysEndpoint, (*Client).LivePlays),

	define("rankings", "Poll rankings", rankingsEndpoint, (*Client).Rankings),

	define("sp-ratings", "S&P+ ratings", spRatingsEndpoint, (*Client).SPRatings),
	define("srs-ratings", "SRS ratings", srsRatingsEndpoint, (*Client).SRSRatings),
	define("sp-conference-ratings", "S&P+ conference ratings", spConferenceRatingsEndpoint, (*Client).SPConferenceRatings),
	define("elo-ratings", "Elo ratings", eloRatingsEndpoint, (*Client).EloRatings),
	define("fpi-ratings", "FPI ratings", fpiRatingsEndpoint, (*Client).FPIRatings),

	define("recruit-players", "Recruit rankings", recruitPlayersEndpoint, (*Client).RecruitPlayers),
	define("recruit-teams", "Team recruiting rankings", recruitTeamsEndpoint, (*Client).RecruitTeams),
	define("recruit-groups", "Recruiting by position group", recruitGroupsEndpoint, (*Client).RecruitGroups),

	define("team-season-stats", "Team season stats", teamSeasonStatsEndpoint, (*Client).TeamSeasonStats),
	define("advanced-season-stats", "Advanced team season stats", advancedSeasonStatsEndpoint, (*Client).AdvancedSeasonStats),
	define("advanced-game-stats", "Advanced team game stats", advancedGameStatsEndpoint, (*Client).AdvancedGameStats),
	plain("stat-categories", "Team stat categories", statCategoriesEndpoint, (*Client).StatCategories),

	define("teams", "Teams", teamsEndpoint, (*Client).Teams),
	define("fbs-teams", "FBS teams", fbsTeamsEndpoint, (*Client).FBSTeams),
	define("roster", "Team rosters", rosterEndpoint, (*Client).Roster),
	define("talent", "Team talent composite", talentEndpoint, (*Client).Talent),
	define("matchup", "Head to head series", matchupEndpoint, (*Client).Matchup),

	plain("venues", "Venues", venuesEndpoint, (*Client).Venues),
}

// Endpoints returns every endpoint in group order
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds an endpoint by name or API path
func Lookup(name string) (Endpoint, bool) {
	for _, e := range registry {
		if strings.EqualFold(e.Name, name) || e.Path == name {
			return e, true
		}
	}
	return Endpoint{}, false
}
