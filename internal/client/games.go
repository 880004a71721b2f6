package client

import (
	"context"
	"strconv"

	"cfbd_v1/ingestion/internal/table"
)

var (
	gamesEndpoint            = endpoint{path: "/games"}
	recordsEndpoint          = endpoint{path: "/records"}
	calendarEndpoint         = endpoint{path: "/calendar"}
	gameMediaEndpoint        = endpoint{path: "/games/media"}
	playerGameStatsEndpoint  = endpoint{path: "/games/players"}
	teamGameStatsEndpoint    = endpoint{path: "/games/teams"}
	advancedBoxScoreEndpoint = endpoint{path: "/game/box/advanced"}
	scoreboardEndpoint       = endpoint{path: "/scoreboard", live: true}
	weatherEndpoint          = endpoint{path: "/games/weather"}
)

// Media types accepted by /games/media
var mediaTypes = []string{"tv", "radio", "web", "ppv", "mobile"}

// GamesParams filters /games
type GamesParams struct {
	Year           int    `url:"year,omitempty" mapstructure:"year"`
	Week           int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType     string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Team           string `url:"team,omitempty" mapstructure:"team"`
	Home           string `url:"home,omitempty" mapstructure:"home"`
	Away           string `url:"away,omitempty" mapstructure:"away"`
	Conference     string `url:"conference,omitempty" mapstructure:"conference"`
	Classification string `url:"classification,omitempty" mapstructure:"classification"`
	GameID         int    `url:"id,omitempty" mapstructure:"id"`
}

// Validate requires a year or a game id
func (p *GamesParams) Validate() error {
	return firstErr(
		requireOne("year or id", p.Year != 0, p.GameID != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkNonNegative("id", p.GameID),
		checkSeasonType(p.SeasonType),
		checkClassification(p.Classification),
	)
}

// Games fetches game results and schedules
func (c *Client) Games(ctx context.Context, p *GamesParams) (*Response, error) {
	if p == nil {
		p = &GamesParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, gamesEndpoint, p, nil)
}

// TeamRecordsParams filters /records
type TeamRecordsParams struct {
	Year       int    `url:"year,omitempty" mapstructure:"year"`
	Team       string `url:"team,omitempty" mapstructure:"team"`
	Conference string `url:"conference,omitempty" mapstructure:"conference"`
}

// Validate requires a year or a team
func (p *TeamRecordsParams) Validate() error {
	return firstErr(
		requireOne("year or team", p.Year != 0, p.Team != ""),
		checkSeason("year", p.Year),
	)
}

// TeamRecords fetches win/loss records split by total, conference, home, away and postseason
func (c *Client) TeamRecords(ctx context.Context, p *TeamRecordsParams) (*Response, error) {
	if p == nil {
		p = &TeamRecordsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, recordsEndpoint, p, nil)
}

// CalendarParams filters /calendar
type CalendarParams struct {
	Year int `url:"year,omitempty" mapstructure:"year"`
}

func (p *CalendarParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
	)
}

// Calendar fetches the weeks of a season with their start and end dates
func (c *Client) Calendar(ctx context.Context, p *CalendarParams) (*Response, error) {
	if p == nil {
		p = &CalendarParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, calendarEndpoint, p, nil)
}

// GameMediaParams filters /games/media
type GameMediaParams struct {
	Year           int    `url:"year,omitempty" mapstructure:"year"`
	SeasonType     string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Week           int    `url:"week,omitempty" mapstructure:"week"`
	Team           string `url:"team,omitempty" mapstructure:"team"`
	Conference     string `url:"conference,omitempty" mapstructure:"conference"`
	MediaType      string `url:"mediaType,omitempty" mapstructure:"mediaType"`
	Classification string `url:"classification,omitempty" mapstructure:"classification"`
}

func (p *GameMediaParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkSeasonType(p.SeasonType),
		checkOneOf("mediaType", p.MediaType, mediaTypes),
		checkClassification(p.Classification),
	)
}

// GameMedia fetches broadcast and streaming outlets per game
func (c *Client) GameMedia(ctx context.Context, p *GameMediaParams) (*Response, error) {
	if p == nil {
		p = &GameMediaParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, gameMediaEndpoint, p, nil)
}

// GameStatsParams filters /games/players and /games/teams
type GameStatsParams struct {
	Year           int    `url:"year,omitempty" mapstructure:"year"`
	Week           int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType     string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Team           string `url:"team,omitempty" mapstructure:"team"`
	Conference     string `url:"conference,omitempty" mapstructure:"conference"`
	Category       string `url:"category,omitempty" mapstructure:"category"`
	Classification string `url:"classification,omitempty" mapstructure:"classification"`
	GameID         int    `url:"id,omitempty" mapstructure:"id"`
}

// Validate requires a year plus one of week, team, conference or game id
func (p *GameStatsParams) Validate() error {
	return firstErr(
		required("year", p.Year != 0),
		checkSeason("year", p.Year),
		requireOne("week, team, conference or id", p.Week != 0, p.Team != "", p.Conference != "", p.GameID != 0),
		checkNonNegative("week", p.Week),
		checkNonNegative("id", p.GameID),
		checkSeasonType(p.SeasonType),
		checkClassification(p.Classification),
	)
}

// PlayerGameStats fetches box score stats per player. The table has one row per
// game, team and player with a <category>_<statType> column per statistic.
func (c *Client) PlayerGameStats(ctx context.Context, p *GameStatsParams) (*Response, error) {
	if p == nil {
		p = &GameStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, playerGameStatsEndpoint, p, flattenPlayerGameStats)
}

// TeamGameStats fetches box score stats per team with one column per stat category
func (c *Client) TeamGameStats(ctx context.Context, p *GameStatsParams) (*Response, error) {
	if p == nil {
		p = &GameStatsParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, teamGameStatsEndpoint, p, flattenTeamGameStats)
}

var gameTeamColumns = []string{"game_id", "team_name", "team_conference", "home_away", "points"}

// setGameTeam fills the shared game and team columns of row i
func setGameTeam(t *table.Keyed, i int, game, team *table.Object) {
	t.Set(i, "game_id", game.Get("id"))
	t.Set(i, "team_name", firstOf(team, "team", "school"))
	t.Set(i, "team_conference", team.Get("conference"))
	t.Set(i, "home_away", team.Get("homeAway"))
	t.Set(i, "points", team.Get("points"))
}

func flattenPlayerGameStats(body []byte) (*table.Table, error) {
	games, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.NewKeyed(append(gameTeamColumns, "player_id", "player_name")...)
	for _, game := range games {
		for _, team := range game.Objects("teams") {
			for _, cat := range team.Objects("categories") {
				for _, typ := range cat.Objects("types") {
					col := cat.String("name") + "_" + typ.String("name")
					for _, ath := range typ.Objects("athletes") {
						key := game.String("id") + "\x1f" + team.String("team") + team.String("school") + "\x1f" + ath.String("id")
						i := t.Row(key, func(i int) {
							setGameTeam(t, i, game, team)
							t.Set(i, "player_id", ath.Get("id"))
							t.Set(i, "player_name", ath.Get("name"))
						})
						t.Set(i, col, table.Number(ath.Get("stat")))
					}
				}
			}
		}
	}
	return t.Table, nil
}

func flattenTeamGameStats(body []byte) (*table.Table, error) {
	games, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.NewKeyed(gameTeamColumns...)
	for _, game := range games {
		for n, team := range game.Objects("teams") {
			i := t.Row(game.String("id")+"\x1f"+strconv.Itoa(n), func(i int) {
				setGameTeam(t, i, game, team)
			})
			for _, stat := range team.Objects("stats") {
				t.Set(i, stat.String("category"), table.Number(stat.Get("stat")))
			}
		}
	}
	return t.Table, nil
}

// AdvancedBoxScoreParams selects one game for /game/box/advanced
type AdvancedBoxScoreParams struct {
	GameID int `url:"id,omitempty" mapstructure:"id"`
}

func (p *AdvancedBoxScoreParams) Validate() error {
	return firstErr(
		required("id", p.GameID != 0),
		checkNonNegative("id", p.GameID),
	)
}

// AdvancedBoxScore fetches the advanced box score of one game
func (c *Client) AdvancedBoxScore(ctx context.Context, p *AdvancedBoxScoreParams) (*Response, error) {
	if p == nil {
		p = &AdvancedBoxScoreParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, advancedBoxScoreEndpoint, p, nil)
}

// ScoreboardParams filters /scoreboard
type ScoreboardParams struct {
	Classification string `url:"classification,omitempty" mapstructure:"classification"`
	Conference     string `url:"conference,omitempty" mapstructure:"conference"`
}

func (p *ScoreboardParams) Validate() error {
	return checkClassification(p.Classification)
}

// Scoreboard fetches live scores. It is never served from the cache.
func (c *Client) Scoreboard(ctx context.Context, p *ScoreboardParams) (*Response, error) {
	if p == nil {
		p = &ScoreboardParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, scoreboardEndpoint, p, nil)
}

// WeatherParams filters /games/weather
type WeatherParams struct {
	GameID         int    `url:"gameId,omitempty" mapstructure:"gameId"`
	Year           int    `url:"year,omitempty" mapstructure:"year"`
	Week           int    `url:"week,omitempty" mapstructure:"week"`
	SeasonType     string `url:"seasonType,omitempty" mapstructure:"seasonType"`
	Team           string `url:"team,omitempty" mapstructure:"team"`
	Conference     string `url:"conference,omitempty" mapstructure:"conference"`
	Classification string `url:"classification,omitempty" mapstructure:"classification"`
}

func (p *WeatherParams) Validate() error {
	return firstErr(
		requireOne("gameId or year", p.GameID != 0, p.Year != 0),
		checkSeason("year", p.Year),
		checkNonNegative("week", p.Week),
		checkNonNegative("gameId", p.GameID),
		checkSeasonType(p.SeasonType),
		checkClassification(p.Classification),
	)
}

// Weather fetches game day weather
func (c *Client) Weather(ctx context.Context, p *WeatherParams) (*Response, error) {
	if p == nil {
		p = &WeatherParams{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, weatherEndpoint, p, nil)
}
