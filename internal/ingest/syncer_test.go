package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"cfbd_v1/ingestion/internal/client"
	"cfbd_v1/ingestion/internal/models"
	"cfbd_v1/ingestion/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records everything written to it
type fakeStore struct {
	mu          sync.Mutex
	teams       map[int]*models.Team
	venues      map[int]*models.Venue
	conferences map[int]*models.Conference
	games       map[int]*models.Game
	ratings     []*models.TeamRating
	snapshots   map[string]*models.Snapshot
	scores      []*models.ScoreUpdate
	failTeam    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		teams:       make(map[int]*models.Team),
		venues:      make(map[int]*models.Venue),
		conferences: make(map[int]*models.Conference),
		games:       make(map[int]*models.Game),
		snapshots:   make(map[string]*models.Snapshot),
	}
}

type fakeTeams struct{ *fakeStore }

func (f fakeTeams) Upsert(_ context.Context, t *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.TeamID == f.failTeam {
		return fmt.Errorf("boom")
	}
	f.teams[t.TeamID] = t
	return nil
}

func (f fakeTeams) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.teams), nil
}

type fakeVenues struct{ *fakeStore }

func (f fakeVenues) Upsert(_ context.Context, v *models.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[v.VenueID] = v
	return nil
}

func (f fakeVenues) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.venues), nil
}

type fakeConferences struct{ *fakeStore }

func (f fakeConferences) Upsert(_ context.Context, c *models.Conference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conferences[c.ConferenceID] = c
	return nil
}

type fakeGames struct{ *fakeStore }

func (f fakeGames) Upsert(_ context.Context, g *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[g.GameID] = g
	return nil
}

func (f fakeGames) UpdateScore(_ context.Context, u *models.ScoreUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.games[u.GameID]; !ok {
		return fmt.Errorf("%w: game_id=%d", repository.ErrGameNotFound, u.GameID)
	}
	f.scores = append(f.scores, u)
	return nil
}

func (f fakeGames) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.games), nil
}

type fakeRatings struct{ *fakeStore }

func (f fakeRatings) StoreBatch(_ context.Context, ratings []*models.TeamRating) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings = append(f.ratings, ratings...)
	return len(ratings), nil
}

func (f fakeRatings) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ratings), nil
}

type fakeSnapshots struct{ *fakeStore }

func (f fakeSnapshots) Save(_ context.Context, s *models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[s.Endpoint+"?"+s.Query] = s
	return nil
}

func (f *fakeStore) stores() Stores {
	return Stores{
		Teams:       fakeTeams{f},
		Venues:      fakeVenues{f},
		Conferences: fakeConferences{f},
		Games:       fakeGames{f},
		Ratings:     fakeRatings{f},
		Snapshots:   fakeSnapshots{f},
	}
}

// cfbdServer serves canned payloads by path. Seasons listed in failSeasons answer 500 on /games.
func cfbdServer(t *testing.T, failSeasons ...int) *client.Client {
	t.Helper()

	payloads := map[string]string{
		"/conferences": `[{"id":8,"name":"Southeastern Conference","shortName":"SEC","abbreviation":"SEC","classification":"fbs"}]`,
		"/venues":      `[{"id":3657,"name":"Bryant Denny Stadium","capacity":101821,"elevation":"68"},{"id":"bad"}]`,
		"/teams":       `[{"id":333,"school":"Alabama","conference":"SEC","location":{"venue_id":3657}},{"id":61,"school":"Georgia","conference":"SEC"}]`,
		"/ratings/sp":  `[{"year":%[1]d,"team":"Alabama","rating":25.1,"ranking":4},{"year":%[1]d,"team":"nationalAverages","rating":0}]`,
		"/ratings/srs": `[{"year":%[1]d,"team":"Alabama","rating":20.5,"ranking":3}]`,
		"/ratings/elo": `[{"year":%[1]d,"team":"Alabama","elo":1950}]`,
		"/ratings/fpi": `[{"year":%[1]d,"team":"Alabama","fpi":21.2,"resumeRanks":{"fpi":5}}]`,
		"/scoreboard": `[
			{"id":1,"status":"in_progress","period":2,"clock":"03:00","homeTeam":{"id":333,"points":14},"awayTeam":{"id":61,"points":7}},
			{"id":2,"status":"completed","homeTeam":{"id":1,"points":30},"awayTeam":{"id":2,"points":10}},
			{"id":999,"status":"in_progress","homeTeam":{"id":5},"awayTeam":{"id":6}}
		]`,
	}
	failed := make(map[string]bool)
	for _, s := range failSeasons {
		failed[strconv.Itoa(s)] = true
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		year := r.URL.Query().Get("year")
		if r.URL.Path == "/games" {
			if failed[year] {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprintf(w, `[{"id":%[1]s1,"season":%[1]s,"week":1,"seasonType":"regular","homeTeam":"Alabama","awayTeam":"Georgia"},
				{"id":%[1]s2,"season":%[1]s,"week":16,"seasonType":"postseason","completed":true,"homeTeam":"Georgia","awayTeam":"Alabama","homePoints":24,"awayPoints":21}]`, year)
			return
		}
		body, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if year != "" {
			y, _ := strconv.Atoi(year)
			body = fmt.Sprintf(body, y)
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c, err := client.NewClient(server.URL, "test-key", 5*time.Second,
		client.WithRetries(0, time.Millisecond),
		client.WithRateLimit(1000, 100),
	)
	require.NoError(t, err)
	return c
}

func TestSyncer_RefreshStatic(t *testing.T) {
	store := newFakeStore()
	s := NewSyncer(cfbdServer(t), store.stores(), 2)

	require.NoError(t, s.RefreshStatic(context.Background()))

	require.Contains(t, store.conferences, 8)
	assert.Equal(t, "SEC", store.conferences[8].ShortName.String)

	assert.Len(t, store.venues, 1, "undecodable venue should be skipped")
	assert.Equal(t, 68.0, store.venues[3657].Elevation.Float64)

	assert.Len(t, store.teams, 2)
	assert.Equal(t, int32(3657), store.teams[333].VenueID.Int32)

	assert.Contains(t, store.snapshots, "/teams?")
	assert.Equal(t, 2, store.snapshots["/venues?"].RowCount, "snapshot counts fetched rows")
}

func TestSyncer_ItemFailureIsSkipped(t *testing.T) {
	store := newFakeStore()
	store.failTeam = 61
	s := NewSyncer(cfbdServer(t), store.stores(), 1)

	n, err := s.SyncTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotContains(t, store.teams, 61)
}

func TestSyncer_SyncGames(t *testing.T) {
	store := newFakeStore()
	s := NewSyncer(cfbdServer(t), store.stores(), 1)

	n, err := s.SyncGames(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	final := store.games[20232]
	require.NotNil(t, final)
	assert.True(t, final.IsFinal())
	assert.Equal(t, int32(24), final.HomePoints.Int32)
	assert.True(t, store.games[20231].IsScheduled())

	snap := store.snapshots["/games?seasonType=both&year=2023"]
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.RowCount)
}

func TestSyncer_SyncRatings(t *testing.T) {
	store := newFakeStore()
	s := NewSyncer(cfbdServer(t), store.stores(), 1)

	n, err := s.SyncRatings(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "national averages row should be dropped")

	bySystem := make(map[string]*models.TeamRating)
	for _, r := range store.ratings {
		bySystem[r.System] = r
		assert.Equal(t, 2023, r.Season)
		assert.NotEmpty(t, r.Raw)
	}
	assert.Equal(t, 25.1, bySystem[models.SystemSP].Rating.Float64)
	assert.Equal(t, 1950.0, bySystem[models.SystemElo].Rating.Float64)
	assert.Equal(t, int32(5), bySystem[models.SystemFPI].Ranking.Int32)
	assert.Equal(t, int32(3), bySystem[models.SystemSRS].Ranking.Int32)
}

func TestSyncer_SyncScoreboard(t *testing.T) {
	store := newFakeStore()
	store.games[1] = &models.Game{GameID: 1, Status: models.StatusScheduled}
	store.games[2] = &models.Game{GameID: 2, Status: models.StatusInProgress}
	s := NewSyncer(cfbdServer(t), store.stores(), 1)

	n, err := s.SyncScoreboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "unknown game 999 should be skipped")

	require.Len(t, store.scores, 2)
	assert.True(t, store.scores[0].IsActive())
	assert.Equal(t, int32(14), store.scores[0].HomePoints.Int32)
	assert.Equal(t, models.StatusCompleted, store.scores[1].Status)
	assert.Empty(t, store.snapshots, "live payloads are not archived")
}

func TestSyncer_Backfill(t *testing.T) {
	store := newFakeStore()
	s := NewSyncer(cfbdServer(t, 2021), store.stores(), 2)

	result, err := s.Backfill(context.Background(), 2023, 2020)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Requested)
	assert.Equal(t, []int{2020, 2022, 2023}, result.Successful)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 2021, result.Failed[0].Season)
	assert.Contains(t, result.Failed[0].Error(), "season 2021")

	assert.Len(t, store.games, 6)
	assert.Len(t, store.teams, 2, "static data is refreshed before seasons")
}

func TestSyncer_FetchFailureFailsStep(t *testing.T) {
	store := newFakeStore()
	s := NewSyncer(cfbdServer(t, 2019), store.stores(), 1)

	err := s.SyncSeason(context.Background(), 2019)
	require.Error(t, err)

	var apiErr *client.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Empty(t, store.ratings, "ratings are not synced after games fail")
}
