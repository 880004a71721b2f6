package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints_UniqueNamesAndPaths(t *testing.T) {
	names := make(map[string]bool)
	for _, e := range Endpoints() {
		assert.False(t, names[e.Name], "duplicate endpoint %s", e.Name)
		names[e.Name] = true
		assert.NotEmpty(t, e.Path)
		assert.NotEmpty(t, e.Summary)
	}
	assert.GreaterOrEqual(t, len(names), 50)
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("coaches")
	require.True(t, ok)
	assert.Equal(t, "/coaches", e.Path)
	assert.Equal(t, []string{"firstName", "lastName", "team", "year", "minYear", "maxYear"}, e.Params)

	e, ok = Lookup("/live/plays")
	require.True(t, ok)
	assert.Equal(t, "live-plays", e.Name)
	assert.True(t, e.Live)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestEndpoint_CallDecodesParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ppa/teams", r.URL.Path)
		assert.Equal(t, "2023", r.URL.Query().Get("year"))
		assert.Equal(t, "true", r.URL.Query().Get("excludeGarbageTime"))
		w.Write([]byte(`[]`))
	})

	e, ok := Lookup("team-season-ppa")
	require.True(t, ok)

	_, err := e.Call(context.Background(), c, map[string]string{"year": "2023", "excludeGarbageTime": "true"})
	require.NoError(t, err)
}

func TestEndpoint_CallRejectsBadParams(t *testing.T) {
	c := newTestClient(t, jsonHandler(`[]`, nil))

	tests := []struct {
		name     string
		endpoint string
		params   map[string]string
	}{
		{name: "unknown parameter", endpoint: "games", params: map[string]string{"year": "2023", "bogus": "1"}},
		{name: "not a number", endpoint: "games", params: map[string]string{"year": "twenty"}},
		{name: "validation", endpoint: "drives", params: map[string]string{"week": "3"}},
		{name: "parameterless endpoint", endpoint: "venues", params: map[string]string{"year": "2023"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Lookup(tt.endpoint)
			require.True(t, ok)

			_, err := e.Call(context.Background(), c, tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestCheckCompatibility(t *testing.T) {
	c := newTestClient(t, jsonHandler(`{"swagger":"2.0","info":{"title":"College Football Data API","version":"4.5.1"}}`, nil))

	got, err := c.CheckCompatibility(context.Background(), c.baseURL+"/swagger.json", "4.5.1")
	require.NoError(t, err)
	assert.True(t, got.Match)

	got, err = c.CheckCompatibility(context.Background(), c.baseURL+"/swagger.json", "4.4.0")
	require.NoError(t, err)
	assert.False(t, got.Match)
	assert.Equal(t, "4.5.1", got.Current)
}

func TestCheckCompatibility_NoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"info":{"version":"v4.5.1"}}`))
	}))
	t.Cleanup(server.Close)

	got, err := CheckCompatibility(context.Background(), nil, server.URL+"/swagger.json", "4.5.1")
	require.NoError(t, err)
	assert.True(t, got.Match)
}
