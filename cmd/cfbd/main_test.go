package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv points the CLI at a fake API and an empty home directory
func setupEnv(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CFBD_BASE_URL", server.URL)
	t.Setenv("CFBD_API_KEY", "")
	t.Setenv("CFBD_API_KEY_DIR", "")
	t.Setenv("CFBD_MAX_RETRIES", "0")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func conferencesHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conferences", r.URL.Path)
		assert.Equal(t, "Bearer test-key-1234", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"id":8,"name":"Southeastern Conference","short_name":"SEC","abbreviation":"SEC","classification":"fbs"},
			{"id":1,"name":"Atlantic Coast Conference","short_name":"ACC","abbreviation":"ACC","classification":"fbs"}
		]`))
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"year=2023", " team = Ohio State ", "week=1", "week=2", "flag="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"year": "2023",
		"team": "Ohio State",
		"week": "2",
		"flag": "",
	}, params)

	_, err = parseParams([]string{"year"})
	assert.Error(t, err)

	_, err = parseParams([]string{"=2023"})
	assert.Error(t, err)
}

func TestGet_CSVWithFilterAndColumns(t *testing.T) {
	setupEnv(t, conferencesHandler(t))

	out, err := execute(t, "--api-key", "test-key-1234",
		"get", "conferences",
		"--format", "csv",
		"--where", "conference_id == 8",
		"--columns", "conference_name,conference_id",
	)
	require.NoError(t, err)
	assert.Equal(t, "conference_name,conference_id\nSoutheastern Conference,8\n", out)
}

func TestGet_RawWritesFile(t *testing.T) {
	setupEnv(t, conferencesHandler(t))
	path := filepath.Join(t.TempDir(), "conferences.json")

	out, err := execute(t, "--api-key", "test-key-1234", "get", "conferences", "--raw", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Southeastern Conference"`)
}

func TestGet_Errors(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown endpoint", []string{"get", "standings"}, "cfbd endpoints"},
		{"raw with where", []string{"get", "conferences", "--raw", "--where", "x > 1"}, "--raw"},
		{"bad format", []string{"get", "conferences", "--format", "xml"}, "unknown format"},
		{"bad param", []string{"get", "games", "-p", "year"}, "name=value"},
		{"missing key", []string{"get", "conferences"}, "API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestKeyCommands(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	dir := t.TempDir()

	out, err := execute(t, "--key-dir", dir, "key", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".cfbd", "cfbd.json")+"\n", out)

	_, err = execute(t, "--key-dir", dir, "key", "set", "abcd1234efgh5678")
	require.NoError(t, err)

	out, err = execute(t, "--key-dir", dir, "key", "show")
	require.NoError(t, err)
	assert.Equal(t, "abcd********5678\n", out)
}

func TestEndpointTable(t *testing.T) {
	all := endpointTable("")
	assert.Greater(t, all.Len(), 20)

	ratings := endpointTable("ratings")
	require.Positive(t, ratings.Len())
	for i := 0; i < ratings.Len(); i++ {
		name, path := ratings.Value(i, "name").(string), ratings.Value(i, "path").(string)
		assert.True(t, strings.Contains(name, "ratings") || strings.Contains(path, "ratings"), name)
	}
}

func TestGet_HelpExamples(t *testing.T) {
	payloads := map[string]string{
		"/games": `[
			{"id":401,"week":11,"homeTeam":"Alabama","homePoints":42},
			{"id":402,"week":12,"homeTeam":"Georgia","homePoints":null}
		]`,
		"/stats/season": `[{"season":2023,"team":"Alabama","conference":"SEC","statName":"totalYards","statValue":5672}]`,
		"/ratings/sp":   `[{"year":2023,"team":"Alabama","rating":25.1}]`,
	}
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	})

	for _, example := range getExamples {
		t.Run(strings.Join(example, " "), func(t *testing.T) {
			args := append([]string{"--api-key", "test-key-1234", "get"}, example...)
			_, err := execute(t, args...)
			require.NoError(t, err)
		})
	}

	out, err := execute(t, "--api-key", "test-key-1234", "get", "games", "-p", "year=2023",
		"--where", "week > 10 && homePoints > 30", "--columns", "id,homePoints", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "id,homePoints\n401,42\n", out, "the null score row is filtered out")
}

func TestCompat_WithoutAPIKey(t *testing.T) {
	swagger := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"info":{"version":"4.6.0"}}`))
	}))
	t.Cleanup(swagger.Close)

	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	t.Setenv("CFBD_SWAGGER_URL", swagger.URL)

	out, err := execute(t, "compat", "--pinned", "4.6.0")
	require.NoError(t, err)
	assert.Contains(t, out, "compatible")

	_, err = execute(t, "compat", "--pinned", "4.5.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differs from pinned")
}
