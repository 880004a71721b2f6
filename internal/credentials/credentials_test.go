package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearer(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{name: "plain key", key: "abc123", want: "Bearer abc123"},
		{name: "already bearer", key: "Bearer abc123", want: "Bearer abc123"},
		{name: "bearer without space", key: "Bearerabc123", want: "Bearer abc123"},
		{name: "surrounding whitespace", key: "  abc123\n", want: "Bearer abc123"},
		{name: "empty", key: "  ", wantErr: ErrNoAPIKey},
		{name: "placeholder", key: PlaceholderKey, wantErr: ErrPlaceholderKey},
		{name: "prefix only", key: "Bearer", wantErr: ErrNoAPIKey},
		{name: "prefix and spaces", key: "Bearer   ", wantErr: ErrNoAPIKey},
		{name: "prefixed placeholder", key: "Bearer " + PlaceholderKey, wantErr: ErrPlaceholderKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bearer(tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := Save("Bearer secret-key", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".cfbd", "cfbd.json"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	key, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key, "Bearer prefix should not be stored")

	// Overwrite with a new key
	_, err = Save("rotated", dir)
	require.NoError(t, err)

	key, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "rotated", key)
}

func TestSave_RejectsBadKeys(t *testing.T) {
	dir := t.TempDir()

	_, err := Save("", dir)
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = Save(PlaceholderKey, dir)
	assert.ErrorIs(t, err, ErrPlaceholderKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestLoad_EmptyToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cfbd"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cfbd", "cfbd.json"), []byte(`{"cfbd_api_token": ""}`), 0o600))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestResolve_Order(t *testing.T) {
	dir := t.TempDir()
	_, err := Save("from-file", dir)
	require.NoError(t, err)

	t.Setenv(EnvAPIKey, "from-env")

	key, err := Resolve("explicit", dir)
	require.NoError(t, err)
	assert.Equal(t, "Bearer explicit", key)

	key, err = Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, "Bearer from-env", key)

	t.Setenv(EnvAPIKey, "")
	key, err = Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, "Bearer from-file", key)
}

func TestResolve_NothingFound(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := Resolve("", t.TempDir())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "abcd****wxyz", Mask("abcdEFGHwxyz"))
	assert.Equal(t, "abcd****wxyz", Mask("Bearer abcdEFGHwxyz"))
	assert.Equal(t, "***", Mask("abc"))
}
