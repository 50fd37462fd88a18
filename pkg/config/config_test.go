package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOURCES_FILE_PATH", filepath.Join(t.TempDir(), "missing.json"))

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://berita-indo-api-next.vercel.app", cfg.UpstreamBaseURL)
	assert.Equal(t, "BeritaKita/1.0", cfg.UserAgent)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.Equal(t, 8*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8, cfg.AggregateItemCap)
	assert.Equal(t, 10, cfg.DefaultLimit)
	assert.Equal(t, 100, cfg.MaxLimit)
	assert.Equal(t, DefaultSources(), cfg.Sources)
	assert.Len(t, cfg.Sources, 5)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOURCES_FILE_PATH", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("AGGREGATE_ITEM_CAP", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, time.Minute, cfg.CacheTTL, "integer durations are seconds")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8, cfg.AggregateItemCap, "invalid ints fall back to default")
}

func TestLoad_SourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"antara-news","name":"Antara","endpoint":"/api/antara-news","image_style":"standard"}
	]`), 0o600))
	t.Setenv("SOURCES_FILE_PATH", path)

	cfg := Load()

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, SourceConfig{ID: "antara-news", Name: "Antara", Endpoint: "/api/antara-news", ImageStyle: "standard"}, cfg.Sources[0])
}

func TestLoad_BrokenSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	t.Setenv("SOURCES_FILE_PATH", path)

	assert.Empty(t, Load().Sources)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}
