package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type SourceConfig struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Endpoint   string `json:"endpoint"`
	ImageStyle string `json:"image_style"`
}

type Config struct {
	ServerPort       string
	UpstreamBaseURL  string
	UserAgent        string
	CacheTTL         time.Duration
	CacheMaxKeys     int
	RequestTimeout   time.Duration
	AggregateItemCap int
	DefaultLimit     int
	MaxLimit         int
	OTLPEndpoint     string
	LogLevel         string
	Sources          []SourceConfig
	SourcesFilePath  string
}

// DefaultSources are the outlets served when no sources file is present.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{ID: "cnn-news", Name: "CNN Indonesia", Endpoint: "/api/cnn-news", ImageStyle: "standard"},
		{ID: "cnbc-news", Name: "CNBC Indonesia", Endpoint: "/api/cnbc-news", ImageStyle: "standard"},
		{ID: "republika-news", Name: "Republika", Endpoint: "/api/republika-news", ImageStyle: "standard"},
		{ID: "kumparan-news", Name: "Kumparan", Endpoint: "/api/kumparan-news", ImageStyle: "kumparan"},
		{ID: "voa-news", Name: "VOA Indonesia", Endpoint: "/api/voa-news", ImageStyle: "voa"},
	}
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		UpstreamBaseURL:  getEnv("UPSTREAM_BASE_URL", "https://berita-indo-api-next.vercel.app"),
		UserAgent:        getEnv("USER_AGENT", "BeritaKita/1.0"),
		CacheTTL:         getDurationEnv("CACHE_TTL", 300*time.Second),
		CacheMaxKeys:     getIntEnv("CACHE_MAX_KEYS", 64),
		RequestTimeout:   getDurationEnv("REQUEST_TIMEOUT", 8*time.Second),
		AggregateItemCap: getIntEnv("AGGREGATE_ITEM_CAP", 8),
		DefaultLimit:     getIntEnv("DEFAULT_LIMIT", 10),
		MaxLimit:         getIntEnv("MAX_LIMIT", 100),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SourcesFilePath:  getEnv("SOURCES_FILE_PATH", "config/sources.json"),
	}
	cfg.Sources = loadSources(cfg.SourcesFilePath)
	return cfg
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func loadSources(path string) []SourceConfig {
	// If path doesn't exist, try fallback for convenience during dev/test if default was used
	if _, err := os.Stat(path); os.IsNotExist(err) && path == "config/sources.json" {
		fallback := "../config/sources.json"
		if _, err := os.Stat(fallback); err == nil {
			path = fallback
		}
	}

	file, err := os.Open(path)
	if err != nil {
		slog.Warn("Could not open sources file, using built-in sources", "path", path, "error", err)
		return DefaultSources()
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("Failed to close config file", "error", err)
		}
	}()

	var sources []SourceConfig
	if err := json.NewDecoder(file).Decode(&sources); err != nil {
		slog.Error("Error decoding sources file", "path", path, "error", err)
		return nil
	}
	return sources
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Try parsing as duration string (e.g. "1m", "60s")
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Try parsing as integer seconds
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
