package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, GenreModeStatic, cfg.GenreMode)
	assert.Equal(t, 2000, cfg.RecommenderSize)
	assert.Equal(t, 5, cfg.RecommendLimit)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Contains(t, cfg.DatabaseURL, "mode=memory")
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "films")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/films?sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "STORE_DRIVER", "mysql"},
		{"unknown genre mode", "GENRE_MODE", "dynamic"},
		{"non numeric size", "RECOMMENDER_SIZE", "many"},
		{"zero limit", "RECOMMEND_LIMIT", "0"},
		{"non numeric port", "PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCleanPath(t *testing.T) {
	cfg := &Config{CleanDir: "out"}
	assert.Equal(t, "out/movies_clean.csv", cfg.CleanPath("movies_clean.csv"))
}
