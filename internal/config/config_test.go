package config_test

import (
	"testing"
	"time"

	"setlist/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.ElasticsearchURLs)
	assert.Equal(t, "songs", cfg.SongIndex)
	assert.Equal(t, "ratings", cfg.RatingIndex)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DRIVER", "Postgres")
	v.Set("ELASTICSEARCH_URLS", "http://es1:9200, http://es2:9200,")
	v.Set("JWT_TTL", "90m")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ElasticsearchURLs)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
}

func TestFromViperRejectsBadValues(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "unsupported DATABASE_DRIVER")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("JWT_TTL", "forever")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "invalid JWT_TTL")
}
