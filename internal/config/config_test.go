package config_test

import (
	"testing"
	"time"

	"restopos/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Reports.TokenTTL)
	assert.Equal(t, 20, cfg.Grid.SlotsPerPage())
	assert.Equal(t, "17:30", cfg.Defaults.MorningEnd)
}

func TestFromViper_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("GRID_COLUMNS", "6")
	t.Setenv("CACHE_TTL", "30s")

	cfg := config.FromViper(viper.New())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24, cfg.Grid.SlotsPerPage())
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLocation(t *testing.T) {
	cfg := config.FromViper(viper.New())
	cfg.App.Timezone = "UTC"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.App.Timezone = "Mars/Olympus"
	assert.Equal(t, time.Local, cfg.Location())
}
