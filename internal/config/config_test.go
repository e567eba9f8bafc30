package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendAuto, cfg.Leaderboard.Backend)
	assert.Equal(t, "leaderboard.json", cfg.Leaderboard.Path)
	assert.Equal(t, 20, cfg.Leaderboard.BackupRetention)
	assert.Equal(t, 10, cfg.Leaderboard.TopLimit)
	assert.Equal(t, 3*time.Second, cfg.Games.Word.Cooldown)
	assert.Equal(t, int64(1), cfg.Games.Number.Min)
	assert.Equal(t, int64(100000000), cfg.Games.Number.Max)
	assert.False(t, cfg.Database.Configured())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
bot:
  token: from-file
admin:
  ids: ["111", "222"]
leaderboard:
  backend: file
games:
  number:
    min: 1
    max: 10
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Bot.Token)
	assert.Equal(t, BackendFile, cfg.Leaderboard.Backend)
	assert.Equal(t, int64(10), cfg.Games.Number.Max)
	assert.True(t, cfg.IsAdmin("111"))
	assert.False(t, cfg.IsAdmin("333"))
	assert.True(t, cfg.Database.Configured())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Database.DSN())
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("LEADERBOARD_BACKEND", "redis")
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestValidateNumberRange(t *testing.T) {
	tests := []struct {
		name    string
		min     int64
		max     int64
		wantErr bool
	}{
		{"default", 1, 100_000_000, false},
		{"single value", 5, 5, false},
		{"widest drawable", 1, math.MaxInt64, false},
		{"min above max", 10, 1, true},
		{"zero to max int", 0, math.MaxInt64, true},
		{"minus one to max int", -1, math.MaxInt64, true},
		{"full int64", math.MinInt64, math.MaxInt64, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Leaderboard: LeaderboardConfig{Backend: BackendAuto}}
			cfg.Games.Number.Min = tt.min
			cfg.Games.Number.Max = tt.max
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowlists(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.IsGuildAllowed("any"))
	assert.True(t, cfg.IsChannelAllowed("any"))

	cfg.Bot.AllowedGuilds = []string{"g1"}
	cfg.Bot.AllowedChannels = []string{"c1"}
	assert.True(t, cfg.IsGuildAllowed("g1"))
	assert.False(t, cfg.IsGuildAllowed("g2"))
	assert.True(t, cfg.IsChannelAllowed("c1"))
	assert.False(t, cfg.IsChannelAllowed("c2"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, splitList([]string{"1, 2", " 3 ", ""}))
}

func TestDSNFromFields(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())
}
