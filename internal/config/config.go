// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Leaderboard backend selectors.
const (
	BackendAuto     = "auto"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Bot         BotConfig         `mapstructure:"bot"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Games       GamesConfig       `mapstructure:"games"`
	Dictionary  DictionaryConfig  `mapstructure:"dictionary"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Log         LogConfig         `mapstructure:"log"`
}

// BotConfig holds Discord bot configuration.
type BotConfig struct {
	Token           string   `mapstructure:"token"`
	AllowedGuilds   []string `mapstructure:"allowed_guilds"`
	AllowedChannels []string `mapstructure:"allowed_channels"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
// URL takes precedence over the individual fields when set.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// AdminConfig holds admin user configuration.
type AdminConfig struct {
	IDs []string `mapstructure:"ids"`
}

// LeaderboardConfig selects and configures the leaderboard backend.
type LeaderboardConfig struct {
	Backend         string `mapstructure:"backend"`
	Path            string `mapstructure:"path"`
	BackupDir       string `mapstructure:"backup_dir"`
	BackupRetention int    `mapstructure:"backup_retention"`
	TopLimit        int    `mapstructure:"top_limit"`
}

// GamesConfig holds game-specific configuration.
type GamesConfig struct {
	Word   WordConfig   `mapstructure:"word"`
	Number NumberConfig `mapstructure:"number"`
}

// WordConfig holds word-guess game configuration.
type WordConfig struct {
	Cooldown       time.Duration `mapstructure:"cooldown"`
	AnnounceDelay  time.Duration `mapstructure:"announce_delay"`
	NextWordDelay  time.Duration `mapstructure:"next_word_delay"`
	RestartDelay   time.Duration `mapstructure:"restart_delay"`
	Vocabulary     []string      `mapstructure:"vocabulary"`
	ExclusiveWords []string      `mapstructure:"exclusive_words"`
	Seed           int64         `mapstructure:"seed"`
}

// NumberConfig holds number-guess game configuration.
type NumberConfig struct {
	Min  int64 `mapstructure:"min"`
	Max  int64 `mapstructure:"max"`
	Seed int64 `mapstructure:"seed"`
}

// DictionaryConfig holds the remote meaning lookup configuration.
type DictionaryConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig holds the Prometheus listener configuration.
// An empty Addr disables the listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode,
	)
}

// Configured reports whether enough is set to attempt a connection.
func (d *DatabaseConfig) Configured() bool {
	return d.URL != "" || d.Password != ""
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// e.g. BOT_TOKEN, DATABASE_URL, LEADERBOARD_BACKEND
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// AutomaticEnv only covers keys viper already knows about; list
	// values set through the environment arrive as one comma-joined string.
	cfg.Admin.IDs = splitList(cfg.Admin.IDs)
	cfg.Bot.AllowedGuilds = splitList(cfg.Bot.AllowedGuilds)
	cfg.Bot.AllowedChannels = splitList(cfg.Bot.AllowedChannels)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.Leaderboard.Backend {
	case BackendAuto, BackendFile, BackendPostgres:
	default:
		return fmt.Errorf("invalid leaderboard backend %q", c.Leaderboard.Backend)
	}
	if c.Games.Number.Min > c.Games.Number.Max {
		return fmt.Errorf("games.number.min (%d) must not exceed games.number.max (%d)",
			c.Games.Number.Min, c.Games.Number.Max)
	}
	if uint64(c.Games.Number.Max)-uint64(c.Games.Number.Min) >= math.MaxInt64 {
		return fmt.Errorf("games.number range [%d, %d] is too wide",
			c.Games.Number.Min, c.Games.Number.Max)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.allowed_guilds", []string{})
	v.SetDefault("bot.allowed_channels", []string{})
	v.SetDefault("admin.ids", []string{})

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "gamebot")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "gamebot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Leaderboard defaults
	v.SetDefault("leaderboard.backend", BackendAuto)
	v.SetDefault("leaderboard.path", "leaderboard.json")
	v.SetDefault("leaderboard.backup_dir", "backups")
	v.SetDefault("leaderboard.backup_retention", 20)
	v.SetDefault("leaderboard.top_limit", 10)

	// Game defaults
	v.SetDefault("games.word.cooldown", "3s")
	v.SetDefault("games.word.announce_delay", "1s")
	v.SetDefault("games.word.next_word_delay", "1s")
	v.SetDefault("games.word.restart_delay", "3s")
	v.SetDefault("games.word.vocabulary", []string{})
	v.SetDefault("games.word.exclusive_words", []string{})
	v.SetDefault("games.word.seed", 0)
	v.SetDefault("games.number.min", 1)
	v.SetDefault("games.number.max", 100000000)
	v.SetDefault("games.number.seed", 0)

	v.SetDefault("dictionary.enabled", true)
	v.SetDefault("dictionary.url", "http://kateglo.com/api.php")
	v.SetDefault("dictionary.timeout", "5s")

	v.SetDefault("metrics.addr", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// IsAdmin checks if a user ID is in the admin list.
func (c *Config) IsAdmin(userID string) bool {
	return slices.Contains(c.Admin.IDs, userID)
}

// IsGuildAllowed checks if a guild ID is in the allowlist.
// An empty allowlist allows every guild.
func (c *Config) IsGuildAllowed(guildID string) bool {
	if len(c.Bot.AllowedGuilds) == 0 {
		return true
	}
	return slices.Contains(c.Bot.AllowedGuilds, guildID)
}

// IsChannelAllowed checks if a channel ID is in the allowlist.
// An empty allowlist allows every channel.
func (c *Config) IsChannelAllowed(channelID string) bool {
	if len(c.Bot.AllowedChannels) == 0 {
		return true
	}
	return slices.Contains(c.Bot.AllowedChannels, channelID)
}
