package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// DataConfig points at the static game data. Empty paths select the
// built-in tables and trainer roster.
type DataConfig struct {
	Path        string `mapstructure:"path"`
	PresetsPath string `mapstructure:"presets_path"`
}

type DatabaseConfig struct {
	Mode         string        `mapstructure:"mode"` // sqlite | memory | mysql
	SQLitePath   string        `mapstructure:"sqlite_path"`
	MySQLDSN     string        `mapstructure:"mysql_dsn"`
	MySQLMaxOpen int           `mapstructure:"mysql_max_open"`
	MySQLMaxIdle int           `mapstructure:"mysql_max_idle"`
	MySQLMaxLife time.Duration `mapstructure:"mysql_max_life"`
}

type CacheConfig struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	LocalGCInterval time.Duration `mapstructure:"local_gc_interval"`
	LocalPubSubBuf  int           `mapstructure:"local_pubsub_buf"`
}

type BattleConfig struct {
	MaxTurns      int  `mapstructure:"max_turns"`
	MaxConcurrent int  `mapstructure:"max_concurrent"`
	RecordBattles bool `mapstructure:"record_battles"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	// AllowedOrigins lists the WebSocket origins that are permitted.
	// An empty slice allows all origins (local development only).
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads config from the given YAML file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("data.path", "")
	v.SetDefault("data.presets_path", "")
	v.SetDefault("database.mode", "sqlite")
	v.SetDefault("database.sqlite_path", "pokebattle.db")
	v.SetDefault("database.mysql_max_open", 20)
	v.SetDefault("database.mysql_max_idle", 5)
	v.SetDefault("database.mysql_max_life", time.Hour)
	v.SetDefault("cache.local_gc_interval", time.Minute)
	v.SetDefault("cache.local_pubsub_buf", 256)
	v.SetDefault("battle.max_turns", 200)
	v.SetDefault("battle.max_concurrent", 256)
	v.SetDefault("battle.record_battles", true)
	v.SetDefault("security.rate_limit_rps", 20.0)
	v.SetDefault("security.rate_limit_burst", 40)

	if err := v.ReadInConfig(); err != nil {
		// A missing file runs on defaults; a malformed file is fatal.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
