// Package config loads server configuration from a YAML file with
// environment variable overrides (prefix SQUALL_, dots become underscores).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Game     GameConfig     `mapstructure:"game"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

type AuthConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	BcryptCost  int           `mapstructure:"bcrypt_cost"`
}

// GameConfig carries the tunable parts of the ruleset. Board dimensions and
// starting life are fixed constants in the game package.
type GameConfig struct {
	SummonsPerTurn       int `mapstructure:"summons_per_turn"`
	SpellTrapsPerTurn    int `mapstructure:"spell_traps_per_turn"`
	HeroAbilitiesPerTurn int `mapstructure:"hero_abilities_per_turn"`
	AIMaxActions         int `mapstructure:"ai_max_actions"`
}

// CatalogConfig points at the YAML card/deck files used when the database
// has no deck for a PVE opponent.
type CatalogConfig struct {
	CardsPath string `mapstructure:"cards_path"`
	DecksPath string `mapstructure:"decks_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path. A missing file is not an error; the
// defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SQUALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("database.connect_timeout", 5*time.Second)

	// Registered empty so the SQUALL_AUTH_TOKEN_SECRET override is visible
	// to Unmarshal.
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("game.summons_per_turn", 1)
	v.SetDefault("game.spell_traps_per_turn", 1)
	v.SetDefault("game.hero_abilities_per_turn", 1)
	v.SetDefault("game.ai_max_actions", 32)

	v.SetDefault("catalog.cards_path", "data/cards.yaml")
	v.SetDefault("catalog.decks_path", "data/decks.yaml")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) validate() error {
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth.token_secret must be set")
	}
	if c.Game.SummonsPerTurn < 1 || c.Game.SpellTrapsPerTurn < 1 || c.Game.HeroAbilitiesPerTurn < 1 {
		return fmt.Errorf("game per-turn budgets must be at least 1")
	}
	return nil
}
