// Package config loads runtime settings from a YAML file and BREACH_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Opponent OpponentConfig `mapstructure:"opponent"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GameConfig controls how games are dealt.
type GameConfig struct {
	Seed     int64  `mapstructure:"seed"`      // 0 = time based
	DeckFile string `mapstructure:"deck_file"` // empty = built-in master deck
	DeckName string `mapstructure:"deck_name"` // empty = first deck in DeckFile
	MaxTurns int    `mapstructure:"max_turns"`
}

// OpponentConfig controls the scripted side.
type OpponentConfig struct {
	Side        string        `mapstructure:"side"`
	PacingDelay time.Duration `mapstructure:"pacing_delay"`
	Seed        int64         `mapstructure:"seed"`
}

// LoggingConfig controls operational and gameplay logging.
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"`
	ActionLogSize int    `mapstructure:"action_log_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.deck_file", "")
	v.SetDefault("game.deck_name", "")
	v.SetDefault("game.max_turns", 200)

	v.SetDefault("opponent.side", "A")
	v.SetDefault("opponent.pacing_delay", 1500*time.Millisecond)
	v.SetDefault("opponent.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.action_log_size", 20)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults always validate.
		panic(err)
	}
	return cfg
}

// Load reads path (optional) on top of the defaults, then applies
// environment overrides such as BREACH_OPPONENT_SIDE=B.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToUpper(c.Opponent.Side) {
	case "A", "B":
	default:
		return fmt.Errorf("opponent.side must be A or B, got %q", c.Opponent.Side)
	}
	if c.Opponent.PacingDelay < 0 {
		return errors.New("opponent.pacing_delay must be >= 0")
	}
	if c.Game.MaxTurns < 0 {
		return errors.New("game.max_turns must be >= 0")
	}
	if c.Game.DeckName != "" && c.Game.DeckFile == "" {
		return errors.New("game.deck_name requires game.deck_file")
	}
	if c.Logging.ActionLogSize < 0 {
		return errors.New("logging.action_log_size must be >= 0")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
