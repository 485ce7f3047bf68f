// internal/config/config.go
//
// Runtime configuration.
// Sources, lowest precedence first: built-in defaults, an optional YAML file,
// environment variables (MASTERMIND_<KEY>, with "." replaced by "_"), and the
// command-line flags bound by the cmd package. LOG_LEVEL, DAILY_SALT and
// PALETTE_FILE are accepted without the prefix.

package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/robalobadob/mastermind/internal/game"
)

// Config holds every setting the CLI reads.
type Config struct {
	DB          string   `mapstructure:"db"`
	LogLevel    string   `mapstructure:"log_level"`
	Profile     string   `mapstructure:"profile"`
	DailySalt   string   `mapstructure:"daily_salt"`
	PaletteFile string   `mapstructure:"palette_file"`
	NoColor     bool     `mapstructure:"no_color"`
	Defaults    Defaults `mapstructure:"defaults"`
}

// Defaults are used by `new` for any game parameter not given as a flag.
type Defaults struct {
	Colors   int    `mapstructure:"colors"`
	Dots     int    `mapstructure:"dots"`
	Attempts int    `mapstructure:"attempts"`
	Mode     string `mapstructure:"mode"`
}

// Game converts the defaults into a game configuration.
func (d Defaults) Game() (game.Config, error) {
	mode, err := game.ParseMode(d.Mode)
	if err != nil {
		return game.Config{}, err
	}
	cfg := game.Config{Colors: d.Colors, Dots: d.Dots, MaxAttempts: d.Attempts, Mode: mode}
	return cfg, cfg.Validate()
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DB:        "./data/mastermind.db",
		LogLevel:  "warn",
		DailySalt: "local_dev_salt",
		Defaults: Defaults{
			Colors:   6,
			Dots:     4,
			Attempts: 10,
			Mode:     string(game.ModeHvAI),
		},
	}
}

// SetDefaults registers the built-in values on v so that every key is known
// to Unmarshal and to AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db", d.DB)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("profile", d.Profile)
	v.SetDefault("daily_salt", d.DailySalt)
	v.SetDefault("palette_file", d.PaletteFile)
	v.SetDefault("no_color", d.NoColor)

	v.SetDefault("defaults.colors", d.Defaults.Colors)
	v.SetDefault("defaults.dots", d.Defaults.Dots)
	v.SetDefault("defaults.attempts", d.Defaults.Attempts)
	v.SetDefault("defaults.mode", d.Defaults.Mode)
}

// Init prepares v: defaults, environment binding and the optional config file.
// A missing file is an error only when cfgFile was given explicitly.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("MASTERMIND")
	// e.g. MASTERMIND_DEFAULTS_COLORS for defaults.colors
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("log_level", "MASTERMIND_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("daily_salt", "MASTERMIND_DAILY_SALT", "DAILY_SALT")
	_ = v.BindEnv("palette_file", "MASTERMIND_PALETTE_FILE", "PALETTE_FILE")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}
	v.SetConfigName("mastermind")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mastermind")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}
