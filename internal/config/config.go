// Package config loads runtime settings from defaults, an optional
// kvitko.yaml, a .env file, KVITKO_* environment variables and CLI flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "KVITKO"
	configName = "kvitko"
)

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type RulesConfig struct {
	// Path to a rule table file. Empty means the built-in table.
	Path string `mapstructure:"path"`
}

type ReminderConfig struct {
	Hour   int `mapstructure:"hour"`
	Minute int `mapstructure:"minute"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// flagKeys maps flag names registered by BindFlags to config keys.
var flagKeys = map[string]string{
	"db":         "db.path",
	"rules":      "rules.path",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kvitko.db"
	}
	return filepath.Join(home, ".kvitko", "kvitko.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", defaultDBPath())
	v.SetDefault("rules.path", "")
	v.SetDefault("reminder.hour", 9)
	v.SetDefault("reminder.minute", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", "127.0.0.1:8080")
}

// BindFlags registers the global flags that override config values.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./kvitko.yaml or ~/.kvitko/kvitko.yaml)")
	fs.String("db", "", "path to the SQLite database")
	fs.String("rules", "", "path to a rule table (.json, .yaml, .toml)")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: text or json")
}

// Load builds the effective configuration. configPath may be empty to search
// the default locations; a missing file is not an error unless it was named
// explicitly. fs may be nil.
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kvitko"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("db.path is required")
	}
	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		return fmt.Errorf("reminder.hour must be in [0, 23], got %d", c.Reminder.Hour)
	}
	if c.Reminder.Minute < 0 || c.Reminder.Minute > 59 {
		return fmt.Errorf("reminder.minute must be in [0, 59], got %d", c.Reminder.Minute)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// EnsureDBDir creates the parent directory of the database file.
func (c *Config) EnsureDBDir() error {
	if c.DB.Path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(c.DB.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}
