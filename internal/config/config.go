// Package config loads runtime settings from configs/config.yml and the
// environment. Environment variables win over the file; keys map to
// upper-case names with dots replaced by underscores (db.path → DB_PATH).
// The token lifetime is fixed at auth.DefaultTokenTTL and is not configurable.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// ErrMissingSecret means no token signing secret was configured.
var ErrMissingSecret = errors.New("jwt.secret (JWT_SECRET_KEY) is required")

type Config struct {
	Port   string       `mapstructure:"port"`
	Mode   string       `mapstructure:"mode"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Bcrypt BcryptConfig `mapstructure:"bcrypt"`
	DB     DBConfig     `mapstructure:"db"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Log    LogConfig    `mapstructure:"log"`
	Client ClientConfig `mapstructure:"client"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type BcryptConfig struct {
	Cost int `mapstructure:"cost"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ClientConfig points at a built front-end bundle to serve; empty disables it.
type ClientConfig struct {
	BuildDir string `mapstructure:"build_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3001")
	v.SetDefault("mode", "release")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("bcrypt.cost", 10)
	v.SetDefault("db.driver", DriverMongo)
	v.SetDefault("db.path", "app.db")
	v.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "googlebooks")
	v.SetDefault("log.level", "info")
	v.SetDefault("client.build_dir", "")
}

// Load reads config.yml from the first of paths that has one (a missing
// file is fine), overlays the environment and validates the result.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names used by existing deployments
	_ = v.BindEnv("jwt.secret", "JWT_SECRET_KEY")
	_ = v.BindEnv("mongo.uri", "MONGODB_URI")
	_ = v.BindEnv("mode", "GIN_MODE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingSecret
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("mode must be debug, release or test, got %q", c.Mode)
	}
	switch c.DB.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo.uri and mongo.database are required for the mongo driver")
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown db.driver %q (want %q or %q)", c.DB.Driver, DriverMongo, DriverSQLite)
	}
	return nil
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
