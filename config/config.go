// Package config loads graphene settings from a YAML file and GRAPHENE_*
// environment variables, and opens the configured snapshot store.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kataras/golog"
	"github.com/spf13/viper"

	"github.com/adhithyan15/graphene/log"
	"github.com/adhithyan15/graphene/store"
	"github.com/adhithyan15/graphene/store/file"
	"github.com/adhithyan15/graphene/store/memory"
	"github.com/adhithyan15/graphene/store/postgres"
	"github.com/adhithyan15/graphene/store/redis"
	"github.com/adhithyan15/graphene/store/sqlite"
)

var (
	// ErrUnknownBackend is returned by OpenStore for an unrecognised store.backend.
	ErrUnknownBackend = errors.New("unknown snapshot store backend")
	// ErrUnknownLogBackend is returned by Validate for an unrecognised log.backend.
	ErrUnknownLogBackend = errors.New("unknown log backend")
)

// Logger backends accepted in log.backend.
const (
	LogBackendDefault = "default"
	LogBackendGolog   = "golog"
)

// Backend names accepted in store.backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSqlite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the full set of options.
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Store StoreConfig `mapstructure:"store"`
}

// LogConfig selects the log level ("debug", "info", "warn", "error", "none")
// and the logger implementation ("default" or "golog").
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Backend string `mapstructure:"backend"`
}

// StoreConfig selects and configures a snapshot backend.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Path    string      `mapstructure:"path"`  // file directory or sqlite database
	DSN     string      `mapstructure:"dsn"`   // postgres connection string
	Table   string      `mapstructure:"table"` // sqlite/postgres table
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the redis backend options.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Log: LogConfig{Level: "warn", Backend: LogBackendDefault},
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    "graphene-snapshots",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "graphene:",
			},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.backend", d.Log.Backend)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.table", d.Store.Table)
	v.SetDefault("store.redis.addr", d.Store.Redis.Addr)
	v.SetDefault("store.redis.password", d.Store.Redis.Password)
	v.SetDefault("store.redis.db", d.Store.Redis.DB)
	v.SetDefault("store.redis.prefix", d.Store.Redis.Prefix)
	v.SetDefault("store.redis.ttl", d.Store.Redis.TTL)
}

// Load reads path (YAML) when it is non-empty, then applies GRAPHENE_*
// environment overrides such as GRAPHENE_STORE_BACKEND and GRAPHENE_LOG_LEVEL.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("graphene")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the log level and the log and store backend names.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Backend) {
	case "", LogBackendDefault, LogBackendGolog:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogBackend, c.Log.Backend)
	}
	switch strings.ToLower(c.Store.Backend) {
	case BackendMemory, BackendFile, BackendSqlite, BackendPostgres, BackendRedis:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}
}

// Logger builds a logger at the configured level: a GologLogger for the
// golog backend, a stderr DefaultLogger otherwise.
func (c Config) Logger() log.Logger {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.LogLevelWarn
	}
	if strings.ToLower(c.Log.Backend) == LogBackendGolog {
		l := log.NewGologLogger(golog.New())
		l.SetLevel(level)
		return l
	}
	return log.NewDefaultLogger(level)
}

// OpenStore opens the configured snapshot store. The postgres backend also
// creates its table.
func (c Config) OpenStore(ctx context.Context) (store.SnapshotStore, error) {
	sc := c.Store
	switch strings.ToLower(sc.Backend) {
	case BackendMemory:
		return memory.NewMemorySnapshotStore(), nil
	case BackendFile:
		s, err := file.NewFileSnapshotStore(sc.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSqlite:
		s, err := sqlite.NewSqliteSnapshotStore(sqlite.SqliteOptions{
			Path:      sc.Path,
			TableName: sc.Table,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPostgres:
		s, err := postgres.NewPostgresSnapshotStore(ctx, postgres.PostgresOptions{
			ConnString: sc.DSN,
			TableName:  sc.Table,
		})
		if err != nil {
			return nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case BackendRedis:
		return redis.NewRedisSnapshotStore(redis.RedisOptions{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
			Prefix:   sc.Redis.Prefix,
			TTL:      sc.Redis.TTL,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, sc.Backend)
	}
}
