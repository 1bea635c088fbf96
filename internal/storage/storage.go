// Package storage provides the key-value backends that hold the persisted
// settings blob and the session token.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Adapter is a string key-value store. Implementations must be safe for
// concurrent use.
type Adapter interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Drivers
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverBunt   = "buntdb"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Drivers returns the supported driver names.
func Drivers() []string {
	return []string{DriverMemory, DriverFile, DriverBunt, DriverSQLite, DriverRedis}
}

// Config selects and configures a backend.
type Config struct {
	Driver string `yaml:"driver" env:"DRIVER, overwrite"`
	Path   string `yaml:"path" env:"PATH, overwrite"` // file, buntdb and sqlite

	Redis RedisConfig `yaml:"redis" env:", prefix=REDIS_"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr         string        `yaml:"addr" env:"ADDR, overwrite"`
	Password     string        `yaml:"password" env:"PASSWORD, overwrite"`
	DB           int           `yaml:"db" env:"DB, overwrite"`
	Prefix       string        `yaml:"prefix" env:"PREFIX, overwrite"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"DIAL_TIMEOUT, overwrite"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT, overwrite"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT, overwrite"`
}

// Validate checks that the selected driver has what it needs.
func (c Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case DriverMemory:
		return nil
	case DriverFile, DriverBunt, DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", c.Driver)
		}
		return nil
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for driver %q", c.Driver)
		}
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q (supported: %s)", c.Driver, strings.Join(Drivers(), ", "))
	}
}

// Open creates the backend selected by cfg.
func Open(ctx context.Context, cfg Config) (Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.Path)
	case DriverBunt:
		return NewBunt(cfg.Path)
	case DriverSQLite:
		return NewSQLite(ctx, cfg.Path)
	default:
		return NewRedis(ctx, cfg.Redis)
	}
}
