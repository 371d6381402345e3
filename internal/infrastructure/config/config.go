package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// ServerConfig drives `vault serve`.
type ServerConfig struct {
	Port        string   `env:"PORT,            default=5000"`
	Env         string   `env:"ENV,             default=development"`
	LogLevel    string   `env:"LOG_LEVEL,       default=info"`
	Store       string   `env:"VAULT_STORE,     default=mongo"`
	SeedFile    string   `env:"VAULT_SEED_FILE"`
	SeedWorkers int      `env:"SEED_WORKERS,    default=4"`
	CORSOrigins []string `env:"CORS_ORIGINS,    default=*"`

	Keys  KeyConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// SeedConfig drives `vault seed`.
type SeedConfig struct {
	Env      string `env:"ENV,          default=development"`
	LogLevel string `env:"LOG_LEVEL,    default=info"`
	Store    string `env:"VAULT_STORE,  default=mongo"`
	Workers  int    `env:"SEED_WORKERS, default=4"`

	Keys  KeyConfig
	Mongo MongoConfig
}

// TerminalConfig drives `vault terminal`.
type TerminalConfig struct {
	Endpoint string `env:"VAULT_ENDPOINT,     default=http://localhost:5000/secure-search"`
	LogFile  string `env:"VAULT_TERMINAL_LOG, default=vault-terminal.log"`
	LogLevel string `env:"LOG_LEVEL,          default=info"`
}

// KeyConfig holds the two hex-encoded vault keys.
type KeyConfig struct {
	EncryptionKeyHex string `env:"ENCRYPTION_KEY_HEX, required"`
	IndexKeyHex      string `env:"INDEX_KEY_HEX,      required"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=hackathon"`
	Collection string `env:"MONGO_COLLECTION, default=secure_vault"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED,   default=false"`
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int           `env:"REDIS_DB,        default=0"`
	CacheTTL time.Duration `env:"REDIS_CACHE_TTL, default=5m"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// LoadServer reads ServerConfig from the environment.
func LoadServer(ctx context.Context) (*ServerConfig, error) {
	return loadServer(ctx, envconfig.OsLookuper())
}

// LoadSeed reads SeedConfig from the environment.
func LoadSeed(ctx context.Context) (*SeedConfig, error) {
	return loadSeed(ctx, envconfig.OsLookuper())
}

// LoadTerminal reads TerminalConfig from the environment.
func LoadTerminal(ctx context.Context) (*TerminalConfig, error) {
	var cfg TerminalConfig
	if err := process(ctx, &cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadServer(ctx context.Context, l envconfig.Lookuper) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := process(ctx, &cfg, l); err != nil {
		return nil, err
	}
	if err := checkStore(cfg.Store); err != nil {
		return nil, err
	}
	if cfg.SeedFile != "" && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("config: VAULT_SEED_FILE requires VAULT_STORE=%s", StoreMemory)
	}
	return &cfg, nil
}

func loadSeed(ctx context.Context, l envconfig.Lookuper) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := process(ctx, &cfg, l); err != nil {
		return nil, err
	}
	if err := checkStore(cfg.Store); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func process(ctx context.Context, target any, l envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: target, Lookuper: l}); err != nil {
		return fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return nil
}

func checkStore(store string) error {
	switch store {
	case StoreMongo, StoreMemory:
		return nil
	default:
		return fmt.Errorf("config: VAULT_STORE must be %q or %q, got %q", StoreMongo, StoreMemory, store)
	}
}
