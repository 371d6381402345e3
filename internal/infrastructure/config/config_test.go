package config

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
)

var keys = map[string]string{
	"ENCRYPTION_KEY_HEX": "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff",
	"INDEX_KEY_HEX":      "ffeeddccbbaa99887766554433221100ffeeddccbbaa99887766554433221100",
}

func withKeys(extra map[string]string) envconfig.Lookuper {
	m := make(map[string]string, len(keys)+len(extra))
	for k, v := range keys {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return envconfig.MapLookuper(m)
}

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := loadServer(context.Background(), withKeys(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := ServerConfig{
		Port:        "5000",
		Env:         "development",
		LogLevel:    "info",
		Store:       StoreMongo,
		SeedWorkers: 4,
		CORSOrigins: []string{"*"},
		Keys:        KeyConfig{EncryptionKeyHex: keys["ENCRYPTION_KEY_HEX"], IndexKeyHex: keys["INDEX_KEY_HEX"]},
		Mongo:       MongoConfig{URI: "mongodb://localhost:27017", Database: "hackathon", Collection: "secure_vault"},
		Redis:       RedisConfig{Addr: "localhost:6379", CacheTTL: 5 * time.Minute},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development mode")
	}
}

func TestLoadServer_Overrides(t *testing.T) {
	cfg, err := loadServer(context.Background(), withKeys(map[string]string{
		"PORT":            "8081",
		"VAULT_STORE":     "memory",
		"VAULT_SEED_FILE": "records.yaml",
		"CORS_ORIGINS":    "http://a.test,http://b.test",
		"REDIS_ENABLED":   "true",
		"REDIS_CACHE_TTL": "30s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" || cfg.Store != StoreMemory || cfg.SeedFile != "records.yaml" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.CORSOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Redis.Enabled || cfg.Redis.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
}

func TestLoadServer_Errors(t *testing.T) {
	if _, err := loadServer(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatalf("expected error when keys are missing")
	}
	if _, err := loadServer(context.Background(), withKeys(map[string]string{"VAULT_STORE": "mysql"})); err == nil {
		t.Fatalf("expected error for unknown store")
	}
	if _, err := loadServer(context.Background(), withKeys(map[string]string{"VAULT_SEED_FILE": "x.yaml"})); err == nil {
		t.Fatalf("expected error for seed file with mongo store")
	}
}

func TestLoadSeed(t *testing.T) {
	cfg, err := loadSeed(context.Background(), withKeys(map[string]string{"SEED_WORKERS": "2"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workers != 2 || cfg.Store != StoreMongo || cfg.Mongo.Collection != "secure_vault" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
