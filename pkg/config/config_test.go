package config

import (
    "os"
    "path/filepath"
    "testing"
)

const testYAML = `environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 5s
marketdata:
  base_url: http://example.com
  timeout: 10s
  snapshot_ttl: 1m
strategy:
  base_url: http://example.com/api
  timeout: 30s
  token_file: /tmp/token
explorer:
  session_ttl: 10m
  default_page_size: 20
`

func writeConfig(t *testing.T, body string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatal(err)
    }
    return path
}

func TestLoad(t *testing.T) {
    c, err := Load(writeConfig(t, testYAML))
    if err != nil {
        t.Fatal(err)
    }
    if c.Server.Port != 9090 {
        t.Fatalf("port = %d", c.Server.Port)
    }
    if c.Explorer.DefaultPageSize != 20 {
        t.Fatalf("page size = %d", c.Explorer.DefaultPageSize)
    }
}

func TestLoadRejectsMissingBaseURL(t *testing.T) {
    body := `environment: test
strategy:
  base_url: http://example.com/api
explorer:
  default_page_size: 10
`
    if _, err := Load(writeConfig(t, body)); err == nil {
        t.Fatal("expected validation error")
    }
}

func TestLoadRejectsBadPageSize(t *testing.T) {
    body := `environment: test
marketdata:
  base_url: http://example.com
strategy:
  base_url: http://example.com/api
explorer:
  default_page_size: 500
`
    if _, err := Load(writeConfig(t, body)); err == nil {
        t.Fatal("expected validation error")
    }
}

func TestLoadWithEnvOverrides(t *testing.T) {
    t.Setenv("MARKETDATA_BASE_URL", "http://override.example.com")
    t.Setenv("REDIS_ADDR", "redis.internal:6380")

    c, err := LoadWithEnv(writeConfig(t, testYAML))
    if err != nil {
        t.Fatal(err)
    }
    if c.MarketData.BaseURL != "http://override.example.com" {
        t.Fatalf("base url = %s", c.MarketData.BaseURL)
    }
    if c.Cache.Redis.Host != "redis.internal" || c.Cache.Redis.Port != 6380 {
        t.Fatalf("redis = %s:%d", c.Cache.Redis.Host, c.Cache.Redis.Port)
    }
}
