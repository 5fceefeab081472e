package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "kindred",
			DBName:  "kindred",
			SSLMode: "disable",
		},
		JWT: JWTConfig{
			Secret: strings.Repeat("s", 32),
		},
		Match: MatchConfig{
			MaxDistanceKm: 50,
			Limit:         20,
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db user", func(c *Config) { c.Database.User = "" }},
		{"missing db name", func(c *Config) { c.Database.DBName = "" }},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }},
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"zero max distance", func(c *Config) { c.Match.MaxDistanceKm = 0 }},
		{"negative max distance", func(c *Config) { c.Match.MaxDistanceKm = -1 }},
		{"zero match limit", func(c *Config) { c.Match.Limit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := validConfig()
	c.Database.Password = "secret"
	want := "host=localhost port=5432 user=kindred password=secret dbname=kindred sslmode=disable"
	if got := c.Database.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

func TestRedisGetAddr(t *testing.T) {
	r := RedisConfig{Host: "127.0.0.1", Port: 6379}
	if got := r.GetAddr(); got != "127.0.0.1:6379" {
		t.Errorf("GetAddr() = %q, want 127.0.0.1:6379", got)
	}
}
