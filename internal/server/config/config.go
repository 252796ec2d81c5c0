// Package config assembles server configuration from defaults, an optional
// JSON file and command-line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"time"
)

// Config holds everything the server needs to run.
type Config struct {
	// EndpointAddrHTTP is the listen address of the HTTP API.
	EndpointAddrHTTP string

	// DatabaseDSN is the postgres connection string.
	DatabaseDSN string

	// SecretKey signs access tokens.
	SecretKey string

	// AccessTokenValidityDuration bounds the lifetime of issued tokens.
	AccessTokenValidityDuration time.Duration

	// ImportTimeout caps one import run, lock wait excluded.
	ImportTimeout time.Duration

	// MaxDocumentBytes caps the size of an uploaded backup document.
	MaxDocumentBytes int64
}

func loadDefaults() *Config {
	return &Config{
		EndpointAddrHTTP:            ":8080",
		AccessTokenValidityDuration: 24 * time.Hour,
		ImportTimeout:               2 * time.Minute,
		MaxDocumentBytes:            10 << 20,
	}
}

// LoadServerConfig builds the effective configuration.
func LoadServerConfig() (*Config, error) {
	cfg := loadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if cfg.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is not set")
	}

	return cfg, nil
}
