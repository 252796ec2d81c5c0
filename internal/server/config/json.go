package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ablinov/lifevault/internal/flagx"
)

// jsonConfig is the file representation of Config. Durations are given in
// seconds.
type jsonConfig struct {
	EndpointAddrHTTP        *string `json:"endpoint_addr_http"`
	DatabaseDSN             *string `json:"database_dsn"`
	SecretKey               *string `json:"secret_key"`
	AccessTokenValiditySecs *int    `json:"access_token_validity_seconds"`
	ImportTimeoutSecs       *int    `json:"import_timeout_seconds"`
	MaxDocumentBytes        *int64  `json:"max_document_bytes"`
}

// parseJson overlays values from the config file named by -c/-config, if
// any. A missing flag is not an error; a named but unreadable file is.
func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if jc.EndpointAddrHTTP != nil {
		cfg.EndpointAddrHTTP = *jc.EndpointAddrHTTP
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenValiditySecs != nil {
		cfg.AccessTokenValidityDuration = time.Duration(*jc.AccessTokenValiditySecs) * time.Second
	}
	if jc.ImportTimeoutSecs != nil {
		cfg.ImportTimeout = time.Duration(*jc.ImportTimeoutSecs) * time.Second
	}
	if jc.MaxDocumentBytes != nil {
		cfg.MaxDocumentBytes = *jc.MaxDocumentBytes
	}

	return nil
}
