package service

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the JSON document the service boots from: a store URL, an
// HTTP bind address, and an opaque passthrough map of chat front-end
// credentials (out of core scope; see spec.md §4.5).
type Config struct {
	Store               string            `json:"store"`
	HTTPAddr            string            `json:"http_addr"`
	FrontEndCredentials map[string]string `json:"front_end_credentials"`
}

// LoadConfig reads and decodes the config document at path. Unknown
// top-level fields are ignored; a missing "store" is a fatal error for
// the caller to report (mirroring the teacher's
// validateProductionRuntime startup checks).
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Store == "" {
		return Config{}, fmt.Errorf("config: \"store\" is required")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	return cfg, nil
}
