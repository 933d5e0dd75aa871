package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for the current environment.
// The memory backend needs no database credentials; postgres does.
// JWT secrets are always required outside development.
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StorageBackend {
	case "postgres":
		if cfg.DBHost == "" {
			errors = append(errors, "DB_HOST is required for the postgres backend")
		}
		if cfg.DBName == "" {
			errors = append(errors, "DB_NAME is required for the postgres backend")
		}
		if !IsDevelopment() && cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD (or the db_password secret) is required")
		}
	case "memory":
		if cfg.CorpusPath == "" {
			errors = append(errors, "CORPUS_PATH is required for the memory backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown storage backend %q", cfg.StorageBackend))
	}

	if !IsDevelopment() && cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET (or the jwt_secret secret) is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}
