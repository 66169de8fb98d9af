package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"matmarket/internal/crypto"
)

// envPrefix namespaces every environment variable read by LoadConfig.
const envPrefix = "MATMARKET_"

// Upload backends.
const (
	BackendDir   = "dir"
	BackendMinIO = "minio"
)

// Config holds runtime wiring options for building the app. It is loaded once
// at process start and treated as read-only afterwards.
type Config struct {
	Home              string `env:"HOME"`                                     // base directory, e.g. $HOME/.matmarket
	CredentialsFile   string `env:"CREDENTIALS_FILE" envDefault:"users.json"` // relative to Home unless absolute
	ListingsFile      string `env:"LISTINGS_FILE" envDefault:"listings.json"` // relative to Home unless absolute
	UploadDir         string `env:"UPLOAD_DIR" envDefault:"uploads"`          // relative to Home unless absolute
	MaxUploads        int    `env:"MAX_UPLOADS" envDefault:"5"`               // images kept per listing
	UniqueUploadNames bool   `env:"UNIQUE_UPLOAD_NAMES" envDefault:"false"`   // prefix stored names with a UUID
	UploadBackend     string `env:"UPLOAD_BACKEND" envDefault:"dir"`          // "dir" or "minio"
	PasswordHash      string `env:"PASSWORD_HASH" envDefault:"plaintext"`     // "plaintext", "bcrypt" or "scrypt"
	BcryptCost        int    `env:"BCRYPT_COST" envDefault:"10"`              // used with PasswordHash=bcrypt
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`              // debug, info, warn, error
	HTTPAddr          string `env:"HTTP_ADDR" envDefault:":8080"`             // marketd listen address
	MaxRequestBytes   int64  `env:"MAX_REQUEST_BYTES" envDefault:"33554432"`  // marketd listing request body limit
	ServerURL         string `env:"SERVER_URL"`                               // CLI: remote marketd base URL
	MinIO             MinIO  `envPrefix:"MINIO_"`
}

// MinIO contains object storage parameters for UploadBackend=minio.
type MinIO struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"matmarket-uploads"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// LoadConfig reads Config from MATMARKET_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Resolve fills in the default home directory and validates the result.
func (c *Config) Resolve() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".matmarket")
	}
	return c.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.CredentialsFile == "":
		return errors.New("config: credentials file must be set")
	case c.ListingsFile == "":
		return errors.New("config: listings file must be set")
	case c.UploadDir == "":
		return errors.New("config: upload dir must be set")
	case c.MaxUploads < 1:
		return errors.New("config: max uploads must be at least 1")
	case c.MaxRequestBytes < 1:
		return errors.New("config: max request bytes must be positive")
	case c.PasswordHash != crypto.StrategyPlaintext && c.PasswordHash != crypto.StrategyBcrypt && c.PasswordHash != crypto.StrategyScrypt:
		return fmt.Errorf("config: unknown password hash %q", c.PasswordHash)
	}
	switch c.UploadBackend {
	case BackendDir:
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return errors.New("config: minio endpoint and bucket must be set")
		}
	default:
		return fmt.Errorf("config: unknown upload backend %q", c.UploadBackend)
	}
	return nil
}

// CredentialsPath is the credential snapshot location.
func (c Config) CredentialsPath() string { return c.under(c.CredentialsFile) }

// ListingsPath is the listing snapshot location.
func (c Config) ListingsPath() string { return c.under(c.ListingsFile) }

// UploadPath is the upload directory for the dir backend.
func (c Config) UploadPath() string { return c.under(c.UploadDir) }

func (c Config) under(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Home, p)
}
