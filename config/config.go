// Package config handles loading and managing application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Receipt store backends.
const (
	StoreFile = "file"
	StoreS3   = "s3"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Payment gateway configuration
	Gateway GatewayConfig

	// Public URLs handed to the gateway and the browser
	Links LinksConfig

	// Receipt rendering and storage
	Receipts ReceiptsConfig

	// Path to the organization profile (YAML); empty uses built-in defaults
	OrganizationFile string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port          string
	GinMode       string // "debug", "release", or "test"
	AllowedOrigin string
}

// GatewayConfig holds iyzico credentials.
type GatewayConfig struct {
	APIKey    string
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// LinksConfig holds the callback and success page URLs.
type LinksConfig struct {
	CallbackURL string
	SuccessURL  string
}

// ReceiptsConfig selects where receipts are written and which font they use.
type ReceiptsConfig struct {
	Store    string // "file" or "s3"
	Dir      string
	FontPath string
	S3Bucket string
	S3Prefix string
	S3Region string
}

var defaults = map[string]any{
	"PORT":                "8080",
	"GIN_MODE":            "debug",
	"CORS_ALLOWED_ORIGIN": "https://sahintepesi.com.tr",
	"IYZICO_BASE_URL":     "https://sandbox-api.iyzipay.com",
	"GATEWAY_TIMEOUT":     "15s",
	"CALLBACK_URL":        "https://api.sahintepesi.com.tr/api/payment/callback",
	"SUCCESS_URL":         "https://sahintepesi.com.tr/donation-success",
	"RECEIPT_STORE":       StoreFile,
	"RECEIPTS_DIR":        "receipts",
	"RECEIPT_FONT":        "opensans.ttf",
	"RECEIPTS_S3_PREFIX":  "receipts/",
	"AWS_REGION":          "eu-central-1",
}

// Load reads the dotenv file at envFile (if present) and overlays the process
// environment on top of it.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
			log.Printf("Warning: %s not found, using process environment", envFile)
		}
	}
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("GATEWAY_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:          v.GetString("PORT"),
			GinMode:       v.GetString("GIN_MODE"),
			AllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		Gateway: GatewayConfig{
			APIKey:    v.GetString("IYZICO_API_KEY"),
			SecretKey: v.GetString("IYZICO_SECRET_KEY"),
			BaseURL:   v.GetString("IYZICO_BASE_URL"),
			Timeout:   timeout,
		},
		Links: LinksConfig{
			CallbackURL: v.GetString("CALLBACK_URL"),
			SuccessURL:  v.GetString("SUCCESS_URL"),
		},
		Receipts: ReceiptsConfig{
			Store:    strings.ToLower(v.GetString("RECEIPT_STORE")),
			Dir:      v.GetString("RECEIPTS_DIR"),
			FontPath: v.GetString("RECEIPT_FONT"),
			S3Bucket: v.GetString("RECEIPTS_S3_BUCKET"),
			S3Prefix: v.GetString("RECEIPTS_S3_PREFIX"),
			S3Region: v.GetString("AWS_REGION"),
		},
		OrganizationFile: v.GetString("ORGANIZATION_FILE"),
	}, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Gateway.APIKey == "" || c.Gateway.SecretKey == "" {
		return fmt.Errorf("IYZICO_API_KEY and IYZICO_SECRET_KEY are required")
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("IYZICO_BASE_URL is required")
	}
	switch c.Receipts.Store {
	case StoreFile:
		if c.Receipts.Dir == "" {
			return fmt.Errorf("RECEIPTS_DIR is required for the file store")
		}
	case StoreS3:
		if c.Receipts.S3Bucket == "" {
			return fmt.Errorf("RECEIPTS_S3_BUCKET is required for the s3 store")
		}
	default:
		return fmt.Errorf("unknown RECEIPT_STORE %q", c.Receipts.Store)
	}
	if c.Receipts.FontPath != "" {
		if _, err := os.Stat(c.Receipts.FontPath); err != nil {
			log.Printf("Warning: receipt font %s not readable: %v", c.Receipts.FontPath, err)
		}
	}
	return nil
}
