// Package config resolves the exporter's settings from the environment,
// an optional dotenv file, and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application name.
	AppName = "asana2csv"

	// DefaultEnvFile is the dotenv file read when no other is given.
	DefaultEnvFile = ".env"

	// DefaultFileRoot is the fixed prefix of every output file name.
	DefaultFileRoot = "asana_tasks"

	// DefaultOutDir is the output directory when none is configured.
	DefaultOutDir = "."

	// DefaultBaseURL is the Asana API root.
	DefaultBaseURL = "https://app.asana.com/api/1.0"

	// DefaultPageSize is the number of records requested per page.
	DefaultPageSize = 100

	// MaxPageSize is the largest page the API accepts.
	MaxPageSize = 100

	// S3Scheme prefixes an output directory that lives in an S3 bucket.
	S3Scheme = "s3://"
)

// Environment variable names.
const (
	EnvAccessToken   = "ASANA_ACCESS_TOKEN"
	EnvOutDir        = "ASANA_OUT_DIR"
	EnvFileRoot      = "ASANA_FILE_ROOT"
	EnvPageSize      = "ASANA_PAGE_SIZE"
	EnvBaseURL       = "ASANA_BASE_URL"
	EnvLogFormat     = "ASANA_LOG_FORMAT"
	EnvS3Endpoint    = "S3_ENDPOINT"
	EnvS3Region      = "S3_REGION"
	EnvS3AccessKeyID = "S3_ACCESS_KEY_ID"
	EnvS3SecretKey   = "S3_SECRET_ACCESS_KEY"
)

const (
	defaultS3Region  = "us-east-1"
	defaultLogFormat = "text"
)

// ErrNoAccessToken is returned by Validate when no token is configured.
var ErrNoAccessToken = errors.New("access token not configured (set " + EnvAccessToken + ")")

// Config holds the settings of one export run.
type Config struct {
	// AccessToken is the Asana personal access token.
	AccessToken string

	// BaseURL is the API root.
	BaseURL string

	// OutDir is a local directory or an s3://bucket/prefix location.
	OutDir string

	// FileRoot is the prefix of the output file name.
	FileRoot string

	// PageSize is the number of records requested per page.
	PageSize int

	// LogFormat selects the debug log output: "text" or "otel".
	LogFormat string

	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// Default returns a Config holding only the built-in defaults.
func Default() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		OutDir:    DefaultOutDir,
		FileRoot:  DefaultFileRoot,
		PageSize:  DefaultPageSize,
		LogFormat: defaultLogFormat,
		S3Region:  defaultS3Region,
	}
}

// Load reads envFile into the process environment (variables that are
// already set win; a missing file is ignored) and builds a Config from it.
// If envFile is empty, DefaultEnvFile is used.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to defaults.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.AccessToken = os.Getenv(EnvAccessToken)
	cfg.BaseURL = GetEnvOrDefault(EnvBaseURL, cfg.BaseURL)
	cfg.OutDir = GetEnvOrDefault(EnvOutDir, cfg.OutDir)
	cfg.FileRoot = GetEnvOrDefault(EnvFileRoot, cfg.FileRoot)
	cfg.LogFormat = strings.ToLower(GetEnvOrDefault(EnvLogFormat, cfg.LogFormat))
	cfg.S3Endpoint = os.Getenv(EnvS3Endpoint)
	cfg.S3Region = GetEnvOrDefault(EnvS3Region, cfg.S3Region)
	cfg.S3AccessKeyID = os.Getenv(EnvS3AccessKeyID)
	cfg.S3SecretAccessKey = os.Getenv(EnvS3SecretKey)

	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxPageSize {
			return nil, fmt.Errorf("invalid %s: %q (must be 1-%d)", EnvPageSize, v, MaxPageSize)
		}
		cfg.PageSize = n
	}

	switch cfg.LogFormat {
	case "text", "otel":
	default:
		return nil, fmt.Errorf("invalid %s: %q (must be text or otel)", EnvLogFormat, cfg.LogFormat)
	}

	return cfg, nil
}

// GetEnvOrDefault returns environment variable value or default if not set.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate reports settings that make an export impossible.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrNoAccessToken
	}
	return nil
}

// FileName returns the output file name for a workspace on a given day:
// <root>_<workspace>_<YYYY-MM-DD>.csv
func (c *Config) FileName(workspace string, day time.Time) string {
	return strings.Join([]string{c.FileRoot, workspace, day.Format(time.DateOnly) + ".csv"}, "_")
}

// OutputPath returns the full destination of the output file.
func (c *Config) OutputPath(workspace string, day time.Time) string {
	name := c.FileName(workspace, day)
	if c.IsS3() {
		return strings.TrimSuffix(c.OutDir, "/") + "/" + name
	}
	return filepath.Join(c.OutDir, name)
}

// IsS3 reports whether the output directory is an S3 location.
func (c *Config) IsS3() bool {
	return strings.HasPrefix(c.OutDir, S3Scheme)
}

// S3Location splits an s3://bucket/prefix output directory into bucket and prefix.
func (c *Config) S3Location() (bucket, prefix string, err error) {
	if !c.IsS3() {
		return "", "", fmt.Errorf("not an s3 location: %s", c.OutDir)
	}
	rest := strings.TrimPrefix(c.OutDir, S3Scheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %s", c.OutDir)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}
