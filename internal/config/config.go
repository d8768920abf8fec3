// Package config provides configuration management for the application.
// Configuration is loaded from a YAML file with ${ENV_VAR} expansion and
// sensible defaults for every field.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scormforge/scormforge/pkg/errors"
	"github.com/scormforge/scormforge/pkg/logger"
)

// DefaultConfigPath is the default path for the configuration file
const DefaultConfigPath = "config/scormforge.yaml"

// Config holds the full application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Generator GeneratorConfig `yaml:"generator"`
	Logging   logger.Config   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Debug       bool     `yaml:"debug"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig holds on-disk storage locations for the excluded collaborators
// (project files and media blobs)
type StorageConfig struct {
	// ProjectsDir is where course projects are persisted as JSON
	ProjectsDir string `yaml:"projects_dir"`
	// MediaDir is where media binaries and their metadata live
	MediaDir string `yaml:"media_dir"`
}

// GeneratorConfig holds tuning knobs for package generation and validation.
// The host markers and the ordering distance are empirically tuned values;
// change them only together with the validator test fixtures.
type GeneratorConfig struct {
	// ExternalVideoHosts are the URL substrings that mark a media item as an
	// externally hosted embeddable video
	ExternalVideoHosts []string `yaml:"external_video_hosts"`
	// NavRecomputeMaxDistance is the maximum character distance allowed between
	// the content-load completion point and the navigation state recompute call
	NavRecomputeMaxDistance int `yaml:"nav_recompute_max_distance"`
	// StreamChunkSize is the buffer size in bytes used when streaming media
	// files into the archive
	StreamChunkSize int `yaml:"stream_chunk_size"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  "127.0.0.1",
			Port:  8090,
			Debug: false,
		},
		Storage: StorageConfig{
			ProjectsDir: "./data/projects",
			MediaDir:    "./data/media",
		},
		Generator: GeneratorConfig{
			ExternalVideoHosts:      []string{"youtube.com", "youtu.be"},
			NavRecomputeMaxDistance: 500,
			StreamChunkSize:         64 * 1024,
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			File:       "",
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 5,
			Compress:   false,
			AccessLog:  false,
		},
	}
}

// Load loads configuration from file with environment variable support.
// Missing file is not an error; defaults are used. Environment variables can
// be referenced inside the file as ${VAR_NAME} or ${VAR_NAME:-default}.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfigNotFound, "failed to read config", err)
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, "failed to parse config", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if c.Generator.NavRecomputeMaxDistance <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "nav_recompute_max_distance must be positive")
	}
	if c.Generator.StreamChunkSize <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "stream_chunk_size must be positive")
	}
	if len(c.Generator.ExternalVideoHosts) == 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "external_video_hosts must not be empty")
	}
	return nil
}

// applyEnvOverrides applies SF_-prefixed environment variable overrides.
//   - SF_SERVER_HOST, SF_SERVER_PORT, SF_SERVER_DEBUG
//   - SF_PROJECTS_DIR, SF_MEDIA_DIR
//   - SF_LOG_LEVEL, SF_LOG_FORMAT, SF_LOG_FILE
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SF_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SF_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SF_SERVER_DEBUG"); v != "" {
		cfg.Server.Debug = v == "true" || v == "1"
	}
	if v := os.Getenv("SF_PROJECTS_DIR"); v != "" {
		cfg.Storage.ProjectsDir = v
	}
	if v := os.Getenv("SF_MEDIA_DIR"); v != "" {
		cfg.Storage.MediaDir = v
	}
	if v := os.Getenv("SF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SF_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SF_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

// expandEnvVars expands ${VAR_NAME} and ${VAR_NAME:-default} references
func expandEnvVars(content string) string {
	// Match ${VAR_NAME} patterns only (not $VAR_NAME, to leave shell-ish values alone)
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		// Support default values: ${VAR_NAME:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]

		if value := os.Getenv(varName); value != "" {
			return value
		}

		if len(parts) > 1 {
			return parts[1]
		}

		return ""
	})
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
