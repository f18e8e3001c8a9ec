// Package config provides YAML-based configuration with environment
// overrides, suitable for both hosted and air-gapped deployment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Partners PartnersConfig `yaml:"partners"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bindAddress"`
	BaseURL      string `yaml:"baseUrl"` // externally reachable address, used in local signed URLs
	EnableCORS   bool   `yaml:"enableCors"`
	AllowOrigins string `yaml:"allowOrigins"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
	BodyLimit    string `yaml:"bodyLimit"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	// Backend is "supabase" or "local".
	Backend       string `yaml:"backend"`
	Bucket        string `yaml:"bucket"`
	SupabaseURL   string `yaml:"supabaseUrl"`
	SupabaseKey   string `yaml:"supabaseKey"`
	DataDirectory string `yaml:"dataDirectory"`
	SigningSecret string `yaml:"signingSecret"`
}

// AuthConfig selects and configures the auth provider.
type AuthConfig struct {
	// Provider is "supabase" or "static".
	Provider string `yaml:"provider"`
	Token    string `yaml:"token"` // pre-shared token for the static provider
}

// PartnersConfig points at the channel-partner catalog.
type PartnersConfig struct {
	CatalogPath string `yaml:"catalogPath"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8080,
			BindAddress:  "0.0.0.0",
			BaseURL:      "http://localhost:8080",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 60,
			IdleTimeout:  120,
			BodyLimit:    "64M",
		},
		Storage: StorageConfig{
			Backend:       "local",
			Bucket:        "application-forms",
			DataDirectory: "./data/application-forms",
			SigningSecret: "",
		},
		Auth: AuthConfig{
			Provider: "static",
			Token:    "",
		},
		Partners: PartnersConfig{
			CatalogPath: "./data/partners.yaml",
		},
	}
}

// LoadConfig loads configuration from a YAML file, creating the default on
// first run, then applies environment overrides and resolves paths.
func LoadConfig(configPath string) (*AppConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		cfg.applyEnvironmentOverrides()
		cfg.resolvePaths(filepath.Dir(configPath))
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.resolvePaths(filepath.Dir(configPath))

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# Application Forms Service configuration\n# This file is auto-generated on first run.\n\n")
	if err := os.WriteFile(configPath, append(header, output...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides lets environment variables override file values.
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		c.Server.BaseURL = baseURL
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
	}
	if supabaseURL := os.Getenv("SUPABASE_URL"); supabaseURL != "" {
		c.Storage.Backend = "supabase"
		c.Storage.SupabaseURL = supabaseURL
	}
	if key := os.Getenv("SUPABASE_SERVICE_KEY"); key != "" {
		c.Storage.SupabaseKey = key
	}
	if secret := os.Getenv("SIGNING_SECRET"); secret != "" {
		c.Storage.SigningSecret = secret
	}
	if token := os.Getenv("AUTH_TOKEN"); token != "" {
		c.Auth.Token = token
	}
}

// resolvePaths converts relative paths to absolute based on the config file
// location.
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if c.Partners.CatalogPath != "" && !filepath.IsAbs(c.Partners.CatalogPath) {
		c.Partners.CatalogPath = filepath.Join(configDir, c.Partners.CatalogPath)
	}
}

// GetServerAddr returns the server bind address.
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates the directories the local backend needs.
func (c *AppConfig) EnsureDirectories() error {
	if c.Storage.Backend != "local" {
		return nil
	}
	if err := os.MkdirAll(c.Storage.DataDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Storage.DataDirectory, err)
	}
	return nil
}
