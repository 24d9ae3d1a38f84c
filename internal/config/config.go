package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// AppConfig holds server-level settings
type AppConfig struct {
	Port    int    `yaml:"port"`
	WorkDir string `yaml:"work_dir"`
}

// KuzuConfig configures the embedded Kuzu database
type KuzuConfig struct {
	Path string `yaml:"path"` // empty or ":memory:" for in-memory
}

// Neo4jConfig configures the optional Neo4j backend
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// StoreConfig selects the run-history backend
type StoreConfig struct {
	Backend string `yaml:"backend"` // "kuzu" (default), "neo4j", or "none"
}

// GeminiConfig configures LLM scoring
type GeminiConfig struct {
	APIKey string `yaml:"api_key"` // GEMINI_API_KEY overrides
	Model  string `yaml:"model"`
}

// ToolsConfig holds per-tool subprocess timeouts in seconds
type ToolsConfig struct {
	BanditTimeout      int `yaml:"bandit_timeout"`
	SafetyTimeout      int `yaml:"safety_timeout"`
	PycodestyleTimeout int `yaml:"pycodestyle_timeout"`
	CoverageTimeout    int `yaml:"coverage_timeout"`
	ProfileTimeout     int `yaml:"profile_timeout"`
	GitTimeout         int `yaml:"git_timeout"`
	ZapTimeout         int `yaml:"zap_timeout"`
}

// Config is the root application configuration
type Config struct {
	App           AppConfig          `yaml:"app"`
	Kuzu          KuzuConfig         `yaml:"kuzu"`
	Neo4j         Neo4jConfig        `yaml:"neo4j"`
	Store         StoreConfig        `yaml:"store"`
	Gemini        GeminiConfig       `yaml:"gemini"`
	Tools         ToolsConfig        `yaml:"tools"`
	Weights       map[string]float64 `yaml:"weights"`
	Skip          []string           `yaml:"skip"`
	WebAppURL     string             `yaml:"web_app_url"`    // enables the ZAP baseline scan
	ProfileScript string             `yaml:"profile_script"` // enables profiled performance scoring
}

// Default returns a configuration suitable for local runs
func Default() *Config {
	return &Config{
		App: AppConfig{
			Port:    8080,
			WorkDir: "./workdir",
		},
		Kuzu: KuzuConfig{
			Path: "./workdir/bench.kuzu",
		},
		Store: StoreConfig{
			Backend: "kuzu",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Tools: ToolsConfig{
			BanditTimeout:      60,
			SafetyTimeout:      60,
			PycodestyleTimeout: 30,
			CoverageTimeout:    120,
			ProfileTimeout:     60,
			GitTimeout:         30,
			ZapTimeout:         300,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. Secrets may come
// from the environment instead of the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if pw := os.Getenv("NEO4J_PASSWORD"); pw != "" {
		cfg.Neo4j.Password = pw
	}

	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	return cfg, nil
}

// Timeout converts a per-tool seconds value into a duration, falling back to
// the given default when unset.
func Timeout(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
