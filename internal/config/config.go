package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/matcher"
)

// Store drivers.
const (
	DriverRedis   = "redis"
	DriverValkey  = "valkey"
	DriverFixture = "fixture"
)

// Config holds the fedsearch configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Store   StoreConfig   `yaml:"store"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API key authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"` // empty disables auth
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StoreConfig holds record store settings.
type StoreConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey, fixture (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	FixturesPath     string   `yaml:"fixtures_path"`
}

// WeightsConfig holds per-field match weights.
type WeightsConfig struct {
	Title       float64 `yaml:"title"`
	Description float64 `yaml:"description"`
	Content     float64 `yaml:"content"`
	Tags        float64 `yaml:"tags"`
}

// SearchConfig holds matching and orchestration settings.
type SearchConfig struct {
	DefaultTypes       []string      `yaml:"default_types"` // empty = all types
	CandidateLimit     int           `yaml:"candidate_limit"`
	FuzzyThreshold     *float64      `yaml:"fuzzy_threshold"` // nil = default; 0 = exact substring only
	Distance           int           `yaml:"distance"`
	MinMatchCharLength int           `yaml:"min_match_char_length"`
	Weights            WeightsConfig `yaml:"weights"`
	SuggestLimit       int           `yaml:"suggest_limit"`
	SuggestSearchLimit int           `yaml:"suggest_search_limit"`
	Trending           []string      `yaml:"trending"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates raw YAML.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverValkey
	}
	if c.Store.ReadinessTimeout <= 0 {
		c.Store.ReadinessTimeout = 10
	}
	if c.Store.KeyPrefix == "" {
		c.Store.KeyPrefix = "fedsearch:"
	}
	if c.Search.CandidateLimit <= 0 {
		c.Search.CandidateLimit = 100
	}
	if c.Search.FuzzyThreshold == nil {
		t := matcher.DefaultThreshold
		c.Search.FuzzyThreshold = &t
	}
	if c.Search.Distance <= 0 {
		c.Search.Distance = matcher.DefaultDistance
	}
	if c.Search.MinMatchCharLength <= 0 {
		c.Search.MinMatchCharLength = matcher.DefaultMinMatchCharLength
	}
	if c.Search.Weights == (WeightsConfig{}) {
		w := matcher.DefaultWeights()
		c.Search.Weights = WeightsConfig{
			Title: w.Title, Description: w.Description, Content: w.Content, Tags: w.Tags,
		}
	}
	if c.Search.SuggestLimit <= 0 {
		c.Search.SuggestLimit = 5
	}
	if c.Search.SuggestSearchLimit <= 0 {
		c.Search.SuggestSearchLimit = 50
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Store.Driver {
	case DriverRedis, DriverValkey:
		if len(c.Store.Addrs) == 0 {
			return fmt.Errorf("store.addrs is required for driver %q", c.Store.Driver)
		}
	case DriverFixture:
		if c.Store.FixturesPath == "" {
			return fmt.Errorf("store.fixtures_path is required for driver %q", DriverFixture)
		}
	default:
		return fmt.Errorf("store.driver must be redis, valkey or fixture, got %q", c.Store.Driver)
	}
	if t := c.Search.Threshold(); t < 0 || t > 1 {
		return fmt.Errorf("search.fuzzy_threshold must be in [0,1], got %g", t)
	}
	if c.Search.CandidateLimit > 1000 {
		return fmt.Errorf("search.candidate_limit must be at most 1000, got %d", c.Search.CandidateLimit)
	}
	if err := c.Search.MatcherWeights().Validate(); err != nil {
		return fmt.Errorf("search.weights: %w", err)
	}
	if _, err := c.Search.Types(); err != nil {
		return fmt.Errorf("search.default_types: %w", err)
	}
	return nil
}

// Types parses the default type list.
func (s SearchConfig) Types() ([]entity.Type, error) {
	if len(s.DefaultTypes) == 0 {
		return nil, nil
	}
	types, err := entity.ParseList(s.DefaultTypes)
	if err != nil {
		return nil, fmt.Errorf("parse types: %w", err)
	}
	return types, nil
}

// MatcherWeights converts the configured weights.
func (s SearchConfig) MatcherWeights() matcher.Weights {
	return matcher.Weights{
		Title:       s.Weights.Title,
		Description: s.Weights.Description,
		Content:     s.Weights.Content,
		Tags:        s.Weights.Tags,
	}
}

// Threshold returns the configured fuzzy threshold, or the matcher default when unset.
func (s SearchConfig) Threshold() float64 {
	if s.FuzzyThreshold == nil {
		return matcher.DefaultThreshold
	}
	return *s.FuzzyThreshold
}

// MatcherOptions builds matcher options from the search settings.
func (s SearchConfig) MatcherOptions() matcher.Options {
	return matcher.Options{
		Threshold:          s.Threshold(),
		Distance:           s.Distance,
		MinMatchCharLength: s.MinMatchCharLength,
		Weights:            s.MatcherWeights(),
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
