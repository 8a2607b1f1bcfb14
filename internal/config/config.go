package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Log search API
	APIKey        string `mapstructure:"api_key"`
	BaseURI       string `mapstructure:"base_uri"`
	SearchURI     string `mapstructure:"search_uri"`
	Query         string `mapstructure:"query"`
	RequestsQuery string `mapstructure:"requests_query"`

	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	HTTP    HTTPConfig    `mapstructure:"http"`
	Reports ReportsConfig `mapstructure:"reports"`
}

// HTTPConfig controls how the API is called
type HTTPConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" json:"timeout"`
	Attempts          int           `mapstructure:"attempts" json:"attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay" json:"retry_delay"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" json:"requests_per_second"` // 0 = unlimited
	PageSize          int           `mapstructure:"page_size" json:"page_size"`
	MaxPages          int           `mapstructure:"max_pages" json:"max_pages"` // 0 = unbounded
}

// ReportsConfig holds per-report defaults
type ReportsConfig struct {
	DefaultTime string            `mapstructure:"default_time" json:"default_time"`
	RollupQuery string            `mapstructure:"rollup_query" json:"rollup_query"` // %s receives the rollup filter
	RollupTop   int               `mapstructure:"rollup_top" json:"rollup_top"`
	HourlyQuery string            `mapstructure:"hourly_query" json:"hourly_query"`
	Presets     map[string]Preset `mapstructure:"presets" json:"presets"`
}

// Preset is a named one-off URL report
type Preset struct {
	Query     string `mapstructure:"query" json:"query"`
	Time      string `mapstructure:"time" json:"time"`
	From      string `mapstructure:"from" json:"from"`
	Extractor string `mapstructure:"extractor" json:"extractor"`
	Output    string `mapstructure:"output" json:"output"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format: "text",
		HTTP: HTTPConfig{
			Timeout:  30 * time.Second,
			Attempts: 3,
			PageSize: 1000,
		},
		Reports: ReportsConfig{
			DefaultTime: "-10m",
			RollupQuery: `"translation--prod" "%s"`,
			RollupTop:   11,
			HourlyQuery: `"translation--prod" "About to make to Endeca"`,
			Presets: map[string]Preset{
				"oneoff": {
					Query:     `"translation--prod-" "status=404" -"return to FE"`,
					Time:      "-24h",
					Extractor: "url",
					Output:    "oneoff_report.csv",
				},
				"oneoff-endeca": {
					Query:     `json.level:ERROR  ("call.endeca.malformed-resp-payload")`,
					Time:      "-12h",
					Extractor: "req_url",
					Output:    "oneoff_endeca_report.csv",
				},
			},
		},
	}
}

// Load loads configuration from files and environment.
// A .env file in the working directory is read first so secrets can stay
// out of the YAML. Config file search order (highest precedence first):
// 1. ./.faultline.yaml or ./.faultline.yml
// 2. ~/.faultline.yaml or ~/.faultline.yml
// 3. $XDG_CONFIG_HOME/faultline/config.yaml (or ~/.config/faultline/config.yaml)
// 4. /etc/faultline/config.yaml
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	loadDotEnv()

	cfg := Default()
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	path := filepath.Join(cwd, ".env")
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".faultline.yaml", ".faultline.yml", "faultline.yaml", "faultline.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// config.yaml only counts inside a faultline-owned directory
	var ownedDirs []string
	if configDirErr == nil {
		ownedDirs = append(ownedDirs, filepath.Join(configDir, "faultline"))
	}
	ownedDirs = append(ownedDirs, "/etc/faultline")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	for _, dir := range ownedDirs {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies FAULTLINE_* environment variables to config
func applyEnvOverrides(cfg *Config) {
	strs := map[string]*string{
		"FAULTLINE_API_KEY":        &cfg.APIKey,
		"FAULTLINE_BASE_URI":       &cfg.BaseURI,
		"FAULTLINE_SEARCH_URI":     &cfg.SearchURI,
		"FAULTLINE_QUERY":          &cfg.Query,
		"FAULTLINE_REQUESTS_QUERY": &cfg.RequestsQuery,
		"FAULTLINE_FORMAT":         &cfg.Format,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("FAULTLINE_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("FAULTLINE_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("FAULTLINE_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.MaxPages = n
		}
	}
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// ValidationError lists every problem found in a Config
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks the fields needed to talk to the API
func (c *Config) Validate() error {
	var problems []string
	required := []struct {
		name  string
		value string
	}{
		{"api_key", c.APIKey},
		{"base_uri", c.BaseURI},
		{"query", c.Query},
		{"requests_query", c.RequestsQuery},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.name+" is required")
		}
	}

	switch c.Format {
	case "", "text", "table", "ndjson":
	default:
		problems = append(problems, fmt.Sprintf("format %q must be text, table or ndjson", c.Format))
	}
	if c.HTTP.Attempts < 1 {
		problems = append(problems, "http.attempts must be at least 1")
	}
	if c.HTTP.Timeout <= 0 {
		problems = append(problems, "http.timeout must be positive")
	}
	if c.HTTP.PageSize <= 0 {
		problems = append(problems, "http.page_size must be positive")
	}
	if c.HTTP.RequestsPerSecond < 0 {
		problems = append(problems, "http.requests_per_second must not be negative")
	}
	if !strings.Contains(c.Reports.RollupQuery, "%s") {
		problems = append(problems, "reports.rollup_query must contain %s")
	}
	for name, p := range c.Reports.Presets {
		if p.Query == "" {
			problems = append(problems, "reports.presets."+name+".query is required")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Preset returns the named preset
func (c *Config) Preset(name string) (Preset, bool) {
	p, ok := c.Reports.Presets[strings.ToLower(name)]
	return p, ok
}

// PresetNames lists configured presets
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Reports.Presets))
	for name := range c.Reports.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MaskedAPIKey returns the API key with all but its last four characters hidden
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	if len(c.APIKey) <= 4 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", len(c.APIKey)-4) + c.APIKey[len(c.APIKey)-4:]
}
