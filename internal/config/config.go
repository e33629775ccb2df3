package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Reports   ReportsConfig   `yaml:"reports" envconfig:"REPORTS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// SourceConfig describes where the raw dataset comes from
type SourceConfig struct {
	URL          string        `yaml:"url" envconfig:"URL" validate:"required,url"`
	LocalPath    string        `yaml:"local_path" envconfig:"LOCAL_PATH"`
	SkipDownload bool          `yaml:"skip_download" envconfig:"SKIP_DOWNLOAD"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

// CleaningConfig holds the tunable policy of the cleaning core
type CleaningConfig struct {
	MinYear int `yaml:"min_year" envconfig:"MIN_YEAR" validate:"gte=1"`
	MaxYear int `yaml:"max_year" envconfig:"MAX_YEAR" validate:"gtefield=MinYear,lte=9999"`
}

// ReportsConfig controls the downstream analyses
type ReportsConfig struct {
	TopN              int     `yaml:"top_n" envconfig:"TOP_N" validate:"gte=1"`
	RatingThreshold   float64 `yaml:"rating_threshold" envconfig:"RATING_THRESHOLD" validate:"gte=0,lte=10"`
	PopularityTopN    int     `yaml:"popularity_top_n" envconfig:"POPULARITY_TOP_N" validate:"gte=1"`
	AnnotatedExtremes int     `yaml:"annotated_extremes" envconfig:"ANNOTATED_EXTREMES" validate:"gte=0"`
	Workbook          bool    `yaml:"workbook" envconfig:"WORKBOOK"`
	BOMPrefix         bool    `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir      string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DownloadsDir string `yaml:"downloads_dir" envconfig:"DOWNLOADS_DIR" validate:"required"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// TelemetryConfig toggles tracing and metrics
type TelemetryConfig struct {
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Load builds the configuration from defaults, the first config file found
// and TMDB_* environment variables, in that order of precedence.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable are left untouched, so env only
	// overrides what it names.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct rules
func (c *Config) Validate() error {
	if c.Logging.Output == "" {
		c.Logging.Output = "both"
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     DefaultDatasetURL,
			Timeout: DefaultHTTPTimeout,
		},
		Cleaning: CleaningConfig{
			MinYear: DefaultMinReleaseYear,
			MaxYear: DefaultMaxReleaseYear,
		},
		Reports: ReportsConfig{
			TopN:              DefaultTopN,
			RatingThreshold:   DefaultRatingThreshold,
			PopularityTopN:    DefaultPopularityTopN,
			AnnotatedExtremes: DefaultAnnotatedExtremes,
			Workbook:          true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "both",
		},
		Paths: PathsConfig{
			BaseDir:      ".",
			DownloadsDir: "data/downloads",
			ReportsDir:   "data/reports",
			LogsDir:      "logs",
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			EnableMetrics: true,
			SampleRatio:   1.0,
		},
	}
}
