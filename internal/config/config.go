// Package config loads the startup constants of the explorer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultServiceURL is the public eclipse path layer.
const DefaultServiceURL = "https://services.arcgis.com/nzS0F0zdNLvs7nc8/arcgis/rest/services/EclipsePolygons_1601_2200/FeatureServer/18"

// Config holds all runtime configuration. Values come from .eclipse.yaml,
// ECLIPSE_* env vars, and CLI flags.
type Config struct {
	ServiceURL         string        `mapstructure:"service_url"`
	PageSize           int           `mapstructure:"page_size"`
	PageCount          int           `mapstructure:"page_count"`
	GeometryPrecision  int           `mapstructure:"geometry_precision"`
	MaxAllowableOffset float64       `mapstructure:"max_allowable_offset"`
	FetchTimeout       time.Duration `mapstructure:"fetch_timeout"`
	RequestsPerSecond  float64       `mapstructure:"requests_per_second"`

	DateMin     float64 `mapstructure:"date_min"`
	DateMax     float64 `mapstructure:"date_max"`
	DateStart   float64 `mapstructure:"date_start"`
	WindowWidth float64 `mapstructure:"window_width"`
	DurationMin float64 `mapstructure:"duration_min"`
	DurationMax float64 `mapstructure:"duration_max"`

	ResizeDebounce time.Duration `mapstructure:"resize_debounce"`

	CachePath string        `mapstructure:"cache_path"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	LogFile   string        `mapstructure:"log_file"`
	Verbose   bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	dataDir := defaultDataDir()

	viper.SetDefault("service_url", DefaultServiceURL)
	viper.SetDefault("page_size", 200)
	viper.SetDefault("page_count", 5)
	viper.SetDefault("geometry_precision", 2)
	viper.SetDefault("max_allowable_offset", 0.1)
	viper.SetDefault("fetch_timeout", 60*time.Second)
	viper.SetDefault("requests_per_second", 0.0)
	viper.SetDefault("date_min", 1600.0)
	viper.SetDefault("date_max", 2200.0)
	viper.SetDefault("date_start", 1850.0)
	viper.SetDefault("window_width", 30.0)
	viper.SetDefault("duration_min", 0.0)
	viper.SetDefault("duration_max", 800.0)
	viper.SetDefault("resize_debounce", 250*time.Millisecond)
	viper.SetDefault("cache_path", filepath.Join(dataDir, "eclipses.sqlite"))
	viper.SetDefault("cache_ttl", 24*time.Hour)
	viper.SetDefault("log_file", filepath.Join(dataDir, "eclipse.log"))
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the chart cannot be built from.
func (c Config) Validate() error {
	var errs []error
	if c.ServiceURL == "" {
		errs = append(errs, errors.New("service_url is empty"))
	}
	if c.PageSize <= 0 || c.PageCount <= 0 {
		errs = append(errs, fmt.Errorf("page_size and page_count must be positive (got %d, %d)", c.PageSize, c.PageCount))
	}
	if c.DateMin >= c.DateMax {
		errs = append(errs, fmt.Errorf("date_min %v must be below date_max %v", c.DateMin, c.DateMax))
	}
	if c.WindowWidth < 0 {
		errs = append(errs, fmt.Errorf("window_width %v is negative", c.WindowWidth))
	} else if c.WindowWidth > c.DateMax-c.DateMin {
		errs = append(errs, fmt.Errorf("window_width %v is wider than the date range", c.WindowWidth))
	}
	if c.DateStart < c.DateMin || c.DateStart > c.DateMax-c.WindowWidth {
		errs = append(errs, fmt.Errorf("date_start %v outside [%v, %v]", c.DateStart, c.DateMin, c.DateMax-c.WindowWidth))
	}
	if c.DurationMin >= c.DurationMax {
		errs = append(errs, fmt.Errorf("duration_min %v must be below duration_max %v", c.DurationMin, c.DurationMax))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func defaultDataDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "eclipse")
}
