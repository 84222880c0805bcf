package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is picked up from the working directory when present.
const DefaultFileName = "ccauto.yaml"

// Config aggregates runtime configuration. It is resolved once at startup.
type Config struct {
	Reviews  ReviewsConfig  `yaml:"reviews"`
	Carousel CarouselConfig `yaml:"carousel"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
	Site     SiteConfig     `yaml:"site"`
}

// ReviewsConfig locates the review collector widget. Leaving either value
// empty runs the review carousel in fallback-only mode.
type ReviewsConfig struct {
	BaseURL  string        `yaml:"baseUrl"`
	WidgetID string        `yaml:"widgetId"`
	Timeout  time.Duration `yaml:"timeout"`
}

// CarouselConfig controls rotation timing and swipe sensitivity.
type CarouselConfig struct {
	ReviewInterval  time.Duration `yaml:"reviewInterval"`
	ServiceInterval time.Duration `yaml:"serviceInterval"`
	SwipeThreshold  int           `yaml:"swipeThreshold"`
}

// CatalogConfig points at an optional JSON file overriding the built-in content.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// UIConfig selects the terminal theme.
type UIConfig struct {
	Theme string `yaml:"theme"`
}

// LogConfig controls where logs go. File "-" means stderr and "off" disables
// logging; empty picks a per-command default.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// SiteConfig carries page-level values shown in the footer.
type SiteConfig struct {
	Name      string `yaml:"name"`
	ShareURL  string `yaml:"shareUrl"`
	SinceYear int    `yaml:"sinceYear"`
}

var knownThemes = map[string]bool{"classic": true, "neon": true, "mono": true}

// Load reads configuration from path (or CCAUTO_CONFIG, or ./ccauto.yaml)
// and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("CCAUTO_CONFIG")
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultFileName); err == nil {
		if err := hydrateFromFile(cfg, DefaultFileName); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RC_REVIEW_COLLECTOR_BASE_URL"); v != "" {
		cfg.Reviews.BaseURL = v
	}
	if v := os.Getenv("RC_REVIEW_WIDGET_ID"); v != "" {
		cfg.Reviews.WidgetID = v
	}
	if v := os.Getenv("CCAUTO_REVIEW_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Reviews.Timeout = parsed
		}
	}
	if v := os.Getenv("CCAUTO_REVIEW_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Carousel.ReviewInterval = parsed
		}
	}
	if v := os.Getenv("CCAUTO_SERVICE_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Carousel.ServiceInterval = parsed
		}
	}
	if v := os.Getenv("CCAUTO_SWIPE_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Carousel.SwipeThreshold = parsed
		}
	}
	if v := os.Getenv("CCAUTO_CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("CCAUTO_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v, ok := os.LookupEnv("CCAUTO_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func defaultConfig() *Config {
	return &Config{
		Reviews: ReviewsConfig{
			Timeout: 30 * time.Second,
		},
		Carousel: CarouselConfig{
			ReviewInterval:  8 * time.Second,
			ServiceInterval: 6 * time.Second,
			SwipeThreshold:  50,
		},
		UI: UIConfig{
			Theme: "classic",
		},
		Log: LogConfig{
			Level: "info",
		},
		Site: SiteConfig{
			Name:      "CC Auto Repairs",
			ShareURL:  "https://ccautorepairs.netlify.app/",
			SinceYear: 2025,
		},
	}
}

// Validate ensures the config is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Carousel.ReviewInterval <= 0 {
		errs = append(errs, errors.New("carousel.reviewInterval must be positive"))
	}
	if c.Carousel.ServiceInterval <= 0 {
		errs = append(errs, errors.New("carousel.serviceInterval must be positive"))
	}
	if c.Carousel.SwipeThreshold <= 0 {
		errs = append(errs, errors.New("carousel.swipeThreshold must be positive"))
	}
	if c.Reviews.Timeout < 0 {
		errs = append(errs, errors.New("reviews.timeout must not be negative"))
	}
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if !knownThemes[c.UI.Theme] {
		errs = append(errs, fmt.Errorf("ui.theme %q is not one of classic, neon, mono", c.UI.Theme))
	}
	return errors.Join(errs...)
}
