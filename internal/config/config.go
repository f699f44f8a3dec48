package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/language"
)

// Config holds all user-facing configuration for coordimport.
type Config struct {
	Data    DataConfig    `toml:"data"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Catalog CatalogConfig `toml:"catalog"`
	Scrape  ScrapeConfig  `toml:"scrape"`
}

type DataConfig struct {
	Dir    string `toml:"dir"    env:"COORDIMPORT_DATA_DIR"`
	Driver string `toml:"driver" env:"COORDIMPORT_DATA_DRIVER"`
}

type ServerConfig struct {
	Host string `toml:"host" env:"COORDIMPORT_SERVER_HOST"`
	Port int    `toml:"port" env:"COORDIMPORT_SERVER_PORT"`
}

// LogConfig selects the slog handler. Level is debug, info, warn or error;
// Format is text or json.
type LogConfig struct {
	Level  string `toml:"level"  env:"COORDIMPORT_LOG_LEVEL"`
	Format string `toml:"format" env:"COORDIMPORT_LOG_FORMAT"`
}

// CatalogConfig controls how the location catalog is built. Languages are
// indexed in order, so on a name collision the earlier language wins.
type CatalogConfig struct {
	Languages       []string `toml:"languages"        env:"COORDIMPORT_CATALOG_LANGUAGES"`
	DisplayLanguage string   `toml:"display_language" env:"COORDIMPORT_CATALOG_DISPLAY_LANGUAGE"`
	File            string   `toml:"file"             env:"COORDIMPORT_CATALOG_FILE"`
}

type ScrapeConfig struct {
	RateLimit float64        `toml:"rate_limit" env:"COORDIMPORT_SCRAPE_RATE_LIMIT"`
	Sources   []ScrapeSource `toml:"sources"`
}

// ScrapeSource is an HTML page listing place names for one language.
type ScrapeSource struct {
	Language string `toml:"language"`
	URL      string `toml:"url"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:    DataConfig{Dir: "data", Driver: "duckdb"},
		Server:  ServerConfig{Host: "localhost", Port: 8080},
		Log:     LogConfig{Level: "info", Format: "text"},
		Catalog: CatalogConfig{Languages: []string{"ja", "en", "de", "fr"}, DisplayLanguage: "en"},
		Scrape:  ScrapeConfig{RateLimit: 1.0},
	}
}

// Load reads a TOML config file and then applies COORDIMPORT_* environment
// overrides. If the file does not exist, built-in defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Data.Driver {
	case "duckdb", "sqlite":
	default:
		return fmt.Errorf("data.driver must be duckdb or sqlite (got %q)", c.Data.Driver)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if _, err := c.Languages(); err != nil {
		return err
	}

	if c.Scrape.RateLimit <= 0 {
		return fmt.Errorf("scrape.rate_limit must be > 0 (got %v)", c.Scrape.RateLimit)
	}

	return nil
}

// Languages parses the catalog language list.
func (c *Config) Languages() ([]language.Tag, error) {
	if len(c.Catalog.Languages) == 0 {
		return nil, fmt.Errorf("catalog.languages is empty")
	}
	tags := make([]language.Tag, 0, len(c.Catalog.Languages))
	for _, l := range c.Catalog.Languages {
		tag, err := language.Parse(strings.TrimSpace(l))
		if err != nil {
			return nil, fmt.Errorf("catalog.languages: %q: %w", l, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
