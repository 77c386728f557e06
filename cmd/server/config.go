package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	urlkit "github.com/goliatone/go-urlkit"

	sections "github.com/goliatone/go-sections"
)

// Config holds server command configuration.
type Config struct {
	Addr            string
	Storage         string
	Dialect         string
	DSN             string
	Cache           bool
	CacheTTL        time.Duration
	FixturesDir     string
	LogProvider     string
	LogLevel        string
	LogFormat       string
	PublicBaseURL   string
	ShutdownTimeout time.Duration
}

type envConfig struct {
	Addr            string        `env:"SECTIONS_ADDR" envDefault:":8080"`
	Storage         string        `env:"SECTIONS_STORAGE" envDefault:"memory"`
	Dialect         string        `env:"SECTIONS_DIALECT" envDefault:"sqlite"`
	DSN             string        `env:"SECTIONS_DSN"`
	Cache           bool          `env:"SECTIONS_CACHE" envDefault:"false"`
	CacheTTL        time.Duration `env:"SECTIONS_CACHE_TTL" envDefault:"1m"`
	FixturesDir     string        `env:"SECTIONS_FIXTURES_DIR"`
	LogProvider     string        `env:"SECTIONS_LOG_PROVIDER" envDefault:"console"`
	LogLevel        string        `env:"SECTIONS_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"SECTIONS_LOG_FORMAT"`
	PublicBaseURL   string        `env:"SECTIONS_PUBLIC_BASE_URL"`
	ShutdownTimeout time.Duration `env:"SECTIONS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var errAddrRequired = errors.New("server: listen address is required")

// ParseConfig reads the environment and then flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config(envCfg)

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (default: SECTIONS_ADDR or :8080)")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage provider: memory or bun")
	fs.StringVar(&cfg.Dialect, "dialect", cfg.Dialect, "database dialect for bun storage: sqlite or postgres")
	fs.StringVar(&cfg.DSN, "dsn", cfg.DSN, "database dsn for bun storage")
	fs.BoolVar(&cfg.Cache, "cache", cfg.Cache, "cache section reads")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "section cache ttl")
	fs.StringVar(&cfg.FixturesDir, "fixtures", cfg.FixturesDir, "directory of markdown fixtures to seed on start")
	fs.StringVar(&cfg.LogProvider, "log-provider", cfg.LogProvider, "logger provider: console or gologger")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "gologger output format")
	fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "base URL used to build public page links")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return Config{}, errAddrRequired
	}
	return cfg, nil
}

// ModuleConfig maps the command configuration onto the module configuration.
func (c Config) ModuleConfig() sections.Config {
	cfg := sections.DefaultConfig()
	cfg.Storage.Provider = c.Storage
	cfg.Storage.Dialect = c.Dialect
	cfg.Storage.DSN = c.DSN

	if c.Cache {
		cfg.Features.Cache = true
		cfg.Cache.Enabled = true
		cfg.Cache.DefaultTTL = c.CacheTTL
	}
	if dir := strings.TrimSpace(c.FixturesDir); dir != "" {
		cfg.Features.Fixtures = true
		cfg.Fixtures.Dir = dir
	}

	cfg.Features.Logger = true
	cfg.Logging.Provider = c.LogProvider
	cfg.Logging.Level = c.LogLevel
	cfg.Logging.Format = c.LogFormat

	if base := strings.TrimSpace(c.PublicBaseURL); base != "" {
		cfg.Routes.Group = "frontend"
		cfg.Routes.RouteConfig = &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "frontend",
					BaseURL: strings.TrimRight(base, "/"),
					Paths: map[string]string{
						"page": "/pages/:slug",
					},
				},
			},
		}
	}
	return cfg
}
