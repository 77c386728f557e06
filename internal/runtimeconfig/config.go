package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrStorageProviderUnknown  = errors.New("sections config: storage provider is invalid")
	ErrStorageDialectUnknown   = errors.New("sections config: storage dialect is invalid")
	ErrStorageDSNRequired      = errors.New("sections config: storage dsn is required for the bun provider")
	ErrCacheFeatureRequired    = errors.New("sections config: cache feature must be enabled to configure the cache")
	ErrCacheTTLInvalid         = errors.New("sections config: cache ttl must be positive")
	ErrRouteGroupRequired      = errors.New("sections config: route group is required when a route config is set")
	ErrSaveTimeoutInvalid      = errors.New("sections config: builder save timeout must be zero or positive")
	ErrFixturesFeatureRequired = errors.New("sections config: fixtures feature must be enabled to configure fixtures")
	ErrFixturesDirRequired     = errors.New("sections config: fixtures directory is required when fixtures are enabled")
	ErrLoggingProviderRequired = errors.New("sections config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("sections config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("sections config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("sections config: logging format is invalid")
	ErrCommandsFeatureRequired = errors.New("sections config: commands feature must be enabled to subscribe handlers")
	ErrHTTPBasePathInvalid     = errors.New("sections config: http base paths must start with /")
)

// Config aggregates storage, routing and feature settings for the module.
type Config struct {
	Storage  StorageConfig
	Cache    CacheConfig
	Routes   RoutesConfig
	Builder  BuilderConfig
	HTTP     HTTPConfig
	Commands CommandsConfig
	Fixtures FixturesConfig
	Features Features
	Logging  LoggingConfig
}

// StorageConfig selects the repositories. Provider "memory" keeps everything
// in process; "bun" opens Dialect with DSN.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
	// CreateSchema creates missing tables when the database is opened.
	CreateSchema bool
}

type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig configures public page URLs built with go-urlkit.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	Route       string
	SlugParam   string
}

type BuilderConfig struct {
	SaveTimeout time.Duration
}

type HTTPConfig struct {
	AdminBasePath  string
	PublicBasePath string
}

// CommandsConfig controls go-command dispatcher subscription.
type CommandsConfig struct {
	AutoRegisterDispatcher bool
	Timeout                time.Duration
}

type FixturesConfig struct {
	Dir string
}

// Features toggles optional subsystems.
type Features struct {
	Cache    bool
	Logger   bool
	Fixtures bool
	Commands bool
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig keeps everything in memory with the console logger.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider:     "memory",
			Dialect:      "sqlite",
			CreateSchema: true,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Routes: RoutesConfig{
			Route:     "page",
			SlugParam: "slug",
		},
		Builder: BuilderConfig{
			SaveTimeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			AdminBasePath:  "/admin/api",
			PublicBasePath: "/api",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Fixtures: FixturesConfig{},
		Features: Features{
			Commands: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case "memory":
	case "bun":
		switch normalize(cfg.Storage.Dialect) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled {
		if !cfg.Features.Cache {
			return ErrCacheFeatureRequired
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}
	if cfg.Routes.RouteConfig != nil && strings.TrimSpace(cfg.Routes.Group) == "" {
		return ErrRouteGroupRequired
	}
	if cfg.Builder.SaveTimeout < 0 {
		return ErrSaveTimeoutInvalid
	}
	for _, base := range []string{cfg.HTTP.AdminBasePath, cfg.HTTP.PublicBasePath} {
		if base != "" && !strings.HasPrefix(base, "/") {
			return fmt.Errorf("%w: %s", ErrHTTPBasePathInvalid, base)
		}
	}
	if cfg.Commands.AutoRegisterDispatcher && !cfg.Features.Commands {
		return ErrCommandsFeatureRequired
	}
	if strings.TrimSpace(cfg.Fixtures.Dir) != "" && !cfg.Features.Fixtures {
		return ErrFixturesFeatureRequired
	}
	if cfg.Features.Fixtures && strings.TrimSpace(cfg.Fixtures.Dir) == "" {
		return ErrFixturesDirRequired
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
