package runtimeconfig_test

import (
	"errors"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-sections/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "unknown storage provider",
			mutate: func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			name: "bun requires dsn",
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = "bun"
				c.Storage.DSN = " "
			},
			want: runtimeconfig.ErrStorageDSNRequired,
		},
		{
			name: "bun rejects unknown dialect",
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = "bun"
				c.Storage.Dialect = "mysql"
				c.Storage.DSN = "root@/sections"
			},
			want: runtimeconfig.ErrStorageDialectUnknown,
		},
		{
			name:   "cache needs feature",
			mutate: func(c *runtimeconfig.Config) { c.Cache.Enabled = true },
			want:   runtimeconfig.ErrCacheFeatureRequired,
		},
		{
			name: "cache needs ttl",
			mutate: func(c *runtimeconfig.Config) {
				c.Cache.Enabled = true
				c.Features.Cache = true
				c.Cache.DefaultTTL = 0
			},
			want: runtimeconfig.ErrCacheTTLInvalid,
		},
		{
			name: "route config needs group",
			mutate: func(c *runtimeconfig.Config) {
				c.Routes.RouteConfig = &urlkit.Config{}
			},
			want: runtimeconfig.ErrRouteGroupRequired,
		},
		{
			name:   "negative save timeout",
			mutate: func(c *runtimeconfig.Config) { c.Builder.SaveTimeout = -1 },
			want:   runtimeconfig.ErrSaveTimeoutInvalid,
		},
		{
			name:   "relative base path",
			mutate: func(c *runtimeconfig.Config) { c.HTTP.AdminBasePath = "admin" },
			want:   runtimeconfig.ErrHTTPBasePathInvalid,
		},
		{
			name: "dispatcher needs commands",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Commands = false
				c.Commands.AutoRegisterDispatcher = true
			},
			want: runtimeconfig.ErrCommandsFeatureRequired,
		},
		{
			name:   "fixtures dir needs feature",
			mutate: func(c *runtimeconfig.Config) { c.Fixtures.Dir = "fixtures" },
			want:   runtimeconfig.ErrFixturesFeatureRequired,
		},
		{
			name:   "fixtures feature needs dir",
			mutate: func(c *runtimeconfig.Config) { c.Features.Fixtures = true },
			want:   runtimeconfig.ErrFixturesDirRequired,
		},
		{
			name: "logger needs provider",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = ""
			},
			want: runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name: "unknown logger provider",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = "syslog"
			},
			want: runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name: "invalid level",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Level = "loud"
			},
			want: runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "invalid gologger format",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidateAcceptsPostgres(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "postgres"
	cfg.Storage.DSN = "postgres://localhost/sections?sslmode=disable"
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}
