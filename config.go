package sections

import "github.com/goliatone/go-sections/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheFeatureRequired    = runtimeconfig.ErrCacheFeatureRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrRouteGroupRequired      = runtimeconfig.ErrRouteGroupRequired
	ErrSaveTimeoutInvalid      = runtimeconfig.ErrSaveTimeoutInvalid
	ErrFixturesFeatureRequired = runtimeconfig.ErrFixturesFeatureRequired
	ErrFixturesDirRequired     = runtimeconfig.ErrFixturesDirRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrCommandsFeatureRequired = runtimeconfig.ErrCommandsFeatureRequired
	ErrHTTPBasePathInvalid     = runtimeconfig.ErrHTTPBasePathInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	RoutesConfig   = runtimeconfig.RoutesConfig
	BuilderConfig  = runtimeconfig.BuilderConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	FixturesConfig = runtimeconfig.FixturesConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
