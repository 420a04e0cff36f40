package exercisedb

import "github.com/goliatone/go-exercisedb/internal/runtimeconfig"

var (
	ErrContentDirRequired   = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired    = runtimeconfig.ErrOutputDirRequired
	ErrSchemaPathRequired   = runtimeconfig.ErrSchemaPathRequired
	ErrBaseURLInvalid       = runtimeconfig.ErrBaseURLInvalid
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	StoreConfig   = runtimeconfig.StoreConfig
	EnrichConfig  = runtimeconfig.EnrichConfig
	ServerConfig  = runtimeconfig.ServerConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
