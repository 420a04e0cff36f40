package runtimeconfig

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var ErrContentDirRequired = errors.New("exercisedb config: content directory is required")
var ErrOutputDirRequired = errors.New("exercisedb config: output directory is required")
var ErrSchemaPathRequired = errors.New("exercisedb config: schema path is required")
var ErrBaseURLInvalid = errors.New("exercisedb config: base url must be an absolute url")
var ErrLoggingLevelInvalid = errors.New("exercisedb config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("exercisedb config: logging format is invalid")

// Config aggregates pipeline, serving, and logging settings for the module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Content   ContentConfig
	Store     StoreConfig
	Enrich    EnrichConfig
	Server    ServerConfig
	Logging   LoggingConfig
	APIPrefix string
}

// ContentConfig locates the markdown sources and the external schema contract.
type ContentConfig struct {
	Dir        string
	Pattern    string
	Recursive  bool
	SchemaPath string
}

// StoreConfig locates the persisted dataset artifacts.
type StoreConfig struct {
	OutputDir string
}

// EnrichConfig captures enrichment knobs for derived mobile metadata.
type EnrichConfig struct {
	// BaseURL is the absolute location assets are rewritten against when a
	// source reference climbs out of its document directory.
	BaseURL string
	// ThumbnailSuffix is inserted before the file extension of every derived
	// thumbnail reference.
	ThumbnailSuffix string
	// ThumbnailDimensions is recorded verbatim in the thumbnail manifest.
	ThumbnailDimensions string
	// BaseSeconds seeds the estimated duration calculation.
	BaseSeconds int
}

// ServerConfig captures HTTP serving options.
type ServerConfig struct {
	Addr         string
	DataCacheTTL time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the baseline configuration used by the CLIs and by
// hosts that embed the module.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:        "exercises",
			Pattern:    "*.md",
			Recursive:  true,
			SchemaPath: "schema/exercise.schema.json",
		},
		Store: StoreConfig{
			OutputDir: "dist",
		},
		Enrich: EnrichConfig{
			ThumbnailSuffix:     "-thumb",
			ThumbnailDimensions: "200x200",
			BaseSeconds:         30,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			DataCacheTTL: 5 * time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		APIPrefix: "/v1",
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Content,
		validation.Field(&c.Content.Dir, validation.Required.Error(ErrContentDirRequired.Error())),
		validation.Field(&c.Content.SchemaPath, validation.Required.Error(ErrSchemaPathRequired.Error())),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Store,
		validation.Field(&c.Store.OutputDir, validation.Required.Error(ErrOutputDirRequired.Error())),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Enrich,
		validation.Field(&c.Enrich.BaseURL, is.URL.Error(ErrBaseURLInvalid.Error())),
	); err != nil {
		return err
	}

	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch c.Logging.Format {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}
