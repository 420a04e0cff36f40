package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-exercisedb/pkg/interfaces"
)

const (
	rootModule     = "exercisedb"
	pipelineModule = "exercisedb.pipeline"
	queryModule    = "exercisedb.query"
	httpModule     = "exercisedb.http"
	storeModule    = "exercisedb.store"
)

const (
	fieldSourcePath = "source_path"
	fieldExerciseID = "exercise_id"
	fieldRunID      = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PipelineLogger returns the logger namespace reserved for pipeline runs.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// QueryLogger returns the logger namespace reserved for the query engine.
func QueryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, queryModule)
}

// HTTPLogger returns the logger namespace reserved for the serving layer.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// StoreLogger returns the logger namespace reserved for artifact persistence.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// WithSourceContext enriches the provided logger with common pipeline fields
// such as source path, exercise id, and run id. Empty values are ignored.
func WithSourceContext(logger interfaces.Logger, path, exerciseID, runID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(exerciseID); trimmed != "" {
		fields[fieldExerciseID] = trimmed
	}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldRunID] = trimmed
	}
	return WithFields(logger, fields)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
