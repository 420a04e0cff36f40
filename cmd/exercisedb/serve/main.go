package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	web "github.com/goliatone/go-exercisedb/internal/http"
	"github.com/goliatone/go-exercisedb/internal/logging"
	"github.com/goliatone/go-exercisedb/internal/logging/gologger"
	"github.com/goliatone/go-exercisedb/internal/query"
	"github.com/goliatone/go-exercisedb/internal/runtimeconfig"
	"github.com/goliatone/go-exercisedb/internal/store"
)

func main() {
	if err := runServe(os.Args[1:]); err != nil {
		log.Fatalf("exercisedb serve: %v", err)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("exercisedb-serve", flag.ExitOnError)

	cfg := runtimeconfig.DefaultConfig()
	outputDir := fs.String("output-dir", cfg.Store.OutputDir, "Directory holding the dataset artifacts")
	addr := fs.String("addr", cfg.Server.Addr, "Listen address")
	prefix := fs.String("prefix", cfg.APIPrefix, "Path prefix the API mounts under")
	cacheTTL := fs.Duration("cache-ttl", cfg.Server.DataCacheTTL, "Cache-Control max-age for data responses")
	logLevel := fs.String("log-level", cfg.Logging.Level, "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", cfg.Logging.Format, "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  *logLevel,
		Format: *logFormat,
	})
	if err != nil {
		return err
	}
	logger := logging.HTTPLogger(provider)

	snapshot, err := store.LoadSnapshot(*outputDir)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotMissing) {
			return fmt.Errorf("no dataset found in %s; run the build command first", *outputDir)
		}
		return err
	}

	api := web.NewAPI(query.NewEngine(snapshot), web.Config{
		Prefix:       *prefix,
		DataCacheTTL: *cacheTTL,
	}, provider)

	server := &http.Server{
		Addr:         *addr,
		Handler:      api.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("serving dataset",
		"addr", *addr,
		"version", snapshot.Version.Version,
		"exercises", len(snapshot.Exercises),
	)
	return server.ListenAndServe()
}
