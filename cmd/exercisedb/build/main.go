package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	exercisedb "github.com/goliatone/go-exercisedb"
)

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("exercisedb build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("exercisedb-build", flag.ExitOnError)

	cfg := exercisedb.DefaultConfig()
	contentDir := fs.String("content-dir", cfg.Content.Dir, "Path to the exercise source root")
	pattern := fs.String("pattern", cfg.Content.Pattern, "Glob pattern applied when discovering source files")
	schemaPath := fs.String("schema", cfg.Content.SchemaPath, "Path to the exercise JSON schema contract")
	outputDir := fs.String("output-dir", cfg.Store.OutputDir, "Directory the dataset artifacts are written to")
	baseURL := fs.String("base-url", cfg.Enrich.BaseURL, "Absolute base URL parent-relative assets are rewritten against")
	logLevel := fs.String("log-level", cfg.Logging.Level, "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", cfg.Logging.Format, "Log format (json, console, pretty)")
	watch := fs.Bool("watch", false, "Re-run the pipeline when a source file changes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Content.Dir = *contentDir
	cfg.Content.Pattern = *pattern
	cfg.Content.SchemaPath = *schemaPath
	cfg.Store.OutputDir = *outputDir
	cfg.Enrich.BaseURL = *baseURL
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	module, err := exercisedb.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	result, err := module.Run(ctx)
	if err != nil {
		return err
	}
	printResult(result)

	if !*watch {
		if result.Invalid > 0 {
			os.Exit(1)
		}
		return nil
	}

	return watchAndRebuild(ctx, module, cfg.Content.Dir)
}

// watchAndRebuild re-runs the pipeline when sources change. Runs are
// serialized through the rebuild channel; the debounce window absorbs the
// multiple writes editors emit per save.
func watchAndRebuild(ctx context.Context, module *exercisedb.Module, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Printf("watching %s for changes", dir)

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	rebuild := make(chan struct{}, 1)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if !strings.HasSuffix(event.Name, ".md") {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case rebuild <- struct{}{}:
					default:
					}
				})
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watch error: %v", watchErr)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rebuild:
			result, err := module.Run(ctx)
			if err != nil {
				log.Printf("rebuild failed: %v", err)
				continue
			}
			printResult(result)
		}
	}
}

func printResult(result *exercisedb.PipelineResult) {
	fmt.Printf("run %s: %d sources, %d valid, %d invalid, changed=%t, version=%s\n",
		result.RunID, result.Total, result.Valid, result.Invalid, result.Changed, result.Version)
	for _, failure := range result.Failures {
		fmt.Printf("  skipped %s: %s\n", failure.Path, failure.Err)
	}
}
