package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LoaderConfig configures how exercise sources are discovered within a base
// directory.
type LoaderConfig struct {
	// BasePath is the root directory where exercise documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// SourceFile pairs a discovered document with its raw bytes and content
// digest. The digest feeds change detection only; it is not a security
// primitive.
type SourceFile struct {
	Path     string
	Data     []byte
	Checksum string
	ModTime  time.Time
}

// Loader turns filesystem paths into exercise source files.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads a single source document and computes its content digest.
func (l *Loader) LoadFile(ctx context.Context, path string) (*SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := filepath.ToSlash(path)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("loader stat %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)

	return &SourceFile{
		Path:     rel,
		Data:     data,
		Checksum: hex.EncodeToString(sum[:]),
		ModTime:  info.ModTime(),
	}, nil
}

// Discover walks the filesystem root and returns every matching source file,
// sorted by path so pipeline runs process documents deterministically.
func (l *Loader) Discover(ctx context.Context) ([]*SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sources []*SourceFile

	walkErr := fs.WalkDir(l.fs, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.recursive && filepath.Clean(path) != "." {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel) {
			return nil
		}

		source, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		sources = append(sources, source)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})

	return sources, nil
}

func (l *Loader) matchesPattern(path string) bool {
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern := filepath.ToSlash(l.pattern)
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
