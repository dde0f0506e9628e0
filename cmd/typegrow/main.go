// Package main is the typegrow command line entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/typegrow/typegrow"
	"github.com/typegrow/typegrow/compiler/gen"
	"github.com/typegrow/typegrow/compiler/gen/golang"
	"github.com/typegrow/typegrow/compiler/gen/java"
	"github.com/typegrow/typegrow/compiler/load"
)

func main() {
	schemaPath := flag.String("schema", "schema.yaml", "Path to the schema document")
	targetName := flag.String("target", "java", "Language target: java or go")
	outDir := flag.String("out", ".", "Output directory for generated units")
	watch := flag.Bool("watch", false, "Regenerate whenever the schema changes")
	cacheDir := flag.String("cache", "", "Cache directory; empty disables caching")
	workers := flag.Int("workers", 0, "Parallel writer workers; 0 uses GOMAXPROCS")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("typegrow %s\n", typegrow.Version)
		os.Exit(0)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	target, err := newTarget(*targetName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid target")
	}

	var cache typegrow.Cache
	if *cacheDir != "" {
		fc, err := typegrow.NewFileCache(*cacheDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *cacheDir).Msg("open cache")
		}
		cache = fc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runner{
		log:        log,
		target:     target,
		cache:      cache,
		schemaPath: *schemaPath,
		outDir:     *outDir,
		workers:    *workers,
	}

	if err := r.generate(ctx); err != nil {
		if !*watch {
			log.Fatal().Err(err).Msg("generation failed")
		}
		// In watch mode a broken schema is not fatal; the next save may
		// fix it.
		log.Error().Err(err).Msg("generation failed")
	}

	if *watch {
		if err := r.watch(ctx); err != nil {
			log.Fatal().Err(err).Msg("watch failed")
		}
	}
}

func newTarget(name string) (gen.Target, error) {
	switch name {
	case "java":
		return java.New(), nil
	case "go":
		return golang.New(), nil
	default:
		return nil, fmt.Errorf("unknown target %q (want java or go)", name)
	}
}

// runner holds the resolved invocation and drives one generation pass
// per call, consulting the cache when one is configured.
type runner struct {
	log        zerolog.Logger
	target     gen.Target
	cache      typegrow.Cache
	schemaPath string
	outDir     string
	workers    int
}

func (r *runner) generate(ctx context.Context) error {
	start := time.Now()
	source, err := os.ReadFile(r.schemaPath)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	key := typegrow.Fingerprint(r.target.Name(), source)
	if r.cache != nil {
		units, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			r.log.Debug().Str("key", key).Msg("cache hit")
			return r.write(ctx, units, start)
		case !typegrow.IsCacheMiss(err):
			return fmt.Errorf("cache get: %w", err)
		}
	}

	doc, err := load.Parse(source)
	if err != nil {
		return err
	}
	schema, err := gen.NewSchema(doc)
	if err != nil {
		return err
	}
	g, err := gen.NewGenerator(r.target)
	if err != nil {
		return err
	}
	units, err := g.Generate(schema)
	if err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, units); err != nil {
			// A failed cache write only costs the next run time.
			r.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return r.write(ctx, units, start)
}

func (r *runner) write(ctx context.Context, units map[string]string, start time.Time) error {
	w := gen.NewWriter(r.outDir).WithWorkers(r.workers)
	if err := w.WriteAll(ctx, units); err != nil {
		return err
	}
	m := w.Metrics()
	r.log.Info().
		Int("units", m.UnitsWritten).
		Int64("bytes", m.TotalBytes).
		Str("target", r.target.Name()).
		Dur("elapsed", time.Since(start)).
		Msg("generated")
	return nil
}

// watch regenerates on every change to the schema file until the
// context is cancelled. The parent directory is watched rather than
// the file itself, which survives editors that save atomically.
func (r *runner) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(r.schemaPath)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	r.log.Info().Str("path", abs).Msg("watching schema for changes")

	// Atomic saves emit bursts of events; a short timer coalesces each
	// burst into one regeneration.
	var pending *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(abs) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			r.log.Debug().Str("event", event.Op.String()).Msg("schema changed")
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if err := r.generate(ctx); err != nil {
				r.log.Error().Err(err).Msg("regeneration failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error().Err(err).Msg("watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}
