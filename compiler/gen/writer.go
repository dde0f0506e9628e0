package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Writer persists a generated unit map to a directory with parallel
// workers. Generation itself is pure and in-memory; all file I/O lives
// here, on the caller's side of the core boundary.
type Writer struct {
	outDir  string
	workers int

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks persistence work for reporting.
type WriterMetrics struct {
	UnitsWritten int
	TotalBytes   int64
}

// NewWriter creates a writer targeting the output directory.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns a copy of the accumulated metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteAll writes every unit to outDir, one file per unit name.
func (w *Writer) WriteAll(ctx context.Context, units map[string]string) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	for name, text := range units {
		name, text := name, text
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeUnit(name, text)
			}
		})
	}

	return eg.Wait()
}

func (w *Writer) writeUnit(name, text string) error {
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.mu.Lock()
	w.metrics.UnitsWritten++
	w.metrics.TotalBytes += int64(len(text))
	w.mu.Unlock()
	return nil
}
