package typegrow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache stores generated unit maps keyed by schema fingerprint.
// Implementations must treat entries as immutable: a fingerprint fully
// determines its units, so there is no update path, only Set and Delete.
type Cache interface {
	// Get retrieves the unit map for a fingerprint.
	// Returns ErrCacheMiss if the key is not present.
	Get(ctx context.Context, key string) (map[string]string, error)

	// Set stores the unit map for a fingerprint.
	Set(ctx context.Context, key string, units map[string]string) error

	// Delete removes a single entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// entry is the on-disk representation of one cache record.
type entry struct {
	Key       string            `msgpack:"key"`
	Version   string            `msgpack:"version"`
	CreatedAt time.Time         `msgpack:"created_at"`
	Units     map[string]string `msgpack:"units"`
}

// FileCache is a file-per-entry Cache rooted at a directory.
// Entries are msgpack-encoded and safe to delete at any time.
type FileCache struct {
	dir string
}

// NewFileCache creates the cache directory if needed and returns a
// FileCache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get implements Cache.
func (c *FileCache) Get(ctx context.Context, key string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		// A corrupt entry behaves like a miss; the caller regenerates.
		return nil, ErrCacheMiss
	}
	if e.Version != Version {
		return nil, ErrCacheMiss
	}
	return e.Units, nil
}

// Set implements Cache.
func (c *FileCache) Set(ctx context.Context, key string, units map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := msgpack.Marshal(entry{
		Key:       key,
		Version:   Version,
		CreatedAt: time.Now().UTC(),
		Units:     units,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

// Delete implements Cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Clear implements Cache.
func (c *FileCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	matches, err := filepath.Glob(filepath.Join(c.dir, "*"+cacheExt))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

const cacheExt = ".tgc"

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+cacheExt)
}

// Verify FileCache implements Cache at compile time.
var _ Cache = (*FileCache)(nil)
