package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/pkg/filesystem"
	"github.com/doeshing/ecoscan/internal/ports"
)

// FileCache stores raw JSON blobs addressed by key. It backs the catalog's
// offline snapshot of the last good classification documents.
type FileCache struct {
	dir string
	mu  sync.Mutex
}

// NewFileCache returns a cache rooted under ~/.ecoscan/cache/catalog, or the
// configured directory.
func NewFileCache(dir string) *FileCache {
	if dir == "" {
		dir = filepath.Join(filesystem.UserHomeDir(), ".ecoscan", "cache", "catalog")
	}
	return &FileCache{dir: dir}
}

// Get retrieves a cache entry.
func (c *FileCache) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a cache entry.
func (c *FileCache) Set(key string, data []byte) error {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(key), data, 0o644)
}

// Dir exposes the cache directory path.
func (c *FileCache) Dir() string {
	return c.dir
}

// Clear removes all cached entries.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

var _ ports.SnapshotStore = (*FileCache)(nil)
