package store

import (
	"strings"

	"github.com/doeshing/ecoscan/internal/ports"
)

// Open returns the SQLite-backed repository at path, degrading to the JSON
// file store next to it when the database cannot be opened.
func Open(path string, log ports.Logger) ports.ServiceRepository {
	repo, err := NewSQLiteStore(path)
	if err == nil {
		return repo
	}
	fallback := strings.TrimSuffix(path, ".db") + ".json"
	log.Warn("sqlite store unavailable, using file store", map[string]interface{}{
		"error":    err.Error(),
		"fallback": fallback,
	})
	return NewFileStore(fallback)
}
