package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

// FileStore keeps the full result set in a single JSON document. It exists as
// the degraded backend for environments where SQLite cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ReplaceAll rewrites the whole document with the given records.
func (f *FileStore) ReplaceAll(_ context.Context, services []domain.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(services, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

// All returns every stored record sorted by display name.
func (f *FileStore) All(context.Context) ([]domain.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// ByPackage looks up a single record by package id.
func (f *FileStore) ByPackage(ctx context.Context, packageID string) (domain.Service, bool, error) {
	services, err := f.All(ctx)
	if err != nil {
		return domain.Service{}, false, err
	}
	for _, svc := range services {
		if svc.PackageID == packageID {
			return svc, true, nil
		}
	}
	return domain.Service{}, false, nil
}

// Search returns records matching a case-insensitive free-text query.
func (f *FileStore) Search(ctx context.Context, query string) ([]domain.Service, error) {
	services, err := f.All(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.Service
	for _, svc := range services {
		if svc.Matches(query) {
			matched = append(matched, svc)
		}
	}
	return matched, nil
}

// ByImpact returns records carrying the given impact level.
func (f *FileStore) ByImpact(ctx context.Context, level domain.ImpactLevel) ([]domain.Service, error) {
	services, err := f.All(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.Service
	for _, svc := range services {
		if svc.Level == level {
			matched = append(matched, svc)
		}
	}
	return matched, nil
}

// Cleanup drops records not updated inside the retention window and rewrites
// the document.
func (f *FileStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	services, err := f.load()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	var kept []domain.Service
	for _, svc := range services {
		if svc.UpdatedAt.After(cutoff) {
			kept = append(kept, svc)
		}
	}
	removed := int64(len(services) - len(kept))
	if removed == 0 {
		return 0, nil
	}
	data, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return 0, err
	}
	return removed, os.WriteFile(f.path, data, 0o644)
}

// Close implements ports.ServiceRepository. Nothing is held open.
func (f *FileStore) Close() error {
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() ([]domain.Service, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	sort.Slice(services, func(i, j int) bool {
		return strings.ToLower(services[i].Name) < strings.ToLower(services[j].Name)
	})
	return services, nil
}

var _ ports.ServiceRepository = (*FileStore)(nil)
