// Package registry enumerates installed applications from the OS. The host
// registry is read-only; nothing is ever written back. Two backends are
// supported: XDG desktop entries and flatpak, merged by package id.
package registry

import (
	"context"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

// HostRegistry implements ports.AppRegistry over the detected backends.
type HostRegistry struct {
	desktop *DesktopScanner
	flatpak FlatpakLister
	logger  ports.Logger
}

// NewHostRegistry builds a registry for this host.
func NewHostRegistry(log ports.Logger) *HostRegistry {
	return &HostRegistry{
		desktop: NewDesktopScanner(),
		logger:  log,
	}
}

// Backends names the enumeration sources usable on this host.
func (r *HostRegistry) Backends() []string {
	var backends []string
	if r.desktop.Available() {
		backends = append(backends, "desktop-entries")
	}
	if r.flatpak.Available() {
		backends = append(backends, "flatpak")
	}
	return backends
}

// List merges all backends. Desktop entries win on id collisions since they
// carry the system-entity flags. A failing backend is logged and skipped;
// the batch never aborts.
func (r *HostRegistry) List(ctx context.Context) ([]domain.InstalledItem, error) {
	seen := make(map[string]struct{})
	var items []domain.InstalledItem

	if r.desktop.Available() {
		for _, item := range r.desktop.Scan() {
			items = append(items, item)
			seen[item.PackageID] = struct{}{}
		}
	}

	if r.flatpak.Available() {
		flatpakItems, err := r.flatpak.List(ctx)
		if err != nil {
			r.logger.Warn("flatpak enumeration failed", map[string]interface{}{"error": err.Error()})
		}
		for _, item := range flatpakItems {
			if _, dup := seen[item.PackageID]; dup {
				continue
			}
			items = append(items, item)
			seen[item.PackageID] = struct{}{}
		}
	}

	return items, nil
}

var _ ports.AppRegistry = (*HostRegistry)(nil)
