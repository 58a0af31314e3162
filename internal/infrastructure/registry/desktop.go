package registry

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/pkg/filesystem"
)

// DesktopScanner enumerates applications from XDG desktop entry files. The
// entry id is the file name without the .desktop suffix.
type DesktopScanner struct {
	systemDirs []string
	userDir    string
}

// NewDesktopScanner uses the standard XDG application directories.
func NewDesktopScanner() *DesktopScanner {
	userData := os.Getenv("XDG_DATA_HOME")
	if userData == "" {
		userData = filepath.Join(filesystem.UserHomeDir(), ".local", "share")
	}
	return &DesktopScanner{
		systemDirs: []string{
			"/usr/share/applications",
			"/usr/local/share/applications",
		},
		userDir: filepath.Join(userData, "applications"),
	}
}

// Available reports whether any application directory exists on this host.
func (s *DesktopScanner) Available() bool {
	for _, dir := range append([]string{s.userDir}, s.systemDirs...) {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// Scan reads all entries. System-dir entries flagged NoDisplay or Hidden are
// system entities; a user-local entry shadowing one of those is the
// "updated system app" case and stays user-relevant. Unreadable files are
// skipped, never fatal.
func (s *DesktopScanner) Scan() []domain.InstalledItem {
	items := make(map[string]domain.InstalledItem)

	for _, dir := range s.systemDirs {
		s.scanDir(dir, items, false)
	}
	s.scanDir(s.userDir, items, true)

	out := make([]domain.InstalledItem, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func (s *DesktopScanner) scanDir(dir string, items map[string]domain.InstalledItem, userLocal bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
			continue
		}
		item, ok := parseDesktopFile(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}
		if userLocal {
			if prior, exists := items[item.PackageID]; exists && prior.SystemEntity {
				item.SystemEntity = true
				item.UpdatedSystem = true
			}
		}
		items[item.PackageID] = item
	}
}

func parseDesktopFile(path string) (domain.InstalledItem, bool) {
	file, err := os.Open(path)
	if err != nil {
		return domain.InstalledItem{}, false
	}
	defer file.Close()

	item := domain.InstalledItem{
		PackageID: strings.TrimSuffix(filepath.Base(path), ".desktop"),
	}
	inEntry := false
	isApplication := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			inEntry = line == "[Desktop Entry]"
			continue
		case !inEntry:
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Type":
			isApplication = strings.TrimSpace(value) == "Application"
		case "Name":
			if item.DisplayName == "" {
				item.DisplayName = strings.TrimSpace(value)
			}
		case "NoDisplay", "Hidden":
			if strings.EqualFold(strings.TrimSpace(value), "true") {
				item.SystemEntity = true
			}
		}
	}
	if scanner.Err() != nil {
		return domain.InstalledItem{}, false
	}
	if !isApplication {
		return domain.InstalledItem{}, false
	}
	if item.DisplayName == "" {
		// label resolution failure: substitute the id rather than drop
		item.DisplayName = item.PackageID
	}
	return item, true
}
