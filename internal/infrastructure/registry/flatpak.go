package registry

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doeshing/ecoscan/internal/domain"
)

// FlatpakLister enumerates installed flatpak applications by shelling out to
// the flatpak binary.
type FlatpakLister struct{}

// Available reports whether the flatpak binary is on PATH.
func (FlatpakLister) Available() bool {
	_, err := exec.LookPath("flatpak")
	return err == nil
}

// List runs `flatpak list --app` and parses its tab-separated output.
// Runtimes are already filtered out by --app, so every row is user-relevant.
func (FlatpakLister) List(ctx context.Context) ([]domain.InstalledItem, error) {
	cmd := exec.CommandContext(ctx, "flatpak", "list", "--app", "--columns=application,name")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("flatpak list failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("flatpak list failed: %w", err)
	}

	return parseFlatpakList(string(output)), nil
}

func parseFlatpakList(output string) []domain.InstalledItem {
	var items []domain.InstalledItem
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		id := strings.TrimSpace(fields[0])
		if id == "" {
			continue
		}
		name := id
		if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
			name = strings.TrimSpace(fields[1])
		}
		items = append(items, domain.InstalledItem{
			PackageID:   id,
			DisplayName: name,
		})
	}
	return items
}
