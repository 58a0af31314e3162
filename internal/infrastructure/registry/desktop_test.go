package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/ecoscan/internal/domain"
)

func writeEntry(t *testing.T, dir, id, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".desktop"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDesktopScannerParsesEntries(t *testing.T) {
	systemDir := t.TempDir()
	userDir := t.TempDir()

	writeEntry(t, systemDir, "org.mozilla.firefox", "[Desktop Entry]\nType=Application\nName=Firefox\n")
	writeEntry(t, systemDir, "org.vendor.helper", "[Desktop Entry]\nType=Application\nName=Helper\nNoDisplay=true\n")
	writeEntry(t, systemDir, "org.vendor.link", "[Desktop Entry]\nType=Link\nName=Not An App\n")
	writeEntry(t, systemDir, "org.vendor.anon", "[Desktop Entry]\nType=Application\n")

	scanner := &DesktopScanner{systemDirs: []string{systemDir}, userDir: userDir}
	items := byID(scanner.Scan())

	firefox, ok := items["org.mozilla.firefox"]
	if !ok || firefox.DisplayName != "Firefox" || firefox.SystemEntity {
		t.Fatalf("firefox entry = %+v, ok=%v", firefox, ok)
	}

	helper, ok := items["org.vendor.helper"]
	if !ok || !helper.SystemEntity {
		t.Fatalf("NoDisplay entry should be a system entity, got %+v", helper)
	}

	if _, ok := items["org.vendor.link"]; ok {
		t.Fatal("non-Application entries must be dropped")
	}

	anon, ok := items["org.vendor.anon"]
	if !ok || anon.DisplayName != "org.vendor.anon" {
		t.Fatalf("nameless entry should fall back to its id, got %+v", anon)
	}
}

func TestDesktopScannerUpdatedSystemOverride(t *testing.T) {
	systemDir := t.TempDir()
	userDir := t.TempDir()

	writeEntry(t, systemDir, "org.vendor.player", "[Desktop Entry]\nType=Application\nName=Player\nNoDisplay=true\n")
	writeEntry(t, userDir, "org.vendor.player", "[Desktop Entry]\nType=Application\nName=Player\n")

	scanner := &DesktopScanner{systemDirs: []string{systemDir}, userDir: userDir}
	items := byID(scanner.Scan())

	player, ok := items["org.vendor.player"]
	if !ok {
		t.Fatal("player entry missing")
	}
	if !player.UpdatedSystem {
		t.Fatalf("user-local shadow of a system entry should be flagged updated, got %+v", player)
	}
	if !player.Relevant() {
		t.Fatal("updated system entry must stay relevant")
	}
}

func TestParseFlatpakList(t *testing.T) {
	output := "com.spotify.Client\tSpotify\norg.gimp.GIMP\tGIMP\nbare.id\n"
	items := byID(parseFlatpakList(output))

	if len(items) != 3 {
		t.Fatalf("parsed %d items, want 3", len(items))
	}
	if items["com.spotify.Client"].DisplayName != "Spotify" {
		t.Fatalf("spotify name = %q", items["com.spotify.Client"].DisplayName)
	}
	if items["bare.id"].DisplayName != "bare.id" {
		t.Fatal("row without a name column should fall back to the id")
	}
}

func byID(items []domain.InstalledItem) map[string]domain.InstalledItem {
	out := make(map[string]domain.InstalledItem, len(items))
	for _, item := range items {
		out[item.PackageID] = item
	}
	return out
}
