package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
)

func TestGeneratedContentFreshness(t *testing.T) {
	now := time.Now()

	fresh := domain.GeneratedContent{Explanation: "x", GeneratedAt: now.Add(-23 * time.Hour)}
	if !fresh.Fresh(now) {
		t.Error("content aged 23h should be fresh")
	}

	stale := domain.GeneratedContent{Explanation: "x", GeneratedAt: now.Add(-25 * time.Hour)}
	if stale.Fresh(now) {
		t.Error("content aged 25h should be stale")
	}

	var zero domain.GeneratedContent
	if zero.Fresh(now) {
		t.Error("zero-value content should not be fresh")
	}
}

func TestCatalogFreshness(t *testing.T) {
	now := time.Now()
	catalog := domain.Catalog{
		Domains:   map[string]string{"example.com": "other"},
		FetchedAt: now.Add(-time.Hour),
	}
	if !catalog.Fresh(now) {
		t.Error("catalog aged 1h should be fresh")
	}

	catalog.FetchedAt = now.Add(-7 * time.Hour)
	if catalog.Fresh(now) {
		t.Error("catalog aged 7h should be stale")
	}

	var empty domain.Catalog
	empty.FetchedAt = now
	if empty.Fresh(now) {
		t.Error("empty catalog should never be fresh")
	}
}

func TestServiceMatches(t *testing.T) {
	svc := domain.Service{Name: "Spotify", PackageID: "com.spotify.music"}

	if !svc.Matches("spot") {
		t.Error("name substring should match")
	}
	if !svc.Matches("MUSIC") {
		t.Error("package substring should match case-insensitively")
	}
	if svc.Matches("instagram") {
		t.Error("unrelated query should not match")
	}
}

func TestInstalledItemRelevance(t *testing.T) {
	if (domain.InstalledItem{SystemEntity: true}).Relevant() {
		t.Error("system entity should be irrelevant")
	}
	if !(domain.InstalledItem{SystemEntity: true, UpdatedSystem: true}).Relevant() {
		t.Error("updated system entry should stay relevant")
	}
	if !(domain.InstalledItem{}).Relevant() {
		t.Error("user entry should be relevant")
	}
}
