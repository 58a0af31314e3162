// Package catalog fetches the remote classification documents: the category
// table and the domain-to-category map. Both are static JSON files; each
// successful refresh replaces the in-memory copy wholesale.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

const (
	snapshotCategoriesKey = "categories"
	snapshotDomainsKey    = "domains"
)

// Client implements ports.CatalogSource with an in-memory time-based cache,
// bounded retry around each fetch, and an on-disk snapshot of the last good
// documents for offline reuse.
type Client struct {
	categoriesURL string
	domainsURL    string
	refresh       time.Duration
	httpClient    *http.Client
	snapshots     ports.SnapshotStore
	logger        ports.Logger

	mu            sync.Mutex
	cached        domain.Catalog
	now           func() time.Time
	retryInterval time.Duration
}

// NewClient builds a catalog client from configuration. snapshots may be nil
// to disable offline reuse.
func NewClient(cfg domain.Config, snapshots ports.SnapshotStore, log ports.Logger) *Client {
	return &Client{
		categoriesURL: cfg.Catalog.CategoriesURL,
		domainsURL:    cfg.Catalog.DomainsURL,
		refresh:       cfg.GetCatalogRefreshInterval(),
		httpClient:    &http.Client{Timeout: cfg.GetCatalogTimeout()},
		snapshots:     snapshots,
		logger:        log,
		now:           time.Now,
		retryInterval: 500 * time.Millisecond,
	}
}

// Load returns the catalog, refreshing over the network only when the cached
// copy has aged out. Fetch failures degrade to the disk snapshot (flagged
// offline) and finally to an empty catalog; no error escapes the source.
func (c *Client) Load(ctx context.Context) domain.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	// An offline copy never counts as fresh, so recovery is retried on the
	// next load.
	if c.cached.Fresh(now) && !c.cached.Offline {
		return c.cached
	}

	categories, catErr := fetchJSON[map[string]domain.CategoryRecord](ctx, c, c.categoriesURL)
	domains, domErr := fetchJSON[map[string]string](ctx, c, c.domainsURL)

	if catErr == nil && domErr == nil {
		c.cached = domain.Catalog{
			Categories: categories,
			Domains:    domains,
			FetchedAt:  now,
		}
		c.storeSnapshot(snapshotCategoriesKey, categories)
		c.storeSnapshot(snapshotDomainsKey, domains)
		return c.cached
	}

	c.logger.Warn("catalog fetch failed, degrading", map[string]interface{}{
		"categories_err": errString(catErr),
		"domains_err":    errString(domErr),
	})

	if snapshot, ok := c.loadSnapshot(now); ok {
		c.cached = snapshot
		return c.cached
	}

	return domain.Catalog{Offline: true}
}

// Invalidate drops the in-memory copy so the next Load refetches.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = domain.Catalog{}
}

func fetchJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	var out T

	var body []byte
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", url, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("fetch %s: %s", url, resp.Status)
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), domain.CatalogMaxRetries),
			ctx,
		),
	)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", url, err)
	}
	return out, nil
}

func (c *Client) storeSnapshot(key string, value interface{}) {
	if c.snapshots == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.snapshots.Set(key, data); err != nil {
		c.logger.Debug("snapshot write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (c *Client) loadSnapshot(now time.Time) (domain.Catalog, bool) {
	if c.snapshots == nil {
		return domain.Catalog{}, false
	}

	catData, catOK, _ := c.snapshots.Get(snapshotCategoriesKey)
	domData, domOK, _ := c.snapshots.Get(snapshotDomainsKey)
	if !catOK || !domOK {
		return domain.Catalog{}, false
	}

	var categories map[string]domain.CategoryRecord
	var domains map[string]string
	if err := json.Unmarshal(catData, &categories); err != nil {
		return domain.Catalog{}, false
	}
	if err := json.Unmarshal(domData, &domains); err != nil {
		return domain.Catalog{}, false
	}

	return domain.Catalog{
		Categories: categories,
		Domains:    domains,
		FetchedAt:  now,
		Offline:    true,
	}, true
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

var _ ports.CatalogSource = (*Client)(nil)
